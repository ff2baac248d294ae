package server

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"
	"testing"
)

// createBlobImageFile creates a black test image with two white blobs and
// returns its path. The first blob is a 5x5 square at (2,2) with a single
// black pixel hole at (4,4); the second is a 3x3 square at (10,10).
func createBlobImageFile(t *testing.T) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			img.Set(x, y, color.Black)
		}
	}
	for y := 2; y < 7; y++ {
		for x := 2; x < 7; x++ {
			img.Set(x, y, color.White)
		}
	}
	img.Set(4, 4, color.Black)
	for y := 10; y < 13; y++ {
		for x := 10; x < 13; x++ {
			img.Set(x, y, color.White)
		}
	}

	tmpFile, err := os.CreateTemp("", "handler-test-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer tmpFile.Close()

	if err := png.Encode(tmpFile, img); err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to encode image: %v", err)
	}

	return tmpFile.Name()
}

// callTool runs a tools/call request and fails the test on protocol errors.
func callTool(t *testing.T, s *Server, name string, args map[string]interface{}) *MCPResponse {
	t.Helper()

	params := map[string]interface{}{
		"name":      name,
		"arguments": args,
	}
	paramsJSON, _ := json.Marshal(params)

	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  paramsJSON,
	}

	resp := s.handleRequest(req)
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	return resp
}

// toolResultJSON extracts and parses the JSON text payload from a successful
// tools/call response.
func toolResultJSON(t *testing.T, resp *MCPResponse) map[string]interface{} {
	t.Helper()

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	content, ok := result["content"].([]map[string]interface{})
	if !ok || len(content) == 0 {
		t.Fatal("Result should contain content")
	}
	text, ok := content[0]["text"].(string)
	if !ok {
		t.Fatal("content[0].text should be a string")
	}

	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		t.Fatalf("Result text is not valid JSON: %v", err)
	}
	return payload
}

func TestHandleToolsCall_ImageLoad(t *testing.T) {
	s := New()
	imgPath := createBlobImageFile(t)
	defer os.Remove(imgPath)

	resp := callTool(t, s, "image_load", map[string]interface{}{"path": imgPath})
	payload := toolResultJSON(t, resp)

	if payload["width"] != float64(20) || payload["height"] != float64(20) {
		t.Errorf("dimensions: got %vx%v, want 20x20", payload["width"], payload["height"])
	}
	if payload["format"] != "png" {
		t.Errorf("format: got %v, want png", payload["format"])
	}
}

func TestHandleToolsCall_ImageDimensions(t *testing.T) {
	s := New()
	imgPath := createBlobImageFile(t)
	defer os.Remove(imgPath)

	resp := callTool(t, s, "image_dimensions", map[string]interface{}{"path": imgPath})
	payload := toolResultJSON(t, resp)

	if payload["width"] != float64(20) || payload["height"] != float64(20) {
		t.Errorf("dimensions: got %vx%v, want 20x20", payload["width"], payload["height"])
	}
}

func TestHandleToolsCall_ImageThreshold(t *testing.T) {
	s := New()
	imgPath := createBlobImageFile(t)
	defer os.Remove(imgPath)

	resp := callTool(t, s, "image_threshold", map[string]interface{}{"path": imgPath})
	payload := toolResultJSON(t, resp)

	// 5x5 square minus one hole pixel plus 3x3 square.
	if payload["foreground_pixels"] != float64(33) {
		t.Errorf("foreground_pixels: got %v, want 33", payload["foreground_pixels"])
	}
	if payload["mime_type"] != "image/png" {
		t.Errorf("mime_type: got %v, want image/png", payload["mime_type"])
	}
	if payload["image_base64"] == "" {
		t.Error("image_base64 should not be empty")
	}
}

func TestHandleToolsCall_BlobFind(t *testing.T) {
	s := New()
	imgPath := createBlobImageFile(t)
	defer os.Remove(imgPath)

	resp := callTool(t, s, "blob_find", map[string]interface{}{"path": imgPath})
	payload := toolResultJSON(t, resp)

	if payload["count"] != float64(2) {
		t.Fatalf("count: got %v, want 2", payload["count"])
	}

	blobs, ok := payload["blobs"].([]interface{})
	if !ok || len(blobs) != 2 {
		t.Fatalf("blobs: got %v", payload["blobs"])
	}

	first, ok := blobs[0].(map[string]interface{})
	if !ok {
		t.Fatal("blob entry should be an object")
	}
	if first["label"] != float64(1) {
		t.Errorf("first blob label: got %v, want 1", first["label"])
	}
	if first["euler_number"] != float64(1) {
		t.Errorf("first blob euler_number: got %v, want 1", first["euler_number"])
	}
	if _, ok := first["external"].([]interface{}); !ok {
		t.Error("first blob should carry an external contour")
	}
	if _, ok := first["internals"].([]interface{}); !ok {
		t.Error("first blob should carry internal contours")
	}
}

func TestHandleToolsCall_BlobFind_CountOnly(t *testing.T) {
	s := New()
	imgPath := createBlobImageFile(t)
	defer os.Remove(imgPath)

	resp := callTool(t, s, "blob_find", map[string]interface{}{
		"path":              imgPath,
		"internal_contours": false,
	})
	payload := toolResultJSON(t, resp)

	blobs := payload["blobs"].([]interface{})
	first := blobs[0].(map[string]interface{})

	// Hole count survives, internal contour points do not.
	if first["euler_number"] != float64(1) {
		t.Errorf("euler_number: got %v, want 1", first["euler_number"])
	}
	if _, ok := first["internals"]; ok {
		t.Error("internals should be omitted in count-only mode")
	}
}

func TestHandleToolsCall_BlobFind_WithROI(t *testing.T) {
	s := New()
	imgPath := createBlobImageFile(t)
	defer os.Remove(imgPath)

	// A region covering only the second blob.
	resp := callTool(t, s, "blob_find", map[string]interface{}{
		"path":   imgPath,
		"x":      9,
		"y":      9,
		"width":  8,
		"height": 8,
	})
	payload := toolResultJSON(t, resp)

	if payload["count"] != float64(1) {
		t.Errorf("count: got %v, want 1", payload["count"])
	}
	if payload["width"] != float64(8) || payload["height"] != float64(8) {
		t.Errorf("region dimensions: got %vx%v, want 8x8", payload["width"], payload["height"])
	}
}

func TestHandleToolsCall_BlobRenderLabels(t *testing.T) {
	s := New()
	imgPath := createBlobImageFile(t)
	defer os.Remove(imgPath)

	resp := callTool(t, s, "blob_render_labels", map[string]interface{}{
		"path":  imgPath,
		"scale": 4,
	})
	payload := toolResultJSON(t, resp)

	if payload["width"] != float64(80) || payload["height"] != float64(80) {
		t.Errorf("scaled dimensions: got %vx%v, want 80x80", payload["width"], payload["height"])
	}
	if payload["image_base64"] == "" {
		t.Error("image_base64 should not be empty")
	}
}

func TestHandleToolsCall_BlobStats(t *testing.T) {
	s := New()
	imgPath := createBlobImageFile(t)
	defer os.Remove(imgPath)

	resp := callTool(t, s, "blob_stats", map[string]interface{}{"path": imgPath})
	payload := toolResultJSON(t, resp)

	if payload["count"] != float64(2) {
		t.Fatalf("count: got %v, want 2", payload["count"])
	}
	if payload["total_foreground"] != float64(33) {
		t.Errorf("total_foreground: got %v, want 33", payload["total_foreground"])
	}

	blobs := payload["blobs"].([]interface{})
	first := blobs[0].(map[string]interface{})
	if first["area"] != float64(24) {
		t.Errorf("first blob area: got %v, want 24", first["area"])
	}
	if first["euler_number"] != float64(1) {
		t.Errorf("first blob euler_number: got %v, want 1", first["euler_number"])
	}
}

func TestHandleToolsCall_BlobExportSVG(t *testing.T) {
	s := New()
	imgPath := createBlobImageFile(t)
	defer os.Remove(imgPath)

	resp := callTool(t, s, "blob_export_svg", map[string]interface{}{"path": imgPath})
	payload := toolResultJSON(t, resp)

	svgText, ok := payload["svg"].(string)
	if !ok {
		t.Fatal("svg should be a string")
	}
	if !strings.Contains(svgText, "<svg") || !strings.Contains(svgText, "<polygon") {
		t.Errorf("svg payload does not look like an SVG document:\n%s", svgText)
	}
	if payload["mime_type"] != "image/svg+xml" {
		t.Errorf("mime_type: got %v, want image/svg+xml", payload["mime_type"])
	}
	if payload["count"] != float64(2) {
		t.Errorf("count: got %v, want 2", payload["count"])
	}
}

func TestHandleToolsCall_NonExistentFile(t *testing.T) {
	s := New()

	resp := callTool(t, s, "blob_find", map[string]interface{}{
		"path": "/nonexistent/image.png",
	})

	if resp.Error == nil {
		t.Fatal("Expected error for non-existent file")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
	}
}

func TestHandleToolsCall_InvalidTool(t *testing.T) {
	s := New()

	resp := callTool(t, s, "nonexistent_tool", map[string]interface{}{})

	if resp.Error == nil {
		t.Fatal("Expected error for unknown tool")
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := New()

	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Params:  json.RawMessage(`invalid json`),
	}

	resp := s.handleToolsCall(req)

	if resp.Error == nil {
		t.Fatal("Expected error for invalid JSON params")
	}
	if resp.Error.Code != -32602 {
		t.Errorf("Error code: got %d, want -32602", resp.Error.Code)
	}
}

func TestExecuteTool_AllTools(t *testing.T) {
	s := New()
	imgPath := createBlobImageFile(t)
	defer os.Remove(imgPath)

	// Test each tool to ensure executeTool correctly dispatches
	toolTests := []struct {
		name string
		args map[string]interface{}
	}{
		{"image_load", map[string]interface{}{"path": imgPath}},
		{"image_dimensions", map[string]interface{}{"path": imgPath}},
		{"image_threshold", map[string]interface{}{"path": imgPath}},
		{"blob_find", map[string]interface{}{"path": imgPath}},
		{"blob_render_labels", map[string]interface{}{"path": imgPath}},
		{"blob_stats", map[string]interface{}{"path": imgPath}},
		{"blob_export_svg", map[string]interface{}{"path": imgPath}},
	}

	for _, tt := range toolTests {
		t.Run(tt.name, func(t *testing.T) {
			argsJSON, _ := json.Marshal(tt.args)
			result, err := s.executeTool(tt.name, argsJSON)
			if err != nil {
				t.Fatalf("executeTool(%s) failed: %v", tt.name, err)
			}
			if result == nil {
				t.Errorf("executeTool(%s) returned nil result", tt.name)
			}
		})
	}
}

func TestExecuteTool_UnknownTool(t *testing.T) {
	s := New()

	_, err := s.executeTool("unknown_tool", json.RawMessage(`{}`))
	if err == nil {
		t.Error("executeTool should fail for unknown tool")
	}
}

func TestExecuteTool_InvalidJSON(t *testing.T) {
	s := New()

	_, err := s.executeTool("image_load", json.RawMessage(`{invalid`))
	if err == nil {
		t.Error("executeTool should fail for invalid JSON")
	}
}
