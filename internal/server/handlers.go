package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"

	"github.com/ironsheep/blob-tools-mcp/internal/blob"
	"github.com/ironsheep/blob-tools-mcp/internal/export"
	"github.com/ironsheep/blob-tools-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "blob_find").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache as needed
//  4. Calls the appropriate imaging/blob/export function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_threshold":
		return s.handleImageThreshold(args)

	// Blob Operations
	case "blob_find":
		return s.handleBlobFind(args)
	case "blob_render_labels":
		return s.handleBlobRenderLabels(args)
	case "blob_stats":
		return s.handleBlobStats(args)
	case "blob_export_svg":
		return s.handleBlobExportSVG(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

type imageThresholdArgs struct {
	Path       string  `json:"path"`
	Threshold  *int    `json:"threshold"`
	BlurRadius float64 `json:"blur_radius"`
}

// level returns the binarization threshold with the default applied.
func (a *imageThresholdArgs) level() uint8 {
	if a.Threshold == nil {
		return 128
	}
	return uint8(*a.Threshold)
}

func (s *Server) handleImageThreshold(args json.RawMessage) (interface{}, error) {
	var a imageThresholdArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.Threshold(img, a.level(), a.BlurRadius)
}

// === Blob Operation Handlers ===

// blobArgs carries the parameters shared by every blob tool: the source
// image, binarization settings and an optional region of interest.
type blobArgs struct {
	imageThresholdArgs
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// buildMask loads the source through the cache, binarizes it and resolves
// the region of interest. The returned rectangle is already clamped to the
// mask bounds; it is empty when the requested region misses the image.
func (s *Server) buildMask(a *blobArgs) (*image.Gray, image.Rectangle, error) {
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, image.Rectangle{}, err
	}
	mask := imaging.BuildMask(img, a.level(), a.BlurRadius)

	roi := mask.Bounds()
	if a.Width > 0 || a.Height > 0 {
		roi = image.Rect(a.X, a.Y, a.X+a.Width, a.Y+a.Height).Intersect(mask.Bounds())
	}
	return mask, roi, nil
}

type blobFindArgs struct {
	blobArgs
	InternalContours *bool `json:"internal_contours"`
}

// blobFindResult is the blob_find payload: the labeled region and every
// blob with its contours.
type blobFindResult struct {
	// Width and Height of the labeled region (the clamped ROI).
	Width  int `json:"width"`
	Height int `json:"height"`

	// Count is the number of blobs found.
	Count int `json:"count"`

	// Blobs lists the blobs in label order.
	Blobs []blob.Blob `json:"blobs"`
}

func (s *Server) handleBlobFind(args json.RawMessage) (interface{}, error) {
	var a blobFindArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	extract := a.InternalContours == nil || *a.InternalContours

	mask, roi, err := s.buildMask(&a.blobArgs)
	if err != nil {
		return nil, err
	}
	lb, blobs, err := blob.Find(mask, roi, extract)
	if err != nil {
		return nil, err
	}
	if blobs == nil {
		blobs = []blob.Blob{}
	}
	return &blobFindResult{
		Width:  lb.Width,
		Height: lb.Height,
		Count:  len(blobs),
		Blobs:  blobs,
	}, nil
}

type blobRenderLabelsArgs struct {
	blobArgs
	MarkAdjacent bool `json:"mark_adjacent"`
	Scale        int  `json:"scale"`
}

func (s *Server) handleBlobRenderLabels(args json.RawMessage) (interface{}, error) {
	var a blobRenderLabelsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	mask, roi, err := s.buildMask(&a.blobArgs)
	if err != nil {
		return nil, err
	}
	lb, _, err := blob.Find(mask, roi, false)
	if err != nil {
		return nil, err
	}
	return imaging.RenderLabels(lb, imaging.RenderOptions{
		MarkAdjacent: a.MarkAdjacent,
		Scale:        a.Scale,
	})
}

func (s *Server) handleBlobStats(args json.RawMessage) (interface{}, error) {
	var a blobArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	mask, roi, err := s.buildMask(&a)
	if err != nil {
		return nil, err
	}
	// Hole counts survive without contour extraction, so stats skip the
	// point storage.
	lb, blobs, err := blob.Find(mask, roi, false)
	if err != nil {
		return nil, err
	}
	return imaging.MeasureBlobs(lb, blobs, blob.Point{X: roi.Min.X, Y: roi.Min.Y}), nil
}

// blobExportSVGResult is the blob_export_svg payload.
type blobExportSVGResult struct {
	// Width and Height of the SVG canvas in pixels.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Count is the number of blobs in the document.
	Count int `json:"count"`

	// SVG is the document text.
	SVG string `json:"svg"`

	// MimeType is always "image/svg+xml".
	MimeType string `json:"mime_type"`
}

func (s *Server) handleBlobExportSVG(args json.RawMessage) (interface{}, error) {
	var a blobArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	mask, roi, err := s.buildMask(&a)
	if err != nil {
		return nil, err
	}
	_, blobs, err := blob.Find(mask, roi, true)
	if err != nil {
		return nil, err
	}

	// Contour points are in mask coordinates, so the canvas spans the
	// whole mask even when the ROI is a sub-region.
	bounds := mask.Bounds()
	var buf bytes.Buffer
	if err := export.WriteSVG(&buf, bounds.Dx(), bounds.Dy(), blobs); err != nil {
		return nil, err
	}
	return &blobExportSVGResult{
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Count:    len(blobs),
		SVG:      buf.String(),
		MimeType: "image/svg+xml",
	}, nil
}
