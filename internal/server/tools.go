package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// roiProperties is the shared schema fragment for the optional region of
// interest accepted by the blob tools. A zero or omitted width/height means
// the whole image; regions reaching past the image edge are clamped.
func roiProperties() map[string]interface{} {
	return map[string]interface{}{
		"x": map[string]interface{}{
			"type":        "integer",
			"description": "Left edge of the region of interest (default 0)",
			"default":     0,
		},
		"y": map[string]interface{}{
			"type":        "integer",
			"description": "Top edge of the region of interest (default 0)",
			"default":     0,
		},
		"width": map[string]interface{}{
			"type":        "integer",
			"description": "Width of the region of interest. 0 means the full image width.",
			"default":     0,
		},
		"height": map[string]interface{}{
			"type":        "integer",
			"description": "Height of the region of interest. 0 means the full image height.",
			"default":     0,
		},
	}
}

// thresholdProperties is the shared schema fragment for binarization
// parameters.
func thresholdProperties() map[string]interface{} {
	return map[string]interface{}{
		"threshold": map[string]interface{}{
			"type":        "integer",
			"description": "Luminance threshold 0-255; pixels at or above become foreground (default 128)",
			"default":     128,
		},
		"blur_radius": map[string]interface{}{
			"type":        "number",
			"description": "Gaussian blur radius applied before thresholding, in pixels. 0 disables (default 0).",
			"default":     0,
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and color model. Caches the decoded image for subsequent operations.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_threshold",
			Description: "Binarize an image into a foreground/background mask and return it as base64-encoded PNG. Use this to preview the mask blob tools will operate on.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(thresholdProperties(), map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				}),
				"required": []string{"path"},
			},
		},

		// Blob Operations
		{
			Name:        "blob_find",
			Description: "Label all 8-connected foreground blobs in an image and return each blob with its external contour, internal contours (holes) and hole count. Contour points are listed in trace order; closed contours repeat their start point last.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(thresholdProperties(), roiProperties(), map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"internal_contours": map[string]interface{}{
						"type":        "boolean",
						"description": "Whether to extract internal contour points. When false, holes are still counted but their contours are omitted (default true).",
						"default":     true,
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "blob_render_labels",
			Description: "Label all blobs and return a color visualization as base64-encoded PNG: each blob in a distinct palette color, background black. Useful for checking segmentation before reading out contours.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(thresholdProperties(), roiProperties(), map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"mark_adjacent": map[string]interface{}{
						"type":        "boolean",
						"description": "Render background pixels touched during contour tracing in dark gray (default false)",
						"default":     false,
					},
					"scale": map[string]interface{}{
						"type":        "integer",
						"description": "Integer upscale factor with nearest-neighbor resampling, for inspecting small masks (default 1)",
						"default":     1,
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "blob_stats",
			Description: "Label all blobs and return per-blob measurements (area, centroid, bounding box, perimeter length, hole count) plus aggregate area statistics (mean, median, standard deviation).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(thresholdProperties(), roiProperties(), map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "blob_export_svg",
			Description: "Label all blobs and return their contours as an SVG document: filled polygons for blob outlines, dashed polygons for holes, colored with the same palette as blob_render_labels.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(thresholdProperties(), roiProperties(), map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				}),
				"required": []string{"path"},
			},
		},
	}
}

// withProperties merges schema property maps into one. Later maps win on key
// collisions.
func withProperties(maps ...map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{})
	for _, m := range maps {
		for k, v := range m {
			merged[k] = v
		}
	}
	return merged
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
