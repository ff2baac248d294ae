package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ironsheep/blob-tools-mcp/internal/blob"
)

// jsonDocument is the top-level shape of the JSON export.
type jsonDocument struct {
	Blobs []blob.Blob `json:"blobs"`
}

// WriteJSON writes the blob list as an indented JSON document:
//
//	{
//	  "blobs": [
//	    {"label": 1, "external": [...], "internals": [...], "euler_number": 1},
//	    ...
//	  ]
//	}
//
// Contour points appear as {"x": ..., "y": ...} objects in trace order, with
// closed contours repeating their start point last. A nil blob list produces
// an empty "blobs" array.
func WriteJSON(w io.Writer, blobs []blob.Blob) error {
	doc := jsonDocument{Blobs: blobs}
	if doc.Blobs == nil {
		doc.Blobs = []blob.Blob{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to write blob JSON: %w", err)
	}
	return nil
}
