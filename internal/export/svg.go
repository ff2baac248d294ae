package export

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/ironsheep/blob-tools-mcp/internal/blob"
	"github.com/ironsheep/blob-tools-mcp/internal/imaging"
)

// WriteSVG writes the blob contours as an SVG document of the given pixel
// dimensions. Each external contour becomes a filled polygon in the blob's
// palette color; internal contours render unfilled with a dashed stroke in
// the same color, so holes stay visible on top of the fill.
//
// Contour coordinates are used as-is, so the width and height should cover
// the mask region the blobs came from.
func WriteSVG(w io.Writer, width, height int, blobs []blob.Blob) error {
	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:black")

	for _, b := range blobs {
		c := imaging.PaletteColor(b.Label)
		hex := fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)

		if xs, ys := polygonPoints(&b.External); len(xs) > 0 {
			canvas.Polygon(xs, ys,
				fmt.Sprintf("fill:%s;fill-opacity:0.6;stroke:%s;stroke-width:0.25", hex, hex))
		}
		for i := range b.Internal {
			xs, ys := polygonPoints(&b.Internal[i])
			if len(xs) == 0 {
				continue
			}
			canvas.Polygon(xs, ys,
				fmt.Sprintf("fill:none;stroke:%s;stroke-width:0.25;stroke-dasharray:1,1", hex))
		}
	}

	canvas.End()
	return nil
}

// polygonPoints splits a contour into the parallel coordinate slices svgo
// expects. The closing repeat of the start point is dropped, since SVG
// polygons close themselves.
func polygonPoints(c *blob.Contour) ([]int, []int) {
	n := c.Len()
	if n > 1 && c.At(0) == c.At(n-1) {
		n--
	}
	xs := make([]int, n)
	ys := make([]int, n)
	for i := 0; i < n; i++ {
		p := c.At(i)
		xs[i], ys[i] = p.X, p.Y
	}
	return xs, ys
}
