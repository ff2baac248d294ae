package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/blob-tools-mcp/internal/blob"
)

// goldenAngle spaces consecutive label hues maximally far apart on the color
// wheel, so neighboring labels never render in similar colors.
const goldenAngle = 137.50776405003785

// PaletteColor returns the deterministic display color for a positive blob
// label. The same label always maps to the same color, across calls and
// across render/export backends.
func PaletteColor(label int32) color.RGBA {
	hue := math.Mod(float64(label-1)*goldenAngle, 360)
	r, g, b := colorful.Hsv(hue, 0.85, 0.95).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// contourAdjacentGray is the display color for -1 cells when requested.
var contourAdjacentGray = color.RGBA{R: 48, G: 48, B: 48, A: 255}

// RenderOptions controls label buffer rendering.
type RenderOptions struct {
	// MarkAdjacent renders contour-adjacent background cells (-1) in dark
	// gray instead of black, making the traced halo visible.
	MarkAdjacent bool

	// Scale is an integer upscale factor applied with nearest-neighbor
	// resampling, keeping label cells as crisp squares. Values below 2
	// leave the image at native size.
	Scale int
}

// RenderLabelsResult contains a label buffer rendered as a color image.
type RenderLabelsResult struct {
	// Width and Height of the rendered image in pixels, after scaling.
	Width  int `json:"width"`
	Height int `json:"height"`

	// ImageBase64 is the rendered image encoded as base64 PNG.
	ImageBase64 string `json:"image_base64"`

	// MimeType is always "image/png".
	MimeType string `json:"mime_type"`
}

// RenderLabels draws a label buffer as a color image: each blob in its
// palette color, background black, and optionally the contour-adjacent
// cells in dark gray.
func RenderLabels(lb *blob.LabelBuffer, opts RenderOptions) (*RenderLabelsResult, error) {
	out := RenderLabelsImage(lb, opts.MarkAdjacent)

	if opts.Scale > 1 {
		resized := imaging.Resize(out, lb.Width*opts.Scale, lb.Height*opts.Scale, imaging.NearestNeighbor)
		return encodeRender(resized)
	}
	return encodeRender(out)
}

// RenderLabelsImage renders a label buffer into an in-memory RGBA image at
// native size. Used directly by the CLI, which writes to disk instead of
// returning base64.
func RenderLabelsImage(lb *blob.LabelBuffer, markAdjacent bool) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, lb.Width, lb.Height))
	for y := 0; y < lb.Height; y++ {
		for x := 0; x < lb.Width; x++ {
			v := lb.At(x, y)
			switch {
			case v > 0:
				out.SetRGBA(x, y, PaletteColor(v))
			case v == -1 && markAdjacent:
				out.SetRGBA(x, y, contourAdjacentGray)
			default:
				out.SetRGBA(x, y, color.RGBA{A: 255})
			}
		}
	}
	return out
}

func encodeRender(img image.Image) (*RenderLabelsResult, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode label image: %w", err)
	}
	bounds := img.Bounds()
	return &RenderLabelsResult{
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
