package blob

import "fmt"

// LabelBuffer is a row-major grid of signed labels covering the clamped
// region of interest, one cell per ROI pixel.
//
// Cell values form an exhaustive tagged state: 0 for untouched background, -1
// for background adjacent to a traced contour, and a positive label for
// foreground pixels (see the package documentation). The buffer is
// independent of the blob list produced by the same scan; both are derived
// from one pass but have independent lifetimes.
type LabelBuffer struct {
	// Width and Height are the clamped ROI dimensions. Both are zero when
	// the ROI clamped to nothing.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Pix holds the labels in row-major order, Width*Height cells.
	Pix []int32 `json:"-"`
}

// newLabelBuffer allocates a zeroed w×h buffer.
func newLabelBuffer(w, h int) *LabelBuffer {
	return &LabelBuffer{Width: w, Height: h, Pix: make([]int32, w*h)}
}

// index converts ROI-local coordinates to a flat Pix offset, validating
// bounds.
func (lb *LabelBuffer) index(x, y int) int {
	if x < 0 || x >= lb.Width || y < 0 || y >= lb.Height {
		panic(fmt.Sprintf("blob: label coordinate (%d,%d) out of range %dx%d", x, y, lb.Width, lb.Height))
	}
	return y*lb.Width + x
}

// At returns the label at ROI-local coordinates (x, y). It panics if the
// coordinates are out of range.
func (lb *LabelBuffer) At(x, y int) int32 {
	return lb.Pix[lb.index(x, y)]
}

// set writes a label at ROI-local coordinates (x, y).
func (lb *LabelBuffer) set(x, y int, v int32) {
	lb.Pix[lb.index(x, y)] = v
}
