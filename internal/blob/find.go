package blob

import (
	"errors"
	"image"
)

// ErrNilMask is returned when Find is called without a source mask. It is
// detected before any allocation, so the call has no side effects.
var ErrNilMask = errors.New("blob: nil source mask")

// Find labels the 8-connected foreground regions of a binary mask and
// extracts their contours in a single raster scan.
//
// Parameters:
//   - mask: Source mask in the usual 8-bit grayscale form. A pixel value of 0
//     is background; any nonzero value is foreground.
//   - roi: Region of interest in the mask's coordinate space. It may exceed
//     the mask bounds and is clamped silently; an empty clamped ROI is a
//     successful no-op returning zero blobs and a zero-dimension label buffer.
//   - extractInternal: When true, each hole's boundary polygon is stored on
//     its blob. When false, only hole counts are maintained; tracing still
//     runs for its labeling side effects.
//
// Returns:
//   - *LabelBuffer: Freshly allocated labels with the clamped ROI dimensions.
//   - []Blob: Blobs in discovery order; the blob labeled L is at index L-1.
//   - error: ErrNilMask if mask is nil, nil otherwise.
//
// # Algorithm
//
// One raster scan over the clamped ROI, top-to-bottom, left-to-right. Each
// foreground pixel falls into exactly one of three cases, checked in order:
//
//  1. New external contour: the pixel is unlabeled and the pixel directly
//     above it is background (or absent). A new blob is allocated with the
//     next sequential label and its external boundary is traced.
//  2. New internal contour: the pixel directly below is background and still
//     completely unvisited in the label buffer. The owning blob is the
//     current pixel's label, or its left neighbor's label when the current
//     pixel has not been labeled yet. The hole boundary is traced (or only
//     counted, per extractInternal).
//  3. Interior propagation: an unlabeled interior pixel takes its left
//     neighbor's label. At the left ROI edge the cell stays 0; this is the
//     one case where a visited cell may remain 0.
//
// Labels and contours are complete when the scan finishes; there is no
// fixup pass. Output contour points are in absolute mask coordinates.
//
// The returned label buffer and blob list are owned by the caller and share
// no memory with the mask or with any other call.
func Find(mask *image.Gray, roi image.Rectangle, extractInternal bool) (*LabelBuffer, []Blob, error) {
	if mask == nil {
		return nil, nil, ErrNilMask
	}

	clamped := roi.Intersect(mask.Bounds())
	if clamped.Empty() {
		return newLabelBuffer(0, 0), nil, nil
	}

	w, h := clamped.Dx(), clamped.Dy()
	lb := newLabelBuffer(w, h)

	fg := func(i, j int) bool {
		return mask.GrayAt(clamped.Min.X+i, clamped.Min.Y+j).Y != 0
	}

	var blobs []Blob
	next := int32(1)

	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			if !fg(i, j) {
				continue
			}

			cur := lb.At(i, j)

			aboveIn := false
			if j > 0 {
				aboveIn = fg(i, j-1)
			}
			belowIn := false
			belowLabel := int32(-1)
			if j < h-1 {
				belowIn = fg(i, j+1)
				belowLabel = lb.At(i, j+1)
			}

			switch {
			// 1. New external contour.
			case cur == 0 && !aboveIn:
				blobs = allocate(blobs, next)
				traceContour(true, next, i, j, clamped, mask, lb, &blobs[len(blobs)-1].External)
				next++

			// 2. New internal contour.
			case !belowIn && belowLabel == 0:
				label := cur
				if label == 0 && i > 0 {
					// The current pixel is not labeled yet but belongs to an
					// already-known blob by adjacency; the left neighbor is
					// always labeled by the time this fires.
					label = lb.At(i-1, j)
				}
				if label <= 0 {
					continue
				}

				owner := &blobs[label-1]
				var out *Contour
				if extractInternal {
					out = owner.addInternal()
				} else {
					owner.bumpHoleCount()
				}
				traceContour(false, label, i, j, clamped, mask, lb, out)

			// 3. Interior propagation.
			case cur == 0:
				if i > 0 {
					lb.set(i, j, lb.At(i-1, j))
				}
			}
		}
	}

	return lb, blobs, nil
}
