package blob

// Blob describes one 8-connected foreground region.
//
// A blob owns exactly one external contour and zero or more internal contours
// (holes). HoleCount is maintained even when internal contour points are not
// extracted, so the Euler-number complement is always available.
type Blob struct {
	// Label is the positive value this blob's pixels carry in the label
	// buffer. Labels are assigned in raster-scan discovery order starting
	// at 1.
	Label int32 `json:"label"`

	// External is the boundary polygon separating the blob from the
	// surrounding background.
	External Contour `json:"external"`

	// Internal holds the boundary polygons of the blob's holes. Nil when
	// internal contour extraction was not requested.
	Internal []Contour `json:"internals,omitempty"`

	// HoleCount is the number of internal contours (the Euler number
	// complement). It is tracked regardless of whether Internal is
	// populated.
	HoleCount int `json:"euler_number"`
}

// allocate appends a fresh zero-value blob carrying the given label and
// returns the updated list. A blob with label L always sits at index L-1;
// indices are stable for the lifetime of the list.
func allocate(blobs []Blob, label int32) []Blob {
	return append(blobs, Blob{Label: label})
}

// addInternal appends a new empty internal contour to the blob and returns a
// handle to it for the tracer to fill. The hole count is bumped alongside.
func (b *Blob) addInternal() *Contour {
	b.Internal = append(b.Internal, Contour{})
	b.HoleCount++
	return &b.Internal[len(b.Internal)-1]
}

// bumpHoleCount records a hole without materializing its contour. Used when
// the caller asked for hole counts only.
func (b *Blob) bumpHoleCount() {
	b.HoleCount++
}
