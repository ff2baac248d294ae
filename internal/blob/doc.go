// Package blob implements 8-connected component labeling with simultaneous
// contour extraction for binary masks.
//
// The algorithm labels every foreground region ("blob") of a mask and extracts
// each region's external boundary and any internal boundaries (holes) as
// ordered pixel polygons in a single raster scan. There is no separate
// labeling pass followed by a contour-following pass: the scan interleaves
// labeling with Moore-neighbor contour tracing, using the label buffer itself
// as the traversal state that decides when a new external or internal contour
// begins. The approach follows "A linear-time component-labeling algorithm
// using contour tracing technique" by Chang, Chen and Lu.
//
// # Label Buffer Semantics
//
// The label buffer is a row-major grid of signed values, one cell per pixel of
// the clamped region of interest:
//
//   - 0: background, never touched by a trace
//   - -1: background pixel adjacent to a traced contour
//   - L > 0: foreground pixel belonging to the blob labeled L
//
// Labels are assigned in raster-scan discovery order starting at 1, with no
// label reused or skipped. Once a cell holds a positive label or -1 it is
// never overwritten; the only later write is interior propagation, which
// assigns a label to a still-zero interior cell.
//
// # Coordinate System
//
// The region of interest is expressed in the mask's own coordinate space and
// is clamped to the mask bounds on entry. The label buffer is ROI-local, but
// all contour points are emitted in absolute mask coordinates (the ROI offset
// is added back in).
//
// # Connectivity
//
// Foreground connectivity is 8-connected; holes are therefore 4-connected
// background regions. Other connectivity modes are not supported.
//
// # Concurrency
//
// Find allocates a fresh label buffer and blob list per call and never writes
// to the mask, so concurrent calls on independent masks need no coordination.
package blob
