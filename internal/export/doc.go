// Package export serializes labeling results to interchange formats.
//
// Three writers are provided:
//
//   - WriteJSON emits the blob list, contours included, as a JSON document
//     suitable for downstream tooling.
//   - WritePlot emits contour points as whitespace-separated columns for
//     gnuplot, one dataset per contour.
//   - WriteSVG emits contours as styled polygons in a scalable vector
//     document, using the same per-label palette as the raster renderer.
//
// All writers take an io.Writer and leave file handling to the caller.
package export
