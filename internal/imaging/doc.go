// Package imaging provides the image-side collaborators of the blob labeling
// core: loading and caching source images, thresholding them into binary
// masks, rendering label buffers as color images, and measuring labeled
// blobs.
//
// The labeling algorithm itself lives in the blob package and only ever sees
// a binary mask and a region of interest; everything in this package is a
// thin adapter between image files and that boundary.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y increasing downward, matching the blob package
// and the standard Go image types.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The remaining functions are
// stateless and may be called concurrently on independent inputs.
//
// # Error Handling
//
// Functions return errors for file I/O failures, decode failures, and
// encoding failures during image output. Pure computations over in-memory
// data (thresholding, rendering, measuring) do not fail.
package imaging
