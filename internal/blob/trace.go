package blob

import "image"

// The eight neighbor offsets, indexed clockwise starting at east.
var (
	traceDX = [8]int{1, 1, 0, -1, -1, -1, 0, 1}
	traceDY = [8]int{0, 1, 1, 1, 0, -1, -1, -1}
)

// traceContour walks the boundary between foreground and background starting
// at the ROI-local pixel (x, y), using Moore-neighbor tracing over the eight
// clockwise directions.
//
// Every foreground pixel the walk visits is written to the label buffer with
// the given label; every in-range background neighbor inspected along the way
// is marked -1 so the scan-line driver never treats it as virgin background.
// Visited pixels are appended to out in visitation order, translated to
// absolute mask coordinates via the ROI offset. A nil out performs all
// labeling side effects without recording geometry (hole-count-only mode).
//
// External contours start their neighbor search at index 7 and internal
// contours at index 3, which gives the two boundary types opposite winding.
// After each accepted step the search resumes two positions clockwise past
// the reverse of the direction just taken, the standard backtrack-and-resume
// rule that keeps the walk from skipping boundary pixels.
//
// The walk terminates either immediately, when no foreground neighbor exists
// (an isolated single pixel), or when it steps onto the first accepted
// neighbor while standing on the starting pixel. Checking both of the first
// two visited points is required: position-equals-start alone would stop
// early at self-touching corners. On a closed boundary the starting pixel is
// therefore appended twice, once at the head and once as the final point.
func traceContour(external bool, label int32, x, y int, roi image.Rectangle, mask *image.Gray, lb *LabelBuffer, out *Contour) {
	dir := 3
	if external {
		dir = 7
	}

	curX, curY := x, y
	firstX, firstY := -1, -1

	lb.set(curX, curY, label)

	for done := false; !done; {
		if out != nil {
			out.Append(roi.Min.X+curX, roi.Min.Y+curY)
		}

		// Scan around the current pixel in clockwise order.
		j := 0
		for ; j < 8; j, dir = j+1, (dir+1)&7 {
			nx := curX + traceDX[dir]
			ny := curY + traceDY[dir]
			if nx < 0 || nx >= lb.Width || ny < 0 || ny >= lb.Height {
				continue
			}

			if mask.GrayAt(roi.Min.X+nx, roi.Min.Y+ny).Y != 0 {
				lb.set(nx, ny, label)

				if firstX < 0 && firstY < 0 {
					firstX, firstY = nx, ny
				} else {
					// Done once the first two contour points are crossed again.
					done = curX == x && curY == y && nx == firstX && ny == firstY
				}
				curX, curY = nx, ny
				break
			}
			lb.set(nx, ny, -1)
		}

		// Isolated point.
		if j == 8 {
			done = true
		}

		// Resume the next search two positions past the direction we
		// arrived from.
		dir = (((dir + 4) & 7) + 2) & 7
	}
}
