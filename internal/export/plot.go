package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/ironsheep/blob-tools-mcp/internal/blob"
)

// WritePlot writes contour points as gnuplot-ready columns:
//
//	x    y    colorindex
//
// Each contour forms one dataset terminated by a blank line, so gnuplot
// treats it as a separate line. External contours use color index 2*label,
// internal contours 2*label+1, keeping a blob's outline and its holes
// visually paired.
//
// Plot with, for example:
//
//	plot 'blobs.dat' using 1:2:3 with lines lc variable
func WritePlot(w io.Writer, blobs []blob.Blob) error {
	bw := bufio.NewWriter(w)
	for _, b := range blobs {
		if err := writePlotContour(bw, &b.External, 2*int(b.Label)); err != nil {
			return err
		}
		for i := range b.Internal {
			if err := writePlotContour(bw, &b.Internal[i], 2*int(b.Label)+1); err != nil {
				return err
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write plot data: %w", err)
	}
	return nil
}

func writePlotContour(w *bufio.Writer, c *blob.Contour, colorIndex int) error {
	for i := 0; i < c.Len(); i++ {
		p := c.At(i)
		if _, err := fmt.Fprintf(w, "%5d    %5d    %5d\n", p.X, p.Y, colorIndex); err != nil {
			return fmt.Errorf("failed to write plot data: %w", err)
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return fmt.Errorf("failed to write plot data: %w", err)
	}
	return nil
}
