// blob-label labels the blobs in an image and writes a color visualization,
// with optional JSON, gnuplot and SVG contour exports.
//
// Usage:
//
//	blob-label [options] <input> <output.png>
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"

	dimaging "github.com/disintegration/imaging"

	"github.com/ironsheep/blob-tools-mcp/internal/blob"
	"github.com/ironsheep/blob-tools-mcp/internal/export"
	"github.com/ironsheep/blob-tools-mcp/internal/imaging"
)

func main() {
	log.SetOutput(os.Stderr)
	log.SetFlags(0)
	log.SetPrefix("blob-label: ")

	var (
		roiX      = flag.Int("x", 0, "left edge of the region of interest")
		roiY      = flag.Int("y", 0, "top edge of the region of interest")
		roiW      = flag.Int("w", 0, "width of the region of interest (0 = full width)")
		roiH      = flag.Int("h", 0, "height of the region of interest (0 = full height)")
		threshold = flag.Int("t", 128, "luminance threshold (0-255)")
		blur      = flag.Float64("blur", 0, "gaussian blur radius before thresholding")
		adjacent  = flag.Bool("adjacent", false, "mark contour-adjacent background in the output")
		jsonPath  = flag.String("json", "", "also write blobs as JSON to this file")
		plotPath  = flag.String("plot", "", "also write contours as gnuplot data to this file")
		svgPath   = flag.String("svg", "", "also write contours as SVG to this file")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: blob-label [options] <input> <output.png>\n\nOptions:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}
	inPath, outPath := flag.Arg(0), flag.Arg(1)

	if *threshold < 0 || *threshold > 255 {
		log.Fatalf("threshold %d out of range 0-255", *threshold)
	}

	img, err := dimaging.Open(inPath)
	if err != nil {
		log.Fatalf("failed to read %s: %v", inPath, err)
	}

	mask := imaging.BuildMask(img, uint8(*threshold), *blur)
	roi := mask.Bounds()
	if *roiW > 0 || *roiH > 0 {
		roi = image.Rect(*roiX, *roiY, *roiX+*roiW, *roiY+*roiH).Intersect(mask.Bounds())
	}

	lb, blobs, err := blob.Find(mask, roi, true)
	if err != nil {
		log.Fatalf("%v", err)
	}
	log.Printf("%d blob(s) in %dx%d region", len(blobs), lb.Width, lb.Height)

	if err := writePNG(outPath, imaging.RenderLabelsImage(lb, *adjacent)); err != nil {
		log.Fatalf("%v", err)
	}

	if *jsonPath != "" {
		if err := writeFile(*jsonPath, func(f *os.File) error {
			return export.WriteJSON(f, blobs)
		}); err != nil {
			log.Fatalf("%v", err)
		}
	}
	if *plotPath != "" {
		if err := writeFile(*plotPath, func(f *os.File) error {
			return export.WritePlot(f, blobs)
		}); err != nil {
			log.Fatalf("%v", err)
		}
	}
	if *svgPath != "" {
		bounds := mask.Bounds()
		if err := writeFile(*svgPath, func(f *os.File) error {
			return export.WriteSVG(f, bounds.Dx(), bounds.Dy(), blobs)
		}); err != nil {
			log.Fatalf("%v", err)
		}
	}
}

func writePNG(path string, img image.Image) error {
	return writeFile(path, func(f *os.File) error {
		return png.Encode(f, img)
	})
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
