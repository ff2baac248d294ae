package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/segment"
)

// BuildMask converts an image into the binary mask the labeling core
// consumes: pixels at or above level become foreground (255), everything
// else background (0).
//
// Parameters:
//   - img: Source image (color or grayscale).
//   - level: Threshold on the 8-bit luminance scale. Typical: 128.
//   - blurRadius: Gaussian blur radius applied before thresholding, in
//     pixels. 0 disables the blur. Useful for noisy photographic sources;
//     clean diagrams should keep it at 0.
func BuildMask(img image.Image, level uint8, blurRadius float64) *image.Gray {
	if blurRadius > 0 {
		img = blur.Gaussian(img, blurRadius)
	}
	return segment.Threshold(img, level)
}

// ThresholdResult contains a binarized image encoded as base64 PNG.
type ThresholdResult struct {
	// Width and Height of the output mask (same as input).
	Width  int `json:"width"`
	Height int `json:"height"`

	// Level is the threshold that was applied.
	Level uint8 `json:"level"`

	// ForegroundPixels counts mask pixels at or above the threshold.
	ForegroundPixels int `json:"foreground_pixels"`

	// ImageBase64 is the mask encoded as base64 PNG, white foreground on
	// black background.
	ImageBase64 string `json:"image_base64"`

	// MimeType is always "image/png".
	MimeType string `json:"mime_type"`
}

// Threshold binarizes an image and returns the mask as base64 PNG together
// with a foreground pixel count. This is the tool-facing wrapper around
// BuildMask.
func Threshold(img image.Image, level uint8, blurRadius float64) (*ThresholdResult, error) {
	mask := BuildMask(img, level, blurRadius)
	bounds := mask.Bounds()

	foreground := 0
	for _, v := range mask.Pix {
		if v != 0 {
			foreground++
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, mask); err != nil {
		return nil, fmt.Errorf("failed to encode mask: %w", err)
	}

	return &ThresholdResult{
		Width:            bounds.Dx(),
		Height:           bounds.Dy(),
		Level:            level,
		ForegroundPixels: foreground,
		ImageBase64:      base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:         "image/png",
	}, nil
}
