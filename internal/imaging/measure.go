package imaging

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/ironsheep/blob-tools-mcp/internal/blob"
)

// BlobMeasure describes one labeled blob in terms derived from the label
// buffer and its contours.
type BlobMeasure struct {
	// Label identifies the blob in the label buffer.
	Label int32 `json:"label"`

	// Area is the number of pixels carrying this blob's label.
	Area int `json:"area"`

	// CentroidX and CentroidY locate the blob's center of mass in mask
	// coordinates.
	CentroidX float64 `json:"centroid_x"`
	CentroidY float64 `json:"centroid_y"`

	// Bounds is the blob's axis-aligned bounding box, inclusive top-left
	// and exclusive bottom-right, in mask coordinates.
	Bounds BoundsBox `json:"bounds"`

	// PerimeterPoints is the number of distinct pixels on the external
	// contour (the closing repeat of the start pixel is not counted).
	PerimeterPoints int `json:"perimeter_points"`

	// HoleCount is the blob's number of internal contours.
	HoleCount int `json:"euler_number"`
}

// BoundsBox is an axis-aligned bounding box in pixel coordinates.
type BoundsBox struct {
	X1 int `json:"x1"` // Left edge (inclusive)
	Y1 int `json:"y1"` // Top edge (inclusive)
	X2 int `json:"x2"` // Right edge (exclusive)
	Y2 int `json:"y2"` // Bottom edge (exclusive)
}

// BlobStatsResult contains per-blob measurements and aggregate area
// statistics for one labeling run.
type BlobStatsResult struct {
	// Count is the number of blobs.
	Count int `json:"count"`

	// TotalForeground is the summed area of all blobs.
	TotalForeground int `json:"total_foreground"`

	// Blobs holds the per-blob measurements in label order.
	Blobs []BlobMeasure `json:"blobs"`

	// MeanArea, StdDevArea and MedianArea summarize the blob area
	// distribution. All zero when there are no blobs.
	MeanArea   float64 `json:"mean_area"`
	StdDevArea float64 `json:"std_dev_area"`
	MedianArea float64 `json:"median_area"`
}

// MeasureBlobs computes per-blob area, centroid and bounding box from the
// label buffer, plus aggregate statistics over the blob area distribution.
//
// The label buffer uses ROI-local coordinates internally; origin translates
// measurements into mask coordinates (pass the clamped ROI origin, or the
// zero point when the ROI covered the whole mask).
func MeasureBlobs(lb *blob.LabelBuffer, blobs []blob.Blob, origin blob.Point) *BlobStatsResult {
	measures := make([]BlobMeasure, len(blobs))
	for i, b := range blobs {
		measures[i] = BlobMeasure{
			Label:     b.Label,
			HoleCount: b.HoleCount,
			Bounds:    BoundsBox{X1: math.MaxInt, Y1: math.MaxInt},
		}
		if n := b.External.Len(); n > 1 {
			measures[i].PerimeterPoints = n - 1
		} else {
			measures[i].PerimeterPoints = n
		}
	}

	for y := 0; y < lb.Height; y++ {
		for x := 0; x < lb.Width; x++ {
			v := lb.At(x, y)
			if v <= 0 {
				continue
			}
			m := &measures[v-1]
			mx, my := origin.X+x, origin.Y+y

			m.Area++
			m.CentroidX += float64(mx)
			m.CentroidY += float64(my)
			if mx < m.Bounds.X1 {
				m.Bounds.X1 = mx
			}
			if my < m.Bounds.Y1 {
				m.Bounds.Y1 = my
			}
			if mx+1 > m.Bounds.X2 {
				m.Bounds.X2 = mx + 1
			}
			if my+1 > m.Bounds.Y2 {
				m.Bounds.Y2 = my + 1
			}
		}
	}

	total := 0
	areas := make([]float64, 0, len(measures))
	for i := range measures {
		m := &measures[i]
		if m.Area > 0 {
			m.CentroidX /= float64(m.Area)
			m.CentroidY /= float64(m.Area)
		} else {
			m.Bounds = BoundsBox{}
		}
		total += m.Area
		areas = append(areas, float64(m.Area))
	}

	result := &BlobStatsResult{
		Count:           len(measures),
		TotalForeground: total,
		Blobs:           measures,
	}

	if len(areas) > 0 {
		sort.Float64s(areas)
		result.MeanArea = stat.Mean(areas, nil)
		result.MedianArea = stat.Quantile(0.5, stat.Empirical, areas, nil)
		if len(areas) > 1 {
			result.StdDevArea = stat.StdDev(areas, nil)
		}
	}

	return result
}
