package blob

import "encoding/json"

// Point represents a 2D pixel coordinate in mask space.
type Point struct {
	X int `json:"x"` // Horizontal position (0 = leftmost)
	Y int `json:"y"` // Vertical position (0 = topmost)
}

// initialContourCapacity is the point capacity a contour starts with on its
// first append. Growth from there is geometric (doubling).
const initialContourCapacity = 32

// Contour is a growable ordered sequence of pixel coordinates making up one
// boundary polygon. Points are stored in trace visitation order; for a closed
// boundary the starting pixel appears again as the final point.
//
// The zero value is an empty contour ready for use. Capacity grows by
// doubling, starting at 32 points, so Append is amortized O(1). A contour
// never shrinks.
type Contour struct {
	points []Point
}

// Append adds a point to the end of the contour, growing the backing array
// when full.
func (c *Contour) Append(x, y int) {
	if len(c.points) == cap(c.points) {
		newCap := initialContourCapacity
		if cap(c.points) > 0 {
			newCap = cap(c.points) * 2
		}
		grown := make([]Point, len(c.points), newCap)
		copy(grown, c.points)
		c.points = grown
	}
	c.points = append(c.points, Point{X: x, Y: y})
}

// Len returns the number of points in the contour.
func (c *Contour) Len() int {
	return len(c.points)
}

// At returns the i-th point in visitation order.
func (c *Contour) At(i int) Point {
	return c.points[i]
}

// Points returns the contour's backing point slice. The slice is owned by the
// contour and must not be modified.
func (c *Contour) Points() []Point {
	return c.points
}

// MarshalJSON encodes the contour as a JSON array of points. An empty contour
// encodes as [] rather than null.
func (c Contour) MarshalJSON() ([]byte, error) {
	if c.points == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.points)
}

// UnmarshalJSON decodes a JSON array of points into the contour.
func (c *Contour) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &c.points)
}
