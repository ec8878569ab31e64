package geometry

// Point is a position in either canvas or screen space. Which space a
// value lives in is determined by how it was produced, not by the type.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}
