package geometry

// strokePadding is added around a stroke's bounding box on all sides,
// on top of the stroke width.
const strokePadding = 5

// StrokeBounds computes the padded axis-aligned bounding box of a set
// of canvas-space stroke points. The origin is the top-left corner of
// the padded box; points re-expressed relative to it become
// element-local coordinates. A stroke with fewer than two points has no
// usable bounds and reports ok=false.
func StrokeBounds(points []Point, strokeWidth float64) (origin Point, size Size, ok bool) {
	if len(points) < 2 {
		return Point{}, Size{}, false
	}

	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	padding := strokeWidth + strokePadding
	origin = Point{X: minX - padding, Y: minY - padding}
	size = Size{
		Width:  maxX - minX + 2*padding,
		Height: maxY - minY + 2*padding,
	}
	return origin, size, true
}
