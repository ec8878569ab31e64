package geometry

import "errors"

const (
	// MinZoom and MaxZoom bound the zoom factor of any viewport.
	MinZoom = 0.1
	MaxZoom = 3.0

	// WheelSensitivity converts a raw wheel delta into a zoom delta.
	WheelSensitivity = -0.001
)

var ErrInvalidViewport = errors.New("invalid viewport")

// Viewport describes the mapping between canvas space and screen space:
// X/Y is the pan offset in screen pixels, Zoom the scale factor.
// It is client-local state and is never persisted.
type Viewport struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Zoom   float64 `json:"zoom"`
}

func (v Viewport) Validate() error {
	if v.Zoom <= 0 {
		return ErrInvalidViewport
	}
	if v.Width <= 0 || v.Height <= 0 {
		return ErrInvalidViewport
	}
	return nil
}

// Offset returns the pan offset as a point in screen space.
func (v Viewport) Offset() Point {
	return Point{X: v.X, Y: v.Y}
}

// ToCanvas maps a screen-space point into canvas space.
func (v Viewport) ToCanvas(p Point) Point {
	return Point{
		X: (p.X - v.X) / v.Zoom,
		Y: (p.Y - v.Y) / v.Zoom,
	}
}

// ToScreen maps a canvas-space point into screen space. Exact inverse
// of ToCanvas up to floating-point tolerance.
func (v Viewport) ToScreen(p Point) Point {
	return Point{X: p.X * v.Zoom, Y: p.Y * v.Zoom}.Add(v.Offset())
}

// Contains reports whether a canvas-space anchor point lies within the
// viewport rectangle, bounds inclusive. Containment is tested on the
// anchor only, never on the element's bounding box.
func (v Viewport) Contains(p Point) bool {
	return p.X >= v.X && p.X <= v.X+v.Width &&
		p.Y >= v.Y && p.Y <= v.Y+v.Height
}

func ClampZoom(z float64) float64 {
	if z < MinZoom {
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z
}

// ZoomAround returns the viewport zoomed to target (clamped) such that
// the canvas point under the screen anchor stays under the anchor.
func ZoomAround(v Viewport, target float64, anchor Point) Viewport {
	next := ClampZoom(target)
	ratio := next / v.Zoom

	v.X = anchor.X - (anchor.X-v.X)*ratio
	v.Y = anchor.Y - (anchor.Y-v.Y)*ratio
	v.Zoom = next
	return v
}

// ZoomByWheel applies a raw wheel delta scaled by WheelSensitivity.
func ZoomByWheel(v Viewport, wheelDelta float64, anchor Point) Viewport {
	return ZoomAround(v, v.Zoom+wheelDelta*WheelSensitivity, anchor)
}

// PanStart captures the pan anchor: the difference between the pointer
// position and the pan offset at the moment the pan begins.
func PanStart(pointer Point, v Viewport) Point {
	return pointer.Sub(v.Offset())
}

// PanMove sets the offset so it translates 1:1 with pointer movement.
// Zoom is unaffected.
func PanMove(v Viewport, anchor, pointer Point) Viewport {
	offset := pointer.Sub(anchor)
	v.X = offset.X
	v.Y = offset.Y
	return v
}

// GrabOffset captures where inside an element it was grabbed, in canvas
// space, so the grabbed point stays under the cursor at any zoom.
func GrabOffset(pointer Point, v Viewport, elementPos Point) Point {
	return v.ToCanvas(pointer).Sub(elementPos)
}

// DragPosition computes the element position for the current pointer
// given the grab offset captured at drag start.
func DragPosition(pointer Point, v Viewport, grab Point) Point {
	return v.ToCanvas(pointer).Sub(grab)
}
