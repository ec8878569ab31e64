package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewport_RoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		viewport Viewport
		point    Point
	}{
		{
			name:     "identity viewport",
			viewport: Viewport{X: 0, Y: 0, Width: 800, Height: 600, Zoom: 1},
			point:    Point{X: 100, Y: 200},
		},
		{
			name:     "panned and zoomed in",
			viewport: Viewport{X: -320.5, Y: 144.25, Width: 1920, Height: 1080, Zoom: 2.5},
			point:    Point{X: 123.456789, Y: -987.654321},
		},
		{
			name:     "zoomed out to minimum",
			viewport: Viewport{X: 40, Y: -75, Width: 640, Height: 480, Zoom: 0.1},
			point:    Point{X: -1, Y: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			canvas := tt.viewport.ToCanvas(tt.point)
			back := tt.viewport.ToScreen(canvas)

			assert.InDelta(t, tt.point.X, back.X, 1e-9)
			assert.InDelta(t, tt.point.Y, back.Y, 1e-9)
		})
	}
}

func TestViewport_Validate(t *testing.T) {
	tests := []struct {
		name     string
		viewport Viewport
		wantErr  bool
	}{
		{name: "valid", viewport: Viewport{Width: 800, Height: 600, Zoom: 1}, wantErr: false},
		{name: "zero zoom", viewport: Viewport{Width: 800, Height: 600, Zoom: 0}, wantErr: true},
		{name: "negative zoom", viewport: Viewport{Width: 800, Height: 600, Zoom: -1}, wantErr: true},
		{name: "zero width", viewport: Viewport{Width: 0, Height: 600, Zoom: 1}, wantErr: true},
		{name: "zero height", viewport: Viewport{Width: 800, Height: 0, Zoom: 1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.viewport.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidViewport)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestViewport_Contains(t *testing.T) {
	vp := Viewport{X: 0, Y: 0, Width: 100, Height: 50, Zoom: 1}

	tests := []struct {
		name  string
		point Point
		want  bool
	}{
		{name: "inside", point: Point{X: 50, Y: 25}, want: true},
		{name: "on left edge", point: Point{X: 0, Y: 25}, want: true},
		{name: "on bottom-right corner", point: Point{X: 100, Y: 50}, want: true},
		{name: "just outside right", point: Point{X: 100.001, Y: 25}, want: false},
		{name: "above", point: Point{X: 50, Y: -0.001}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, vp.Contains(tt.point))
		})
	}
}

func TestZoomAround_AnchorInvariant(t *testing.T) {
	tests := []struct {
		name   string
		before Viewport
		target float64
		anchor Point
	}{
		{
			name:   "zoom in around center",
			before: Viewport{X: 0, Y: 0, Width: 800, Height: 600, Zoom: 1},
			target: 2,
			anchor: Point{X: 400, Y: 300},
		},
		{
			name:   "zoom out around corner",
			before: Viewport{X: -150, Y: 80, Width: 800, Height: 600, Zoom: 1.5},
			target: 0.5,
			anchor: Point{X: 10, Y: 590},
		},
		{
			name:   "target clamped to max",
			before: Viewport{X: 33, Y: -44, Width: 800, Height: 600, Zoom: 2.9},
			target: 10,
			anchor: Point{X: 123, Y: 456},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			after := ZoomAround(tt.before, tt.target, tt.anchor)

			// The canvas point under the anchor must not move.
			beforeCanvas := tt.before.ToCanvas(tt.anchor)
			afterCanvas := after.ToCanvas(tt.anchor)
			assert.InDelta(t, beforeCanvas.X, afterCanvas.X, 1e-9)
			assert.InDelta(t, beforeCanvas.Y, afterCanvas.Y, 1e-9)

			assert.GreaterOrEqual(t, after.Zoom, MinZoom)
			assert.LessOrEqual(t, after.Zoom, MaxZoom)
		})
	}
}

func TestZoomByWheel(t *testing.T) {
	vp := Viewport{X: 0, Y: 0, Width: 800, Height: 600, Zoom: 1}

	// Negative wheel delta zooms in at -0.001 sensitivity.
	in := ZoomByWheel(vp, -500, Point{X: 400, Y: 300})
	assert.InDelta(t, 1.5, in.Zoom, 1e-9)

	out := ZoomByWheel(vp, 500, Point{X: 400, Y: 300})
	assert.InDelta(t, 0.5, out.Zoom, 1e-9)

	// A huge delta is clamped instead of flipping the zoom sign.
	clamped := ZoomByWheel(vp, 100000, Point{})
	assert.Equal(t, MinZoom, clamped.Zoom)
}

func TestPan(t *testing.T) {
	vp := Viewport{X: 10, Y: 20, Width: 800, Height: 600, Zoom: 2}

	anchor := PanStart(Point{X: 100, Y: 100}, vp)
	require.Equal(t, Point{X: 90, Y: 80}, anchor)

	// Offset translates 1:1 with pointer movement, zoom untouched.
	moved := PanMove(vp, anchor, Point{X: 130, Y: 90})
	assert.Equal(t, 40.0, moved.X)
	assert.Equal(t, 10.0, moved.Y)
	assert.Equal(t, vp.Zoom, moved.Zoom)

	// Returning the pointer to its start position restores the offset.
	restored := PanMove(vp, anchor, Point{X: 100, Y: 100})
	assert.Equal(t, vp.X, restored.X)
	assert.Equal(t, vp.Y, restored.Y)
}

func TestDrag_KeepsGrabPointUnderCursor(t *testing.T) {
	tests := []struct {
		name     string
		viewport Viewport
	}{
		{name: "no zoom", viewport: Viewport{X: 0, Y: 0, Width: 800, Height: 600, Zoom: 1}},
		{name: "zoomed in and panned", viewport: Viewport{X: -40, Y: 260, Width: 800, Height: 600, Zoom: 2.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			elementPos := Point{X: 100, Y: 200}
			pointerDown := tt.viewport.ToScreen(Point{X: 110, Y: 215})

			grab := GrabOffset(pointerDown, tt.viewport, elementPos)

			// Without moving the pointer the element must not move.
			samePos := DragPosition(pointerDown, tt.viewport, grab)
			assert.InDelta(t, elementPos.X, samePos.X, 1e-9)
			assert.InDelta(t, elementPos.Y, samePos.Y, 1e-9)

			// Moving the pointer moves the element so the grabbed canvas
			// point stays under the cursor.
			pointerMove := Point{X: pointerDown.X + 50, Y: pointerDown.Y - 30}
			newPos := DragPosition(pointerMove, tt.viewport, grab)
			underCursor := tt.viewport.ToCanvas(pointerMove)
			assert.InDelta(t, underCursor.X-grab.X, newPos.X, 1e-9)
			assert.InDelta(t, underCursor.Y-grab.Y, newPos.Y, 1e-9)
		})
	}
}
