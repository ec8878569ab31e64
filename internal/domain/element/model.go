package element

import (
	"time"

	"github.com/google/uuid"

	"inkboard/internal/domain/geometry"
)

// Defaults applied when create input omits the optional style fields.
const (
	DefaultFontSize        = 16.0
	DefaultFontColor       = "#000000"
	DefaultBackgroundColor = "#ffff88"
	DefaultStrokeColor     = "#000000"
	DefaultStrokeWidth     = 2.0
)

// Element is a canvas element: the shared geometry/lifecycle fields
// plus exactly one type-specific payload selected by Type.
type Element struct {
	ID        uuid.UUID      `json:"id"`
	Type      ElemType       `json:"type"`
	Position  geometry.Point `json:"position"`
	Size      geometry.Size  `json:"size"`
	ZIndex    int            `json:"z_index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`

	TextNote *TextNote `json:"text_note,omitempty"`
	Drawing  *Drawing  `json:"drawing,omitempty"`
}

type TextNote struct {
	Content         string  `json:"content"`
	FontSize        float64 `json:"font_size"`
	FontColor       string  `json:"font_color"`
	BackgroundColor string  `json:"background_color"`
}

type Drawing struct {
	Strokes []Stroke `json:"strokes"`
}

type Stroke struct {
	Points []StrokePoint `json:"points"`
	Color  string        `json:"color"`
	Width  float64       `json:"width"`
}

type StrokePoint struct {
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Pressure *float64 `json:"pressure,omitempty"`
}

// Payload reports whether the element carries the payload matching its
// declared type.
func (e *Element) Payload() bool {
	switch e.Type {
	case TypeTextNote:
		return e.TextNote != nil
	case TypeDrawing:
		return e.Drawing != nil
	}
	return false
}

// NormalizeStroke turns canvas-space stroke points into an
// element-local stroke: position is the padded bounding-box top-left,
// size the padded box dimensions, and every point is re-expressed
// relative to position. Strokes with fewer than two points are
// discarded (ok=false, no element should be created).
func NormalizeStroke(points []StrokePoint, color string, width float64) (pos geometry.Point, size geometry.Size, stroke Stroke, ok bool) {
	if color == "" {
		color = DefaultStrokeColor
	}
	if width <= 0 {
		width = DefaultStrokeWidth
	}

	raw := make([]geometry.Point, len(points))
	for i, p := range points {
		raw[i] = geometry.Point{X: p.X, Y: p.Y}
	}

	pos, size, ok = geometry.StrokeBounds(raw, width)
	if !ok {
		return geometry.Point{}, geometry.Size{}, Stroke{}, false
	}

	local := make([]StrokePoint, len(points))
	for i, p := range points {
		local[i] = StrokePoint{X: p.X - pos.X, Y: p.Y - pos.Y, Pressure: p.Pressure}
	}

	return pos, size, Stroke{Points: local, Color: color, Width: width}, true
}
