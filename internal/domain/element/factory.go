package element

import (
	"github.com/google/uuid"

	"inkboard/internal/domain/geometry"
)

// CreateTextNoteInput carries everything needed to create a text note.
// Optional style fields fall back to the package defaults when nil.
type CreateTextNoteInput struct {
	Position        geometry.Point
	Size            geometry.Size
	Content         string
	FontSize        *float64
	FontColor       *string
	BackgroundColor *string
	ZIndex          *int
}

func (in CreateTextNoteInput) Validate() error {
	if err := validateSize(in.Size); err != nil {
		return err
	}
	if in.FontSize != nil {
		if err := validateFontSize(*in.FontSize); err != nil {
			return err
		}
	}
	if in.FontColor != nil {
		if err := validateColor("font_color", *in.FontColor); err != nil {
			return err
		}
	}
	if in.BackgroundColor != nil {
		if err := validateColor("background_color", *in.BackgroundColor); err != nil {
			return err
		}
	}
	return nil
}

type CreateDrawingInput struct {
	Position geometry.Point
	Size     geometry.Size
	Strokes  []Stroke
	ZIndex   *int
}

func (in CreateDrawingInput) Validate() error {
	if err := validateSize(in.Size); err != nil {
		return err
	}
	return validateStrokes(in.Strokes)
}

// Factory builds new elements with generated ids and defaults applied.
// Timestamps are assigned by storage on insert.
type Factory struct {
	newID func() uuid.UUID
}

func NewFactory() *Factory {
	return &Factory{newID: uuid.New}
}

func (f *Factory) TextNote(in CreateTextNoteInput) *Element {
	note := &TextNote{
		Content:         in.Content,
		FontSize:        DefaultFontSize,
		FontColor:       DefaultFontColor,
		BackgroundColor: DefaultBackgroundColor,
	}
	if in.FontSize != nil {
		note.FontSize = *in.FontSize
	}
	if in.FontColor != nil {
		note.FontColor = *in.FontColor
	}
	if in.BackgroundColor != nil {
		note.BackgroundColor = *in.BackgroundColor
	}

	return &Element{
		ID:       f.newID(),
		Type:     TypeTextNote,
		Position: in.Position,
		Size:     in.Size,
		ZIndex:   zIndexOrDefault(in.ZIndex),
		TextNote: note,
	}
}

func (f *Factory) Drawing(in CreateDrawingInput) *Element {
	return &Element{
		ID:       f.newID(),
		Type:     TypeDrawing,
		Position: in.Position,
		Size:     in.Size,
		ZIndex:   zIndexOrDefault(in.ZIndex),
		Drawing:  &Drawing{Strokes: applyStrokeDefaults(in.Strokes)},
	}
}

func zIndexOrDefault(z *int) int {
	if z != nil {
		return *z
	}
	return 0
}

func applyStrokeDefaults(strokes []Stroke) []Stroke {
	out := make([]Stroke, len(strokes))
	for i, s := range strokes {
		if s.Color == "" {
			s.Color = DefaultStrokeColor
		}
		if s.Width == 0 {
			s.Width = DefaultStrokeWidth
		}
		out[i] = s
	}
	return out
}
