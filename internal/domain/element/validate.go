package element

import (
	"fmt"
	"regexp"

	"inkboard/internal/domain/geometry"
)

var hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

func validateSize(s geometry.Size) error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: size must be positive, got %gx%g", ErrInvalidInput, s.Width, s.Height)
	}
	return nil
}

func validateColor(field, c string) error {
	if !hexColorRegex.MatchString(c) {
		return fmt.Errorf("%w: %s must be a #rrggbb color, got %q", ErrInvalidInput, field, c)
	}
	return nil
}

func validateFontSize(v float64) error {
	if v <= 0 {
		return fmt.Errorf("%w: font_size must be positive, got %g", ErrInvalidInput, v)
	}
	return nil
}

// Zero width and empty color are allowed on input: they mean "use the
// default" and are filled in before the stroke is persisted.
func validateStroke(s Stroke) error {
	if s.Width < 0 {
		return fmt.Errorf("%w: stroke width must be positive, got %g", ErrInvalidInput, s.Width)
	}
	if s.Color != "" {
		if err := validateColor("stroke color", s.Color); err != nil {
			return err
		}
	}
	for i, p := range s.Points {
		if p.Pressure != nil && (*p.Pressure < 0 || *p.Pressure > 1) {
			return fmt.Errorf("%w: point %d pressure must be in [0,1], got %g", ErrInvalidInput, i, *p.Pressure)
		}
	}
	return nil
}

func validateStrokes(strokes []Stroke) error {
	for i, s := range strokes {
		if err := validateStroke(s); err != nil {
			return fmt.Errorf("stroke %d: %w", i, err)
		}
	}
	return nil
}

func (p TextNotePatch) Validate() error {
	if p.Size != nil {
		if err := validateSize(*p.Size); err != nil {
			return err
		}
	}
	if p.FontSize != nil {
		if err := validateFontSize(*p.FontSize); err != nil {
			return err
		}
	}
	if p.FontColor != nil {
		if err := validateColor("font_color", *p.FontColor); err != nil {
			return err
		}
	}
	if p.BackgroundColor != nil {
		if err := validateColor("background_color", *p.BackgroundColor); err != nil {
			return err
		}
	}
	return nil
}

func (p DrawingPatch) Validate() error {
	if p.Size != nil {
		if err := validateSize(*p.Size); err != nil {
			return err
		}
	}
	if p.Strokes != nil {
		if err := validateStrokes(*p.Strokes); err != nil {
			return err
		}
	}
	return nil
}
