package element

import (
	"github.com/google/uuid"

	"inkboard/internal/domain/geometry"
)

// Patch structs use explicit pointer optionality: a nil field was
// absent from the request and leaves the stored value untouched, a
// non-nil field is applied even when it holds a zero value (empty
// content, z_index 0). Truthiness is never used to decide.

type TextNotePatch struct {
	Position        *geometry.Point
	Size            *geometry.Size
	ZIndex          *int
	Content         *string
	FontSize        *float64
	FontColor       *string
	BackgroundColor *string
}

// Empty reports whether no field is present. An empty patch still
// refreshes updated_at.
func (p TextNotePatch) Empty() bool {
	return p.Position == nil && p.Size == nil && p.ZIndex == nil &&
		p.Content == nil && p.FontSize == nil && p.FontColor == nil &&
		p.BackgroundColor == nil
}

type DrawingPatch struct {
	Position *geometry.Point
	Size     *geometry.Size
	ZIndex   *int
	Strokes  *[]Stroke
}

func (p DrawingPatch) Empty() bool {
	return p.Position == nil && p.Size == nil && p.ZIndex == nil && p.Strokes == nil
}

// BulkUpdateItem is one entry of a bulk reposition/reorder batch.
// Only the shared geometry fields can change in bulk.
type BulkUpdateItem struct {
	ID       uuid.UUID       `json:"id"`
	Position *geometry.Point `json:"position,omitempty"`
	ZIndex   *int            `json:"z_index,omitempty"`
}
