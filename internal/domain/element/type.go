package element

import (
	"fmt"

	"github.com/danielgtaylor/huma/v2"
)

type ElemType string

const (
	TypeTextNote ElemType = "text_note"
	TypeDrawing  ElemType = "drawing"
)

func (ElemType) Schema() huma.Schema {
	return huma.Schema{
		Type: "string",
		Enum: []any{
			string(TypeTextNote),
			string(TypeDrawing),
		},
		Description: "Kind of canvas element",
		Examples:    []any{TypeTextNote},
	}
}

// Validate implements the huma.Validatable interface.
func (t ElemType) Validate() error {
	switch t {
	case TypeTextNote, TypeDrawing:
		return nil
	}
	return fmt.Errorf("unknown element type: %s", t)
}

// String returns the string representation of the type.
func (t ElemType) String() string {
	return string(t)
}
