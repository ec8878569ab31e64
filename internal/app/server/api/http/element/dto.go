package element

import (
	"inkboard/internal/domain/element"
	"inkboard/internal/domain/geometry"
)

type listInput struct {
	// Viewport query params: either all five are present or none.
	X      *float64 `query:"x" doc:"Viewport offset x"`
	Y      *float64 `query:"y" doc:"Viewport offset y"`
	Width  *float64 `query:"width" doc:"Viewport width"`
	Height *float64 `query:"height" doc:"Viewport height"`
	Zoom   *float64 `query:"zoom" doc:"Viewport zoom factor"`
}

type listOutput struct {
	Body element.ListResult
}

type findInput struct {
	ID string `path:"id" format:"uuid" doc:"Element id"`
}

type elementOutput struct {
	Body elementResponse
}

type elementResponse struct {
	Status  string           `json:"status"`
	Element *element.Element `json:"element,omitempty"`
	Error   string           `json:"error,omitempty"`
}

type createTextNoteInput struct {
	Body createTextNoteRequest
}

type createTextNoteRequest struct {
	Position        geometry.Point `json:"position"`
	Size            geometry.Size  `json:"size"`
	Content         string         `json:"content,omitempty" doc:"Note text, may be empty"`
	FontSize        *float64       `json:"font_size,omitempty" doc:"Defaults to 16"`
	FontColor       *string        `json:"font_color,omitempty" doc:"Defaults to #000000"`
	BackgroundColor *string        `json:"background_color,omitempty" doc:"Defaults to #ffff88"`
	ZIndex          *int           `json:"z_index,omitempty" doc:"Defaults to 0"`
}

type createDrawingInput struct {
	Body createDrawingRequest
}

type createDrawingRequest struct {
	Position geometry.Point   `json:"position"`
	Size     geometry.Size    `json:"size"`
	Strokes  []element.Stroke `json:"strokes"`
	ZIndex   *int             `json:"z_index,omitempty" doc:"Defaults to 0"`
}

type updateTextNoteInput struct {
	ID   string `path:"id" format:"uuid" doc:"Element id"`
	Body updateTextNoteRequest
}

// Absent fields leave the stored value untouched; present fields are
// applied even when zero-valued.
type updateTextNoteRequest struct {
	Position        *geometry.Point `json:"position,omitempty"`
	Size            *geometry.Size  `json:"size,omitempty"`
	ZIndex          *int            `json:"z_index,omitempty"`
	Content         *string         `json:"content,omitempty"`
	FontSize        *float64        `json:"font_size,omitempty"`
	FontColor       *string         `json:"font_color,omitempty"`
	BackgroundColor *string         `json:"background_color,omitempty"`
}

type updateDrawingInput struct {
	ID   string `path:"id" format:"uuid" doc:"Element id"`
	Body updateDrawingRequest
}

type updateDrawingRequest struct {
	Position *geometry.Point   `json:"position,omitempty"`
	Size     *geometry.Size    `json:"size,omitempty"`
	ZIndex   *int              `json:"z_index,omitempty"`
	Strokes  *[]element.Stroke `json:"strokes,omitempty"`
}

type bulkUpdateInput struct {
	Body bulkUpdateRequest
}

type bulkUpdateRequest struct {
	Updates []element.BulkUpdateItem `json:"updates"`
}

type bulkUpdateOutput struct {
	Body bulkUpdateResponse
}

type bulkUpdateResponse struct {
	Status   string            `json:"status"`
	Elements []element.Element `json:"elements"`
	Error    string            `json:"error,omitempty"`
}
