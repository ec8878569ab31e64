package element

import (
	"context"
	"errors"
	"fmt"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"inkboard/internal/domain/element"
	"inkboard/internal/domain/geometry"
)

type Handler struct {
	service    element.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service element.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.findOp(), h.find)
	huma.Register(api, h.createTextNoteOp(), h.createTextNote)
	huma.Register(api, h.createDrawingOp(), h.createDrawing)
	huma.Register(api, h.updateTextNoteOp(), h.updateTextNote)
	huma.Register(api, h.updateDrawingOp(), h.updateDrawing)
	huma.Register(api, h.deleteOp(), h.delete)
	huma.Register(api, h.bulkUpdateOp(), h.bulkUpdate)
}

func (h *Handler) list(ctx context.Context, input *listInput) (*listOutput, error) {
	vp, err := viewportFromQuery(input)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity(err.Error())
	}

	result, err := h.service.List(ctx, vp)
	if err != nil {
		return nil, mapError(err)
	}

	return &listOutput{Body: result}, nil
}

func (h *Handler) find(ctx context.Context, input *findInput) (*elementOutput, error) {
	id, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity(fmt.Sprintf("invalid element id: %v", err))
	}

	el, err := h.service.Get(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}

	return &elementOutput{
		Body: elementResponse{Status: "Ok", Element: el},
	}, nil
}

func (h *Handler) createTextNote(ctx context.Context, input *createTextNoteInput) (*elementOutput, error) {
	el, err := h.service.CreateTextNote(ctx, element.CreateTextNoteInput{
		Position:        input.Body.Position,
		Size:            input.Body.Size,
		Content:         input.Body.Content,
		FontSize:        input.Body.FontSize,
		FontColor:       input.Body.FontColor,
		BackgroundColor: input.Body.BackgroundColor,
		ZIndex:          input.Body.ZIndex,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return &elementOutput{
		Body: elementResponse{Status: "Ok", Element: el},
	}, nil
}

func (h *Handler) createDrawing(ctx context.Context, input *createDrawingInput) (*elementOutput, error) {
	el, err := h.service.CreateDrawing(ctx, element.CreateDrawingInput{
		Position: input.Body.Position,
		Size:     input.Body.Size,
		Strokes:  input.Body.Strokes,
		ZIndex:   input.Body.ZIndex,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return &elementOutput{
		Body: elementResponse{Status: "Ok", Element: el},
	}, nil
}

func (h *Handler) updateTextNote(ctx context.Context, input *updateTextNoteInput) (*elementOutput, error) {
	id, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity(fmt.Sprintf("invalid element id: %v", err))
	}

	el, err := h.service.UpdateTextNote(ctx, id, element.TextNotePatch{
		Position:        input.Body.Position,
		Size:            input.Body.Size,
		ZIndex:          input.Body.ZIndex,
		Content:         input.Body.Content,
		FontSize:        input.Body.FontSize,
		FontColor:       input.Body.FontColor,
		BackgroundColor: input.Body.BackgroundColor,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return &elementOutput{
		Body: elementResponse{Status: "Ok", Element: el},
	}, nil
}

func (h *Handler) updateDrawing(ctx context.Context, input *updateDrawingInput) (*elementOutput, error) {
	id, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity(fmt.Sprintf("invalid element id: %v", err))
	}

	el, err := h.service.UpdateDrawing(ctx, id, element.DrawingPatch{
		Position: input.Body.Position,
		Size:     input.Body.Size,
		ZIndex:   input.Body.ZIndex,
		Strokes:  input.Body.Strokes,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return &elementOutput{
		Body: elementResponse{Status: "Ok", Element: el},
	}, nil
}

func (h *Handler) delete(ctx context.Context, input *findInput) (*elementOutput, error) {
	id, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity(fmt.Sprintf("invalid element id: %v", err))
	}

	el, err := h.service.Delete(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}

	// The response carries the pre-delete snapshot.
	return &elementOutput{
		Body: elementResponse{Status: "Ok", Element: el},
	}, nil
}

func (h *Handler) bulkUpdate(ctx context.Context, input *bulkUpdateInput) (*bulkUpdateOutput, error) {
	elements, err := h.service.BulkUpdate(ctx, input.Body.Updates)
	if err != nil {
		return nil, mapError(err)
	}

	return &bulkUpdateOutput{
		Body: bulkUpdateResponse{Status: "Ok", Elements: elements},
	}, nil
}

// viewportFromQuery assembles the optional viewport filter. Either all
// five params are present or none of them.
func viewportFromQuery(input *listInput) (*geometry.Viewport, error) {
	params := []*float64{input.X, input.Y, input.Width, input.Height, input.Zoom}
	present := 0
	for _, p := range params {
		if p != nil {
			present++
		}
	}
	if present == 0 {
		return nil, nil
	}
	if present != len(params) {
		return nil, errors.New("viewport filter requires x, y, width, height and zoom together")
	}
	return &geometry.Viewport{
		X:      *input.X,
		Y:      *input.Y,
		Width:  *input.Width,
		Height: *input.Height,
		Zoom:   *input.Zoom,
	}, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, element.ErrNotFound):
		return huma.Error404NotFound("canvas element not found")
	case errors.Is(err, element.ErrInvalidInput):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, element.ErrDataIntegrity):
		return huma.Error409Conflict(err.Error())
	default:
		return huma.Error500InternalServerError("storage failure", err)
	}
}
