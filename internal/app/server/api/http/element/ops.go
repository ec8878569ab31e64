package element

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "elements-list",
		Method:      http.MethodGet,
		Path:        "/api/v1/elements",
		Summary:     "List canvas elements",
		Description: "Returns elements ordered by z-index. With viewport query params only elements whose anchor position lies inside the viewport are returned.",
		Tags:        []string{"elements"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) findOp() huma.Operation {
	return huma.Operation{
		OperationID: "elements-find",
		Method:      http.MethodGet,
		Path:        "/api/v1/elements/{id}",
		Summary:     "Get a canvas element",
		Tags:        []string{"elements"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createTextNoteOp() huma.Operation {
	return huma.Operation{
		OperationID: "elements-create-text-note",
		Method:      http.MethodPost,
		Path:        "/api/v1/elements/text-notes",
		Summary:     "Create a text note",
		Tags:        []string{"elements"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createDrawingOp() huma.Operation {
	return huma.Operation{
		OperationID: "elements-create-drawing",
		Method:      http.MethodPost,
		Path:        "/api/v1/elements/drawings",
		Summary:     "Create a drawing",
		Tags:        []string{"elements"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateTextNoteOp() huma.Operation {
	return huma.Operation{
		OperationID: "elements-update-text-note",
		Method:      http.MethodPatch,
		Path:        "/api/v1/elements/text-notes/{id}",
		Summary:     "Partially update a text note",
		Tags:        []string{"elements"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateDrawingOp() huma.Operation {
	return huma.Operation{
		OperationID: "elements-update-drawing",
		Method:      http.MethodPatch,
		Path:        "/api/v1/elements/drawings/{id}",
		Summary:     "Partially update a drawing",
		Tags:        []string{"elements"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "elements-delete",
		Method:      http.MethodDelete,
		Path:        "/api/v1/elements/{id}",
		Summary:     "Delete a canvas element",
		Description: "Removes the element and returns its last state before removal.",
		Tags:        []string{"elements"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) bulkUpdateOp() huma.Operation {
	return huma.Operation{
		OperationID: "elements-bulk-update",
		Method:      http.MethodPost,
		Path:        "/api/v1/elements/bulk-update",
		Summary:     "Bulk reposition and reorder elements",
		Description: "Applies every update inside one transaction; an unknown id aborts the whole batch.",
		Tags:        []string{"elements"},
		Middlewares: h.middleware,
	}
}
