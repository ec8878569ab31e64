package health

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// StoragePinger reports whether the board storage is reachable.
type StoragePinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	storage    StoragePinger
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(storage StoragePinger, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		storage:    storage,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.healthCheckOp(), h.healthCheck)
}

func (h *Handler) healthCheck(ctx context.Context, _ *Input) (*Output, error) {
	h.log.Debug("health check request received")

	storageStatus := "ok"
	if err := h.storage.Ping(ctx); err != nil {
		h.log.Warn("health check: storage unreachable", "error", err)
		storageStatus = "unavailable"
	}

	return &Output{
		Body: Response{
			Status:  "OK",
			Storage: storageStatus,
		},
	}, nil
}
