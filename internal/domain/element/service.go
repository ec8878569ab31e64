package element

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"inkboard/internal/domain/geometry"
)

// Cache holds a snapshot of the full, unfiltered element list. It is a
// read accelerator only: every write path invalidates it.
type Cache interface {
	GetElements(ctx context.Context) ([]Element, bool, error)
	SetElements(ctx context.Context, elements []Element) error
	Invalidate(ctx context.Context) error
}

type ListResult struct {
	Elements   []Element `json:"elements"`
	TotalCount int       `json:"total_count"`
}

type Servicer interface {
	CreateTextNote(ctx context.Context, in CreateTextNoteInput) (*Element, error)
	CreateDrawing(ctx context.Context, in CreateDrawingInput) (*Element, error)
	Get(ctx context.Context, id uuid.UUID) (*Element, error)
	List(ctx context.Context, vp *geometry.Viewport) (ListResult, error)
	UpdateTextNote(ctx context.Context, id uuid.UUID, patch TextNotePatch) (*Element, error)
	UpdateDrawing(ctx context.Context, id uuid.UUID, patch DrawingPatch) (*Element, error)
	Delete(ctx context.Context, id uuid.UUID) (*Element, error)
	BulkUpdate(ctx context.Context, items []BulkUpdateItem) ([]Element, error)
}

// Service enforces field constraints and the update/delete protocol on
// top of the repository.
type Service struct {
	repo    Repository
	factory *Factory
	cache   Cache
	log     *slog.Logger
}

// NewService creates a new element service. cache may be nil.
func NewService(repo Repository, factory *Factory, cache Cache, log *slog.Logger) Servicer {
	return &Service{
		repo:    repo,
		factory: factory,
		cache:   cache,
		log:     log.With("component", "element_service"),
	}
}

func (s *Service) CreateTextNote(ctx context.Context, in CreateTextNoteInput) (*Element, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	el := s.factory.TextNote(in)
	if err := s.repo.Create(ctx, el); err != nil {
		s.log.Error("failed to create text note", "error", err)
		return nil, err
	}
	s.invalidateCache(ctx)

	s.log.Debug("text note created", "id", el.ID, "z_index", el.ZIndex)
	return el, nil
}

func (s *Service) CreateDrawing(ctx context.Context, in CreateDrawingInput) (*Element, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	el := s.factory.Drawing(in)
	if err := s.repo.Create(ctx, el); err != nil {
		s.log.Error("failed to create drawing", "error", err)
		return nil, err
	}
	s.invalidateCache(ctx)

	s.log.Debug("drawing created", "id", el.ID, "strokes", len(el.Drawing.Strokes))
	return el, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Element, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, vp *geometry.Viewport) (ListResult, error) {
	if vp != nil {
		if err := vp.Validate(); err != nil {
			return ListResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	if vp == nil && s.cache != nil {
		if cached, ok, err := s.cache.GetElements(ctx); err != nil {
			s.log.Warn("element cache read failed", "error", err)
		} else if ok {
			return ListResult{Elements: cached, TotalCount: len(cached)}, nil
		}
	}

	elements, err := s.repo.List(ctx, vp)
	if err != nil {
		s.log.Error("failed to list elements", "error", err)
		return ListResult{}, err
	}

	if vp == nil && s.cache != nil {
		if err := s.cache.SetElements(ctx, elements); err != nil {
			s.log.Warn("element cache write failed", "error", err)
		}
	}

	return ListResult{Elements: elements, TotalCount: len(elements)}, nil
}

func (s *Service) UpdateTextNote(ctx context.Context, id uuid.UUID, patch TextNotePatch) (*Element, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	el, err := s.repo.UpdateTextNote(ctx, id, patch)
	if err != nil {
		s.log.Error("failed to update text note", "id", id, "error", err)
		return nil, err
	}
	s.invalidateCache(ctx)

	return el, nil
}

func (s *Service) UpdateDrawing(ctx context.Context, id uuid.UUID, patch DrawingPatch) (*Element, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if patch.Strokes != nil {
		defaulted := applyStrokeDefaults(*patch.Strokes)
		patch.Strokes = &defaulted
	}

	el, err := s.repo.UpdateDrawing(ctx, id, patch)
	if err != nil {
		s.log.Error("failed to update drawing", "id", id, "error", err)
		return nil, err
	}
	s.invalidateCache(ctx)

	return el, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) (*Element, error) {
	el, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.log.Error("failed to delete element", "id", id, "error", err)
		return nil, err
	}
	s.invalidateCache(ctx)

	s.log.Debug("element deleted", "id", id, "type", el.Type)
	return el, nil
}

func (s *Service) BulkUpdate(ctx context.Context, items []BulkUpdateItem) ([]Element, error) {
	if len(items) == 0 {
		return []Element{}, nil
	}

	elements, err := s.repo.BulkUpdate(ctx, items)
	if err != nil {
		s.log.Error("failed to bulk update elements", "count", len(items), "error", err)
		return nil, err
	}
	s.invalidateCache(ctx)

	s.log.Debug("bulk update applied", "count", len(elements))
	return elements, nil
}

func (s *Service) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("element cache invalidation failed", "error", err)
	}
}
