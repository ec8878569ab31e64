package element

import (
	"context"

	"github.com/google/uuid"

	"inkboard/internal/domain/geometry"
)

// Repository persists elements split across a shared row and a
// type-specific payload row joined by the element id. Every write
// touching both rows is atomic: partial writes are never observable.
type Repository interface {
	// Create inserts the shared row and the payload row together.
	// Storage assigns created_at/updated_at to the passed element.
	Create(ctx context.Context, el *Element) error

	// Get returns ErrNotFound when no shared row exists and
	// ErrDataIntegrity when the payload row is missing.
	Get(ctx context.Context, id uuid.UUID) (*Element, error)

	// List returns elements ordered by ascending z_index, ties broken
	// by insertion order. A non-nil viewport keeps only elements whose
	// anchor position lies inside it, bounds inclusive.
	List(ctx context.Context, vp *geometry.Viewport) ([]Element, error)

	// UpdateTextNote and UpdateDrawing apply partial patches; absent
	// fields keep their stored value, updated_at is refreshed either
	// way. The merged post-update element is returned.
	UpdateTextNote(ctx context.Context, id uuid.UUID, patch TextNotePatch) (*Element, error)
	UpdateDrawing(ctx context.Context, id uuid.UUID, patch DrawingPatch) (*Element, error)

	// Delete removes both rows and returns the pre-delete snapshot.
	Delete(ctx context.Context, id uuid.UUID) (*Element, error)

	// BulkUpdate applies every item inside one transaction and returns
	// the affected elements re-read after all writes. An unknown id
	// aborts the whole batch with ErrDataIntegrity.
	BulkUpdate(ctx context.Context, items []BulkUpdateItem) ([]Element, error)
}
