package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"inkboard/internal/domain/element"
	"inkboard/internal/domain/geometry"
)

// ElementRepository keeps the element state split across the shared
// canvas_elements table and the text_notes/drawings payload tables.
// Payload rows share the element id and are removed by ON DELETE
// CASCADE when the shared row goes away.
type ElementRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewElementRepository(storage *Storage, log *slog.Logger) *ElementRepository {
	return &ElementRepository{
		pool: storage.Pool(),
		log:  log.With("component", "element_repository"),
	}
}

const sharedColumns = `id, type, position_x, position_y, width, height, z_index, created_at, updated_at`

func (r *ElementRepository) Create(ctx context.Context, el *element.Element) error {
	if !el.Payload() {
		return fmt.Errorf("%w: element %s declares %s but carries no payload", element.ErrDataIntegrity, el.ID, el.Type)
	}

	err := runInTx(ctx, r.pool, func(tx pgx.Tx) error {
		const insertShared = `
			INSERT INTO canvas_elements (id, type, position_x, position_y, width, height, z_index)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING created_at, updated_at`

		err := tx.QueryRow(ctx, insertShared,
			el.ID, el.Type, el.Position.X, el.Position.Y,
			el.Size.Width, el.Size.Height, el.ZIndex,
		).Scan(&el.CreatedAt, &el.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert shared row: %w", err)
		}

		switch el.Type {
		case element.TypeTextNote:
			const insertNote = `
				INSERT INTO text_notes (element_id, content, font_size, font_color, background_color)
				VALUES ($1, $2, $3, $4, $5)`
			_, err = tx.Exec(ctx, insertNote,
				el.ID, el.TextNote.Content, el.TextNote.FontSize,
				el.TextNote.FontColor, el.TextNote.BackgroundColor)
		case element.TypeDrawing:
			strokes, merr := json.Marshal(el.Drawing.Strokes)
			if merr != nil {
				return fmt.Errorf("marshal strokes: %w", merr)
			}
			const insertDrawing = `INSERT INTO drawings (element_id, strokes) VALUES ($1, $2)`
			_, err = tx.Exec(ctx, insertDrawing, el.ID, strokes)
		}
		if err != nil {
			return fmt.Errorf("insert payload row: %w", err)
		}
		return nil
	})
	if err != nil {
		r.log.Error("failed to create element", "id", el.ID, "type", el.Type, "error", err)
		return fmt.Errorf("create element: %w", err)
	}

	return nil
}

func (r *ElementRepository) Get(ctx context.Context, id uuid.UUID) (*element.Element, error) {
	el, err := getElement(ctx, r.pool, id)
	if err != nil {
		if !errors.Is(err, element.ErrNotFound) {
			r.log.Error("failed to get element", "id", id, "error", err)
		}
		return nil, err
	}
	return el, nil
}

// getElement fetches the shared row, branches on type and inner-joins
// the matching payload. A missing payload row is a data-integrity
// error, distinct from not found.
func getElement(ctx context.Context, q querier, id uuid.UUID) (*element.Element, error) {
	const query = `SELECT ` + sharedColumns + ` FROM canvas_elements WHERE id = $1`

	var el element.Element
	err := q.QueryRow(ctx, query, id).Scan(
		&el.ID, &el.Type, &el.Position.X, &el.Position.Y,
		&el.Size.Width, &el.Size.Height, &el.ZIndex,
		&el.CreatedAt, &el.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, element.ErrNotFound
		}
		return nil, fmt.Errorf("get element: %w", err)
	}

	switch el.Type {
	case element.TypeTextNote:
		const payload = `
			SELECT content, font_size, font_color, background_color
			FROM text_notes WHERE element_id = $1`
		var note element.TextNote
		err = q.QueryRow(ctx, payload, id).Scan(
			&note.Content, &note.FontSize, &note.FontColor, &note.BackgroundColor)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("%w: text note payload missing for element %s", element.ErrDataIntegrity, id)
			}
			return nil, fmt.Errorf("get text note payload: %w", err)
		}
		el.TextNote = &note
	case element.TypeDrawing:
		const payload = `SELECT strokes FROM drawings WHERE element_id = $1`
		var raw []byte
		err = q.QueryRow(ctx, payload, id).Scan(&raw)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("%w: drawing payload missing for element %s", element.ErrDataIntegrity, id)
			}
			return nil, fmt.Errorf("get drawing payload: %w", err)
		}
		drawing := element.Drawing{Strokes: []element.Stroke{}}
		if err := json.Unmarshal(raw, &drawing.Strokes); err != nil {
			return nil, fmt.Errorf("%w: corrupt strokes for element %s: %v", element.ErrDataIntegrity, id, err)
		}
		el.Drawing = &drawing
	default:
		return nil, fmt.Errorf("%w: unknown element type %q for element %s", element.ErrDataIntegrity, el.Type, id)
	}

	return &el, nil
}

func (r *ElementRepository) List(ctx context.Context, vp *geometry.Viewport) ([]element.Element, error) {
	query := `
		SELECT e.id, e.type, e.position_x, e.position_y, e.width, e.height,
		       e.z_index, e.created_at, e.updated_at,
		       t.content, t.font_size, t.font_color, t.background_color,
		       d.strokes
		FROM canvas_elements e
		LEFT JOIN text_notes t ON t.element_id = e.id
		LEFT JOIN drawings d ON d.element_id = e.id`

	args := []any{}
	if vp != nil {
		// Anchor-point containment, bounds inclusive. The element's
		// body is deliberately not considered.
		query += `
		WHERE e.position_x BETWEEN $1 AND $2
		  AND e.position_y BETWEEN $3 AND $4`
		args = append(args, vp.X, vp.X+vp.Width, vp.Y, vp.Y+vp.Height)
	}

	// z_index ascending, ties broken by insertion order.
	query += `
		ORDER BY e.z_index ASC, e.created_at ASC, e.id ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to list elements", "error", err)
		return nil, fmt.Errorf("list elements: %w", err)
	}
	defer rows.Close()

	elements := []element.Element{}
	for rows.Next() {
		var (
			el        element.Element
			content   *string
			fontSize  *float64
			fontColor *string
			bgColor   *string
			strokes   []byte
		)
		err := rows.Scan(
			&el.ID, &el.Type, &el.Position.X, &el.Position.Y,
			&el.Size.Width, &el.Size.Height, &el.ZIndex,
			&el.CreatedAt, &el.UpdatedAt,
			&content, &fontSize, &fontColor, &bgColor,
			&strokes,
		)
		if err != nil {
			return nil, fmt.Errorf("scan element row: %w", err)
		}

		switch el.Type {
		case element.TypeTextNote:
			if content == nil || fontSize == nil || fontColor == nil || bgColor == nil {
				return nil, fmt.Errorf("%w: text note payload missing for element %s", element.ErrDataIntegrity, el.ID)
			}
			el.TextNote = &element.TextNote{
				Content:         *content,
				FontSize:        *fontSize,
				FontColor:       *fontColor,
				BackgroundColor: *bgColor,
			}
		case element.TypeDrawing:
			if strokes == nil {
				return nil, fmt.Errorf("%w: drawing payload missing for element %s", element.ErrDataIntegrity, el.ID)
			}
			drawing := element.Drawing{Strokes: []element.Stroke{}}
			if err := json.Unmarshal(strokes, &drawing.Strokes); err != nil {
				return nil, fmt.Errorf("%w: corrupt strokes for element %s: %v", element.ErrDataIntegrity, el.ID, err)
			}
			el.Drawing = &drawing
		default:
			return nil, fmt.Errorf("%w: unknown element type %q for element %s", element.ErrDataIntegrity, el.Type, el.ID)
		}

		elements = append(elements, el)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list elements: %w", err)
	}

	return elements, nil
}

func (r *ElementRepository) UpdateTextNote(ctx context.Context, id uuid.UUID, patch element.TextNotePatch) (*element.Element, error) {
	var el *element.Element
	err := runInTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := updateShared(ctx, tx, id, element.TypeTextNote, patch.Position, patch.Size, patch.ZIndex); err != nil {
			return err
		}

		set := []string{}
		args := []any{}
		idx := 1
		if patch.Content != nil {
			set = append(set, fmt.Sprintf("content = $%d", idx))
			args = append(args, *patch.Content)
			idx++
		}
		if patch.FontSize != nil {
			set = append(set, fmt.Sprintf("font_size = $%d", idx))
			args = append(args, *patch.FontSize)
			idx++
		}
		if patch.FontColor != nil {
			set = append(set, fmt.Sprintf("font_color = $%d", idx))
			args = append(args, *patch.FontColor)
			idx++
		}
		if patch.BackgroundColor != nil {
			set = append(set, fmt.Sprintf("background_color = $%d", idx))
			args = append(args, *patch.BackgroundColor)
			idx++
		}

		if len(set) > 0 {
			query := fmt.Sprintf("UPDATE text_notes SET %s WHERE element_id = $%d", strings.Join(set, ", "), idx)
			args = append(args, id)
			tag, err := tx.Exec(ctx, query, args...)
			if err != nil {
				return fmt.Errorf("update text note payload: %w", err)
			}
			if tag.RowsAffected() == 0 {
				return fmt.Errorf("%w: text note payload missing for element %s", element.ErrDataIntegrity, id)
			}
		}

		var err error
		el, err = getElement(ctx, tx, id)
		return err
	})
	if err != nil {
		if !errors.Is(err, element.ErrNotFound) {
			r.log.Error("failed to update text note", "id", id, "error", err)
		}
		return nil, err
	}

	return el, nil
}

func (r *ElementRepository) UpdateDrawing(ctx context.Context, id uuid.UUID, patch element.DrawingPatch) (*element.Element, error) {
	var el *element.Element
	err := runInTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := updateShared(ctx, tx, id, element.TypeDrawing, patch.Position, patch.Size, patch.ZIndex); err != nil {
			return err
		}

		if patch.Strokes != nil {
			strokes, err := json.Marshal(*patch.Strokes)
			if err != nil {
				return fmt.Errorf("marshal strokes: %w", err)
			}
			tag, err := tx.Exec(ctx, "UPDATE drawings SET strokes = $1 WHERE element_id = $2", strokes, id)
			if err != nil {
				return fmt.Errorf("update drawing payload: %w", err)
			}
			if tag.RowsAffected() == 0 {
				return fmt.Errorf("%w: drawing payload missing for element %s", element.ErrDataIntegrity, id)
			}
		}

		var err error
		el, err = getElement(ctx, tx, id)
		return err
	})
	if err != nil {
		if !errors.Is(err, element.ErrNotFound) {
			r.log.Error("failed to update drawing", "id", id, "error", err)
		}
		return nil, err
	}

	return el, nil
}

// updateShared applies the geometry part of a patch to the shared row.
// updated_at is refreshed even when the patch changes nothing. Zero
// rows affected means no element of that type exists under the id.
func updateShared(ctx context.Context, tx pgx.Tx, id uuid.UUID, typ element.ElemType, pos *geometry.Point, size *geometry.Size, zIndex *int) error {
	set := []string{"updated_at = now()"}
	args := []any{}
	idx := 1

	if pos != nil {
		set = append(set, fmt.Sprintf("position_x = $%d, position_y = $%d", idx, idx+1))
		args = append(args, pos.X, pos.Y)
		idx += 2
	}
	if size != nil {
		set = append(set, fmt.Sprintf("width = $%d, height = $%d", idx, idx+1))
		args = append(args, size.Width, size.Height)
		idx += 2
	}
	if zIndex != nil {
		set = append(set, fmt.Sprintf("z_index = $%d", idx))
		args = append(args, *zIndex)
		idx++
	}

	query := fmt.Sprintf(
		"UPDATE canvas_elements SET %s WHERE id = $%d AND type = $%d",
		strings.Join(set, ", "), idx, idx+1)
	args = append(args, id, typ)

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update shared row: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return element.ErrNotFound
	}
	return nil
}

func (r *ElementRepository) Delete(ctx context.Context, id uuid.UUID) (*element.Element, error) {
	var el *element.Element
	err := runInTx(ctx, r.pool, func(tx pgx.Tx) error {
		// Snapshot first so the caller gets the exact pre-delete state.
		var err error
		el, err = getElement(ctx, tx, id)
		if err != nil {
			return err
		}

		// Payload rows go with the shared row via ON DELETE CASCADE.
		tag, err := tx.Exec(ctx, "DELETE FROM canvas_elements WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("delete shared row: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return element.ErrNotFound
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, element.ErrNotFound) {
			r.log.Error("failed to delete element", "id", id, "error", err)
		}
		return nil, err
	}

	return el, nil
}

func (r *ElementRepository) BulkUpdate(ctx context.Context, items []element.BulkUpdateItem) ([]element.Element, error) {
	elements := make([]element.Element, 0, len(items))
	err := runInTx(ctx, r.pool, func(tx pgx.Tx) error {
		for _, item := range items {
			set := []string{"updated_at = now()"}
			args := []any{}
			idx := 1

			if item.Position != nil {
				set = append(set, fmt.Sprintf("position_x = $%d, position_y = $%d", idx, idx+1))
				args = append(args, item.Position.X, item.Position.Y)
				idx += 2
			}
			if item.ZIndex != nil {
				set = append(set, fmt.Sprintf("z_index = $%d", idx))
				args = append(args, *item.ZIndex)
				idx++
			}

			query := fmt.Sprintf("UPDATE canvas_elements SET %s WHERE id = $%d", strings.Join(set, ", "), idx)
			args = append(args, item.ID)

			tag, err := tx.Exec(ctx, query, args...)
			if err != nil {
				return fmt.Errorf("bulk update element %s: %w", item.ID, err)
			}
			if tag.RowsAffected() == 0 {
				// An unknown id aborts the whole batch, identified by id.
				return fmt.Errorf("%w: bulk update references unknown element %s", element.ErrDataIntegrity, item.ID)
			}
		}

		// Results are re-read after all writes so they reflect real
		// persisted state, untouched payload included.
		for _, item := range items {
			el, err := getElement(ctx, tx, item.ID)
			if err != nil {
				return err
			}
			elements = append(elements, *el)
		}
		return nil
	})
	if err != nil {
		r.log.Error("failed to bulk update elements", "count", len(items), "error", err)
		return nil, err
	}

	return elements, nil
}
