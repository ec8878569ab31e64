package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"inkboard/internal/app/client/config"
	"inkboard/internal/domain/element"
	"inkboard/internal/domain/geometry"
)

// ErrLocalNotFound возвращается, когда элемента нет в локальном зеркале
var ErrLocalNotFound = errors.New("элемент не найден в локальном хранилище")

type contextKey string

// AppContextKey - ключ, под которым приложение лежит в контексте CLI команд
const AppContextKey contextKey = "app"

// FromContext достает приложение из контекста команды
func FromContext(ctx context.Context) (*App, bool) {
	app, ok := ctx.Value(AppContextKey).(*App)
	return app, ok
}

// API - серверные операции, которые использует приложение
type API interface {
	HealthCheck(ctx context.Context) error
	ListElements(ctx context.Context, vp *geometry.Viewport) (element.ListResult, error)
	GetElement(ctx context.Context, id uuid.UUID) (*element.Element, error)
	CreateTextNote(ctx context.Context, draft TextNoteDraft) (*element.Element, error)
	CreateDrawing(ctx context.Context, draft DrawingDraft) (*element.Element, error)
	UpdateTextNote(ctx context.Context, id uuid.UUID, patch TextNotePatchRequest) (*element.Element, error)
	UpdateDrawing(ctx context.Context, id uuid.UUID, patch DrawingPatchRequest) (*element.Element, error)
	DeleteElement(ctx context.Context, id uuid.UUID) (*element.Element, error)
	BulkUpdate(ctx context.Context, items []element.BulkUpdateItem) ([]element.Element, error)
}

// Storage - локальное зеркало доски
type Storage interface {
	SaveElement(el *element.Element, synced bool) error
	GetElement(id uuid.UUID) (*LocalElement, error)
	ListElements() ([]LocalElement, error)
	ListUnsynced() ([]LocalElement, error)
	MarkSynced(id uuid.UUID) error
	DeleteElement(id uuid.UUID) error
	CountElements() (int, error)
	Close() error
}

// App - клиент доски. Все мутации оптимистичны: результат сначала
// попадает в локальное зеркало, при недоступном сервере элемент
// остается локально с synced=false.
type App struct {
	config  *config.Config
	log     *slog.Logger
	api     API
	storage Storage
	factory *element.Factory
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	httpCl, err := NewHTTPClient(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации HTTP клиента: %w", err)
	}

	// Инициализируем локальное хранилище (используем SQLite)
	var storage Storage
	sqliteStorage, err := NewSQLiteStorage(cfg.DataPath)
	if err != nil {
		log.Warn("Не удалось инициализировать SQLite, используем память", "error", err)
		storage = NewMemoryStorage()
	} else {
		storage = sqliteStorage
	}

	return &App{
		config:  cfg,
		log:     log,
		api:     httpCl,
		storage: storage,
		factory: element.NewFactory(),
	}, nil
}

// CheckConnection проверяет соединение с сервером
func (a *App) CheckConnection() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return a.api.HealthCheck(ctx)
}

// ListElements возвращает элементы доски: с сервера, если он доступен,
// иначе из локального зеркала. Серверный ответ освежает зеркало.
func (a *App) ListElements(ctx context.Context) ([]LocalElement, error) {
	result, err := a.api.ListElements(ctx, nil)
	if err != nil {
		a.log.Warn("Сервер недоступен, используем локальное зеркало", "error", err)
		return a.storage.ListElements()
	}

	elements := make([]LocalElement, 0, len(result.Elements))
	for i := range result.Elements {
		el := result.Elements[i]
		if err := a.storage.SaveElement(&el, true); err != nil {
			a.log.Warn("Не удалось сохранить элемент локально", "error", err, "element_id", el.ID)
		}
		elements = append(elements, LocalElement{Element: el, Synced: true})
	}

	return elements, nil
}

// GetElement возвращает элемент: с сервера или из зеркала
func (a *App) GetElement(ctx context.Context, id uuid.UUID) (*LocalElement, error) {
	el, err := a.api.GetElement(ctx, id)
	if err != nil {
		a.log.Warn("Не удалось получить элемент с сервера", "error", err, "element_id", id)
		return a.storage.GetElement(id)
	}

	if err := a.storage.SaveElement(el, true); err != nil {
		a.log.Warn("Не удалось сохранить элемент локально", "error", err)
	}

	return &LocalElement{Element: *el, Synced: true}, nil
}

// CreateTextNote создает заметку. При недоступном сервере заметка
// создается локально и помечается как несинхронизированная.
func (a *App) CreateTextNote(ctx context.Context, draft TextNoteDraft) (*LocalElement, error) {
	input := element.CreateTextNoteInput{
		Position:        draft.Position,
		Size:            draft.Size,
		Content:         draft.Content,
		FontSize:        draft.FontSize,
		FontColor:       draft.FontColor,
		BackgroundColor: draft.BackgroundColor,
		ZIndex:          draft.ZIndex,
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	el, err := a.api.CreateTextNote(ctx, draft)
	if err != nil {
		a.log.Warn("Не удалось создать заметку на сервере, сохраняем локально", "error", err)
		return a.saveLocalElement(a.factory.TextNote(input))
	}

	if err := a.storage.SaveElement(el, true); err != nil {
		a.log.Warn("Не удалось сохранить заметку локально", "error", err)
	}

	return &LocalElement{Element: *el, Synced: true}, nil
}

// CreateDrawing создает рисунок с тем же оптимистичным поведением
func (a *App) CreateDrawing(ctx context.Context, draft DrawingDraft) (*LocalElement, error) {
	input := element.CreateDrawingInput{
		Position: draft.Position,
		Size:     draft.Size,
		Strokes:  draft.Strokes,
		ZIndex:   draft.ZIndex,
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	el, err := a.api.CreateDrawing(ctx, draft)
	if err != nil {
		a.log.Warn("Не удалось создать рисунок на сервере, сохраняем локально", "error", err)
		return a.saveLocalElement(a.factory.Drawing(input))
	}

	if err := a.storage.SaveElement(el, true); err != nil {
		a.log.Warn("Не удалось сохранить рисунок локально", "error", err)
	}

	return &LocalElement{Element: *el, Synced: true}, nil
}

// saveLocalElement сохраняет элемент, созданный без участия сервера
func (a *App) saveLocalElement(el *element.Element) (*LocalElement, error) {
	now := time.Now()
	el.CreatedAt = now
	el.UpdatedAt = now

	if err := a.storage.SaveElement(el, false); err != nil {
		return nil, fmt.Errorf("ошибка сохранения элемента: %w", err)
	}

	return &LocalElement{Element: *el, Synced: false}, nil
}

// MoveElement перемещает элемент. Зеркало обновляется сразу, сервер
// подтверждает перемещение через bulk-update.
func (a *App) MoveElement(ctx context.Context, id uuid.UUID, pos geometry.Point) (*LocalElement, error) {
	local, err := a.storage.GetElement(id)
	if err != nil {
		return nil, err
	}

	local.Element.Position = pos
	local.Element.UpdatedAt = time.Now()
	if err := a.storage.SaveElement(&local.Element, false); err != nil {
		return nil, fmt.Errorf("ошибка обновления зеркала: %w", err)
	}

	updated, err := a.api.BulkUpdate(ctx, []element.BulkUpdateItem{
		{ID: id, Position: &pos},
	})
	if err != nil {
		a.log.Warn("Не удалось синхронизировать перемещение", "error", err, "element_id", id)
		return &LocalElement{Element: local.Element, Synced: false}, nil
	}

	if len(updated) != 1 {
		return &LocalElement{Element: local.Element, Synced: false}, nil
	}

	if err := a.storage.SaveElement(&updated[0], true); err != nil {
		a.log.Warn("Не удалось сохранить элемент локально", "error", err)
	}

	return &LocalElement{Element: updated[0], Synced: true}, nil
}

// UpdateTextNote применяет частичное обновление заметки. При
// недоступном сервере патч применяется к зеркалу, элемент остается
// несинхронизированным.
func (a *App) UpdateTextNote(ctx context.Context, id uuid.UUID, patch TextNotePatchRequest) (*LocalElement, error) {
	domainPatch := element.TextNotePatch{
		Position:        patch.Position,
		Size:            patch.Size,
		ZIndex:          patch.ZIndex,
		Content:         patch.Content,
		FontSize:        patch.FontSize,
		FontColor:       patch.FontColor,
		BackgroundColor: patch.BackgroundColor,
	}
	if err := domainPatch.Validate(); err != nil {
		return nil, err
	}

	el, err := a.api.UpdateTextNote(ctx, id, patch)
	if err != nil {
		a.log.Warn("Не удалось обновить заметку на сервере, применяем локально", "error", err, "element_id", id)
		return a.patchLocalTextNote(id, patch)
	}

	if err := a.storage.SaveElement(el, true); err != nil {
		a.log.Warn("Не удалось сохранить элемент локально", "error", err)
	}

	return &LocalElement{Element: *el, Synced: true}, nil
}

// UpdateDrawing применяет частичное обновление рисунка с тем же
// оптимистичным поведением
func (a *App) UpdateDrawing(ctx context.Context, id uuid.UUID, patch DrawingPatchRequest) (*LocalElement, error) {
	domainPatch := element.DrawingPatch{
		Position: patch.Position,
		Size:     patch.Size,
		ZIndex:   patch.ZIndex,
		Strokes:  patch.Strokes,
	}
	if err := domainPatch.Validate(); err != nil {
		return nil, err
	}

	el, err := a.api.UpdateDrawing(ctx, id, patch)
	if err != nil {
		a.log.Warn("Не удалось обновить рисунок на сервере, применяем локально", "error", err, "element_id", id)
		return a.patchLocalDrawing(id, patch)
	}

	if err := a.storage.SaveElement(el, true); err != nil {
		a.log.Warn("Не удалось сохранить элемент локально", "error", err)
	}

	return &LocalElement{Element: *el, Synced: true}, nil
}

// patchLocalTextNote накладывает патч на зеркальную копию заметки
func (a *App) patchLocalTextNote(id uuid.UUID, patch TextNotePatchRequest) (*LocalElement, error) {
	local, err := a.storage.GetElement(id)
	if err != nil {
		return nil, err
	}
	if local.Element.Type != element.TypeTextNote || local.Element.TextNote == nil {
		return nil, fmt.Errorf("элемент %s не является заметкой", id)
	}

	el := local.Element
	note := *local.Element.TextNote
	el.TextNote = &note
	applySharedPatch(&el, patch.Position, patch.Size, patch.ZIndex)
	if patch.Content != nil {
		el.TextNote.Content = *patch.Content
	}
	if patch.FontSize != nil {
		el.TextNote.FontSize = *patch.FontSize
	}
	if patch.FontColor != nil {
		el.TextNote.FontColor = *patch.FontColor
	}
	if patch.BackgroundColor != nil {
		el.TextNote.BackgroundColor = *patch.BackgroundColor
	}

	if err := a.storage.SaveElement(&el, false); err != nil {
		return nil, fmt.Errorf("ошибка обновления зеркала: %w", err)
	}

	return &LocalElement{Element: el, Synced: false}, nil
}

// patchLocalDrawing накладывает патч на зеркальную копию рисунка
func (a *App) patchLocalDrawing(id uuid.UUID, patch DrawingPatchRequest) (*LocalElement, error) {
	local, err := a.storage.GetElement(id)
	if err != nil {
		return nil, err
	}
	if local.Element.Type != element.TypeDrawing || local.Element.Drawing == nil {
		return nil, fmt.Errorf("элемент %s не является рисунком", id)
	}

	el := local.Element
	drawing := *local.Element.Drawing
	el.Drawing = &drawing
	applySharedPatch(&el, patch.Position, patch.Size, patch.ZIndex)
	if patch.Strokes != nil {
		el.Drawing.Strokes = *patch.Strokes
	}

	if err := a.storage.SaveElement(&el, false); err != nil {
		return nil, fmt.Errorf("ошибка обновления зеркала: %w", err)
	}

	return &LocalElement{Element: el, Synced: false}, nil
}

func applySharedPatch(el *element.Element, pos *geometry.Point, size *geometry.Size, z *int) {
	if pos != nil {
		el.Position = *pos
	}
	if size != nil {
		el.Size = *size
	}
	if z != nil {
		el.ZIndex = *z
	}
	el.UpdatedAt = time.Now()
}

// DeleteElement удаляет элемент на сервере и в зеркале. При недоступном
// сервере элемент убирается только из зеркала.
func (a *App) DeleteElement(ctx context.Context, id uuid.UUID) error {
	if _, err := a.api.DeleteElement(ctx, id); err != nil {
		a.log.Warn("Не удалось удалить элемент на сервере", "error", err, "element_id", id)
	}

	if err := a.storage.DeleteElement(id); err != nil {
		return fmt.Errorf("ошибка удаления из зеркала: %w", err)
	}

	return nil
}

// UnsyncedElements возвращает элементы, ожидающие подтверждения сервером
func (a *App) UnsyncedElements() ([]LocalElement, error) {
	return a.storage.ListUnsynced()
}

// LocalCount возвращает число элементов в локальном зеркале
func (a *App) LocalCount() (int, error) {
	return a.storage.CountElements()
}

// SyncPending пытается дослать несинхронизированные элементы на сервер.
// Известный серверу элемент досылается патчем с полным состоянием;
// если сервер его не знает, элемент создается заново и локальная копия
// заменяется серверной (с новым id).
func (a *App) SyncPending(ctx context.Context) (pushed, failed int, err error) {
	unsynced, err := a.storage.ListUnsynced()
	if err != nil {
		return 0, 0, err
	}

	for _, le := range unsynced {
		if a.pushElement(ctx, le) {
			pushed++
		} else {
			failed++
		}
	}

	return pushed, failed, nil
}

func (a *App) pushElement(ctx context.Context, le LocalElement) bool {
	el := le.Element

	switch {
	case el.Type == element.TypeTextNote && el.TextNote != nil:
		patch := TextNotePatchRequest{
			Position:        &el.Position,
			Size:            &el.Size,
			ZIndex:          &el.ZIndex,
			Content:         &el.TextNote.Content,
			FontSize:        &el.TextNote.FontSize,
			FontColor:       &el.TextNote.FontColor,
			BackgroundColor: &el.TextNote.BackgroundColor,
		}
		if _, err := a.api.UpdateTextNote(ctx, el.ID, patch); err == nil {
			// Зеркало уже содержит отправленное состояние
			return a.markSynced(el.ID)
		}
		created, err := a.api.CreateTextNote(ctx, TextNoteDraft{
			Position:        el.Position,
			Size:            el.Size,
			Content:         el.TextNote.Content,
			FontSize:        &el.TextNote.FontSize,
			FontColor:       &el.TextNote.FontColor,
			BackgroundColor: &el.TextNote.BackgroundColor,
			ZIndex:          &el.ZIndex,
		})
		if err != nil {
			a.log.Warn("Не удалось дослать заметку", "error", err, "element_id", el.ID)
			return false
		}
		return a.replaceLocal(el.ID, created)
	case el.Type == element.TypeDrawing && el.Drawing != nil:
		patch := DrawingPatchRequest{
			Position: &el.Position,
			Size:     &el.Size,
			ZIndex:   &el.ZIndex,
			Strokes:  &el.Drawing.Strokes,
		}
		if _, err := a.api.UpdateDrawing(ctx, el.ID, patch); err == nil {
			return a.markSynced(el.ID)
		}
		created, err := a.api.CreateDrawing(ctx, DrawingDraft{
			Position: el.Position,
			Size:     el.Size,
			Strokes:  el.Drawing.Strokes,
			ZIndex:   &el.ZIndex,
		})
		if err != nil {
			a.log.Warn("Не удалось дослать рисунок", "error", err, "element_id", el.ID)
			return false
		}
		return a.replaceLocal(el.ID, created)
	default:
		a.log.Warn("Элемент без содержимого пропущен при досылке", "element_id", el.ID)
		return false
	}
}

func (a *App) markSynced(id uuid.UUID) bool {
	if err := a.storage.MarkSynced(id); err != nil {
		a.log.Warn("Не удалось обновить статус синхронизации", "error", err, "element_id", id)
		return false
	}
	return true
}

// replaceLocal заменяет локальную копию серверной: у созданного заново
// элемента новый id
func (a *App) replaceLocal(oldID uuid.UUID, created *element.Element) bool {
	if err := a.storage.DeleteElement(oldID); err != nil {
		a.log.Warn("Не удалось убрать устаревшую копию", "error", err, "element_id", oldID)
	}
	if err := a.storage.SaveElement(created, true); err != nil {
		a.log.Warn("Не удалось сохранить элемент локально", "error", err, "element_id", created.ID)
		return false
	}
	return true
}

func (a *App) Close() error {
	return a.storage.Close()
}
