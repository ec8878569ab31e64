package client

import (
	"sort"

	"github.com/google/uuid"

	"inkboard/internal/domain/element"
	"inkboard/internal/domain/geometry"
)

// LocalElement - элемент доски в локальном зеркале. Synced показывает,
// подтверждена ли последняя версия сервером.
type LocalElement struct {
	Element element.Element `json:"element"`
	Synced  bool            `json:"synced"`
}

// TextNoteDraft - запрос на создание заметки
type TextNoteDraft struct {
	Position        geometry.Point `json:"position"`
	Size            geometry.Size  `json:"size"`
	Content         string         `json:"content,omitempty"`
	FontSize        *float64       `json:"font_size,omitempty"`
	FontColor       *string        `json:"font_color,omitempty"`
	BackgroundColor *string        `json:"background_color,omitempty"`
	ZIndex          *int           `json:"z_index,omitempty"`
}

// DrawingDraft - запрос на создание рисунка
type DrawingDraft struct {
	Position geometry.Point   `json:"position"`
	Size     geometry.Size    `json:"size"`
	Strokes  []element.Stroke `json:"strokes"`
	ZIndex   *int             `json:"z_index,omitempty"`
}

// TextNotePatchRequest - частичное обновление заметки. nil-поля не
// отправляются и не меняют сохраненное значение.
type TextNotePatchRequest struct {
	Position        *geometry.Point `json:"position,omitempty"`
	Size            *geometry.Size  `json:"size,omitempty"`
	ZIndex          *int            `json:"z_index,omitempty"`
	Content         *string         `json:"content,omitempty"`
	FontSize        *float64        `json:"font_size,omitempty"`
	FontColor       *string         `json:"font_color,omitempty"`
	BackgroundColor *string         `json:"background_color,omitempty"`
}

// DrawingPatchRequest - частичное обновление рисунка
type DrawingPatchRequest struct {
	Position *geometry.Point   `json:"position,omitempty"`
	Size     *geometry.Size    `json:"size,omitempty"`
	ZIndex   *int              `json:"z_index,omitempty"`
	Strokes  *[]element.Stroke `json:"strokes,omitempty"`
}

// MemoryStorage - временное in-memory хранилище, используется если
// SQLite недоступен
type MemoryStorage struct {
	elements map[uuid.UUID]*LocalElement
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		elements: make(map[uuid.UUID]*LocalElement),
	}
}

func (m *MemoryStorage) SaveElement(el *element.Element, synced bool) error {
	m.elements[el.ID] = &LocalElement{Element: *el, Synced: synced}
	return nil
}

func (m *MemoryStorage) GetElement(id uuid.UUID) (*LocalElement, error) {
	el, exists := m.elements[id]
	if !exists {
		return nil, ErrLocalNotFound
	}
	return el, nil
}

func (m *MemoryStorage) ListElements() ([]LocalElement, error) {
	elements := make([]LocalElement, 0, len(m.elements))
	for _, el := range m.elements {
		elements = append(elements, *el)
	}
	sort.Slice(elements, func(i, j int) bool {
		return elements[i].Element.ZIndex < elements[j].Element.ZIndex
	})
	return elements, nil
}

func (m *MemoryStorage) ListUnsynced() ([]LocalElement, error) {
	elements := make([]LocalElement, 0)
	for _, el := range m.elements {
		if !el.Synced {
			elements = append(elements, *el)
		}
	}
	return elements, nil
}

func (m *MemoryStorage) MarkSynced(id uuid.UUID) error {
	el, exists := m.elements[id]
	if !exists {
		return ErrLocalNotFound
	}
	el.Synced = true
	return nil
}

func (m *MemoryStorage) DeleteElement(id uuid.UUID) error {
	delete(m.elements, id)
	return nil
}

func (m *MemoryStorage) CountElements() (int, error) {
	return len(m.elements), nil
}

func (m *MemoryStorage) Close() error {
	return nil
}
