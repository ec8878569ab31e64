package client

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"inkboard/internal/domain/element"
	"inkboard/internal/domain/geometry"
)

// Board - операции доски, нужные контроллеру ввода
type Board interface {
	ListElements(ctx context.Context) ([]LocalElement, error)
	CreateDrawing(ctx context.Context, draft DrawingDraft) (*LocalElement, error)
	MoveElement(ctx context.Context, id uuid.UUID, pos geometry.Point) (*LocalElement, error)
}

// Tool - активный инструмент
type Tool int

const (
	ToolSelect Tool = iota
	ToolPan
	ToolDraw
)

// Mode - текущий жест. Режимы взаимоисключающие: пока жест не
// завершен PointerUp, другой начаться не может.
type Mode int

const (
	ModeIdle Mode = iota
	ModePanning
	ModeDragging
	ModeDrawing
)

// Controller превращает события указателя и колеса в операции доски.
// Все входные координаты экранные; перевод в координаты холста
// происходит внутри.
type Controller struct {
	board Board
	log   *slog.Logger

	viewport geometry.Viewport
	elements []LocalElement

	tool Tool
	mode Mode

	panAnchor  geometry.Point
	dragID     uuid.UUID
	grabOffset geometry.Point

	strokeColor string
	strokeWidth float64
	pending     []element.StrokePoint
}

func NewController(board Board, log *slog.Logger, viewport geometry.Viewport) *Controller {
	return &Controller{
		board:       board,
		log:         log,
		viewport:    viewport,
		strokeColor: element.DefaultStrokeColor,
		strokeWidth: element.DefaultStrokeWidth,
	}
}

// Load загружает элементы доски
func (c *Controller) Load(ctx context.Context) error {
	elements, err := c.board.ListElements(ctx)
	if err != nil {
		return err
	}
	c.elements = elements
	return nil
}

func (c *Controller) Viewport() geometry.Viewport {
	return c.viewport
}

func (c *Controller) Elements() []LocalElement {
	return c.elements
}

func (c *Controller) Mode() Mode {
	return c.mode
}

func (c *Controller) SetTool(tool Tool) {
	// Инструмент нельзя менять посреди жеста
	if c.mode != ModeIdle {
		return
	}
	c.tool = tool
}

func (c *Controller) SetStroke(color string, width float64) {
	c.strokeColor = color
	c.strokeWidth = width
}

// Wheel масштабирует доску вокруг курсора. Точка холста под курсором
// остается на месте.
func (c *Controller) Wheel(delta float64, cursor geometry.Point) {
	c.viewport = geometry.ZoomByWheel(c.viewport, delta, cursor)
}

// PointerDown начинает жест в зависимости от инструмента: рисование,
// перетаскивание попавшего под курсор элемента или панорамирование.
func (c *Controller) PointerDown(pointer geometry.Point) {
	if c.mode != ModeIdle {
		return
	}

	switch c.tool {
	case ToolDraw:
		c.mode = ModeDrawing
		canvas := c.viewport.ToCanvas(pointer)
		c.pending = []element.StrokePoint{{X: canvas.X, Y: canvas.Y}}
	case ToolSelect:
		if hit := c.hitTest(c.viewport.ToCanvas(pointer)); hit != nil {
			c.mode = ModeDragging
			c.dragID = hit.Element.ID
			c.grabOffset = geometry.GrabOffset(pointer, c.viewport, hit.Element.Position)
			return
		}
		c.startPan(pointer)
	case ToolPan:
		c.startPan(pointer)
	}
}

func (c *Controller) startPan(pointer geometry.Point) {
	c.mode = ModePanning
	c.panAnchor = geometry.PanStart(pointer, c.viewport)
}

// PointerMove продолжает активный жест
func (c *Controller) PointerMove(pointer geometry.Point) {
	switch c.mode {
	case ModePanning:
		c.viewport = geometry.PanMove(c.viewport, c.panAnchor, pointer)
	case ModeDragging:
		pos := geometry.DragPosition(pointer, c.viewport, c.grabOffset)
		if el := c.findByID(c.dragID); el != nil {
			el.Element.Position = pos
		}
	case ModeDrawing:
		canvas := c.viewport.ToCanvas(pointer)
		c.pending = append(c.pending, element.StrokePoint{X: canvas.X, Y: canvas.Y})
	}
}

// PointerUp завершает жест. Перетаскивание фиксируется через доску,
// нарисованный штрих нормализуется и превращается в элемент-рисунок.
func (c *Controller) PointerUp(ctx context.Context, pointer geometry.Point) error {
	mode := c.mode
	c.mode = ModeIdle

	switch mode {
	case ModeDragging:
		pos := geometry.DragPosition(pointer, c.viewport, c.grabOffset)
		moved, err := c.board.MoveElement(ctx, c.dragID, pos)
		if err != nil {
			return err
		}
		if el := c.findByID(c.dragID); el != nil {
			*el = *moved
		}
	case ModeDrawing:
		points := c.pending
		c.pending = nil
		return c.finishStroke(ctx, points)
	}

	return nil
}

func (c *Controller) finishStroke(ctx context.Context, points []element.StrokePoint) error {
	pos, size, stroke, ok := element.NormalizeStroke(points, c.strokeColor, c.strokeWidth)
	if !ok {
		// Случайный клик инструментом рисования ничего не создает
		c.log.Debug("штрих короче двух точек, элемент не создан")
		return nil
	}

	created, err := c.board.CreateDrawing(ctx, DrawingDraft{
		Position: pos,
		Size:     size,
		Strokes:  []element.Stroke{stroke},
	})
	if err != nil {
		return err
	}

	c.elements = append(c.elements, *created)
	return nil
}

// hitTest возвращает самый верхний элемент, содержащий точку холста
func (c *Controller) hitTest(canvas geometry.Point) *LocalElement {
	for i := len(c.elements) - 1; i >= 0; i-- {
		el := &c.elements[i]
		pos := el.Element.Position
		size := el.Element.Size
		if canvas.X >= pos.X && canvas.X <= pos.X+size.Width &&
			canvas.Y >= pos.Y && canvas.Y <= pos.Y+size.Height {
			return el
		}
	}
	return nil
}

func (c *Controller) findByID(id uuid.UUID) *LocalElement {
	for i := range c.elements {
		if c.elements[i].Element.ID == id {
			return &c.elements[i]
		}
	}
	return nil
}
