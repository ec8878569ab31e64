package client

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"inkboard/internal/domain/element"
	"inkboard/internal/domain/geometry"
)

type MockBoard struct {
	mock.Mock
}

func (m *MockBoard) ListElements(ctx context.Context) ([]LocalElement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]LocalElement), args.Error(1)
}

func (m *MockBoard) CreateDrawing(ctx context.Context, draft DrawingDraft) (*LocalElement, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*LocalElement), args.Error(1)
}

func (m *MockBoard) MoveElement(ctx context.Context, id uuid.UUID, pos geometry.Point) (*LocalElement, error) {
	args := m.Called(ctx, id, pos)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*LocalElement), args.Error(1)
}

func testViewport() geometry.Viewport {
	return geometry.Viewport{X: 0, Y: 0, Width: 800, Height: 600, Zoom: 1}
}

func noteAt(pos geometry.Point, size geometry.Size, z int) LocalElement {
	return LocalElement{
		Element: element.Element{
			ID:       uuid.New(),
			Type:     element.TypeTextNote,
			Position: pos,
			Size:     size,
			ZIndex:   z,
			TextNote: &element.TextNote{},
		},
		Synced: true,
	}
}

func TestController_Pan(t *testing.T) {
	board := new(MockBoard)
	c := NewController(board, slog.Default(), testViewport())
	c.SetTool(ToolPan)

	c.PointerDown(geometry.Point{X: 100, Y: 100})
	assert.Equal(t, ModePanning, c.Mode())

	c.PointerMove(geometry.Point{X: 130, Y: 80})

	vp := c.Viewport()
	assert.Equal(t, 30.0, vp.X)
	assert.Equal(t, -20.0, vp.Y)
	assert.Equal(t, 1.0, vp.Zoom)

	require.NoError(t, c.PointerUp(context.Background(), geometry.Point{X: 130, Y: 80}))
	assert.Equal(t, ModeIdle, c.Mode())
}

func TestController_Wheel_KeepsCursorAnchored(t *testing.T) {
	board := new(MockBoard)
	c := NewController(board, slog.Default(), testViewport())

	cursor := geometry.Point{X: 400, Y: 300}
	before := c.Viewport().ToCanvas(cursor)

	c.Wheel(-500, cursor)

	vp := c.Viewport()
	assert.InDelta(t, 1.5, vp.Zoom, 1e-9)
	after := vp.ToCanvas(cursor)
	assert.InDelta(t, before.X, after.X, 1e-9)
	assert.InDelta(t, before.Y, after.Y, 1e-9)
}

func TestController_DragElement(t *testing.T) {
	board := new(MockBoard)
	c := NewController(board, slog.Default(), testViewport())

	note := noteAt(geometry.Point{X: 10, Y: 10}, geometry.Size{Width: 50, Height: 50}, 0)
	c.elements = []LocalElement{note}
	c.SetTool(ToolSelect)

	moved := note
	moved.Element.Position = geometry.Point{X: 50, Y: 50}
	board.On("MoveElement", mock.Anything, note.Element.ID, geometry.Point{X: 50, Y: 50}).
		Return(&moved, nil)

	// Захват в точке (20,20) внутри элемента, смещение захвата (10,10)
	c.PointerDown(geometry.Point{X: 20, Y: 20})
	assert.Equal(t, ModeDragging, c.Mode())

	c.PointerMove(geometry.Point{X: 40, Y: 40})
	assert.Equal(t, geometry.Point{X: 30, Y: 30}, c.Elements()[0].Element.Position)

	require.NoError(t, c.PointerUp(context.Background(), geometry.Point{X: 60, Y: 60}))

	assert.Equal(t, geometry.Point{X: 50, Y: 50}, c.Elements()[0].Element.Position)
	board.AssertExpectations(t)
}

func TestController_DragTopmostWins(t *testing.T) {
	board := new(MockBoard)
	c := NewController(board, slog.Default(), testViewport())

	bottom := noteAt(geometry.Point{X: 0, Y: 0}, geometry.Size{Width: 100, Height: 100}, 0)
	top := noteAt(geometry.Point{X: 0, Y: 0}, geometry.Size{Width: 100, Height: 100}, 5)
	c.elements = []LocalElement{bottom, top}
	c.SetTool(ToolSelect)

	c.PointerDown(geometry.Point{X: 50, Y: 50})

	assert.Equal(t, ModeDragging, c.Mode())
	assert.Equal(t, top.Element.ID, c.dragID)
}

func TestController_SelectMissStartsPan(t *testing.T) {
	board := new(MockBoard)
	c := NewController(board, slog.Default(), testViewport())
	c.SetTool(ToolSelect)

	c.PointerDown(geometry.Point{X: 500, Y: 500})

	assert.Equal(t, ModePanning, c.Mode())
}

func TestController_DrawClickDiscarded(t *testing.T) {
	board := new(MockBoard)
	c := NewController(board, slog.Default(), testViewport())
	c.SetTool(ToolDraw)

	c.PointerDown(geometry.Point{X: 100, Y: 100})
	require.NoError(t, c.PointerUp(context.Background(), geometry.Point{X: 100, Y: 100}))

	board.AssertNotCalled(t, "CreateDrawing", mock.Anything, mock.Anything)
	assert.Empty(t, c.Elements())
}

func TestController_DrawStroke(t *testing.T) {
	board := new(MockBoard)
	c := NewController(board, slog.Default(), testViewport())
	c.SetTool(ToolDraw)
	c.SetStroke("#ff0000", 2)

	created := LocalElement{
		Element: element.Element{ID: uuid.New(), Type: element.TypeDrawing, Drawing: &element.Drawing{}},
		Synced:  true,
	}
	board.On("CreateDrawing", mock.Anything, mock.MatchedBy(func(draft DrawingDraft) bool {
		// Паддинг = ширина штриха + 5, точки локальны относительно position
		return draft.Position == geometry.Point{X: 3, Y: 13} &&
			draft.Size == geometry.Size{Width: 34, Height: 34} &&
			len(draft.Strokes) == 1 &&
			len(draft.Strokes[0].Points) == 2 &&
			draft.Strokes[0].Points[0].X == 7 &&
			draft.Strokes[0].Points[0].Y == 7 &&
			draft.Strokes[0].Color == "#ff0000"
	})).Return(&created, nil)

	c.PointerDown(geometry.Point{X: 10, Y: 20})
	c.PointerMove(geometry.Point{X: 30, Y: 40})
	require.NoError(t, c.PointerUp(context.Background(), geometry.Point{X: 30, Y: 40}))

	assert.Len(t, c.Elements(), 1)
	board.AssertExpectations(t)
}

func TestController_GestureExclusive(t *testing.T) {
	board := new(MockBoard)
	c := NewController(board, slog.Default(), testViewport())
	c.SetTool(ToolDraw)

	c.PointerDown(geometry.Point{X: 10, Y: 10})
	assert.Equal(t, ModeDrawing, c.Mode())

	// Повторный PointerDown и смена инструмента посреди жеста игнорируются
	c.PointerDown(geometry.Point{X: 50, Y: 50})
	assert.Equal(t, ModeDrawing, c.Mode())

	c.SetTool(ToolPan)
	assert.Equal(t, ToolDraw, c.tool)
}

func TestController_Load(t *testing.T) {
	board := new(MockBoard)
	c := NewController(board, slog.Default(), testViewport())

	elements := []LocalElement{noteAt(geometry.Point{}, geometry.Size{Width: 10, Height: 10}, 0)}
	board.On("ListElements", mock.Anything).Return(elements, nil)

	require.NoError(t, c.Load(context.Background()))
	assert.Len(t, c.Elements(), 1)
}
