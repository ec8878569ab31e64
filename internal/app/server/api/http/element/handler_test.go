package element

import (
	"context"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"inkboard/internal/domain/element"
	"inkboard/internal/domain/geometry"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) CreateTextNote(ctx context.Context, in element.CreateTextNoteInput) (*element.Element, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*element.Element), args.Error(1)
}

func (m *MockService) CreateDrawing(ctx context.Context, in element.CreateDrawingInput) (*element.Element, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*element.Element), args.Error(1)
}

func (m *MockService) Get(ctx context.Context, id uuid.UUID) (*element.Element, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*element.Element), args.Error(1)
}

func (m *MockService) List(ctx context.Context, vp *geometry.Viewport) (element.ListResult, error) {
	args := m.Called(ctx, vp)
	return args.Get(0).(element.ListResult), args.Error(1)
}

func (m *MockService) UpdateTextNote(ctx context.Context, id uuid.UUID, patch element.TextNotePatch) (*element.Element, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*element.Element), args.Error(1)
}

func (m *MockService) UpdateDrawing(ctx context.Context, id uuid.UUID, patch element.DrawingPatch) (*element.Element, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*element.Element), args.Error(1)
}

func (m *MockService) Delete(ctx context.Context, id uuid.UUID) (*element.Element, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*element.Element), args.Error(1)
}

func (m *MockService) BulkUpdate(ctx context.Context, items []element.BulkUpdateItem) ([]element.Element, error) {
	args := m.Called(ctx, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]element.Element), args.Error(1)
}

func newTestHandler(service element.Servicer) *Handler {
	return NewHandler(service, slog.Default(), huma.Middlewares{})
}

func float64Ptr(v float64) *float64 { return &v }

func TestHandler_list_NoViewport(t *testing.T) {
	mockService := new(MockService)
	handler := newTestHandler(mockService)

	result := element.ListResult{
		Elements:   []element.Element{{ID: uuid.New(), Type: element.TypeTextNote}},
		TotalCount: 1,
	}
	mockService.On("List", mock.Anything, (*geometry.Viewport)(nil)).Return(result, nil)

	output, err := handler.list(context.Background(), &listInput{})

	require.NoError(t, err)
	assert.Equal(t, 1, output.Body.TotalCount)
	mockService.AssertExpectations(t)
}

func TestHandler_list_WithViewport(t *testing.T) {
	mockService := new(MockService)
	handler := newTestHandler(mockService)

	expected := &geometry.Viewport{X: 10, Y: 20, Width: 800, Height: 600, Zoom: 1.5}
	mockService.On("List", mock.Anything, expected).Return(element.ListResult{Elements: []element.Element{}}, nil)

	input := &listInput{
		X:      float64Ptr(10),
		Y:      float64Ptr(20),
		Width:  float64Ptr(800),
		Height: float64Ptr(600),
		Zoom:   float64Ptr(1.5),
	}
	_, err := handler.list(context.Background(), input)

	require.NoError(t, err)
	mockService.AssertExpectations(t)
}

func TestHandler_list_PartialViewport(t *testing.T) {
	mockService := new(MockService)
	handler := newTestHandler(mockService)

	input := &listInput{X: float64Ptr(10)}
	_, err := handler.list(context.Background(), input)

	require.Error(t, err)
	var statusErr huma.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 422, statusErr.GetStatus())
	mockService.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestHandler_find(t *testing.T) {
	mockService := new(MockService)
	handler := newTestHandler(mockService)

	id := uuid.New()
	el := &element.Element{ID: id, Type: element.TypeTextNote, TextNote: &element.TextNote{Content: "hi"}}
	mockService.On("Get", mock.Anything, id).Return(el, nil)

	output, err := handler.find(context.Background(), &findInput{ID: id.String()})

	require.NoError(t, err)
	assert.Equal(t, "Ok", output.Body.Status)
	assert.Equal(t, el, output.Body.Element)
}

func TestHandler_find_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{name: "not found", serviceErr: element.ErrNotFound, wantStatus: 404},
		{name: "data integrity", serviceErr: element.ErrDataIntegrity, wantStatus: 409},
		{name: "storage failure", serviceErr: assert.AnError, wantStatus: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			handler := newTestHandler(mockService)

			id := uuid.New()
			mockService.On("Get", mock.Anything, id).Return(nil, tt.serviceErr)

			_, err := handler.find(context.Background(), &findInput{ID: id.String()})

			require.Error(t, err)
			var statusErr huma.StatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, tt.wantStatus, statusErr.GetStatus())
		})
	}
}

func TestHandler_find_BadID(t *testing.T) {
	mockService := new(MockService)
	handler := newTestHandler(mockService)

	_, err := handler.find(context.Background(), &findInput{ID: "not-a-uuid"})

	require.Error(t, err)
	var statusErr huma.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 422, statusErr.GetStatus())
	mockService.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestHandler_createTextNote(t *testing.T) {
	mockService := new(MockService)
	handler := newTestHandler(mockService)

	el := &element.Element{ID: uuid.New(), Type: element.TypeTextNote}
	mockService.On("CreateTextNote", mock.Anything, mock.MatchedBy(func(in element.CreateTextNoteInput) bool {
		return in.Content == "hi" && in.Position.X == 100 && in.Position.Y == 200
	})).Return(el, nil)

	output, err := handler.createTextNote(context.Background(), &createTextNoteInput{
		Body: createTextNoteRequest{
			Position: geometry.Point{X: 100, Y: 200},
			Size:     geometry.Size{Width: 150, Height: 100},
			Content:  "hi",
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "Ok", output.Body.Status)
	assert.Equal(t, el, output.Body.Element)
}

func TestHandler_delete_ReturnsSnapshot(t *testing.T) {
	mockService := new(MockService)
	handler := newTestHandler(mockService)

	id := uuid.New()
	snapshot := &element.Element{ID: id, Type: element.TypeDrawing, Drawing: &element.Drawing{}}
	mockService.On("Delete", mock.Anything, id).Return(snapshot, nil)

	output, err := handler.delete(context.Background(), &findInput{ID: id.String()})

	require.NoError(t, err)
	assert.Equal(t, snapshot, output.Body.Element)
}

func TestHandler_bulkUpdate(t *testing.T) {
	mockService := new(MockService)
	handler := newTestHandler(mockService)

	items := []element.BulkUpdateItem{{ID: uuid.New()}}
	updated := []element.Element{{ID: items[0].ID, Type: element.TypeTextNote}}
	mockService.On("BulkUpdate", mock.Anything, items).Return(updated, nil)

	output, err := handler.bulkUpdate(context.Background(), &bulkUpdateInput{
		Body: bulkUpdateRequest{Updates: items},
	})

	require.NoError(t, err)
	assert.Equal(t, "Ok", output.Body.Status)
	assert.Equal(t, updated, output.Body.Elements)
}
