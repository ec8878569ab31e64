package health

import (
	"context"
	"errors"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/slog"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(_ context.Context) error {
	return s.err
}

func TestHandler_healthCheck(t *testing.T) {
	tests := []struct {
		name            string
		pingErr         error
		expectedStatus  string
		expectedStorage string
	}{
		{
			name:            "storage reachable",
			pingErr:         nil,
			expectedStatus:  "OK",
			expectedStorage: "ok",
		},
		{
			name:            "storage unreachable",
			pingErr:         errors.New("connection refused"),
			expectedStatus:  "OK",
			expectedStorage: "unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			log := slog.Default()
			middleware := huma.Middlewares{}
			handler := NewHandler(stubPinger{err: tt.pingErr}, log, middleware)
			ctx := context.Background()
			input := &Input{}

			// Act
			output, err := handler.healthCheck(ctx, input)

			// Assert
			assert.NoError(t, err)
			assert.NotNil(t, output)
			assert.Equal(t, tt.expectedStatus, output.Body.Status)
			assert.Equal(t, tt.expectedStorage, output.Body.Storage)
		})
	}
}

func TestNewHandler(t *testing.T) {
	// Arrange
	log := slog.Default()
	middleware := huma.Middlewares{}

	// Act
	handler := NewHandler(stubPinger{}, log, middleware)

	// Assert
	assert.NotNil(t, handler)
	assert.NotNil(t, handler.storage)
	assert.NotNil(t, handler.log)
	assert.NotNil(t, handler.middleware)
}
