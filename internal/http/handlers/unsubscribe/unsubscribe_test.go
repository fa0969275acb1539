package unsubscribe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/blog-newsletter/internal/render"
	"github.com/magabrotheeeer/blog-newsletter/internal/services/subscription"
)

type MockService struct{ mock.Mock }

func (m *MockService) Unsubscribe(ctx context.Context, subscriptionToken string) error {
	return m.Called(ctx, subscriptionToken).Error(0)
}

func newTestRegistry(t *testing.T) *render.Registry {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "delete_subscription.html"),
		[]byte(`you are unsubscribed`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "error_500.html"),
		[]byte(`internal error`), 0o644))
	registry, err := render.NewRegistry(dir)
	require.NoError(t, err)
	return registry
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestUnsubscribeHandler(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(m *MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success",
			setupMock: func(m *MockService) {
				m.On("Unsubscribe", mock.Anything, "sometoken").Return(nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "you are unsubscribed",
		},
		{
			// отсутствующий токен показывает ту же нейтральную страницу
			name: "unknown token still shows the unsubscribe page",
			setupMock: func(m *MockService) {
				m.On("Unsubscribe", mock.Anything, "sometoken").
					Return(fmt.Errorf("wrapped: %w", subscription.ErrTokenNotFound)).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "you are unsubscribed",
		},
		{
			name: "storage error yields 500",
			setupMock: func(m *MockService) {
				m.On("Unsubscribe", mock.Anything, "sometoken").
					Return(errors.New("db down")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(newNoopLogger(), mockService, newTestRegistry(t))

			req := httptest.NewRequest(http.MethodGet, "/subscribe/delete?token=sometoken", nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
