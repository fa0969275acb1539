package subscribe

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/blog-newsletter/internal/render"
	"github.com/magabrotheeeer/blog-newsletter/internal/services/subscription"
)

const allowedOrigin = "https://blog.example.com"

type MockService struct{ mock.Mock }

func (m *MockService) Subscribe(ctx context.Context, email, referer string) (string, error) {
	args := m.Called(ctx, email, referer)
	return args.String(0), args.Error(1)
}

func newTestRegistry(t *testing.T) *render.Registry {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "subscribe_response.html"),
		[]byte(`{{if .HasError}}error: {{.ErrorMsg}}{{else}}check your inbox{{end}}`), 0o644))
	registry, err := render.NewRegistry(dir)
	require.NoError(t, err)
	return registry
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestSubscribeHandler(t *testing.T) {
	tests := []struct {
		name         string
		origin       string
		referer      string
		form         string
		setupMock    func(m *MockService)
		expectedBody string
	}{
		{
			name:    "success",
			origin:  allowedOrigin,
			referer: allowedOrigin + "/",
			form:    "email=reader%40example.com&referer=home",
			setupMock: func(m *MockService) {
				m.On("Subscribe", mock.Anything, "reader@example.com", "home").
					Return("sometoken", nil).Once()
			},
			expectedBody: "check your inbox",
		},
		{
			name:         "wrong origin is rejected before the service is called",
			origin:       "https://evil.example.com",
			referer:      allowedOrigin + "/",
			form:         "email=reader%40example.com",
			setupMock:    func(_ *MockService) {},
			expectedBody: "Something went wrong",
		},
		{
			name:         "missing origin is rejected",
			origin:       "",
			referer:      allowedOrigin + "/",
			form:         "email=reader%40example.com",
			setupMock:    func(_ *MockService) {},
			expectedBody: "Something went wrong",
		},
		{
			name:         "foreign referer is rejected",
			origin:       allowedOrigin,
			referer:      "https://evil.example.com/page",
			form:         "email=reader%40example.com",
			setupMock:    func(_ *MockService) {},
			expectedBody: "Something went wrong",
		},
		{
			name:    "invalid email",
			origin:  allowedOrigin,
			referer: allowedOrigin + "/",
			form:    "email=not-an-email&referer=home",
			setupMock: func(m *MockService) {
				m.On("Subscribe", mock.Anything, "not-an-email", "home").
					Return("", subscription.ErrInvalidEmail).Once()
			},
			expectedBody: "Please provide a valid email address",
		},
		{
			name:    "duplicate email",
			origin:  allowedOrigin,
			referer: allowedOrigin + "/",
			form:    "email=reader%40example.com&referer=home",
			setupMock: func(m *MockService) {
				m.On("Subscribe", mock.Anything, "reader@example.com", "home").
					Return("", subscription.ErrAlreadySubscribed).Once()
			},
			expectedBody: "Email already registered",
		},
		{
			name:    "confirmation email failure shows generic error",
			origin:  allowedOrigin,
			referer: allowedOrigin + "/",
			form:    "email=reader%40example.com&referer=home",
			setupMock: func(m *MockService) {
				m.On("Subscribe", mock.Anything, "reader@example.com", "home").
					Return("sometoken", subscription.ErrConfirmationNotSent).Once()
			},
			expectedBody: "Something went wrong",
		},
		{
			name:    "internal error shows generic error",
			origin:  allowedOrigin,
			referer: allowedOrigin + "/",
			form:    "email=reader%40example.com&referer=home",
			setupMock: func(m *MockService) {
				m.On("Subscribe", mock.Anything, "reader@example.com", "home").
					Return("", errors.New("db down")).Once()
			},
			expectedBody: "Something went wrong",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(newNoopLogger(), mockService, newTestRegistry(t), allowedOrigin)

			req := httptest.NewRequest(http.MethodPost, "/subscribe", strings.NewReader(tt.form))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			req.Header.Set("Referer", tt.referer)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			// все ответы формы идут со статусом 200, фрагмент встраивается в страницу
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
