package logout

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockStore struct{ mock.Mock }

func (m *MockStore) Clear(w http.ResponseWriter, r *http.Request) error {
	return m.Called(w, r).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestLogoutHandler(t *testing.T) {
	t.Run("clears session and redirects home", func(t *testing.T) {
		store := new(MockStore)
		store.On("Clear", mock.Anything, mock.Anything).Return(nil).Once()

		handler := New(newNoopLogger(), store)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/logout", nil))

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))

		store.AssertExpectations(t)
	})

	t.Run("redirects even when clearing fails", func(t *testing.T) {
		store := new(MockStore)
		store.On("Clear", mock.Anything, mock.Anything).Return(errors.New("bad cookie")).Once()

		handler := New(newNoopLogger(), store)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/logout", nil))

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
	})
}
