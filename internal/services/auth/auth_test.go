package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/blog-newsletter/internal/lib/password"
	"github.com/magabrotheeeer/blog-newsletter/internal/models"
	"github.com/magabrotheeeer/blog-newsletter/internal/storage"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) UserExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}
func (m *RepoMock) CreateUser(ctx context.Context, user models.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *RepoMock) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestService_Login(t *testing.T) {
	hash, err := password.GetHash("admin-password")
	require.NoError(t, err)
	admin := &models.User{Email: "admin@example.com", HashedPassword: hash}

	tests := []struct {
		name       string
		email      string
		password   string
		setupMocks func(r *RepoMock)
		wantErr    error
	}{
		{
			name:     "success",
			email:    "admin@example.com",
			password: "admin-password",
			setupMocks: func(r *RepoMock) {
				r.On("FindUserByEmail", mock.Anything, "admin@example.com").Return(admin, nil).Once()
			},
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "admin-password",
			setupMocks: func(r *RepoMock) {
				r.On("FindUserByEmail", mock.Anything, "nobody@example.com").
					Return(nil, storage.ErrUserNotFound).Once()
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "admin@example.com",
			password: "not-the-password",
			setupMocks: func(r *RepoMock) {
				r.On("FindUserByEmail", mock.Anything, "admin@example.com").Return(admin, nil).Once()
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "storage error is not invalid credentials",
			email:    "admin@example.com",
			password: "admin-password",
			setupMocks: func(r *RepoMock) {
				r.On("FindUserByEmail", mock.Anything, "admin@example.com").
					Return(nil, errors.New("db down")).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			svc := New(repo, newNoopLogger())

			tt.setupMocks(repo)

			user, err := svc.Login(context.Background(), tt.email, tt.password)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
			case tt.name == "success":
				assert.NoError(t, err)
				assert.Equal(t, admin, user)
			default:
				assert.Error(t, err)
				assert.NotErrorIs(t, err, ErrInvalidCredentials)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestService_EnsureAdmin(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(r *RepoMock)
		wantErr    bool
	}{
		{
			name: "creates admin when absent",
			setupMocks: func(r *RepoMock) {
				r.On("UserExists", mock.Anything, "admin@example.com").Return(false, nil).Once()
				r.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
					return u.Email == "admin@example.com" &&
						password.CompareHash(u.HashedPassword, "admin-password") == nil
				})).Return(nil).Once()
			},
		},
		{
			name: "no-op when admin exists",
			setupMocks: func(r *RepoMock) {
				r.On("UserExists", mock.Anything, "admin@example.com").Return(true, nil).Once()
			},
		},
		{
			name: "existence check error",
			setupMocks: func(r *RepoMock) {
				r.On("UserExists", mock.Anything, "admin@example.com").
					Return(false, errors.New("db down")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			svc := New(repo, newNoopLogger())

			tt.setupMocks(repo)

			err := svc.EnsureAdmin(context.Background(), "admin@example.com", "admin-password")
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			repo.AssertExpectations(t)
		})
	}
}
