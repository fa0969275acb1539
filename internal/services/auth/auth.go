// Package auth содержит бизнес-логику аутентификации администратора:
// проверку учетных данных при входе и создание администратора при старте.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/blog-newsletter/internal/lib/password"
	"github.com/magabrotheeeer/blog-newsletter/internal/models"
	"github.com/magabrotheeeer/blog-newsletter/internal/storage"
)

// ErrInvalidCredentials возвращается при неверном email или пароле.
// Две причины неразличимы снаружи намеренно.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Repository определяет методы хранилища для работы с пользователями.
type Repository interface {
	// UserExists проверяет наличие пользователя с данным email.
	UserExists(ctx context.Context, email string) (bool, error)
	// CreateUser сохраняет нового пользователя.
	CreateUser(ctx context.Context, user models.User) error
	// FindUserByEmail возвращает пользователя по email.
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Service реализует аутентификацию администратора.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает Service с переданным хранилищем.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Login проверяет учетные данные и возвращает пользователя.
func (s *Service) Login(ctx context.Context, email, plainPassword string) (*models.User, error) {
	const op = "auth.Login"

	user, err := s.repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = password.CompareHash(user.HashedPassword, plainPassword); err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	return user, nil
}

// EnsureAdmin создает администратора при старте, если его еще нет.
// Работающая система пользователей не обновляет и не удаляет.
func (s *Service) EnsureAdmin(ctx context.Context, email, plainPassword string) error {
	const op = "auth.EnsureAdmin"

	exists, err := s.repo.UserExists(ctx, email)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		return nil
	}

	hash, err := password.GetHash(plainPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = s.repo.CreateUser(ctx, models.User{
		ID:             uuid.New(),
		Email:          email,
		HashedPassword: hash,
	}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("admin user created", slog.String("email", email))
	return nil
}
