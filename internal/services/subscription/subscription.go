// Package subscription содержит бизнес-логику жизненного цикла подписчика
// рассылки: Pending → Verified → (конец) либо Pending/Verified → Deleted.
// Других переходов нет; повторной отправки подтверждения и истечения
// токена не существует.
package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/blog-newsletter/internal/lib/sl"
	"github.com/magabrotheeeer/blog-newsletter/internal/lib/token"
	"github.com/magabrotheeeer/blog-newsletter/internal/metrics"
	"github.com/magabrotheeeer/blog-newsletter/internal/models"
	"github.com/magabrotheeeer/blog-newsletter/internal/render"
	"github.com/magabrotheeeer/blog-newsletter/internal/storage"
)

// ErrInvalidEmail возвращается при синтаксически некорректном email.
var ErrInvalidEmail = errors.New("invalid email")

// ErrAlreadySubscribed возвращается, когда email уже зарегистрирован,
// независимо от того, подтверждена подписка или нет.
var ErrAlreadySubscribed = errors.New("email already registered")

// ErrTokenNotFound возвращается, когда токен подтверждения не найден:
// подписчик либо никогда не существовал, либо уже удален.
var ErrTokenNotFound = errors.New("subscription token not found")

// ErrConfirmationNotSent возвращается, когда подписчик создан, но письмо
// с подтверждением отправить не удалось. Запись остается в состоянии
// Pending со статусом доставки failed, автоматических повторов нет.
var ErrConfirmationNotSent = errors.New("confirmation email not sent")

const confirmEmailSubject = "Thanks for subscribing to my newsletter!"

// Repository определяет методы хранилища для работы с подписчиками.
type Repository interface {
	// SubscriberExists проверяет наличие подписчика с данным email.
	SubscriberExists(ctx context.Context, email string) (bool, error)
	// CreateSubscriber сохраняет подписчика и его токен одной транзакцией.
	CreateSubscriber(ctx context.Context, sub models.Subscriber, subscriptionToken string) error
	// FindSubscriberIDByToken возвращает ID подписчика по токену.
	FindSubscriberIDByToken(ctx context.Context, subscriptionToken string) (uuid.UUID, error)
	// MarkSubscriberVerified атомарно подтверждает подписку, false — уже подтверждена.
	MarkSubscriberVerified(ctx context.Context, id uuid.UUID) (bool, error)
	// DeleteSubscriber удаляет токен и подписчика одной транзакцией.
	DeleteSubscriber(ctx context.Context, id uuid.UUID) error
	// UpdateDeliveryStatus фиксирует результат отправки письма с подтверждением.
	UpdateDeliveryStatus(ctx context.Context, id uuid.UUID, status string) error
	// ListSubscribers возвращает подписчиков с пагинацией.
	ListSubscribers(ctx context.Context, limit, offset int) ([]*models.Subscriber, error)
	// CountSubscribers возвращает общее количество подписчиков.
	CountSubscribers(ctx context.Context) (int, error)
}

// EmailSender описывает отправку HTML-письма через внешний почтовый API.
type EmailSender interface {
	Send(ctx context.Context, recipient, subject, htmlBody string) error
}

// Renderer описывает рендеринг страницы (здесь — тела письма) в HTML.
type Renderer interface {
	Render(page render.Page) (string, error)
}

// Service реализует операции жизненного цикла подписчика.
type Service struct {
	repo       Repository
	sender     EmailSender
	renderer   Renderer
	metrics    *metrics.Metrics
	log        *slog.Logger
	validate   *validator.Validate
	appBaseURL string
}

// New создает Service с переданными зависимостями.
func New(repo Repository, sender EmailSender, renderer Renderer, m *metrics.Metrics,
	log *slog.Logger, appBaseURL string) *Service {
	return &Service{
		repo:       repo,
		sender:     sender,
		renderer:   renderer,
		metrics:    m,
		log:        log,
		validate:   validator.New(),
		appBaseURL: appBaseURL,
	}
}

// Subscribe регистрирует новый email в состоянии Pending, выпускает токен
// подтверждения и отправляет письмо со ссылкой подтверждения.
// Возвращает выпущенный токен.
//
// Ошибка проверки существования прерывает операцию до вставки. Ошибка
// отправки письма не откатывает созданные строки: подписчик остается в
// Pending с delivery_status = failed.
func (s *Service) Subscribe(ctx context.Context, email, referer string) (string, error) {
	const op = "subscription.Subscribe"

	if err := s.validate.Var(email, "required,email"); err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	exists, err := s.repo.SubscriberExists(ctx, email)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		return "", fmt.Errorf("%s: %w", op, ErrAlreadySubscribed)
	}

	sub := models.Subscriber{
		ID:             uuid.New(),
		Email:          email,
		Referer:        referer,
		SubscribedAt:   time.Now().UTC(),
		IsVerified:     false,
		DeliveryStatus: models.DeliveryPending,
	}
	subscriptionToken := token.New()

	if err = s.repo.CreateSubscriber(ctx, sub, subscriptionToken); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	s.metrics.SubscribesTotal.Inc()
	s.log.Info("created pending subscriber", slog.String("id", sub.ID.String()))

	htmlBody, err := s.renderer.Render(render.ConfirmEmailPage(s.appBaseURL, subscriptionToken))
	if err != nil {
		s.markDeliveryFailed(ctx, sub.ID, err)
		return subscriptionToken, fmt.Errorf("%s: %w", op, ErrConfirmationNotSent)
	}

	if err = s.sender.Send(ctx, email, confirmEmailSubject, htmlBody); err != nil {
		s.markDeliveryFailed(ctx, sub.ID, err)
		return subscriptionToken, fmt.Errorf("%s: %w", op, ErrConfirmationNotSent)
	}

	if err = s.repo.UpdateDeliveryStatus(ctx, sub.ID, models.DeliverySent); err != nil {
		s.log.Warn("failed to update delivery status", sl.Err(err))
	}
	return subscriptionToken, nil
}

// Verify переводит подписчика в состояние Verified по токену.
// Повторный вызов с тем же токеном безопасен: возвращает
// alreadyVerified = true без изменения состояния.
func (s *Service) Verify(ctx context.Context, subscriptionToken string) (bool, error) {
	const op = "subscription.Verify"

	id, err := s.repo.FindSubscriberIDByToken(ctx, subscriptionToken)
	if err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			return false, fmt.Errorf("%s: %w", op, ErrTokenNotFound)
		}
		return false, fmt.Errorf("%s: %w", op, err)
	}

	changed, err := s.repo.MarkSubscriberVerified(ctx, id)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if changed {
		s.metrics.VerificationsTotal.Inc()
		s.log.Info("subscriber verified", slog.String("id", id.String()))
	}
	return !changed, nil
}

// Unsubscribe удаляет подписчика и его токен. Отсутствующий токен —
// ErrTokenNotFound: вызывающий трактует это как "уже удален".
func (s *Service) Unsubscribe(ctx context.Context, subscriptionToken string) error {
	const op = "subscription.Unsubscribe"

	id, err := s.repo.FindSubscriberIDByToken(ctx, subscriptionToken)
	if err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			return fmt.Errorf("%s: %w", op, ErrTokenNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = s.repo.DeleteSubscriber(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.metrics.UnsubscribesTotal.Inc()
	s.log.Info("subscriber deleted", slog.String("id", id.String()))
	return nil
}

// List возвращает подписчиков для панели управления.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*models.Subscriber, error) {
	const op = "subscription.List"

	result, err := s.repo.ListSubscribers(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// Count возвращает общее количество подписчиков.
func (s *Service) Count(ctx context.Context) (int, error) {
	const op = "subscription.Count"

	count, err := s.repo.CountSubscribers(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

func (s *Service) markDeliveryFailed(ctx context.Context, id uuid.UUID, cause error) {
	s.metrics.DeliveryFailuresTotal.Inc()
	s.log.Error("failed to deliver confirmation email", slog.String("id", id.String()), sl.Err(cause))
	if err := s.repo.UpdateDeliveryStatus(ctx, id, models.DeliveryFailed); err != nil {
		s.log.Warn("failed to update delivery status", sl.Err(err))
	}
}
