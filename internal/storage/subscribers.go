package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/blog-newsletter/internal/models"
)

// SubscriberExists проверяет, есть ли уже подписчик с данным email.
func (s *Storage) SubscriberExists(ctx context.Context, email string) (bool, error) {
	const op = "storage.SubscriberExists"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT EXISTS(SELECT 1 FROM subscriptions WHERE email = $1)`
	var exists bool
	if err := s.DB.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// CreateSubscriber вставляет запись подписчика и его токен подтверждения
// в одной транзакции: частично созданный подписчик без токена невозможен.
func (s *Storage) CreateSubscriber(ctx context.Context, sub models.Subscriber, subscriptionToken string) error {
	const op = "storage.CreateSubscriber"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `INSERT INTO subscriptions (id, email, referer, subscribed_at, is_verified, delivery_status)
			  VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err = tx.ExecContext(ctx, query,
		sub.ID, sub.Email, sub.Referer, sub.SubscribedAt, sub.IsVerified, sub.DeliveryStatus); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query = `INSERT INTO subscription_token (subscription_token, subscription_id)
			 VALUES ($1, $2)`
	if _, err = tx.ExecContext(ctx, query, subscriptionToken, sub.ID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// FindSubscriberIDByToken возвращает ID подписчика по токену подтверждения.
// Отсутствующий токен — ErrTokenNotFound.
func (s *Storage) FindSubscriberIDByToken(ctx context.Context, subscriptionToken string) (uuid.UUID, error) {
	const op = "storage.FindSubscriberIDByToken"
	select {
	case <-ctx.Done():
		return uuid.Nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT subscription_id FROM subscription_token WHERE subscription_token = $1`
	var id uuid.UUID
	if err := s.DB.QueryRowContext(ctx, query, subscriptionToken).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, fmt.Errorf("%s: %w", op, ErrTokenNotFound)
		}
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// MarkSubscriberVerified атомарно переводит подписчика в состояние Verified.
// Возвращает false, если подписчик уже был подтверждён: условие
// is_verified = false в самом запросе закрывает гонку двух параллельных
// подтверждений одного токена.
func (s *Storage) MarkSubscriberVerified(ctx context.Context, id uuid.UUID) (bool, error) {
	const op = "storage.MarkSubscriberVerified"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions SET is_verified = true
			  WHERE id = $1 AND is_verified = false`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected > 0, nil
}

// DeleteSubscriber удаляет токен и запись подписчика в одной транзакции.
func (s *Storage) DeleteSubscriber(ctx context.Context, id uuid.UUID) error {
	const op = "storage.DeleteSubscriber"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM subscription_token WHERE subscription_id = $1`, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM subscriptions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateDeliveryStatus фиксирует результат отправки письма с подтверждением.
func (s *Storage) UpdateDeliveryStatus(ctx context.Context, id uuid.UUID, status string) error {
	const op = "storage.UpdateDeliveryStatus"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions SET delivery_status = $1 WHERE id = $2`
	if _, err := s.DB.ExecContext(ctx, query, status, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListSubscribers возвращает подписчиков с пагинацией, новые первыми.
func (s *Storage) ListSubscribers(ctx context.Context, limit, offset int) ([]*models.Subscriber, error) {
	const op = "storage.ListSubscribers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, email, referer, subscribed_at, is_verified, delivery_status
			  FROM subscriptions
			  ORDER BY subscribed_at DESC
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Subscriber
	for rows.Next() {
		var sub models.Subscriber
		if err = rows.Scan(&sub.ID, &sub.Email, &sub.Referer, &sub.SubscribedAt,
			&sub.IsVerified, &sub.DeliveryStatus); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &sub)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountSubscribers возвращает общее количество подписчиков.
func (s *Storage) CountSubscribers(ctx context.Context) (int, error) {
	const op = "storage.CountSubscribers"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM subscriptions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
