// Package models содержит структуры данных, общие для всех слоёв приложения:
// подписчики рассылки, токены подтверждения, администратор и метаданные статей.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Статусы доставки письма с подтверждением подписки.
const (
	// DeliveryPending — письмо ещё не отправлялось.
	DeliveryPending = "pending"
	// DeliverySent — письмо успешно принято почтовым API.
	DeliverySent = "sent"
	// DeliveryFailed — отправка завершилась ошибкой; запись остаётся в состоянии Pending.
	DeliveryFailed = "failed"
)

// Subscriber представляет запись подписчика рассылки.
// Создается в состоянии Pending (IsVerified = false), переводится
// в Verified ровно один раз и удаляется целиком вместе со своим токеном.
type Subscriber struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Referer        string    `json:"referer"`
	SubscribedAt   time.Time `json:"subscribed_at"`
	IsVerified     bool      `json:"is_verified"`
	DeliveryStatus string    `json:"delivery_status"`
}

// User представляет администратора панели управления.
type User struct {
	ID             uuid.UUID
	Email          string
	HashedPassword string
}

// FrontMatter содержит метаданные статьи из article_frontmatter.toml.
// Поля не сохраняются в базе: они читаются с диска при каждом запросе.
type FrontMatter struct {
	Title                string   `toml:"title" json:"title"`
	FileName             string   `toml:"file_name" json:"file_name"`
	Description          string   `toml:"description" json:"description"`
	Posted               string   `toml:"posted" json:"posted"`
	Thumbnail            string   `toml:"thumbnail" json:"thumbnail"`
	Tags                 []string `toml:"tags" json:"tags"`
	Author               string   `toml:"author" json:"author"`
	EstimatedReadingTime uint     `toml:"estimated_reading_time" json:"estimated_reading_time"`
	Order                uint     `toml:"order" json:"order"`
}
