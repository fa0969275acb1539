// Package config предоставляет структуры и функцию для загрузки конфигурации
// приложения из переменных окружения.
package config

import (
	"fmt"
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек приложения.
type Config struct {
	Env         string `env:"APP_ENV" env-default:"dev"`
	PostsDir    string `env:"APP_POSTS_DIR" env-default:"./posts"`
	TemplateDir string `env:"APP_TEMPLATE_DIR" env-default:"./templates"`
	StaticDir   string `env:"APP_STATIC_DIR" env-default:"./static"`

	HTTPServer
	Database
	EmailClient
	Session
	Admin
}

// HTTPServer структура для настройки HTTP-сервера.
type HTTPServer struct {
	Host          string        `env:"APP_SERVER_HOST" env-default:"0.0.0.0"`
	Port          int           `env:"APP_SERVER_PORT" env-default:"8080"`
	BaseURL       string        `env:"APP_SERVER_BASE_URL" env-default:"http://localhost:8080"`
	AllowedOrigin string        `env:"APP_SERVER_ALLOWED_ORIGIN" env-default:"http://localhost:8080"`
	TimeoutHTTP   time.Duration `env:"APP_SERVER_TIMEOUT" env-default:"10s"`
	IdleTimeout   time.Duration `env:"APP_SERVER_IDLE_TIMEOUT" env-default:"60s"`
}

// Database структура для настройки подключения к PostgreSQL.
type Database struct {
	DBHost     string `env:"APP_DATABASE_HOST" env-default:"localhost"`
	DBPort     int    `env:"APP_DATABASE_PORT" env-default:"5432"`
	DBUser     string `env:"APP_DATABASE_USERNAME" env-default:"postgres"`
	DBPassword string `env:"APP_DATABASE_PASSWORD" env-default:"postgres"`
	DBName     string `env:"APP_DATABASE_NAME" env-default:"blog"`
	DBSSLMode  string `env:"APP_DATABASE_SSL_MODE" env-default:"disable"`
}

// EmailClient структура для настройки клиента почтового API.
type EmailClient struct {
	EmailAPIBaseURL string        `env:"APP_EMAIL_CLIENT_API_BASE_URL" env-default:"https://api.postmarkapp.com"`
	EmailSender     string        `env:"APP_EMAIL_CLIENT_SENDER" env-default:"newsletter@localhost"`
	EmailAuthToken  string        `env:"APP_EMAIL_CLIENT_AUTH_TOKEN"`
	EmailTimeout    time.Duration `env:"APP_EMAIL_CLIENT_TIMEOUT" env-default:"10s"`
}

// Session структура для настройки cookie-сессий администратора.
type Session struct {
	SessionSecret string `env:"APP_SESSION_SECRET" env-required:"true"`
	SessionSecure bool   `env:"APP_SESSION_SECURE" env-default:"false"`
}

// Admin учетные данные администратора, создаваемого при старте.
type Admin struct {
	AdminEmail    string `env:"APP_ADMIN_EMAIL" env-default:"admin@localhost"`
	AdminPassword string `env:"APP_ADMIN_PASSWORD" env-required:"true"`
}

// MustLoad загружает конфигурацию из переменных окружения.
// Завершает процесс при отсутствии обязательных значений.
func MustLoad() *Config {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}

// StorageConnectionString собирает строку подключения к PostgreSQL.
func (c *Config) StorageConnectionString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// Address возвращает адрес для прослушивания HTTP-сервером.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
