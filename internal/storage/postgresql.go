// Package storage реализует хранилище данных на основе PostgreSQL
// для подписчиков рассылки, их токенов подтверждения и администратора.
// Каждый метод — одиночный параметризованный запрос; многошаговые
// логические операции (создание и удаление подписчика) выполняются
// в одной транзакции.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// ErrTokenNotFound возвращается, когда токен подтверждения отсутствует в базе.
var ErrTokenNotFound = errors.New("subscription token not found")

// ErrUserNotFound возвращается, когда пользователь с данным email отсутствует.
var ErrUserNotFound = errors.New("user not found")

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}
