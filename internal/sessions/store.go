// Package sessions реализует cookie-сессии администратора поверх
// gorilla/sessions. Store создается при старте и передается обработчикам
// явно, без глобального состояния.
package sessions

import (
	"crypto/sha256"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	sessionName   = "admin_session"
	adminEmailKey = "admin_email"
)

// Store обертка над cookie-хранилищем сессий администратора.
type Store struct {
	store *sessions.CookieStore
}

// New создает Store с ключами подписи и шифрования, выведенными из секрета.
func New(secret string, secure bool) *Store {
	authKey := sha256.Sum256([]byte("auth:" + secret))
	encKey := sha256.Sum256([]byte("enc:" + secret))

	store := sessions.NewCookieStore(authKey[:], encKey[:])
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	}
	return &Store{store: store}
}

// SetAdmin записывает email администратора в сессию и выставляет cookie.
func (s *Store) SetAdmin(w http.ResponseWriter, r *http.Request, email string) error {
	const op = "sessions.SetAdmin"

	session, err := s.store.Get(r, sessionName)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	session.Values[adminEmailKey] = email
	if err = session.Save(r, w); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// AdminEmail возвращает email администратора из сессии, если тот вошел.
func (s *Store) AdminEmail(r *http.Request) (string, bool) {
	session, err := s.store.Get(r, sessionName)
	if err != nil {
		return "", false
	}
	email, ok := session.Values[adminEmailKey].(string)
	if !ok || email == "" {
		return "", false
	}
	return email, true
}

// Clear удаляет идентичность администратора из сессии.
func (s *Store) Clear(w http.ResponseWriter, r *http.Request) error {
	const op = "sessions.Clear"

	session, err := s.store.Get(r, sessionName)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	delete(session.Values, adminEmailKey)
	if err = session.Save(r, w); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
