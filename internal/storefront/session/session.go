package session

import (
	"errors"
	"fmt"
	"strings"
)

const userKey = "user"

var ErrEmptyIdentity = errors.New("identity must not be empty")

type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// Session holds the storefront's identity marker. Any non-empty identity
// counts as logged in; there is no password, token, or expiry.
type Session struct {
	storage  Storage
	identity string
}

func Load(storage Storage) *Session {
	identity, _ := storage.Get(userKey)
	return &Session{
		storage:  storage,
		identity: identity,
	}
}

func (s *Session) Login(identity string) error {
	const op = "session.Login"

	identity = strings.TrimSpace(identity)
	if identity == "" {
		return fmt.Errorf("%s: %w", op, ErrEmptyIdentity)
	}

	if err := s.storage.Set(userKey, identity); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.identity = identity
	return nil
}

func (s *Session) Logout() error {
	const op = "session.Logout"

	if err := s.storage.Delete(userKey); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.identity = ""
	return nil
}

func (s *Session) Identity() string {
	return s.identity
}

func (s *Session) LoggedIn() bool {
	return s.identity != ""
}
