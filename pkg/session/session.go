// Package session - общее для всех компонентов хранилище текущей сессии
// (токен + пользователь) с явными Get/Set/Subscribe/Invalidate.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

var ErrNoSession = errors.New("session: no active session")

// Keys - имена двух значений сессии в хранилище.
type Keys struct {
	Token string
	User  string
}

var (
	StorefrontKeys = Keys{Token: "auth_token", User: "user"}
	AdminKeys      = Keys{Token: "admin_token", User: "admin_user"}
)

type Session struct {
	Token string          `json:"token"`
	User  json.RawMessage `json:"user,omitempty"`
}

// DecodeUser разбирает сохраненного пользователя в тип конкретного приложения.
func (s Session) DecodeUser(dst any) error {
	if len(s.User) == 0 {
		return ErrNoSession
	}
	return json.Unmarshal(s.User, dst)
}

const EventAuthChange = "auth-change"

// Причины изменения сессии.
const (
	ReasonLogin         = "login"
	ReasonLogout        = "logout"
	ReasonProfileUpdate = "profile-update"
	ReasonUnauthorized  = "unauthorized"
	ReasonExpired       = "expired"
)

type Event struct {
	SessionID string    `json:"session_id"`
	Type      string    `json:"type"`
	Reason    string    `json:"reason"`
	At        time.Time `json:"at"`
}

// Backend хранит значения сессии. Load для неизвестной сессии возвращает пустую карту.
type Backend interface {
	Load(ctx context.Context, sessionID string) (map[string]string, error)
	Save(ctx context.Context, sessionID string, values map[string]string, ttl time.Duration) error
	Delete(ctx context.Context, sessionID string) error
}

// Broadcaster доставляет события всем экземплярам сервиса, включая текущий.
type Broadcaster interface {
	Publish(ctx context.Context, ev Event) error
}

type Store interface {
	Get(ctx context.Context, sessionID string) (Session, error)
	Set(ctx context.Context, sessionID string, s Session, reason string) error
	Invalidate(ctx context.Context, sessionID string, reason string) error
	Subscribe(sessionID string) (<-chan Event, func())
}
