package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/dendisuhubdy/mybalivillas/pkg/authtoken"
	"github.com/dendisuhubdy/mybalivillas/pkg/contextkeys"
	"github.com/dendisuhubdy/mybalivillas/pkg/session"
	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/domain"
	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/port"
)

// SessionGuard достает токен и пользователя из сессии и отбрасывает истекшие токены.
type SessionGuard struct {
	store     port.SessionStorePort
	inspector port.TokenInspectorPort
	// strict: неразбираемый токен тоже считается выходом из системы (задан JWT_SECRET).
	strict bool
	onEnd  []func(sessionID string)
}

func NewSessionGuard(store port.SessionStorePort, inspector port.TokenInspectorPort, strict bool) *SessionGuard {
	return &SessionGuard{store: store, inspector: inspector, strict: strict}
}

type authorized struct {
	Token string
	User  domain.User
	Role  domain.Role
}

func (g *SessionGuard) require(ctx context.Context, sessionID string) (*authorized, error) {
	log := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"component": "SessionGuard"})

	s, err := g.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return nil, domain.ErrLoginRequired
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var user domain.User
	if err := s.DecodeUser(&user); err != nil && !errors.Is(err, session.ErrNoSession) {
		log.Warn("Stored user record is malformed", port.Fields{"error": err.Error()})
	}
	if user.Role == "" {
		user.Role = domain.RoleUser
	}

	auth := &authorized{Token: s.Token, User: user, Role: user.Role}
	if g.inspector == nil {
		return auth, nil
	}

	claims, err := g.inspector.Inspect(s.Token)
	switch {
	case err == nil:
		if claims.Role != "" {
			auth.Role = domain.Role(claims.Role)
		}
	case errors.Is(err, authtoken.ErrTokenExpired):
		log.Info("Stored token has expired, dropping session", nil)
		g.drop(ctx, sessionID, session.ReasonExpired)
		return nil, domain.ErrLoginRequired
	case g.strict:
		log.Warn("Stored token failed verification, dropping session", port.Fields{"error": err.Error()})
		g.drop(ctx, sessionID, session.ReasonUnauthorized)
		return nil, domain.ErrLoginRequired
	}
	return auth, nil
}

// onUpstreamError сбрасывает сессию, если API ответил 401.
func (g *SessionGuard) onUpstreamError(ctx context.Context, sessionID string, err error) {
	if errors.Is(err, domain.ErrUnauthorized) {
		g.drop(ctx, sessionID, session.ReasonUnauthorized)
	}
}

// OnSessionEnd регистрирует сброс данных, запомненных для сессии; вызывается,
// когда охранник сам завершает сессию (истекший токен, 401 от API).
func (g *SessionGuard) OnSessionEnd(forget ...func(sessionID string)) {
	g.onEnd = append(g.onEnd, forget...)
}

func (g *SessionGuard) drop(ctx context.Context, sessionID, reason string) {
	if err := g.store.Invalidate(ctx, sessionID, reason); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to invalidate session", err, port.Fields{"reason": reason})
	}
	for _, f := range g.onEnd {
		f(sessionID)
	}
}
