package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/dendisuhubdy/mybalivillas/pkg/authtoken"
	"github.com/dendisuhubdy/mybalivillas/pkg/contextkeys"
	"github.com/dendisuhubdy/mybalivillas/pkg/session"
	"github.com/dendisuhubdy/mybalivillas/services/admin-panel/internal/core/domain"
	"github.com/dendisuhubdy/mybalivillas/services/admin-panel/internal/core/port"
)

// SessionGuard выдает токен администратора для вызова API и сбрасывает сессию,
// если токен истек, принадлежит не администратору или API ответил 401.
type SessionGuard struct {
	store     port.SessionStorePort
	inspector port.TokenInspectorPort
	strict    bool
	onEnd     []func(sessionID string)
}

func NewSessionGuard(store port.SessionStorePort, inspector port.TokenInspectorPort, strict bool) *SessionGuard {
	return &SessionGuard{store: store, inspector: inspector, strict: strict}
}

type authorized struct {
	Token string
	User  domain.AdminUser
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

	auth := &authorized{Token: s.Token}
	if err := s.DecodeUser(&auth.User); err != nil && !errors.Is(err, session.ErrNoSession) {
		log.Warn("Stored admin_user record is malformed", port.Fields{"error": err.Error()})
	}
	if g.inspector == nil {
		return auth, nil
	}

	claims, err := g.inspector.Inspect(s.Token)
	switch {
	case errors.Is(err, authtoken.ErrTokenExpired):
		log.Info("Admin token has expired, dropping session", nil)
		g.drop(ctx, sessionID, session.ReasonExpired)
		return nil, domain.ErrLoginRequired
	case err != nil && g.strict:
		log.Warn("Admin token failed verification, dropping session", port.Fields{"error": err.Error()})
		g.drop(ctx, sessionID, session.ReasonUnauthorized)
		return nil, domain.ErrUnauthorized
	case err == nil && claims.Role != "" && !claims.HasRole(string(domain.RoleAdmin), string(domain.RoleSuperAdmin)):
		log.Warn("Token does not belong to an administrator, dropping session", port.Fields{"role": claims.Role})
		g.drop(ctx, sessionID, session.ReasonUnauthorized)
		return nil, domain.ErrUnauthorized
	}
	return auth, nil
}

// fail сбрасывает сессию на любой 401 от API и возвращает исходную ошибку.
func (g *SessionGuard) fail(ctx context.Context, sessionID string, err error) error {
	if errors.Is(err, domain.ErrUnauthorized) {
		g.drop(ctx, sessionID, session.ReasonUnauthorized)
	}
	return err
}

// OnSessionEnd регистрирует сброс данных, запомненных для сессии; вызывается,
// когда охранник сам завершает сессию (истекший токен, 401 от API).
func (g *SessionGuard) OnSessionEnd(forget ...func(sessionID string)) {
	g.onEnd = append(g.onEnd, forget...)
}

func (g *SessionGuard) drop(ctx context.Context, sessionID, reason string) {
	if err := g.store.Invalidate(ctx, sessionID, reason); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to invalidate admin session", err, port.Fields{"reason": reason})
	}
	for _, f := range g.onEnd {
		f(sessionID)
	}
}
