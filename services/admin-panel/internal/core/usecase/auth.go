package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dendisuhubdy/mybalivillas/pkg/contextkeys"
	"github.com/dendisuhubdy/mybalivillas/pkg/session"
	"github.com/dendisuhubdy/mybalivillas/services/admin-panel/internal/core/domain"
	"github.com/dendisuhubdy/mybalivillas/services/admin-panel/internal/core/port"
)

type LoginUseCase struct {
	api       port.AdminAPIPort
	store     port.SessionStorePort
	validator port.FormValidatorPort
}

func NewLoginUseCase(api port.AdminAPIPort, store port.SessionStorePort, validator port.FormValidatorPort) *LoginUseCase {
	return &LoginUseCase{api: api, store: store, validator: validator}
}

// Execute сохраняет admin_token и admin_user в сессии.
func (uc *LoginUseCase) Execute(ctx context.Context, sessionID string, req domain.LoginRequest) (*domain.AdminUser, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "AdminLogin"})
	ucLogger.Info("Use case started", nil)

	if err := uc.validator.Struct(req); err != nil {
		return nil, err
	}
	res, err := uc.api.Login(ctx, req)
	if err != nil {
		ucLogger.Warn("Login rejected by admin API", port.Fields{"error": err.Error()})
		return nil, err
	}
	if !res.User.Role.CanAccessAdmin() {
		ucLogger.Warn("Non-admin user tried to log in", port.Fields{"user_id": res.User.ID, "role": res.User.Role})
		return nil, domain.ErrForbidden
	}

	user, err := json.Marshal(res.User)
	if err != nil {
		return nil, fmt.Errorf("failed to encode admin user: %w", err)
	}
	if err := uc.store.Set(ctx, sessionID, session.Session{Token: res.Token, User: user}, session.ReasonLogin); err != nil {
		ucLogger.Error("Failed to store admin session", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"user_id": res.User.ID})
	return &res.User, nil
}

type LogoutUseCase struct {
	api    port.AdminAPIPort
	store  port.SessionStorePort
	forget []func(sessionID string)
}

func NewLogoutUseCase(api port.AdminAPIPort, store port.SessionStorePort, forget ...func(sessionID string)) *LogoutUseCase {
	return &LogoutUseCase{api: api, store: store, forget: forget}
}

// Execute: ошибка API при выходе не мешает сбросить локальную сессию.
func (uc *LogoutUseCase) Execute(ctx context.Context, sessionID string) error {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "AdminLogout"})

	s, err := uc.store.Get(ctx, sessionID)
	switch {
	case err == nil && s.Token != "":
		if err := uc.api.Logout(ctx, s.Token); err != nil {
			ucLogger.Warn("Admin API logout failed", port.Fields{"error": err.Error()})
		}
	case err != nil && !errors.Is(err, session.ErrNoSession):
		ucLogger.Error("Failed to load admin session", err, nil)
	}

	if err := uc.store.Invalidate(ctx, sessionID, session.ReasonLogout); err != nil {
		ucLogger.Error("Failed to invalidate admin session", err, nil)
		return err
	}
	for _, f := range uc.forget {
		f(sessionID)
	}
	ucLogger.Info("Admin logged out", nil)
	return nil
}

type CurrentSessionUseCase struct {
	guard *SessionGuard
}

func NewCurrentSessionUseCase(guard *SessionGuard) *CurrentSessionUseCase {
	return &CurrentSessionUseCase{guard: guard}
}

func (uc *CurrentSessionUseCase) Execute(ctx context.Context, sessionID string) (*domain.AdminUser, error) {
	auth, err := uc.guard.require(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &auth.User, nil
}
