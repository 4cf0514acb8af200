package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dendisuhubdy/mybalivillas/pkg/contextkeys"
	"github.com/dendisuhubdy/mybalivillas/pkg/session"
	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/domain"
	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/port"
)

type LoginUseCase struct {
	api       port.MarketplaceAPIPort
	store     port.SessionStorePort
	validator port.FormValidatorPort
	forget    []func(sessionID string)
}

// forget сбрасывают данные прежнего пользователя этой сессии.
func NewLoginUseCase(api port.MarketplaceAPIPort, store port.SessionStorePort, validator port.FormValidatorPort, forget ...func(sessionID string)) *LoginUseCase {
	return &LoginUseCase{api: api, store: store, validator: validator, forget: forget}
}

func (uc *LoginUseCase) Execute(ctx context.Context, sessionID string, req domain.LoginRequest) (*domain.User, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "Login"})

	if err := uc.validator.Struct(req); err != nil {
		return nil, err
	}
	res, err := uc.api.Login(ctx, req)
	if err != nil {
		ucLogger.Warn("Login rejected by API", port.Fields{"error": err.Error()})
		return nil, err
	}
	if err := storeAuth(ctx, uc.store, sessionID, res, session.ReasonLogin); err != nil {
		ucLogger.Error("Failed to store session", err, nil)
		return nil, err
	}
	forgetSession(uc.forget, sessionID)

	ucLogger.Info("User logged in", port.Fields{"user_id": res.User.ID, "role": res.User.Role})
	return &res.User, nil
}

type RegisterUseCase struct {
	api       port.MarketplaceAPIPort
	store     port.SessionStorePort
	validator port.FormValidatorPort
	forget    []func(sessionID string)
}

// forget сбрасывают данные прежнего пользователя этой сессии.
func NewRegisterUseCase(api port.MarketplaceAPIPort, store port.SessionStorePort, validator port.FormValidatorPort, forget ...func(sessionID string)) *RegisterUseCase {
	return &RegisterUseCase{api: api, store: store, validator: validator, forget: forget}
}

func (uc *RegisterUseCase) Execute(ctx context.Context, sessionID string, req domain.RegisterRequest) (*domain.User, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "Register"})

	if err := uc.validator.Struct(req); err != nil {
		return nil, err
	}
	res, err := uc.api.Register(ctx, req)
	if err != nil {
		ucLogger.Warn("Registration rejected by API", port.Fields{"error": err.Error()})
		return nil, err
	}
	if err := storeAuth(ctx, uc.store, sessionID, res, session.ReasonLogin); err != nil {
		ucLogger.Error("Failed to store session", err, nil)
		return nil, err
	}
	forgetSession(uc.forget, sessionID)

	ucLogger.Info("User registered", port.Fields{"user_id": res.User.ID})
	return &res.User, nil
}

func storeAuth(ctx context.Context, store port.SessionStorePort, sessionID string, res *domain.AuthResult, reason string) error {
	user, err := json.Marshal(res.User)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	return store.Set(ctx, sessionID, session.Session{Token: res.Token, User: user}, reason)
}

type LogoutUseCase struct {
	store  port.SessionStorePort
	forget []func(sessionID string)
}

// forget вызываются после выхода: сбрасывают данные, запомненные для сессии.
func NewLogoutUseCase(store port.SessionStorePort, forget ...func(sessionID string)) *LogoutUseCase {
	return &LogoutUseCase{store: store, forget: forget}
}

func (uc *LogoutUseCase) Execute(ctx context.Context, sessionID string) error {
	if err := uc.store.Invalidate(ctx, sessionID, session.ReasonLogout); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to invalidate session on logout", err, nil)
		return err
	}
	forgetSession(uc.forget, sessionID)
	return nil
}

func forgetSession(forget []func(sessionID string), sessionID string) {
	for _, f := range forget {
		f(sessionID)
	}
}

type CurrentSessionUseCase struct {
	guard *SessionGuard
}

func NewCurrentSessionUseCase(guard *SessionGuard) *CurrentSessionUseCase {
	return &CurrentSessionUseCase{guard: guard}
}

func (uc *CurrentSessionUseCase) Execute(ctx context.Context, sessionID string) (*domain.CurrentSession, error) {
	auth, err := uc.guard.require(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, domain.ErrLoginRequired) {
			contextkeys.LoggerFromContext(ctx).Error("Failed to read session", err, nil)
		}
		return nil, err
	}
	return &domain.CurrentSession{User: auth.User, Role: auth.Role}, nil
}
