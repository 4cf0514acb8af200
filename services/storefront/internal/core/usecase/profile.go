package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dendisuhubdy/mybalivillas/pkg/contextkeys"
	"github.com/dendisuhubdy/mybalivillas/pkg/session"
	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/domain"
	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/port"
)

type GetProfileUseCase struct {
	api   port.MarketplaceAPIPort
	guard *SessionGuard
}

func NewGetProfileUseCase(api port.MarketplaceAPIPort, guard *SessionGuard) *GetProfileUseCase {
	return &GetProfileUseCase{api: api, guard: guard}
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, sessionID string) (*domain.User, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "GetProfile"})

	auth, err := uc.guard.require(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	user, err := uc.api.GetProfile(ctx, auth.Token)
	if err != nil {
		ucLogger.Error("Failed to load profile", err, nil)
		uc.guard.onUpstreamError(ctx, sessionID, err)
		return nil, err
	}
	return user, nil
}

type UpdateProfileUseCase struct {
	api       port.MarketplaceAPIPort
	store     port.SessionStorePort
	guard     *SessionGuard
	validator port.FormValidatorPort
}

func NewUpdateProfileUseCase(api port.MarketplaceAPIPort, store port.SessionStorePort, guard *SessionGuard, validator port.FormValidatorPort) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{api: api, store: store, guard: guard, validator: validator}
}

// Execute сохраняет профиль и обновляет пользователя в сессии, оповещая подписчиков.
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, sessionID string, upd domain.ProfileUpdate) (*domain.User, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "UpdateProfile"})

	if err := uc.validator.Struct(upd); err != nil {
		return nil, err
	}
	auth, err := uc.guard.require(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	updated, err := uc.api.UpdateProfile(ctx, auth.Token, upd)
	if err != nil {
		ucLogger.Error("Failed to update profile", err, nil)
		uc.guard.onUpstreamError(ctx, sessionID, err)
		return nil, err
	}

	merged := domain.ProfileUpdate{
		FullName:  updated.DisplayName(),
		Phone:     updated.Phone,
		AvatarURL: updated.AvatarURL,
	}.ApplyTo(auth.User)
	raw, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("failed to encode user: %w", err)
	}
	if err := uc.store.Set(ctx, sessionID, session.Session{Token: auth.Token, User: raw}, session.ReasonProfileUpdate); err != nil {
		ucLogger.Error("Failed to store updated user", err, nil)
		return nil, err
	}

	ucLogger.Info("Profile updated", port.Fields{"user_id": merged.ID})
	return updated, nil
}
