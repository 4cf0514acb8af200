package usecase

import (
	"context"
	"time"

	"github.com/dendisuhubdy/mybalivillas/pkg/contextkeys"
	"github.com/dendisuhubdy/mybalivillas/pkg/listing"
	"github.com/dendisuhubdy/mybalivillas/pkg/querycodec"
	"github.com/dendisuhubdy/mybalivillas/services/admin-panel/internal/core/domain"
	"github.com/dendisuhubdy/mybalivillas/services/admin-panel/internal/core/port"
)

type UsersUseCase struct {
	api       port.AdminAPIPort
	guard     *SessionGuard
	validator port.FormValidatorPort
	views     *tableViews[querycodec.UserFilters, domain.User]
}

func NewUsersUseCase(
	api port.AdminAPIPort,
	guard *SessionGuard,
	validator port.FormValidatorPort,
	onError listing.OnError,
	baseLogger port.LoggerPort,
) (*UsersUseCase, error) {
	views, err := newTableViews[querycodec.UserFilters, domain.User]("users", onError, api.ListUsers, baseLogger)
	if err != nil {
		return nil, err
	}
	return &UsersUseCase{api: api, guard: guard, validator: validator, views: views}, nil
}

// SweepViews удаляет представления таблицы, к которым не обращались дольше idle.
func (uc *UsersUseCase) SweepViews(idle time.Duration) int {
	return uc.views.Sweep(idle)
}

func (uc *UsersUseCase) List(ctx context.Context, sessionID string, filters querycodec.UserFilters) (*domain.UserList, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "ListUsers",
		"query":    querycodec.Encode(filters.Params()),
	})
	ucLogger.Info("Use case started", nil)

	state, err := uc.views.load(ctx, uc.guard, sessionID, filters.Page, filters.PerPage, filters)
	if err != nil {
		return &domain.UserList{Filters: filters, State: state}, err
	}
	ucLogger.Info("Use case finished successfully", port.Fields{"items": len(state.Page.Items)})
	return &domain.UserList{Filters: filters, State: state}, nil
}

func (uc *UsersUseCase) Create(ctx context.Context, sessionID string, req domain.UserCreate, filters querycodec.UserFilters) (*domain.UserList, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "CreateUser"})

	if err := uc.validator.Struct(req); err != nil {
		return nil, err
	}
	auth, err := uc.guard.require(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	u, err := uc.api.CreateUser(ctx, auth.Token, req)
	if err != nil {
		ucLogger.Error("Failed to create user", err, nil)
		return nil, uc.guard.fail(ctx, sessionID, err)
	}
	ucLogger.Info("User created", port.Fields{"user_id": u.ID, "role": u.Role})
	return uc.List(ctx, sessionID, filters)
}

func (uc *UsersUseCase) Update(ctx context.Context, sessionID, id string, req domain.UserUpdate, filters querycodec.UserFilters) (*domain.UserList, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "UpdateUser", "user_id": id})

	if err := uc.validator.Struct(req); err != nil {
		return nil, err
	}
	auth, err := uc.guard.require(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.api.UpdateUser(ctx, auth.Token, id, req); err != nil {
		ucLogger.Error("Failed to update user", err, nil)
		return nil, uc.guard.fail(ctx, sessionID, err)
	}
	return uc.List(ctx, sessionID, filters)
}

func (uc *UsersUseCase) ToggleActive(ctx context.Context, sessionID, id string, filters querycodec.UserFilters) (*domain.UserList, error) {
	auth, err := uc.guard.require(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.api.ToggleUserActive(ctx, auth.Token, id); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to toggle user active flag", err, port.Fields{"user_id": id})
		return nil, uc.guard.fail(ctx, sessionID, err)
	}
	return uc.List(ctx, sessionID, filters)
}

func (uc *UsersUseCase) ForgetSession(sessionID string) {
	uc.views.Forget(sessionID)
}
