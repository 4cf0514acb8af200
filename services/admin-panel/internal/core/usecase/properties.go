package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/dendisuhubdy/mybalivillas/pkg/contextkeys"
	"github.com/dendisuhubdy/mybalivillas/pkg/listing"
	"github.com/dendisuhubdy/mybalivillas/pkg/querycodec"
	"github.com/dendisuhubdy/mybalivillas/services/admin-panel/internal/core/domain"
	"github.com/dendisuhubdy/mybalivillas/services/admin-panel/internal/core/port"
	"github.com/dendisuhubdy/mybalivillas/services/admin-panel/internal/core/port/usecases_port"
)

type PropertiesUseCase struct {
	api       port.AdminAPIPort
	guard     *SessionGuard
	validator port.FormValidatorPort
	views     *tableViews[querycodec.AdminPropertyFilters, domain.Property]
}

func NewPropertiesUseCase(
	api port.AdminAPIPort,
	guard *SessionGuard,
	validator port.FormValidatorPort,
	onError listing.OnError,
	baseLogger port.LoggerPort,
) (*PropertiesUseCase, error) {
	views, err := newTableViews[querycodec.AdminPropertyFilters, domain.Property]("properties", onError, api.ListProperties, baseLogger)
	if err != nil {
		return nil, err
	}
	return &PropertiesUseCase{api: api, guard: guard, validator: validator, views: views}, nil
}

// SweepViews удаляет представления таблицы, к которым не обращались дольше idle.
func (uc *PropertiesUseCase) SweepViews(idle time.Duration) int {
	return uc.views.Sweep(idle)
}

func (uc *PropertiesUseCase) List(ctx context.Context, sessionID string, filters querycodec.AdminPropertyFilters) (*domain.PropertyList, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "ListProperties",
		"query":    querycodec.Encode(filters.Params()),
	})
	ucLogger.Info("Use case started", nil)

	state, err := uc.views.load(ctx, uc.guard, sessionID, filters.Page, filters.PerPage, filters)
	if err != nil {
		return &domain.PropertyList{Filters: filters, State: state}, err
	}
	ucLogger.Info("Use case finished successfully", port.Fields{"items": len(state.Page.Items), "total": state.Page.Total})
	return &domain.PropertyList{Filters: filters, State: state}, nil
}

func (uc *PropertiesUseCase) Editor(ctx context.Context, sessionID, id string) (*domain.PropertyEditor, error) {
	auth, err := uc.guard.require(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return &domain.PropertyEditor{Form: domain.NewPropertyForm()}, nil
	}

	p, err := uc.api.GetProperty(ctx, auth.Token, id)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to load property", err, port.Fields{"property_id": id})
		return nil, uc.guard.fail(ctx, sessionID, err)
	}
	return &domain.PropertyEditor{ID: p.ID, Form: domain.FormFromProperty(*p)}, nil
}

func (uc *PropertiesUseCase) Create(ctx context.Context, sessionID string, form domain.PropertyForm) (*domain.Property, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "CreateProperty"})
	ucLogger.Info("Use case started", nil)

	if err := uc.validator.Struct(form); err != nil {
		return nil, err
	}
	auth, err := uc.guard.require(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	p, err := uc.api.CreateProperty(ctx, auth.Token, auth.User.ID, form)
	if err != nil {
		ucLogger.Error("Failed to create property", err, nil)
		return nil, uc.guard.fail(ctx, sessionID, err)
	}
	ucLogger.Info("Use case finished successfully", port.Fields{"property_id": p.ID})
	return p, nil
}

func (uc *PropertiesUseCase) Update(ctx context.Context, sessionID, id string, form domain.PropertyForm) (*domain.Property, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "UpdateProperty", "property_id": id})
	ucLogger.Info("Use case started", nil)

	if err := uc.validator.Struct(form); err != nil {
		return nil, err
	}
	auth, err := uc.guard.require(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	p, err := uc.api.UpdateProperty(ctx, auth.Token, id, form)
	if err != nil {
		ucLogger.Error("Failed to update property", err, nil)
		return nil, uc.guard.fail(ctx, sessionID, err)
	}
	ucLogger.Info("Use case finished successfully", nil)
	return p, nil
}

func (uc *PropertiesUseCase) Delete(ctx context.Context, sessionID, id string, filters querycodec.AdminPropertyFilters) (*domain.PropertyList, error) {
	auth, err := uc.guard.require(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := uc.api.DeleteProperty(ctx, auth.Token, id); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to delete property", err, port.Fields{"property_id": id})
		return nil, uc.guard.fail(ctx, sessionID, err)
	}
	return uc.List(ctx, sessionID, filters)
}

// ToggleFeatured не правит строку таблицы на месте: список перезагружается целиком.
func (uc *PropertiesUseCase) ToggleFeatured(ctx context.Context, sessionID, id string, filters querycodec.AdminPropertyFilters) (*domain.PropertyList, error) {
	auth, err := uc.guard.require(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.api.ToggleFeatured(ctx, auth.Token, id); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to toggle featured flag", err, port.Fields{"property_id": id})
		return nil, uc.guard.fail(ctx, sessionID, err)
	}
	return uc.List(ctx, sessionID, filters)
}

func (uc *PropertiesUseCase) ApplyFormOp(op usecases_port.PropertyFormOp) (domain.PropertyForm, error) {
	form := op.Form
	switch op.Action {
	case domain.FormAddImage:
		form.AddImage(op.ImageURL)
	case domain.FormRemoveImage:
		form.RemoveImage(op.Index)
	case domain.FormToggleFeature:
		form.ToggleFeature(op.Feature)
	default:
		return form, fmt.Errorf("%w: unknown form action %q", domain.ErrInvalidCommand, op.Action)
	}
	if form.Images == nil {
		form.Images = []string{}
	}
	if form.Features == nil {
		form.Features = []string{}
	}
	return form, nil
}

func (uc *PropertiesUseCase) ForgetSession(sessionID string) {
	uc.views.Forget(sessionID)
}
