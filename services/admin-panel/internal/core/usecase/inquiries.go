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

type InquiriesUseCase struct {
	api       port.AdminAPIPort
	guard     *SessionGuard
	validator port.FormValidatorPort
	views     *tableViews[querycodec.InquiryFilters, domain.Inquiry]
}

func NewInquiriesUseCase(
	api port.AdminAPIPort,
	guard *SessionGuard,
	validator port.FormValidatorPort,
	onError listing.OnError,
	baseLogger port.LoggerPort,
) (*InquiriesUseCase, error) {
	views, err := newTableViews[querycodec.InquiryFilters, domain.Inquiry]("inquiries", onError, api.ListInquiries, baseLogger)
	if err != nil {
		return nil, err
	}
	return &InquiriesUseCase{api: api, guard: guard, validator: validator, views: views}, nil
}

// SweepViews удаляет представления таблицы, к которым не обращались дольше idle.
func (uc *InquiriesUseCase) SweepViews(idle time.Duration) int {
	return uc.views.Sweep(idle)
}

func (uc *InquiriesUseCase) List(ctx context.Context, sessionID string, filters querycodec.InquiryFilters) (*domain.InquiryList, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "ListInquiries",
		"query":    querycodec.Encode(filters.Params()),
	})
	ucLogger.Info("Use case started", nil)

	state, err := uc.views.load(ctx, uc.guard, sessionID, filters.Page, filters.PerPage, filters)
	if err != nil {
		return &domain.InquiryList{Filters: filters, State: state}, err
	}
	ucLogger.Info("Use case finished successfully", port.Fields{"items": len(state.Page.Items)})
	return &domain.InquiryList{Filters: filters, State: state}, nil
}

func (uc *InquiriesUseCase) UpdateStatus(ctx context.Context, sessionID, id string, req domain.StatusUpdate, filters querycodec.InquiryFilters) (*domain.InquiryList, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "UpdateInquiryStatus", "inquiry_id": id})

	if err := uc.validator.Struct(req); err != nil {
		return nil, err
	}
	auth, err := uc.guard.require(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.api.UpdateInquiryStatus(ctx, auth.Token, id, req.Status); err != nil {
		ucLogger.Error("Failed to update inquiry status", err, nil)
		return nil, uc.guard.fail(ctx, sessionID, err)
	}
	ucLogger.Info("Inquiry status updated", port.Fields{"status": req.Status})
	return uc.List(ctx, sessionID, filters)
}

func (uc *InquiriesUseCase) ForgetSession(sessionID string) {
	uc.views.Forget(sessionID)
}
