package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dendisuhubdy/mybalivillas/pkg/contextkeys"
	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/domain"
	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/port"
)

type SubmitInquiryUseCase struct {
	api       port.MarketplaceAPIPort
	store     port.SessionStorePort
	validator port.FormValidatorPort
}

func NewSubmitInquiryUseCase(api port.MarketplaceAPIPort, store port.SessionStorePort, validator port.FormValidatorPort) *SubmitInquiryUseCase {
	return &SubmitInquiryUseCase{api: api, store: store, validator: validator}
}

// Execute отправляет заявку. Авторизация не обязательна: токен прикладывается, если есть.
func (uc *SubmitInquiryUseCase) Execute(ctx context.Context, sessionID, propertyID, propertyTitle string, form domain.InquiryForm) (*domain.Inquiry, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "SubmitInquiry",
		"property_id": propertyID,
	})
	ucLogger.Info("Use case started", nil)

	if strings.TrimSpace(form.Message) == "" && propertyTitle != "" {
		form.Message = domain.DefaultInquiryMessage(propertyTitle)
	}
	if err := uc.validator.Struct(form); err != nil {
		ucLogger.Info("Inquiry form rejected", port.Fields{"error": err.Error()})
		return nil, err
	}

	var token string
	if s, err := uc.store.Get(ctx, sessionID); err == nil {
		token = s.Token
	}

	inquiry, err := uc.api.CreateInquiry(ctx, token, propertyID, form)
	if err != nil {
		ucLogger.Error("Failed to submit inquiry", err, nil)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to submit inquiry: %w", err)
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"inquiry_id": inquiry.ID})
	return inquiry, nil
}
