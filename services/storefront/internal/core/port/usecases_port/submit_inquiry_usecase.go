package usecases_port

import (
	"context"

	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/domain"
)

type SubmitInquiryUseCasePort interface {
	// propertyTitle нужен для сообщения по умолчанию, если пользователь его не изменил.
	Execute(ctx context.Context, sessionID, propertyID, propertyTitle string, form domain.InquiryForm) (*domain.Inquiry, error)
}
