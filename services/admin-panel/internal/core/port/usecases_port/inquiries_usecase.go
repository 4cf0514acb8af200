package usecases_port

import (
	"context"

	"github.com/dendisuhubdy/mybalivillas/pkg/querycodec"
	"github.com/dendisuhubdy/mybalivillas/services/admin-panel/internal/core/domain"
)

type InquiriesUseCasePort interface {
	List(ctx context.Context, sessionID string, filters querycodec.InquiryFilters) (*domain.InquiryList, error)
	// UpdateStatus разрешает любой переход и перезагружает список.
	UpdateStatus(ctx context.Context, sessionID, id string, req domain.StatusUpdate, filters querycodec.InquiryFilters) (*domain.InquiryList, error)
}
