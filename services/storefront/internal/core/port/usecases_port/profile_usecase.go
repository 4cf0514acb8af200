package usecases_port

import (
	"context"

	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/domain"
)

type GetProfileUseCasePort interface {
	Execute(ctx context.Context, sessionID string) (*domain.User, error)
}

type UpdateProfileUseCasePort interface {
	Execute(ctx context.Context, sessionID string, upd domain.ProfileUpdate) (*domain.User, error)
}
