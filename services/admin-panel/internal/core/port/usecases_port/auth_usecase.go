package usecases_port

import (
	"context"

	"github.com/dendisuhubdy/mybalivillas/services/admin-panel/internal/core/domain"
)

type LoginUseCasePort interface {
	Execute(ctx context.Context, sessionID string, req domain.LoginRequest) (*domain.AdminUser, error)
}

type LogoutUseCasePort interface {
	Execute(ctx context.Context, sessionID string) error
}

type CurrentSessionUseCasePort interface {
	Execute(ctx context.Context, sessionID string) (*domain.AdminUser, error)
}
