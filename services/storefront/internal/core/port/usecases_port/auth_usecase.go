package usecases_port

import (
	"context"

	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/domain"
)

type LoginUseCasePort interface {
	Execute(ctx context.Context, sessionID string, req domain.LoginRequest) (*domain.User, error)
}

type RegisterUseCasePort interface {
	Execute(ctx context.Context, sessionID string, req domain.RegisterRequest) (*domain.User, error)
}

type LogoutUseCasePort interface {
	Execute(ctx context.Context, sessionID string) error
}

type CurrentSessionUseCasePort interface {
	// Возвращает domain.ErrLoginRequired, если сессии нет или токен истек.
	Execute(ctx context.Context, sessionID string) (*domain.CurrentSession, error)
}
