package usecases_port

import (
	"context"

	"github.com/dendisuhubdy/mybalivillas/services/admin-panel/internal/core/domain"
)

type DashboardUseCasePort interface {
	Execute(ctx context.Context, sessionID string) (*domain.Dashboard, error)
}
