package usecase

import (
	"context"

	"github.com/dendisuhubdy/mybalivillas/pkg/contextkeys"
	"github.com/dendisuhubdy/mybalivillas/services/admin-panel/internal/core/domain"
	"github.com/dendisuhubdy/mybalivillas/services/admin-panel/internal/core/port"
)

type DashboardUseCase struct {
	api   port.AdminAPIPort
	guard *SessionGuard
}

func NewDashboardUseCase(api port.AdminAPIPort, guard *SessionGuard) *DashboardUseCase {
	return &DashboardUseCase{api: api, guard: guard}
}

func (uc *DashboardUseCase) Execute(ctx context.Context, sessionID string) (*domain.Dashboard, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "Dashboard"})
	ucLogger.Info("Use case started", nil)

	auth, err := uc.guard.require(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	stats, err := uc.api.DashboardStats(ctx, auth.Token)
	if err != nil {
		ucLogger.Error("Failed to load dashboard stats", err, nil)
		return nil, uc.guard.fail(ctx, sessionID, err)
	}

	dashboard := domain.NewDashboard(*stats)
	ucLogger.Info("Use case finished successfully", port.Fields{"total_properties": stats.TotalProperties})
	return &dashboard, nil
}
