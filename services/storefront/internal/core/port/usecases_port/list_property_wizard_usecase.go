package usecases_port

import (
	"context"

	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/domain"
)

type ListPropertyWizardUseCasePort interface {
	Execute(ctx context.Context, sessionID string, state domain.WizardState, action domain.WizardAction) (*domain.WizardState, error)
}
