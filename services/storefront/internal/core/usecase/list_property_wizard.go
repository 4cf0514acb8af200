package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/dendisuhubdy/mybalivillas/pkg/contextkeys"
	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/domain"
	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/port"
)

type ListPropertyWizardUseCase struct {
	api   port.MarketplaceAPIPort
	guard *SessionGuard
}

func NewListPropertyWizardUseCase(api port.MarketplaceAPIPort, guard *SessionGuard) *ListPropertyWizardUseCase {
	return &ListPropertyWizardUseCase{api: api, guard: guard}
}

func (uc *ListPropertyWizardUseCase) Execute(ctx context.Context, sessionID string, state domain.WizardState, action domain.WizardAction) (*domain.WizardState, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "ListPropertyWizard",
		"action":   action,
		"step":     state.Step,
	})

	auth, err := uc.guard.require(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state.Step < 0 || state.Step >= len(domain.WizardSteps) {
		return nil, fmt.Errorf("%w: step %d out of range", domain.ErrInvalidCommand, state.Step)
	}

	var next domain.WizardState
	switch action {
	case domain.WizardNext:
		next = state.Next()
	case domain.WizardBack:
		next = state.Back()
	case domain.WizardReset:
		next = state.Reset()
	case domain.WizardSubmit:
		if state.Success || !state.LastStep() {
			return nil, fmt.Errorf("%w: submit is only allowed from the last step", domain.ErrInvalidCommand)
		}
		if next, err = uc.submit(ctx, sessionID, auth, state); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: unknown action %q", domain.ErrInvalidCommand, action)
	}

	ucLogger.Info("Wizard transition applied", port.Fields{"next_step": next.Step, "success": next.Success})
	return &next, nil
}

// submit: ошибка API (кроме 401) не выводит мастер из последнего шага, а показывается в форме.
func (uc *ListPropertyWizardUseCase) submit(ctx context.Context, sessionID string, auth *authorized, state domain.WizardState) (domain.WizardState, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "ListPropertyWizard"})

	created, err := uc.api.CreateProperty(ctx, auth.Token, state.Form.Submission())
	if err != nil {
		ucLogger.Error("Failed to create listing", err, nil)
		if errors.Is(err, domain.ErrUnauthorized) {
			uc.guard.onUpstreamError(ctx, sessionID, err)
			return state, err
		}
		state.Error = "Failed to create listing"
		var apiErr interface{ UserMessage() string }
		if errors.As(err, &apiErr) && apiErr.UserMessage() != "" {
			state.Error = apiErr.UserMessage()
		}
		return state, nil
	}

	ucLogger.Info("Listing created", port.Fields{"property_id": created.ID, "role": auth.Role})
	return state.Succeeded(auth.Role), nil
}
