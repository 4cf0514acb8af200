package usecase

import (
	"context"
	"fmt"

	"github.com/dendisuhubdy/mybalivillas/pkg/contextkeys"
	"github.com/dendisuhubdy/mybalivillas/pkg/listing"
	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/domain"
	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/port"
)

type ListAreasUseCase struct {
	api     port.MarketplaceAPIPort
	onError listing.OnError
}

func NewListAreasUseCase(api port.MarketplaceAPIPort, onError listing.OnError) *ListAreasUseCase {
	return &ListAreasUseCase{api: api, onError: onError}
}

func (uc *ListAreasUseCase) Execute(ctx context.Context) (*domain.AreaCollection, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "ListAreas"})

	areas, err := uc.api.ListAreas(ctx)
	if err == nil {
		return &domain.AreaCollection{Items: areas}, nil
	}
	if uc.onError != listing.ShowFallback {
		ucLogger.Error("Failed to fetch areas", err, nil)
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	ucLogger.Warn("Areas unavailable, using built-in data", port.Fields{"error": err.Error()})
	return &domain.AreaCollection{Items: domain.FallbackAreas(), Fallback: true}, nil
}
