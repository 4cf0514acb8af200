package usecase

import (
	"context"
	"fmt"

	"github.com/dendisuhubdy/mybalivillas/pkg/contextkeys"
	"github.com/dendisuhubdy/mybalivillas/pkg/listing"
	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/domain"
	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/port"
)

type GetFeaturedPropertiesUseCase struct {
	api     port.MarketplaceAPIPort
	onError listing.OnError
}

func NewGetFeaturedPropertiesUseCase(api port.MarketplaceAPIPort, onError listing.OnError) *GetFeaturedPropertiesUseCase {
	return &GetFeaturedPropertiesUseCase{api: api, onError: onError}
}

func (uc *GetFeaturedPropertiesUseCase) Execute(ctx context.Context) (*domain.PropertyCollection, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "GetFeaturedProperties"})

	items, err := uc.api.FeaturedProperties(ctx)
	if err != nil {
		if uc.onError != listing.ShowFallback {
			ucLogger.Error("Failed to fetch featured properties", err, nil)
			return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
		}
		ucLogger.Warn("Featured properties unavailable, using built-in data", port.Fields{"error": err.Error()})
		var featured []domain.Property
		for _, p := range domain.FallbackProperties() {
			if p.IsFeatured {
				featured = append(featured, p)
			}
		}
		return &domain.PropertyCollection{Items: featured, Fallback: true}, nil
	}
	return &domain.PropertyCollection{Items: items}, nil
}
