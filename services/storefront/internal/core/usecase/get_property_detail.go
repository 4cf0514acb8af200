package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmcloughlin/geohash"

	"github.com/dendisuhubdy/mybalivillas/pkg/contextkeys"
	"github.com/dendisuhubdy/mybalivillas/pkg/listing"
	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/domain"
	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/port"
)

const (
	similarFallbackCount = 3
	// 7 символов - ячейка примерно 150x150 м
	geohashPrecision = 7
)

type GetPropertyDetailUseCase struct {
	api     port.MarketplaceAPIPort
	onError listing.OnError
}

func NewGetPropertyDetailUseCase(api port.MarketplaceAPIPort, onError listing.OnError) *GetPropertyDetailUseCase {
	return &GetPropertyDetailUseCase{api: api, onError: onError}
}

func (uc *GetPropertyDetailUseCase) Execute(ctx context.Context, slug string) (*domain.PropertyDetail, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "GetPropertyDetail",
		"slug":     slug,
	})
	ucLogger.Info("Use case started", nil)

	detail := &domain.PropertyDetail{}
	property, err := uc.api.GetProperty(ctx, slug)
	switch {
	case err == nil:
		detail.Property = *property
	case uc.onError == listing.ShowFallback:
		fb, ok := domain.FallbackBySlug(slug)
		if !ok {
			ucLogger.Warn("Property not found in API or built-in data", port.Fields{"error": err.Error()})
			return nil, domain.ErrNotFound
		}
		ucLogger.Warn("Property unavailable, using built-in data", port.Fields{"error": err.Error()})
		detail.Property = fb
		detail.Fallback = true
	case errors.Is(err, domain.ErrNotFound):
		return nil, err
	default:
		ucLogger.Error("Failed to fetch property", err, nil)
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}

	similar, err := uc.api.SimilarProperties(ctx, detail.Property.ID)
	if err != nil {
		ucLogger.Warn("Similar properties unavailable", port.Fields{"error": err.Error()})
		if uc.onError == listing.ShowFallback {
			similar = domain.FallbackSimilar(similarFallbackCount)
		}
	}
	detail.Similar = excludeProperty(similar, detail.Property.ID)

	if lat, lng := detail.Property.Latitude, detail.Property.Longitude; lat != nil && lng != nil {
		detail.Geohash = geohash.EncodeWithPrecision(*lat, *lng, geohashPrecision)
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"fallback": detail.Fallback})
	return detail, nil
}

func excludeProperty(items []domain.Property, id string) []domain.Property {
	out := make([]domain.Property, 0, len(items))
	for _, p := range items {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}
