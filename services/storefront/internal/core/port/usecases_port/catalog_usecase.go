package usecases_port

import (
	"context"

	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/domain"
)

type GetFeaturedPropertiesUseCasePort interface {
	Execute(ctx context.Context) (*domain.PropertyCollection, error)
}

type ListAreasUseCasePort interface {
	Execute(ctx context.Context) (*domain.AreaCollection, error)
}

type GetPropertyDetailUseCasePort interface {
	Execute(ctx context.Context, slug string) (*domain.PropertyDetail, error)
}
