package usecases_port

import (
	"context"

	"github.com/dendisuhubdy/mybalivillas/pkg/querycodec"
	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/domain"
)

type BrowsePropertiesUseCasePort interface {
	// viewKey идентифицирует представление (сессия + страница), для которого действует порядок запросов.
	Execute(ctx context.Context, viewKey string, filters querycodec.PropertyFilters) (*domain.PropertyListing, error)
}
