package usecases_port

import (
	"context"

	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/domain"
)

type SavedPropertiesUseCasePort interface {
	List(ctx context.Context, sessionID string) ([]domain.Property, error)
	Save(ctx context.Context, sessionID, propertyID string) error
	// Unsave возвращает список без удаленного объекта, не перезапрашивая его у API.
	Unsave(ctx context.Context, sessionID, propertyID string) ([]domain.Property, error)
}
