package usecases_port

import (
	"context"

	"github.com/dendisuhubdy/mybalivillas/pkg/querycodec"
	"github.com/dendisuhubdy/mybalivillas/services/admin-panel/internal/core/domain"
)

type UsersUseCasePort interface {
	List(ctx context.Context, sessionID string, filters querycodec.UserFilters) (*domain.UserList, error)
	Create(ctx context.Context, sessionID string, req domain.UserCreate, filters querycodec.UserFilters) (*domain.UserList, error)
	Update(ctx context.Context, sessionID, id string, req domain.UserUpdate, filters querycodec.UserFilters) (*domain.UserList, error)
	ToggleActive(ctx context.Context, sessionID, id string, filters querycodec.UserFilters) (*domain.UserList, error)
}
