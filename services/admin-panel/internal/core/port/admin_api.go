package port

import (
	"context"

	"github.com/dendisuhubdy/mybalivillas/pkg/pagination"
	"github.com/dendisuhubdy/mybalivillas/pkg/querycodec"
	"github.com/dendisuhubdy/mybalivillas/services/admin-panel/internal/core/domain"
)

// AdminAPIPort - административный REST API (ADMIN_API_URL).
// Ответ 401 любого метода приводится к domain.ErrUnauthorized.
type AdminAPIPort interface {
	Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error)
	Logout(ctx context.Context, token string) error

	DashboardStats(ctx context.Context, token string) (*domain.DashboardStats, error)

	ListProperties(ctx context.Context, token string, filters querycodec.AdminPropertyFilters) (pagination.Page[domain.Property], error)
	GetProperty(ctx context.Context, token, id string) (*domain.Property, error)
	CreateProperty(ctx context.Context, token, ownerID string, form domain.PropertyForm) (*domain.Property, error)
	UpdateProperty(ctx context.Context, token, id string, form domain.PropertyForm) (*domain.Property, error)
	DeleteProperty(ctx context.Context, token, id string) error
	ToggleFeatured(ctx context.Context, token, id string) (*domain.Property, error)

	ListUsers(ctx context.Context, token string, filters querycodec.UserFilters) (pagination.Page[domain.User], error)
	CreateUser(ctx context.Context, token string, req domain.UserCreate) (*domain.User, error)
	UpdateUser(ctx context.Context, token, id string, req domain.UserUpdate) (*domain.User, error)
	ToggleUserActive(ctx context.Context, token, id string) (*domain.User, error)

	ListInquiries(ctx context.Context, token string, filters querycodec.InquiryFilters) (pagination.Page[domain.Inquiry], error)
	UpdateInquiryStatus(ctx context.Context, token, id string, status domain.InquiryStatus) (*domain.Inquiry, error)
}
