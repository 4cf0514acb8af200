package port

import (
	"context"

	"github.com/dendisuhubdy/mybalivillas/pkg/pagination"
	"github.com/dendisuhubdy/mybalivillas/pkg/querycodec"
	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/domain"
)

// MarketplaceAPIPort - контракт клиента публичного REST API маркетплейса.
// token - bearer-токен пользователя; пустая строка для анонимных вызовов.
type MarketplaceAPIPort interface {
	ListProperties(ctx context.Context, filters querycodec.PropertyFilters) (pagination.Page[domain.Property], error)
	FeaturedProperties(ctx context.Context) ([]domain.Property, error)
	GetProperty(ctx context.Context, slug string) (*domain.Property, error)
	SimilarProperties(ctx context.Context, propertyID string) ([]domain.Property, error)
	ListAreas(ctx context.Context) ([]domain.Area, error)

	Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error)
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResult, error)
	GetProfile(ctx context.Context, token string) (*domain.User, error)
	UpdateProfile(ctx context.Context, token string, upd domain.ProfileUpdate) (*domain.User, error)

	CreateInquiry(ctx context.Context, token, propertyID string, form domain.InquiryForm) (*domain.Inquiry, error)

	ListSaved(ctx context.Context, token string) ([]domain.Property, error)
	SaveProperty(ctx context.Context, token, propertyID string) error
	UnsaveProperty(ctx context.Context, token, propertyID string) error

	CreateProperty(ctx context.Context, token string, sub domain.PropertySubmission) (*domain.Property, error)
}
