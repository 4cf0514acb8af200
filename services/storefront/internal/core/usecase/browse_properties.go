package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/dendisuhubdy/mybalivillas/pkg/contextkeys"
	"github.com/dendisuhubdy/mybalivillas/pkg/listing"
	"github.com/dendisuhubdy/mybalivillas/pkg/pagination"
	"github.com/dendisuhubdy/mybalivillas/pkg/querycodec"
	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/domain"
	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/port"
)

type BrowsePropertiesUseCase struct {
	views   *listing.Registry[querycodec.PropertyFilters, domain.Property]
	perPage int
}

func NewBrowsePropertiesUseCase(
	api port.MarketplaceAPIPort,
	onError listing.OnError,
	perPage int,
	baseLogger port.LoggerPort,
) (*BrowsePropertiesUseCase, error) {
	if perPage <= 0 {
		perPage = 12
	}
	views, err := listing.NewRegistry(listing.Config[querycodec.PropertyFilters, domain.Property]{
		Name:    "properties",
		OnError: onError,
		Fetch: func(ctx context.Context, q listing.Query[querycodec.PropertyFilters]) (pagination.Page[domain.Property], error) {
			f := q.Filters
			f.Page = &q.Page
			f.PerPage = &q.PerPage
			return api.ListProperties(ctx, f)
		},
		Fallback: func(q listing.Query[querycodec.PropertyFilters]) pagination.Page[domain.Property] {
			return domain.FilterFallback(q.Filters, q.PerPage)
		},
		Logger: baseLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create properties listing: %w", err)
	}
	return &BrowsePropertiesUseCase{views: views, perPage: perPage}, nil
}

// Views нужен приложению для периодической очистки неиспользуемых представлений.
func (uc *BrowsePropertiesUseCase) Views() *listing.Registry[querycodec.PropertyFilters, domain.Property] {
	return uc.views
}

func (uc *BrowsePropertiesUseCase) Execute(ctx context.Context, viewKey string, filters querycodec.PropertyFilters) (*domain.PropertyListing, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "BrowseProperties",
		"query":    filters.Encode(),
	})
	ucLogger.Info("Use case started", nil)

	q := listing.Query[querycodec.PropertyFilters]{
		Page:    filters.PageOr(),
		PerPage: uc.perPage,
		Filters: filters,
	}
	state, err := uc.views.Get(viewKey).Load(ctx, q)
	if err != nil {
		if errors.Is(err, listing.ErrSuperseded) {
			ucLogger.Info("Newer request for the same view is in flight", nil)
			return nil, err
		}
		ucLogger.Error("Failed to load properties", err, nil)
		return &domain.PropertyListing{Filters: filters, State: state, PerPage: uc.perPage}, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"items":    len(state.Page.Items),
		"fallback": state.Fallback,
	})
	return &domain.PropertyListing{Filters: filters, State: state, PerPage: uc.perPage}, nil
}
