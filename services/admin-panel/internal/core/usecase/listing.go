package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dendisuhubdy/mybalivillas/pkg/listing"
	"github.com/dendisuhubdy/mybalivillas/pkg/pagination"
	"github.com/dendisuhubdy/mybalivillas/services/admin-panel/internal/core/domain"
	"github.com/dendisuhubdy/mybalivillas/services/admin-panel/internal/core/port"
)

// scoped - фильтры таблицы вместе с токеном, которым их загружать.
type scoped[F any] struct {
	token   string
	filters F
}

type fetchFunc[F, T any] func(ctx context.Context, token string, filters F) (pagination.Page[T], error)

// tableViews - представления одной таблицы админки, по одному на сессию.
type tableViews[F, T any] struct {
	name     string
	registry *listing.Registry[scoped[F], T]
}

// У админки нет встроенных данных: при политике fallback показывается пустая страница.
func newTableViews[F, T any](name string, onError listing.OnError, fetch fetchFunc[F, T], baseLogger port.LoggerPort) (*tableViews[F, T], error) {
	registry, err := listing.NewRegistry(listing.Config[scoped[F], T]{
		Name:    name,
		OnError: onError,
		Fetch: func(ctx context.Context, q listing.Query[scoped[F]]) (pagination.Page[T], error) {
			return fetch(ctx, q.Filters.token, q.Filters.filters)
		},
		Fallback: func(q listing.Query[scoped[F]]) pagination.Page[T] {
			return pagination.Page[T]{Items: []T{}, Page: q.Page, PerPage: q.PerPage}
		},
		Fatal: func(err error) bool {
			return errors.Is(err, domain.ErrUnauthorized)
		},
		Logger: baseLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s listing: %w", name, err)
	}
	return &tableViews[F, T]{name: name, registry: registry}, nil
}

func (t *tableViews[F, T]) key(sessionID string) string {
	return sessionID + ":" + t.name
}

// load возвращает состояние таблицы. Ошибка API приходит вместе с состоянием
// (error, retry), 401 сбрасывает сессию.
func (t *tableViews[F, T]) load(ctx context.Context, guard *SessionGuard, sessionID string, page, perPage int, filters F) (listing.State[T], error) {
	auth, err := guard.require(ctx, sessionID)
	if err != nil {
		return listing.State[T]{}, err
	}

	state, err := t.registry.Get(t.key(sessionID)).Load(ctx, listing.Query[scoped[F]]{
		Page:    page,
		PerPage: perPage,
		Filters: scoped[F]{token: auth.Token, filters: filters},
	})
	switch {
	case err == nil:
		return state, nil
	case errors.Is(err, listing.ErrSuperseded):
		return state, err
	case errors.Is(err, domain.ErrUnauthorized):
		return listing.State[T]{}, guard.fail(ctx, sessionID, err)
	default:
		return state, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
}

func (t *tableViews[F, T]) Sweep(idle time.Duration) int {
	return t.registry.Sweep(idle)
}

func (t *tableViews[F, T]) Forget(sessionID string) {
	t.registry.Forget(t.key(sessionID))
}
