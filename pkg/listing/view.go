// Package listing реализует цикл "фильтры + страница -> запрос -> отображение"
// для списков витрины и таблиц админки.
package listing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dendisuhubdy/mybalivillas/pkg/logger"
	"github.com/dendisuhubdy/mybalivillas/pkg/pagination"
)

// ErrSuperseded - результат запроса отброшен, потому что для того же
// представления уже отправлен более новый запрос.
var ErrSuperseded = errors.New("listing: request superseded by a newer one")

// OnError определяет, что показывать при ошибке загрузки.
type OnError string

const (
	ShowFallback OnError = "fallback"
	ShowError    OnError = "error"
)

// ParseOnError разбирает значение из конфига; неизвестное значение -> def.
func ParseOnError(s string, def OnError) OnError {
	switch OnError(strings.ToLower(strings.TrimSpace(s))) {
	case ShowFallback:
		return ShowFallback
	case ShowError:
		return ShowError
	default:
		return def
	}
}

type Query[F any] struct {
	Page    int
	PerPage int
	Filters F
}

type Fetcher[F, T any] func(ctx context.Context, q Query[F]) (pagination.Page[T], error)

// FallbackSource строит страницу из встроенных данных по тем же фильтрам.
type FallbackSource[F, T any] func(q Query[F]) pagination.Page[T]

type Config[F, T any] struct {
	Name    string
	OnError OnError
	// SkeletonRows - сколько строк-заглушек показывать во время загрузки (по умолчанию PerPage запроса).
	SkeletonRows int
	Fetch        Fetcher[F, T]
	Fallback     FallbackSource[F, T]
	// Fatal отмечает ошибки, которые нельзя заменять запасными данными (например, 401):
	// они возвращаются вызывающему при любой политике.
	Fatal  func(error) bool
	Logger logger.LoggerPort
}

// State - снимок представления.
type State[T any] struct {
	Loading      bool                 `json:"loading"`
	SkeletonRows int                  `json:"skeleton_rows,omitempty"`
	Page         pagination.Page[T]   `json:"page"`
	Pagination   *pagination.Controls `json:"pagination,omitempty"`
	Fallback     bool                 `json:"fallback,omitempty"`
	Error        string               `json:"error,omitempty"`
	Retry        bool                 `json:"retry,omitempty"`
	Seq          uint64               `json:"seq"`
}

// View - одно представление списка. Каждый Load помечается возрастающим номером;
// ответ применяется, только если его номер последний, а предыдущий запрос отменяется.
type View[F, T any] struct {
	cfg Config[F, T]

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	state  State[T]
}

func NewView[F, T any](cfg Config[F, T]) (*View[F, T], error) {
	if cfg.Fetch == nil {
		return nil, fmt.Errorf("listing %q: fetcher is required", cfg.Name)
	}
	if cfg.OnError == "" {
		cfg.OnError = ShowError
	}
	if cfg.OnError == ShowFallback && cfg.Fallback == nil {
		return nil, fmt.Errorf("listing %q: fallback source is required for %s policy", cfg.Name, ShowFallback)
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewNoopLogger()
	}
	return &View[F, T]{cfg: cfg}, nil
}

// Load выполняет ровно один запрос для (page, per_page, filters).
// Для политики ShowError ошибка загрузки возвращается вместе с состоянием.
func (v *View[F, T]) Load(ctx context.Context, q Query[F]) (State[T], error) {
	reqCtx, seq := v.begin(ctx, q)

	page, fetchErr := v.cfg.Fetch(reqCtx, q)

	v.mu.Lock()
	defer v.mu.Unlock()

	if seq != v.seq {
		v.cfg.Logger.Debug("Discarding stale listing response", logger.Fields{
			"view": v.cfg.Name, "seq": seq, "latest_seq": v.seq,
		})
		return State[T]{}, ErrSuperseded
	}
	v.cancel()
	v.cancel = nil

	next := State[T]{Seq: seq}
	if fetchErr != nil && v.cfg.Fatal != nil && v.cfg.Fatal(fetchErr) {
		next.Page = pagination.Page[T]{Page: q.Page, PerPage: q.PerPage}
		v.state = next
		return next, fetchErr
	}
	if fetchErr != nil {
		switch v.cfg.OnError {
		case ShowFallback:
			v.cfg.Logger.Warn("Listing fetch failed, showing fallback data", logger.Fields{
				"view": v.cfg.Name, "error": fetchErr.Error(),
			})
			page = v.cfg.Fallback(q)
			next.Fallback = true
			fetchErr = nil
		default:
			v.cfg.Logger.Error("Listing fetch failed", fetchErr, logger.Fields{"view": v.cfg.Name})
			page = pagination.Page[T]{Page: q.Page, PerPage: q.PerPage}
			next.Error = fetchErr.Error()
			next.Retry = true
		}
	}

	next.Page = page
	next.Pagination = page.Controls()
	v.state = next
	return next, fetchErr
}

// begin регистрирует новый запрос, отменяет предыдущий и переводит вид в состояние загрузки.
func (v *View[F, T]) begin(ctx context.Context, q Query[F]) (context.Context, uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.cancel != nil {
		v.cancel()
	}
	reqCtx, cancel := context.WithCancel(ctx)
	v.cancel = cancel
	v.seq++

	rows := v.cfg.SkeletonRows
	if rows <= 0 {
		rows = q.PerPage
	}
	// устаревшие данные не показываются, пока идет загрузка
	v.state = State[T]{Loading: true, SkeletonRows: rows, Seq: v.seq}
	return reqCtx, v.seq
}

// snapshot возвращает текущее состояние (в том числе "идет загрузка").
func (v *View[F, T]) snapshot() State[T] {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}
