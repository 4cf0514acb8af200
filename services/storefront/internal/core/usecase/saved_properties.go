package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/dendisuhubdy/mybalivillas/pkg/contextkeys"
	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/domain"
	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/port"
)

// savedList - последний загруженный список избранного и его владелец.
type savedList struct {
	userID   string
	items    []domain.Property
	lastUsed time.Time
}

// SavedPropertiesUseCase помнит последний загруженный список каждой сессии:
// после удаления объект исключается из него локально, без повторного запроса.
// Список принадлежит пользователю, который его загрузил, и сбрасывается вместе с сессией.
type SavedPropertiesUseCase struct {
	api   port.MarketplaceAPIPort
	guard *SessionGuard

	mu    sync.Mutex
	lists map[string]*savedList
	now   func() time.Time
}

func NewSavedPropertiesUseCase(api port.MarketplaceAPIPort, guard *SessionGuard) *SavedPropertiesUseCase {
	uc := &SavedPropertiesUseCase{api: api, guard: guard, lists: make(map[string]*savedList), now: time.Now}
	guard.OnSessionEnd(uc.Forget)
	return uc
}

func (uc *SavedPropertiesUseCase) List(ctx context.Context, sessionID string) ([]domain.Property, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "ListSavedProperties"})

	auth, err := uc.guard.require(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	items, err := uc.api.ListSaved(ctx, auth.Token)
	if err != nil {
		ucLogger.Error("Failed to load saved properties", err, nil)
		uc.guard.onUpstreamError(ctx, sessionID, err)
		return nil, err
	}

	uc.mu.Lock()
	uc.lists[sessionID] = &savedList{userID: auth.User.ID, items: items, lastUsed: uc.now()}
	uc.mu.Unlock()
	return items, nil
}

func (uc *SavedPropertiesUseCase) Save(ctx context.Context, sessionID, propertyID string) error {
	auth, err := uc.guard.require(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := uc.api.SaveProperty(ctx, auth.Token, propertyID); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to save property", err, port.Fields{"property_id": propertyID})
		uc.guard.onUpstreamError(ctx, sessionID, err)
		return err
	}
	return nil
}

// Unsave возвращает оставшийся список текущего пользователя. Если список этого
// пользователя еще не загружался, возвращается пустой список.
func (uc *SavedPropertiesUseCase) Unsave(ctx context.Context, sessionID, propertyID string) ([]domain.Property, error) {
	auth, err := uc.guard.require(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := uc.api.UnsaveProperty(ctx, auth.Token, propertyID); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to unsave property", err, port.Fields{"property_id": propertyID})
		uc.guard.onUpstreamError(ctx, sessionID, err)
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	cached, ok := uc.lists[sessionID]
	if !ok || cached.userID != auth.User.ID {
		delete(uc.lists, sessionID)
		return []domain.Property{}, nil
	}
	cached.items = excludeProperty(cached.items, propertyID)
	cached.lastUsed = uc.now()
	return cached.items, nil
}

// Forget удаляет запомненный список сессии (выход, вход другого пользователя, сброс сессии).
func (uc *SavedPropertiesUseCase) Forget(sessionID string) {
	uc.mu.Lock()
	delete(uc.lists, sessionID)
	uc.mu.Unlock()
}

// Sweep удаляет списки, к которым не обращались дольше idle.
func (uc *SavedPropertiesUseCase) Sweep(idle time.Duration) int {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	cutoff := uc.now().Add(-idle)
	removed := 0
	for id, l := range uc.lists {
		if l.lastUsed.Before(cutoff) {
			delete(uc.lists, id)
			removed++
		}
	}
	return removed
}
