package usecases_port

import (
	"context"

	"github.com/dendisuhubdy/mybalivillas/pkg/querycodec"
	"github.com/dendisuhubdy/mybalivillas/services/admin-panel/internal/core/domain"
)

// PropertyFormOp - одна операция над буфером формы (add_image, remove_image, toggle_feature).
type PropertyFormOp struct {
	Action   string              `json:"action"`
	Form     domain.PropertyForm `json:"form"`
	ImageURL string              `json:"image_url,omitempty"`
	Index    int                 `json:"index,omitempty"`
	Feature  string              `json:"feature,omitempty"`
}

type PropertiesUseCasePort interface {
	List(ctx context.Context, sessionID string, filters querycodec.AdminPropertyFilters) (*domain.PropertyList, error)
	// Editor с пустым id возвращает форму нового объекта.
	Editor(ctx context.Context, sessionID, id string) (*domain.PropertyEditor, error)
	Create(ctx context.Context, sessionID string, form domain.PropertyForm) (*domain.Property, error)
	Update(ctx context.Context, sessionID, id string, form domain.PropertyForm) (*domain.Property, error)
	// Delete и ToggleFeatured после изменения заново загружают список.
	Delete(ctx context.Context, sessionID, id string, filters querycodec.AdminPropertyFilters) (*domain.PropertyList, error)
	ToggleFeatured(ctx context.Context, sessionID, id string, filters querycodec.AdminPropertyFilters) (*domain.PropertyList, error)
	ApplyFormOp(op PropertyFormOp) (domain.PropertyForm, error)
}
