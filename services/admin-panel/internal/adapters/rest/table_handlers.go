package rest

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dendisuhubdy/mybalivillas/pkg/contextkeys"
	"github.com/dendisuhubdy/mybalivillas/pkg/querycodec"
	"github.com/dendisuhubdy/mybalivillas/services/admin-panel/internal/core/domain"
	"github.com/dendisuhubdy/mybalivillas/services/admin-panel/internal/core/port"
	"github.com/dendisuhubdy/mybalivillas/services/admin-panel/internal/core/port/usecases_port"
)

// respondTable отдает состояние таблицы. Ошибка API приходит вместе с состоянием
// {error, retry: true}, такой ответ идет со статусом 502.
func respondTable[R any](w http.ResponseWriter, logger port.LoggerPort, err error, hasState bool, table func() TableResponse[R]) {
	switch {
	case err == nil:
		RespondWithJSON(w, http.StatusOK, table())
	case hasState && errors.Is(err, domain.ErrUpstream):
		logger.Warn("Admin API failed, returning error state", port.Fields{"error": err.Error()})
		RespondWithJSON(w, http.StatusBadGateway, table())
	default:
		writeUseCaseError(w, logger, err)
	}
}

func sessionID(r *http.Request) string {
	return contextkeys.SessionIDFromContext(r.Context())
}

// pathID разбирает {id} из пути. Идентификаторы Admin API - UUID, кривой id
// получает 400 до обращения к API.
func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid id")
		return "", false
	}
	return id.String(), true
}

func handlerLogger(r *http.Request, name string) port.LoggerPort {
	return contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": name})
}

// GetDashboard обрабатывает GET /api/dashboard
func (h *AdminHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "GetDashboard")

	d, err := h.uc.Dashboard.Execute(r.Context(), sessionID(r))
	if err != nil {
		if errors.Is(err, domain.ErrLoginRequired) || errors.Is(err, domain.ErrUnauthorized) {
			writeUseCaseError(w, logger, err)
			return
		}
		logger.Error("Failed to load dashboard", err, nil)
		RespondWithJSON(w, http.StatusBadGateway, map[string]any{"error": "Failed to load dashboard statistics", "retry": true})
		return
	}
	RespondWithJSON(w, http.StatusOK, toDashboardResponse(d))
}

// ListProperties обрабатывает GET /api/properties
func (h *AdminHandler) ListProperties(w http.ResponseWriter, r *http.Request) {
	filters := querycodec.DecodeAdminPropertyFilters(r.URL.Query(), h.perPage)
	res, err := h.uc.Properties.List(r.Context(), sessionID(r), filters)
	respondTable(w, handlerLogger(r, "ListProperties"), err, res != nil, func() TableResponse[PropertyRowResponse] {
		return toPropertyTable(res)
	})
}

// NewPropertyForm обрабатывает GET /api/properties/new
func (h *AdminHandler) NewPropertyForm(w http.ResponseWriter, r *http.Request) {
	h.respondEditor(w, r, "")
}

// GetProperty обрабатывает GET /api/properties/{id}: буфер формы редактирования.
func (h *AdminHandler) GetProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	h.respondEditor(w, r, id)
}

func (h *AdminHandler) respondEditor(w http.ResponseWriter, r *http.Request, id string) {
	editor, err := h.uc.Properties.Editor(r.Context(), sessionID(r), id)
	if err != nil {
		writeUseCaseError(w, handlerLogger(r, "PropertyEditor"), err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toPropertyEditor(editor.ID, editor.Form))
}

// CreateProperty обрабатывает POST /api/properties
func (h *AdminHandler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "CreateProperty")

	var form domain.PropertyForm
	if err := decodeJSONBody(r, &form); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	p, err := h.uc.Properties.Create(r.Context(), sessionID(r), form)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, toPropertyRow(*p))
}

// UpdateProperty обрабатывает PUT /api/properties/{id}
func (h *AdminHandler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "UpdateProperty")

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var form domain.PropertyForm
	if err := decodeJSONBody(r, &form); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	p, err := h.uc.Properties.Update(r.Context(), sessionID(r), id, form)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toPropertyRow(*p))
}

// DeleteProperty обрабатывает DELETE /api/properties/{id}; в ответе - перезагруженная таблица.
func (h *AdminHandler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	filters := querycodec.DecodeAdminPropertyFilters(r.URL.Query(), h.perPage)
	res, err := h.uc.Properties.Delete(r.Context(), sessionID(r), id, filters)
	respondTable(w, handlerLogger(r, "DeleteProperty"), err, res != nil, func() TableResponse[PropertyRowResponse] {
		return toPropertyTable(res)
	})
}

// ToggleFeatured обрабатывает PATCH /api/properties/{id}/toggle-featured
func (h *AdminHandler) ToggleFeatured(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	filters := querycodec.DecodeAdminPropertyFilters(r.URL.Query(), h.perPage)
	res, err := h.uc.Properties.ToggleFeatured(r.Context(), sessionID(r), id, filters)
	respondTable(w, handlerLogger(r, "ToggleFeatured"), err, res != nil, func() TableResponse[PropertyRowResponse] {
		return toPropertyTable(res)
	})
}

// ApplyFormOp обрабатывает POST /api/properties/form: add_image, remove_image, toggle_feature.
func (h *AdminHandler) ApplyFormOp(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "ApplyFormOp")

	var op usecases_port.PropertyFormOp
	if err := decodeJSONBody(r, &op); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	form, err := h.uc.Properties.ApplyFormOp(op)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]any{"form": form})
}

// ListUsers обрабатывает GET /api/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	filters := querycodec.DecodeUserFilters(r.URL.Query(), h.perPage)
	res, err := h.uc.Users.List(r.Context(), sessionID(r), filters)
	respondTable(w, handlerLogger(r, "ListUsers"), err, res != nil, func() TableResponse[UserRowResponse] {
		return toUserTable(res)
	})
}

// CreateUser обрабатывает POST /api/users
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "CreateUser")

	var req domain.UserCreate
	if err := decodeJSONBody(r, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	filters := querycodec.DecodeUserFilters(r.URL.Query(), h.perPage)
	res, err := h.uc.Users.Create(r.Context(), sessionID(r), req, filters)
	respondTable(w, logger, err, res != nil, func() TableResponse[UserRowResponse] {
		return toUserTable(res)
	})
}

// UpdateUser обрабатывает PUT /api/users/{id}
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "UpdateUser")

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req domain.UserUpdate
	if err := decodeJSONBody(r, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	filters := querycodec.DecodeUserFilters(r.URL.Query(), h.perPage)
	res, err := h.uc.Users.Update(r.Context(), sessionID(r), id, req, filters)
	respondTable(w, logger, err, res != nil, func() TableResponse[UserRowResponse] {
		return toUserTable(res)
	})
}

// ToggleUserActive обрабатывает PATCH /api/users/{id}/toggle-active
func (h *AdminHandler) ToggleUserActive(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	filters := querycodec.DecodeUserFilters(r.URL.Query(), h.perPage)
	res, err := h.uc.Users.ToggleActive(r.Context(), sessionID(r), id, filters)
	respondTable(w, handlerLogger(r, "ToggleUserActive"), err, res != nil, func() TableResponse[UserRowResponse] {
		return toUserTable(res)
	})
}

// ListInquiries обрабатывает GET /api/inquiries
func (h *AdminHandler) ListInquiries(w http.ResponseWriter, r *http.Request) {
	filters := querycodec.DecodeInquiryFilters(r.URL.Query(), h.perPage)
	res, err := h.uc.Inquiries.List(r.Context(), sessionID(r), filters)
	respondTable(w, handlerLogger(r, "ListInquiries"), err, res != nil, func() TableResponse[InquiryRowResponse] {
		return toInquiryTable(res)
	})
}

// UpdateInquiryStatus обрабатывает PATCH /api/inquiries/{id}/status
func (h *AdminHandler) UpdateInquiryStatus(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "UpdateInquiryStatus")

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req domain.StatusUpdate
	if err := decodeJSONBody(r, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	filters := querycodec.DecodeInquiryFilters(r.URL.Query(), h.perPage)
	res, err := h.uc.Inquiries.UpdateStatus(r.Context(), sessionID(r), id, req, filters)
	respondTable(w, logger, err, res != nil, func() TableResponse[InquiryRowResponse] {
		return toInquiryTable(res)
	})
}
