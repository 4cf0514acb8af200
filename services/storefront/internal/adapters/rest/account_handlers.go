package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dendisuhubdy/mybalivillas/pkg/badge"
	"github.com/dendisuhubdy/mybalivillas/pkg/contextkeys"
	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/domain"
	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/port"
)

// GetProfile обрабатывает GET /api/profile
func (h *StorefrontHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetProfile"})

	user, err := h.uc.GetProfile.Execute(r.Context(), contextkeys.SessionIDFromContext(r.Context()))
	if err != nil {
		writeUseCaseError(w, logger, err, "/profile")
		return
	}
	RespondWithJSON(w, http.StatusOK, toUserResponse(*user, user.Role))
}

// UpdateProfile обрабатывает PUT /api/profile
func (h *StorefrontHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateProfile"})

	var req domain.ProfileUpdate
	if err := decodeJSONBody(r, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.uc.UpdateProfile.Execute(r.Context(), contextkeys.SessionIDFromContext(r.Context()), req)
	if err != nil {
		writeUseCaseError(w, logger, err, "/profile")
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]any{
		"user":    toUserResponse(*user, user.Role),
		"message": "Profile updated successfully",
	})
}

// ListSaved обрабатывает GET /api/saved
func (h *StorefrontHandler) ListSaved(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListSaved"})

	items, err := h.uc.Saved.List(r.Context(), contextkeys.SessionIDFromContext(r.Context()))
	if err != nil {
		writeUseCaseError(w, logger, err, "/saved")
		return
	}
	RespondWithJSON(w, http.StatusOK, CollectionResponse[PropertyCardResponse]{Data: toPropertyCards(items)})
}

// validPathID отсекает id объекта, который не является UUID, до обращения к API.
func validPathID(w http.ResponseWriter, id string) bool {
	if _, err := uuid.Parse(id); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid property id")
		return false
	}
	return true
}

// SaveProperty обрабатывает POST /api/saved/{id}
func (h *StorefrontHandler) SaveProperty(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "id")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler":     "SaveProperty",
		"property_id": propertyID,
	})

	if !validPathID(w, propertyID) {
		return
	}

	if err := h.uc.Saved.Save(r.Context(), contextkeys.SessionIDFromContext(r.Context()), propertyID); err != nil {
		writeUseCaseError(w, logger, err, "/saved")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UnsaveProperty обрабатывает DELETE /api/saved/{id}
func (h *StorefrontHandler) UnsaveProperty(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "id")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler":     "UnsaveProperty",
		"property_id": propertyID,
	})

	if !validPathID(w, propertyID) {
		return
	}

	remaining, err := h.uc.Saved.Unsave(r.Context(), contextkeys.SessionIDFromContext(r.Context()), propertyID)
	if err != nil {
		writeUseCaseError(w, logger, err, "/saved")
		return
	}
	RespondWithJSON(w, http.StatusOK, CollectionResponse[PropertyCardResponse]{Data: toPropertyCards(remaining)})
}

// ListPropertyWizard обрабатывает POST /api/list-property/wizard
// Без state начинается новый мастер со значениями по умолчанию.
func (h *StorefrontHandler) ListPropertyWizard(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListPropertyWizard"})

	var req WizardRequest
	if err := decodeJSONBody(r, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	state := domain.WizardState{Form: domain.NewWizardForm()}
	if req.State != nil {
		state = *req.State
	}

	next, err := h.uc.Wizard.Execute(r.Context(), contextkeys.SessionIDFromContext(r.Context()), state, req.Action)
	if err != nil {
		writeUseCaseError(w, logger, err, "/list-property")
		return
	}
	RespondWithJSON(w, http.StatusOK, WizardResponse{Steps: domain.WizardSteps, State: *next})
}

func toInquiryResponse(inq *domain.Inquiry) InquiryResponse {
	status := inq.Status
	if status == "" {
		status = domain.InquiryNew
	}
	return InquiryResponse{
		ID:         inq.ID,
		PropertyID: inq.PropertyID,
		Status:     badge.Resolve(badge.VariantInquiry, string(status)),
		Message:    "Your inquiry has been sent. The agent will contact you shortly.",
	}
}
