package rest

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dendisuhubdy/mybalivillas/pkg/contextkeys"
	"github.com/dendisuhubdy/mybalivillas/pkg/querycodec"
	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/domain"
	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/port"
)

// ListProperties обрабатывает GET /api/properties
func (h *StorefrontHandler) ListProperties(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListProperties"})

	filters := querycodec.DecodePropertyFilters(r.URL.Query())
	viewKey := contextkeys.SessionIDFromContext(r.Context()) + ":properties"

	result, err := h.uc.BrowseProperties.Execute(r.Context(), viewKey, filters)
	if err != nil {
		// при политике "error" состояние со статусом ошибки тоже отдается клиенту
		if result != nil && errors.Is(err, domain.ErrUpstream) {
			RespondWithJSON(w, http.StatusBadGateway, toPropertyListingResponse(result))
			return
		}
		writeUseCaseError(w, logger, err, "")
		return
	}
	RespondWithJSON(w, http.StatusOK, toPropertyListingResponse(result))
}

// GetFeatured обрабатывает GET /api/properties/featured
func (h *StorefrontHandler) GetFeatured(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetFeatured"})

	res, err := h.uc.Featured.Execute(r.Context())
	if err != nil {
		writeUseCaseError(w, logger, err, "")
		return
	}
	RespondWithJSON(w, http.StatusOK, CollectionResponse[PropertyCardResponse]{
		Data:     toPropertyCards(res.Items),
		Fallback: res.Fallback,
	})
}

// ListAreas обрабатывает GET /api/areas
func (h *StorefrontHandler) ListAreas(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListAreas"})

	res, err := h.uc.Areas.Execute(r.Context())
	if err != nil {
		writeUseCaseError(w, logger, err, "")
		return
	}
	RespondWithJSON(w, http.StatusOK, CollectionResponse[AreaResponse]{
		Data:     toAreaResponses(res.Items),
		Fallback: res.Fallback,
	})
}

// GetProperty обрабатывает GET /api/properties/{slug}
func (h *StorefrontHandler) GetProperty(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler": "GetProperty",
		"slug":    slug,
	})

	detail, err := h.uc.PropertyDetail.Execute(r.Context(), slug)
	if err != nil {
		writeUseCaseError(w, logger, err, "")
		return
	}
	RespondWithJSON(w, http.StatusOK, toPropertyDetailPage(detail))
}

// SubmitInquiry обрабатывает POST /api/properties/{id}/inquiries
func (h *StorefrontHandler) SubmitInquiry(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "id")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler":     "SubmitInquiry",
		"property_id": propertyID,
	})

	if !validPathID(w, propertyID) {
		return
	}

	var req InquiryRequest
	if err := decodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sessionID := contextkeys.SessionIDFromContext(r.Context())
	inquiry, err := h.uc.SubmitInquiry.Execute(r.Context(), sessionID, propertyID, req.PropertyTitle, req.InquiryForm)
	if err != nil {
		writeUseCaseError(w, logger, err, "")
		return
	}

	logger.Info("Inquiry submitted", port.Fields{"inquiry_id": inquiry.ID})
	RespondWithJSON(w, http.StatusCreated, toInquiryResponse(inquiry))
}
