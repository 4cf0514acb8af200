package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/dendisuhubdy/mybalivillas/pkg/formvalidation"
	"github.com/dendisuhubdy/mybalivillas/pkg/listing"
	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/domain"
	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/port"
)

// WriteJSONError отправляет ошибку в формате {"error": "..."}.
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, map[string]string{"error": message})
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	w.Write(response)
}

type errorResponse struct {
	Error    string            `json:"error"`
	Fields   map[string]string `json:"fields,omitempty"`
	Redirect string            `json:"redirect,omitempty"`
}

// writeUseCaseError сопоставляет ошибки ядра с HTTP-статусами.
// returnTo - куда вернуть пользователя после входа.
func writeUseCaseError(w http.ResponseWriter, logger port.LoggerPort, err error, returnTo string) {
	var fields formvalidation.FieldErrors
	switch {
	case errors.As(err, &fields):
		RespondWithJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "Validation failed", Fields: fields})
	case errors.Is(err, domain.ErrLoginRequired), errors.Is(err, domain.ErrUnauthorized):
		redirect := "/login"
		if returnTo != "" {
			redirect += "?redirect=" + url.QueryEscape(returnTo)
		}
		RespondWithJSON(w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized", Redirect: redirect})
	case errors.Is(err, domain.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, domain.ErrInvalidCommand):
		WriteJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, listing.ErrSuperseded):
		WriteJSONError(w, http.StatusConflict, "Request superseded by a newer one")
	default:
		logger.Error("Request failed", err, nil)
		var apiErr interface{ UserMessage() string }
		if errors.As(err, &apiErr) && apiErr.UserMessage() != "" {
			WriteJSONError(w, http.StatusBadGateway, apiErr.UserMessage())
			return
		}
		WriteJSONError(w, http.StatusBadGateway, "Marketplace API is unavailable")
	}
}

func decodeJSONBody(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
