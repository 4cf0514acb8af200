package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dendisuhubdy/mybalivillas/pkg/formvalidation"
	"github.com/dendisuhubdy/mybalivillas/pkg/listing"
	"github.com/dendisuhubdy/mybalivillas/services/admin-panel/internal/core/domain"
	"github.com/dendisuhubdy/mybalivillas/services/admin-panel/internal/core/port"
)

// loginPath - куда админка отправляет браузер после сброса сессии.
const loginPath = "/login"

func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, map[string]string{"error": message})
}

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
// Любой 401 означает, что сессия уже сброшена: клиент уходит на /login.
func writeUseCaseError(w http.ResponseWriter, logger port.LoggerPort, err error) {
	var fields formvalidation.FieldErrors
	switch {
	case errors.As(err, &fields):
		RespondWithJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "Validation failed", Fields: fields})
	case errors.Is(err, domain.ErrLoginRequired), errors.Is(err, domain.ErrUnauthorized):
		RespondWithJSON(w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized", Redirect: loginPath})
	case errors.Is(err, domain.ErrForbidden):
		WriteJSONError(w, http.StatusForbidden, domain.ErrForbidden.Error())
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
		WriteJSONError(w, http.StatusBadGateway, "Admin API is unavailable")
	}
}

func decodeJSONBody(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
