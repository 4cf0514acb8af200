package admin_api_client

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dendisuhubdy/mybalivillas/services/admin-panel/internal/core/domain"
)

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("admin api returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("admin api returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// UserMessage - текст ошибки от сервера для показа в форме.
func (e *APIError) UserMessage() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusForbidden:
		return domain.ErrForbidden
	case http.StatusNotFound:
		return domain.ErrNotFound
	default:
		return domain.ErrUpstream
	}
}

func newAPIError(status int, body []byte) *APIError {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	_ = json.Unmarshal(body, &payload)
	msg := payload.Message
	if msg == "" {
		msg = payload.Error
	}
	return &APIError{StatusCode: status, Message: msg}
}
