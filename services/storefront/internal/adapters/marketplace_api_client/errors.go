package marketplace_api_client

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/domain"
)

// APIError - ответ API со статусом не 2xx.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("marketplace api returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("marketplace api returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// UserMessage - текст ошибки от сервера, который можно показать рядом с формой.
func (e *APIError) UserMessage() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
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
