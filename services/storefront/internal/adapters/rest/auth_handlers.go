package rest

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dendisuhubdy/mybalivillas/pkg/contextkeys"
	"github.com/dendisuhubdy/mybalivillas/pkg/session"
	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/domain"
	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/port"
)

// Login обрабатывает POST /api/auth/login
func (h *StorefrontHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Login"})

	var req domain.LoginRequest
	if err := decodeJSONBody(r, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.uc.Login.Execute(r.Context(), contextkeys.SessionIDFromContext(r.Context()), req)
	if err != nil {
		// неверные учетные данные - это не "сессия истекла"
		if errors.Is(err, domain.ErrUnauthorized) {
			WriteJSONError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		writeUseCaseError(w, logger, err, "")
		return
	}
	RespondWithJSON(w, http.StatusOK, toUserResponse(*user, user.Role))
}

// Register обрабатывает POST /api/auth/register
func (h *StorefrontHandler) Register(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Register"})

	var req domain.RegisterRequest
	if err := decodeJSONBody(r, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.uc.Register.Execute(r.Context(), contextkeys.SessionIDFromContext(r.Context()), req)
	if err != nil {
		writeUseCaseError(w, logger, err, "")
		return
	}
	RespondWithJSON(w, http.StatusCreated, toUserResponse(*user, user.Role))
}

// Logout обрабатывает POST /api/auth/logout
func (h *StorefrontHandler) Logout(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Logout"})

	if err := h.uc.Logout.Execute(r.Context(), contextkeys.SessionIDFromContext(r.Context())); err != nil {
		writeUseCaseError(w, logger, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSession обрабатывает GET /api/auth/session
func (h *StorefrontHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetSession"})

	current, err := h.uc.CurrentSession.Execute(r.Context(), contextkeys.SessionIDFromContext(r.Context()))
	if err != nil {
		if errors.Is(err, domain.ErrLoginRequired) {
			RespondWithJSON(w, http.StatusOK, map[string]any{"authenticated": false})
			return
		}
		writeUseCaseError(w, logger, err, "")
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user":          toUserResponse(current.User, current.Role),
	})
}

// SubscribeToSession обрабатывает GET /api/session/events:
// поток auth-change событий текущей сессии (вход, выход, смена профиля).
func (h *StorefrontHandler) SubscribeToSession(w http.ResponseWriter, r *http.Request) {
	sessionID := contextkeys.SessionIDFromContext(r.Context())
	handlerLogger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler":    "SubscribeToSession",
		"session_id": sessionID,
	})

	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteJSONError(w, http.StatusInternalServerError, "Streaming is not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	events, unsubscribe := h.events.Subscribe(sessionID)
	defer unsubscribe()

	fmt.Fprintf(w, "event: connected\ndata: {}\n\n")
	flusher.Flush()
	handlerLogger.Info("New client subscribed to session events", nil)

	// комментарий раз в 15 секунд держит соединение открытым
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			frame, err := session.FormatSSE(ev)
			if err != nil {
				handlerLogger.Error("Failed to encode session event", err, nil)
				continue
			}
			if _, err := w.Write(frame); err != nil {
				handlerLogger.Error("Error writing to client, closing SSE connection", err, nil)
				return
			}
			flusher.Flush()
		case <-ticker.C:
			if _, err := fmt.Fprintf(w, ": keep-alive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case <-r.Context().Done():
			handlerLogger.Info("SSE client disconnected", nil)
			return
		}
	}
}
