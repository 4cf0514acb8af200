package rest

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dendisuhubdy/mybalivillas/pkg/contextkeys"
	"github.com/dendisuhubdy/mybalivillas/pkg/session"
	"github.com/dendisuhubdy/mybalivillas/services/admin-panel/internal/core/domain"
	"github.com/dendisuhubdy/mybalivillas/services/admin-panel/internal/core/port"
)

// Login обрабатывает POST /api/auth/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Login"})

	var req domain.LoginRequest
	if err := decodeJSONBody(r, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.uc.Login.Execute(r.Context(), contextkeys.SessionIDFromContext(r.Context()), req)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			WriteJSONError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		writeUseCaseError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toAdminUserResponse(*user))
}

// Logout обрабатывает POST /api/auth/logout
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Logout"})

	if err := h.uc.Logout.Execute(r.Context(), contextkeys.SessionIDFromContext(r.Context())); err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSession обрабатывает GET /api/auth/session
func (h *AdminHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetSession"})

	user, err := h.uc.CurrentSession.Execute(r.Context(), contextkeys.SessionIDFromContext(r.Context()))
	switch {
	case err == nil:
		RespondWithJSON(w, http.StatusOK, map[string]any{"authenticated": true, "user": toAdminUserResponse(*user)})
	case errors.Is(err, domain.ErrLoginRequired), errors.Is(err, domain.ErrUnauthorized):
		RespondWithJSON(w, http.StatusOK, map[string]any{"authenticated": false})
	default:
		writeUseCaseError(w, logger, err)
	}
}

// SubscribeToSession обрабатывает GET /api/session/events
func (h *AdminHandler) SubscribeToSession(w http.ResponseWriter, r *http.Request) {
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
	handlerLogger.Info("Admin client subscribed to session events", nil)

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
