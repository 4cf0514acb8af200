package rest

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dendisuhubdy/mybalivillas/pkg/contextkeys"
)

// SessionMiddleware выдает браузеру cookie с id серверной сессии админки.
func SessionMiddleware(cookieName string, secure bool, ttl time.Duration) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sessionID string
			if c, err := r.Cookie(cookieName); err == nil {
				if _, err := uuid.Parse(c.Value); err == nil {
					sessionID = c.Value
				}
			}
			if sessionID == "" {
				sessionID = uuid.New().String()
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    sessionID,
					Path:     "/",
					MaxAge:   int(ttl.Seconds()),
					HttpOnly: true,
					Secure:   secure,
					// админка не открывается по внешним ссылкам
					SameSite: http.SameSiteStrictMode,
				})
			}
			next.ServeHTTP(w, r.WithContext(contextkeys.ContextWithSessionID(r.Context(), sessionID)))
		})
	}
}
