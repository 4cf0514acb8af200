package port

import (
	"github.com/dendisuhubdy/mybalivillas/pkg/authtoken"
	"github.com/dendisuhubdy/mybalivillas/pkg/session"
)

// SessionStorePort - сессия админки (admin_token + admin_user).
type SessionStorePort = session.Store

type TokenInspectorPort interface {
	Inspect(token string) (*authtoken.Claims, error)
}
