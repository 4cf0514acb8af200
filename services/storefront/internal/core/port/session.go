package port

import (
	"github.com/dendisuhubdy/mybalivillas/pkg/authtoken"
	"github.com/dendisuhubdy/mybalivillas/pkg/session"
)

// SessionStorePort - единое хранилище текущей сессии (auth_token + user).
type SessionStorePort = session.Store

type TokenInspectorPort interface {
	Inspect(token string) (*authtoken.Claims, error)
}
