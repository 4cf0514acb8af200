package domain

import "errors"

var (
	// ErrUnauthorized - API ответил 401; сессия админки после этого сбрасывается.
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrUpstream     = errors.New("admin api request failed")
	// ErrLoginRequired - в сессии нет токена.
	ErrLoginRequired = errors.New("login required")
	// ErrForbidden - вход выполнен не администратором.
	ErrForbidden      = errors.New("only admin users can access this portal")
	ErrInvalidCommand = errors.New("invalid command")
)
