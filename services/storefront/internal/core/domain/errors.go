package domain

import "errors"

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNotFound       = errors.New("not found")
	ErrUpstream       = errors.New("marketplace api request failed")
	ErrLoginRequired  = errors.New("login required")
	ErrInvalidCommand = errors.New("invalid wizard command")
)
