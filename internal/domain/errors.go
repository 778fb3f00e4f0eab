package domain

import "errors"

var (
	ErrNotFound     = errors.New("provider: not found")
	ErrUnauthorized = errors.New("provider: unauthorized")
	ErrForbidden    = errors.New("provider: forbidden")
)
