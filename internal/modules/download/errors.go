package download

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid_request")
	ErrNotFound       = errors.New("not_found")
	ErrExpired        = errors.New("expired")
)
