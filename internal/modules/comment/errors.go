package comment

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid_request")
	ErrDeviceMissing  = errors.New("device_missing")
	ErrProfanity      = errors.New("profanity")
	ErrRateLimited    = errors.New("rate_limited")
	ErrNotFound       = errors.New("not_found")
)
