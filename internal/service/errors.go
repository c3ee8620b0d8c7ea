package service

import "errors"

// Failure taxonomy surfaced to the transport layer. Handlers map these
// to 429 / 401 / 404 / 400; anything unwrapped is an internal error and
// its text stays out of the response body.
var (
	ErrRateLimited         = errors.New("too many requests")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrInvalidRefreshToken = errors.New("invalid or revoked refresh token")
	ErrNotFound            = errors.New("not found")
	ErrBusinessRule        = errors.New("business rule violation")
)
