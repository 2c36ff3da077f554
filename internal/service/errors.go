package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	// ErrBadAccessToken covers every token rejection: unknown, expired and
	// revoked tokens are indistinguishable to the caller.
	ErrBadAccessToken = errors.New("bad access token")
)
