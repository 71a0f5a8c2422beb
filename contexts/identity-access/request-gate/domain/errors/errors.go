package errors

import "errors"

var (
	ErrNoCredentials    = errors.New("no bearer credentials presented")
	ErrTokenMalformed   = errors.New("token is malformed")
	ErrInvalidSignature = errors.New("token signature is invalid")
	ErrTokenExpired     = errors.New("token is expired")
)
