package service

import "errors"

var (
	// ErrUnauthenticated means the bearer token is missing, invalid, expired or revoked
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrInvalidCredentials means the email/password pair did not match an account
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrForbidden is a policy denial
	ErrForbidden = errors.New("unauthorized")
	// ErrNotFound means the referenced record does not exist
	ErrNotFound = errors.New("not found")
	// ErrMalformedBody means the request body is not a JSON object
	ErrMalformedBody = errors.New("malformed JSON body")
)
