package domain

import "errors"

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidInput = errors.New("invalid input")
var ErrForbidden = errors.New("access forbidden")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrItemNotFound = errors.New("item not found")
var ErrSessionNotFound = errors.New("usage session not found")

// ErrUnavailable wraps persistence-layer failures. Repositories wrap the
// driver error so callers can still unwrap the root cause.
var ErrUnavailable = errors.New("storage unavailable")
