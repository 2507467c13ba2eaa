package domain

import "errors"

var ErrNotFound = errors.New("resource not found")
var ErrUnauthenticated = errors.New("not authenticated")
var ErrForbidden = errors.New("access forbidden")
var ErrSessionNotFound = errors.New("session not found")
var ErrInvalidTransition = errors.New("invalid status transition")
