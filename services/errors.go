package services

import "errors"

// ErrInvalidInput marks request validation failures. Handlers answer it
// with 400; anything else that bubbles out of a service reached the
// store and is a 500.
var ErrInvalidInput = errors.New("invalid input")
