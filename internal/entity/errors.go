package entity

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("not authenticated")
	ErrUpstream        = errors.New("upstream failure")
	ErrValidation      = errors.New("validation failed")
)
