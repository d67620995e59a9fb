package usecase

import (
	"errors"
	"fmt"

	"github.com/xavierca1/mailmorph/internal/entity"
)

// DomainError is an expected failure; Err is one of the entity sentinels.
type DomainError struct {
	Code    string
	Message string
	// Service names the external collaborator for upstream failures.
	Service string
	Err     error
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError wraps storage and other infrastructure failures.
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

func notFound(code, message string) error {
	return &DomainError{Code: code, Message: message, Err: entity.ErrNotFound}
}

func unauthenticated() error {
	return &DomainError{Code: "NOT_AUTHENTICATED", Message: "Not authenticated", Err: entity.ErrUnauthenticated}
}

func upstream(service string, err error) error {
	return &DomainError{
		Code:    "UPSTREAM_FAILURE",
		Message: fmt.Sprintf("%s: %v", service, err),
		Service: service,
		Err:     errors.Join(entity.ErrUpstream, err),
	}
}

func storageFailure(what string, err error) error {
	return &TechnicalError{
		Code:    "STORAGE_ERROR",
		Message: fmt.Sprintf("failed to %s: %v", what, err),
		Err:     err,
	}
}
