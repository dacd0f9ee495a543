package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInternal = errors.New("internal error")

	// * Data errors.
	ErrDataNotFound    = errors.New("data not found")
	ErrNoUpdatedData   = errors.New("no data to update")
	ErrConflictingData = errors.New("data conflicts with existing data in unique column")

	// * Communication errors.
	ErrBadRequest = errors.New("error parsing request")
	ErrValidation = errors.New("validation failed")

	// * Authority errors.
	ErrTokenCreation              = errors.New("error creating token")
	ErrExpiredToken               = errors.New("access token has expired")
	ErrInvalidToken               = errors.New("access token is invalid")
	ErrInvalidCredentials         = errors.New("invalid email or password")
	ErrInactiveUser               = errors.New("user account is not active")
	ErrEmptyAuthorizationHeader   = errors.New("authorization header is not provided")
	ErrInvalidAuthorizationHeader = errors.New("authorization header format is invalid")
	ErrInvalidAuthorizationType   = errors.New("authorization type is not supported")
	ErrUnauthorized               = errors.New("user is unauthorized to access the resource")
	ErrForbidden                  = errors.New("user is forbidden to access the resource")

	// * Business errors.
	ErrImmutableField      = errors.New("field can not be changed after creation")
	ErrConflictingTargets  = errors.New("package and deliver receip can not be set in the same request")
	ErrAlreadyDelivered    = errors.New("product received is already linked to another deliver receip")
	ErrRatesNotInitialized = errors.New("common information is not initialized")
	ErrIncompleteAggregate = errors.New("aggregate is not fully loaded")
	ErrNotAnAgent          = errors.New("user is not an agent")
	ErrBadImageExtension   = errors.New("file must be an image (.png, .jpg, .jpeg)")
	ErrImageStoreDisabled  = errors.New("image storage is not configured")
)

// ValidationError reports a bad input field or a reference to an entity that does not exist.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// RefError turns a failed lookup of a referenced entity into a validation error.
// Errors other than ErrDataNotFound are returned unchanged.
func RefError(field string, err error) error {
	if errors.Is(err, ErrDataNotFound) {
		return &ValidationError{Field: field, Message: "referenced entity does not exist", Err: ErrDataNotFound}
	}
	return err
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrValidation}
	}
	return []error{ErrValidation, e.Err}
}
