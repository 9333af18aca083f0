// services/errors.go - Domain error taxonomy
package services

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrStorage    = errors.New("storage failure")
)

// ValidationError is bad caller input. Nothing was persisted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NotFoundError is a missing user, challenge, activity or participation.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Resource + " not found"
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ConflictError is a state clash: duplicate join, double claim, claim too early.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return e.Reason }

func (e *ConflictError) Unwrap() error { return ErrConflict }

// StorageError wraps a persistence failure. Its message is internal only.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() []error { return []error{ErrStorage, e.Err} }

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

func notFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

func conflict(reason string) error {
	return &ConflictError{Reason: reason}
}

// storageErr classifies err from GORM. Domain errors pass through unchanged so
// they can be returned from inside a transaction closure.
func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrValidation) || errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrConflict) || errors.Is(err, ErrStorage) {
		return err
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return conflict("already exists")
	}
	return &StorageError{Op: op, Err: err}
}

var validate = validator.New()

// validateStruct runs validator tags and reports the first failing field.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return invalid(fe.Field(), fmt.Sprintf("failed %q constraint", fe.Tag()))
	}
	return invalid("", err.Error())
}
