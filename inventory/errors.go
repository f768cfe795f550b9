package inventory

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrDuplicateUsername is returned when creating an account whose username is taken.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrDuplicateID is returned when inserting a book whose id is taken.
	ErrDuplicateID = errors.New("book id already exists")
	// ErrUserNotFound is returned when resetting the password of an unknown account.
	ErrUserNotFound = errors.New("user not found")
	// ErrBookNotFound is returned when no book matches the given id.
	ErrBookNotFound = errors.New("book not found")
	// ErrInvalidInput is returned for non-integer text where an integer is required,
	// or an unrecognized sub-menu choice.
	ErrInvalidInput = errors.New("invalid input")
)

// InputError is an ErrInvalidInput that carries the detail shown to the
// operator, so the detail survives any context wrapped around it.
type InputError struct {
	Detail string
}

func (e *InputError) Error() string { return ErrInvalidInput.Error() + ": " + e.Detail }

func (e *InputError) Unwrap() error { return ErrInvalidInput }

// InvalidInputf returns an *InputError whose detail is formatted from format and args.
func InvalidInputf(format string, args ...any) error {
	return &InputError{Detail: fmt.Sprintf(format, args...)}
}

// IsRecoverable reports whether err belongs to the operator-facing taxonomy.
// Anything else is a storage fault.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrDuplicateUsername) ||
		errors.Is(err, ErrDuplicateID) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrBookNotFound) ||
		errors.Is(err, ErrInvalidInput)
}

// isConstraintViolation reports whether err is a primary key or unique conflict.
func isConstraintViolation(err error) bool {
	var liteErr sqlite3.Error
	if !errors.As(err, &liteErr) {
		return false
	}
	switch liteErr.ExtendedCode {
	case sqlite3.ErrConstraintPrimaryKey, sqlite3.ErrConstraintUnique:
		return true
	}
	return false
}
