package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed or incomplete input.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicateAccount is returned when an email is already registered.
	ErrDuplicateAccount = errors.New("an account with this email already exists")
	// ErrMissingCredentials is returned when email or password is blank.
	ErrMissingCredentials = errors.New("email and password are required")
	// ErrInvalidCredentials is returned when no account matches.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrLastAdministrator blocks removal of the only administrator.
	ErrLastAdministrator = errors.New("cannot remove the last administrator")
	// ErrEmptyCart is returned when placing an order with no cart lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrNotLoggedIn is returned when an operation needs a customer session.
	ErrNotLoggedIn = errors.New("no customer is logged in")
	// ErrInvalidOrderStatus is returned for unknown order statuses.
	ErrInvalidOrderStatus = errors.New("invalid order status")
	// ErrResetDeclined is returned when the reset confirmation is refused.
	ErrResetDeclined = errors.New("reset not confirmed")
	// ErrNotFound matches every NotFoundError.
	ErrNotFound = errors.New("not found")
)

// NotFoundError reports a missing record.
type NotFoundError struct {
	Entity EntityType
	ID     string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// Is lets errors.Is(err, ErrNotFound) match any NotFoundError.
func (e NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Invalid wraps ErrValidation with a field-level message.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
