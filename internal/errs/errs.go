// Package errs contains sentinel errors shared by the db and api layers for
// stable error-to-status mapping.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken indicates a unique email constraint violation.
	ErrEmailTaken = errors.New("email already exists")

	// ErrInvalidState indicates the operation is not valid for the entity's
	// current lifecycle state (e.g. distributing from a pending allotment).
	ErrInvalidState = errors.New("invalid state")

	// ErrForbidden indicates the caller is authenticated but not allowed to
	// touch the resource.
	ErrForbidden = errors.New("forbidden")
)

// InsufficientQuantityError reports a capacity violation along with how many
// units are actually available, so handlers can surface the number to the user.
type InsufficientQuantityError struct {
	Available int
}

func (e *InsufficientQuantityError) Error() string {
	return fmt.Sprintf("insufficient quantity. Available: %d", e.Available)
}

// IsInsufficientQuantity reports whether err is an InsufficientQuantityError
// and returns the available amount when it is.
func IsInsufficientQuantity(err error) (int, bool) {
	var iq *InsufficientQuantityError
	if errors.As(err, &iq) {
		return iq.Available, true
	}
	return 0, false
}
