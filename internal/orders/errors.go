package orders

import (
	"errors"
	"fmt"
)

// Downstream collaborator failures. These are recovered locally by the
// workflow and folded into the matching result field, never propagated.
var (
	ErrInventoryUnavailable = errors.New("inventory check failed")
	ErrReservationFailed    = errors.New("inventory reservation failed")
	ErrNotificationFailed   = errors.New("notification delivery failed")
)

// ValidationError reports a rejected create-order request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StorageError wraps a failed order-store operation. A failed insert is the
// only fatal condition in the create-order workflow.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("order store %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
