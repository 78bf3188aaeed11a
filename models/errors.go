package models

import (
	"errors"
	"fmt"
)

// Registration workflow failures. Handlers map these to HTTP statuses with
// errors.Is / errors.As; anything not listed here is a store failure.
var (
	ErrEventNotFound         = errors.New("event not found")
	ErrEventNotOpen          = errors.New("event is not open for registration")
	ErrDuplicateRegistration = errors.New("already registered for this event")
)

// CapacityError is returned when the requested ticket quantity exceeds the
// remaining slots. Available carries how many are left for the error message.
type CapacityError struct {
	Available int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("insufficient capacity: only %d slots remaining", e.Available)
}
