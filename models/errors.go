package models

import (
	"errors"
	"fmt"
)

// ErrSubmitInFlight is returned when an order submission is requested while a
// previous submission for the same cart is still pending.
var ErrSubmitInFlight = errors.New("an order submission is already in progress for this cart")

// ValidationError represents malformed or rule-violating input. The operation
// is rejected and the cart/order state is left unchanged.
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

// NewValidationError creates a ValidationError for the given field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError indicates an operation referenced a resource id that no longer exists
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// NewNotFoundError creates a NotFoundError for the given resource and id
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// InvalidTransitionError indicates a requested order status transition that
// violates the status state machine. It carries both the current and the
// requested status so callers can surface a precise message.
type InvalidTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %q to %q", e.From, e.To)
}

// SelectionLimitError is returned when selecting an additive would exceed the
// owning group's maximum selection count. The selection set is unchanged; the
// caller must surface the limit to the customer rather than drop the choice silently.
type SelectionLimitError struct {
	GroupName string
	Max       int
}

func (e *SelectionLimitError) Error() string {
	return fmt.Sprintf("selection limit reached for group %q (maximum %d)", e.GroupName, e.Max)
}
