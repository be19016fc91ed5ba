package usecase

import (
	"fmt"

	"github.com/orderline/go-order-system/internal/app/entity"
)

type ValidationKind string

const (
	KindEmptyOrder      ValidationKind = `EmptyOrder`
	KindFieldConstraint ValidationKind = `FieldConstraint`
	KindInvalidTotal    ValidationKind = `InvalidTotal`
)

type Violation struct {
	Field         string
	RejectedValue string
	Message       string
}

type ValidationError struct {
	Kind       ValidationKind
	Message    string
	Violations []Violation
}

func (e *ValidationError) Error() string {
	return e.Message
}

func EmptyOrder() *ValidationError {
	return &ValidationError{
		Kind:    KindEmptyOrder,
		Message: "order must contain at least one item",
	}
}

func InvalidTotal(total string) *ValidationError {
	return &ValidationError{
		Kind:    KindInvalidTotal,
		Message: fmt.Sprintf("order total must be positive, got %s", total),
	}
}

func FieldConstraints(violations []Violation) *ValidationError {
	return &ValidationError{
		Kind:       KindFieldConstraint,
		Message:    "invalid request parameters",
		Violations: violations,
	}
}

type NotFoundError struct {
	OrderID entity.OrderID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("order with id %s not found", e.OrderID)
}

func OrderNotFound(id entity.OrderID) *NotFoundError {
	return &NotFoundError{OrderID: id}
}

type InvalidTransitionError struct {
	From          entity.OrderStatus
	To            entity.OrderStatus
	CancelAttempt bool
}

func (e *InvalidTransitionError) Error() string {
	if e.CancelAttempt {
		return fmt.Sprintf("order cannot be cancelled in status %s, only PENDING orders can be cancelled", e.From)
	}

	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

func CannotCancel(current entity.OrderStatus) *InvalidTransitionError {
	return &InvalidTransitionError{From: current, To: entity.StatusCancelled, CancelAttempt: true}
}

func InvalidTransition(from, to entity.OrderStatus) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}
