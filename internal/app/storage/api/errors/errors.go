package storage

import "errors"

var (
	ErrOrderNotFound = errors.New("order with given id doesn't exist in storage")

	// ErrOrderStatusConflict reports a conditional status update that
	// matched the order id but not the expected current status: another
	// writer moved the order first.
	ErrOrderStatusConflict = errors.New("order status has changed since it was read")
)
