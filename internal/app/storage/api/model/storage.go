package model

import (
	"context"
	"time"

	"github.com/orderline/go-order-system/internal/app/entity"
)

type Storage interface {
	Close() error
	Ping(ctx context.Context) error

	// CreateOrder persists the order and all of its items atomically.
	CreateOrder(ctx context.Context, order entity.Order) error

	// GetOrder returns the order with all items populated.
	GetOrder(ctx context.Context, id entity.OrderID) (entity.Order, error)

	// ListOrders returns orders sorted by creation time descending,
	// optionally restricted to one status. Items are populated.
	ListOrders(ctx context.Context, status *entity.OrderStatus, limit, offset int) (entity.Orders, error)
	CountOrders(ctx context.Context, status *entity.OrderStatus) (int64, error)

	// OrdersByStatus returns the full set of orders in the given
	// status, without items. Used by the batch promotion sweep.
	OrdersByStatus(ctx context.Context, status entity.OrderStatus) (entity.Orders, error)

	// UpdateOrderStatus applies a conditional single-row update:
	// the write succeeds only if the order is still in the "from"
	// status. Returns ErrOrderNotFound or ErrOrderStatusConflict
	// when the condition doesn't hold.
	UpdateOrderStatus(ctx context.Context, id entity.OrderID, from, to entity.OrderStatus, updatedAt time.Time) error
}
