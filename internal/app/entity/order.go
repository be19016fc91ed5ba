package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = `PENDING`
	StatusProcessing OrderStatus = `PROCESSING`
	StatusShipped    OrderStatus = `SHIPPED`
	StatusDelivered  OrderStatus = `DELIVERED`
	StatusCancelled  OrderStatus = `CANCELLED`
)

// transitions is the full status graph. A status missing from the map
// or mapped to an empty set is terminal. Self-transitions are not in
// the graph on purpose.
var transitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

func ParseOrderStatus(raw string) (OrderStatus, error) {
	status := OrderStatus(raw)
	if _, ok := transitions[status]; !ok {
		return "", fmt.Errorf("unknown order status: %s", raw)
	}

	return status, nil
}

func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}

	return false
}

func (s OrderStatus) Terminal() bool {
	return len(transitions[s]) == 0
}

type OrderID string

func NewOrderID() OrderID {
	return OrderID(uuid.NewString())
}

func (id OrderID) String() string {
	return string(id)
}

type ItemID string

func NewItemID() ItemID {
	return ItemID(uuid.NewString())
}

type Orders []Order

type Order struct {
	ID            OrderID
	Status        OrderStatus
	CustomerEmail string
	TotalAmount   decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Items         Items
}

func (o *Order) CanBeCancelled() bool {
	return o.Status == StatusPending
}

type Items []Item

type Item struct {
	ID          ItemID
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// Subtotal is quantity × unit price in exact decimal arithmetic.
func (i *Item) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ComputeTotal sums item subtotals without leaving decimal space.
func ComputeTotal(items Items) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}

	return total
}
