package validator

import (
	"fmt"
	"net/mail"

	"github.com/shopspring/decimal"

	"github.com/orderline/go-order-system/internal/app/model"
	err_usecase "github.com/orderline/go-order-system/internal/app/usecase/errors"
)

const (
	maxEmailLen       = 255
	maxProductNameLen = 200
	minQuantity       = 1
	maxQuantity       = 1000
)

var (
	minUnitPrice = decimal.RequireFromString(`0.01`)
	maxUnitPrice = decimal.RequireFromString(`1000000.00`)
)

// CreateOrderRequest checks the field constraints of a create request.
// The item-set emptiness and total-amount rules are business rules and
// stay in the lifecycle service.
func CreateOrderRequest(request model.CreateOrderRequest) []err_usecase.Violation {
	var violations []err_usecase.Violation

	violations = append(violations, emailViolations(request.CustomerEmail)...)

	for i, item := range request.Items {
		violations = append(violations, itemViolations(i, item)...)
	}

	return violations
}

func emailViolations(email string) []err_usecase.Violation {
	if len(email) == 0 {
		return []err_usecase.Violation{{
			Field:   "customerEmail",
			Message: "customer email is required",
		}}
	}

	if len(email) > maxEmailLen {
		return []err_usecase.Violation{{
			Field:         "customerEmail",
			RejectedValue: email,
			Message:       fmt.Sprintf("customer email must be at most %d characters", maxEmailLen),
		}}
	}

	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return []err_usecase.Violation{{
			Field:         "customerEmail",
			RejectedValue: email,
			Message:       "customer email must be valid",
		}}
	}

	return nil
}

func itemViolations(index int, item model.CreateOrderItem) []err_usecase.Violation {
	var violations []err_usecase.Violation

	if len(item.ProductName) == 0 || len(item.ProductName) > maxProductNameLen {
		violations = append(violations, err_usecase.Violation{
			Field:         fmt.Sprintf("items[%d].productName", index),
			RejectedValue: item.ProductName,
			Message:       fmt.Sprintf("product name must be between 1 and %d characters", maxProductNameLen),
		})
	}

	if item.Quantity < minQuantity || item.Quantity > maxQuantity {
		violations = append(violations, err_usecase.Violation{
			Field:         fmt.Sprintf("items[%d].quantity", index),
			RejectedValue: fmt.Sprintf("%d", item.Quantity),
			Message:       fmt.Sprintf("quantity must be between %d and %d", minQuantity, maxQuantity),
		})
	}

	if item.UnitPrice.Cmp(minUnitPrice) < 0 || item.UnitPrice.Cmp(maxUnitPrice) > 0 {
		violations = append(violations, err_usecase.Violation{
			Field:         fmt.Sprintf("items[%d].unitPrice", index),
			RejectedValue: item.UnitPrice.String(),
			Message:       fmt.Sprintf("unit price must be between %s and %s", minUnitPrice, maxUnitPrice),
		})
	} else if item.UnitPrice.Exponent() < -2 {
		violations = append(violations, err_usecase.Violation{
			Field:         fmt.Sprintf("items[%d].unitPrice", index),
			RejectedValue: item.UnitPrice.String(),
			Message:       "unit price must have at most 2 decimal places",
		})
	}

	return violations
}
