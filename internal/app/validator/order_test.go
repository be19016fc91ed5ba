package validator

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderline/go-order-system/internal/app/model"
)

func validItem() model.CreateOrderItem {
	return model.CreateOrderItem{
		ProductName: "Gaming Laptop",
		Quantity:    1,
		UnitPrice:   decimal.RequireFromString("2499.99"),
	}
}

func TestCreateOrderRequest(t *testing.T) {
	tests := []struct {
		name       string
		request    model.CreateOrderRequest
		wantFields []string
	}{
		{
			name: "valid request",
			request: model.CreateOrderRequest{
				CustomerEmail: "customer@example.com",
				Items:         []model.CreateOrderItem{validItem()},
			},
		},
		{
			name: "missing email",
			request: model.CreateOrderRequest{
				Items: []model.CreateOrderItem{validItem()},
			},
			wantFields: []string{"customerEmail"},
		},
		{
			name: "malformed email",
			request: model.CreateOrderRequest{
				CustomerEmail: "not-an-email",
				Items:         []model.CreateOrderItem{validItem()},
			},
			wantFields: []string{"customerEmail"},
		},
		{
			name: "email too long",
			request: model.CreateOrderRequest{
				CustomerEmail: strings.Repeat("a", 250) + "@example.com",
				Items:         []model.CreateOrderItem{validItem()},
			},
			wantFields: []string{"customerEmail"},
		},
		{
			name: "empty product name",
			request: model.CreateOrderRequest{
				CustomerEmail: "customer@example.com",
				Items: []model.CreateOrderItem{{
					ProductName: "",
					Quantity:    1,
					UnitPrice:   decimal.RequireFromString("10.00"),
				}},
			},
			wantFields: []string{"items[0].productName"},
		},
		{
			name: "product name too long",
			request: model.CreateOrderRequest{
				CustomerEmail: "customer@example.com",
				Items: []model.CreateOrderItem{{
					ProductName: strings.Repeat("x", 201),
					Quantity:    1,
					UnitPrice:   decimal.RequireFromString("10.00"),
				}},
			},
			wantFields: []string{"items[0].productName"},
		},
		{
			name: "zero quantity",
			request: model.CreateOrderRequest{
				CustomerEmail: "customer@example.com",
				Items: []model.CreateOrderItem{{
					ProductName: "Widget",
					Quantity:    0,
					UnitPrice:   decimal.RequireFromString("10.00"),
				}},
			},
			wantFields: []string{"items[0].quantity"},
		},
		{
			name: "quantity above limit",
			request: model.CreateOrderRequest{
				CustomerEmail: "customer@example.com",
				Items: []model.CreateOrderItem{{
					ProductName: "Widget",
					Quantity:    1001,
					UnitPrice:   decimal.RequireFromString("10.00"),
				}},
			},
			wantFields: []string{"items[0].quantity"},
		},
		{
			name: "price below minimum",
			request: model.CreateOrderRequest{
				CustomerEmail: "customer@example.com",
				Items: []model.CreateOrderItem{{
					ProductName: "Widget",
					Quantity:    1,
					UnitPrice:   decimal.RequireFromString("0.001"),
				}},
			},
			wantFields: []string{"items[0].unitPrice"},
		},
		{
			name: "price above maximum",
			request: model.CreateOrderRequest{
				CustomerEmail: "customer@example.com",
				Items: []model.CreateOrderItem{{
					ProductName: "Widget",
					Quantity:    1,
					UnitPrice:   decimal.RequireFromString("1000000.01"),
				}},
			},
			wantFields: []string{"items[0].unitPrice"},
		},
		{
			name: "price with three decimal places",
			request: model.CreateOrderRequest{
				CustomerEmail: "customer@example.com",
				Items: []model.CreateOrderItem{{
					ProductName: "Widget",
					Quantity:    1,
					UnitPrice:   decimal.RequireFromString("10.999"),
				}},
			},
			wantFields: []string{"items[0].unitPrice"},
		},
		{
			name: "violations from several items",
			request: model.CreateOrderRequest{
				CustomerEmail: "customer@example.com",
				Items: []model.CreateOrderItem{
					validItem(),
					{
						ProductName: "",
						Quantity:    2000,
						UnitPrice:   decimal.RequireFromString("10.00"),
					},
				},
			},
			wantFields: []string{"items[1].productName", "items[1].quantity"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			violations := CreateOrderRequest(test.request)

			if len(test.wantFields) == 0 {
				assert.Empty(t, violations)
				return
			}

			require.Len(t, violations, len(test.wantFields))
			for i, field := range test.wantFields {
				assert.Equal(t, field, violations[i].Field)
			}
		})
	}
}
