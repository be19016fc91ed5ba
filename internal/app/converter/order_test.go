package converter

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderline/go-order-system/internal/app/entity"
	"github.com/orderline/go-order-system/internal/app/model"
)

func TestConvertCreateRequestToItems(t *testing.T) {
	request := model.CreateOrderRequest{
		CustomerEmail: "customer@example.com",
		Items: []model.CreateOrderItem{
			{ProductName: "Gaming Laptop", Quantity: 1, UnitPrice: decimal.RequireFromString("2499.99")},
			{ProductName: "Mouse Pad", Quantity: 2, UnitPrice: decimal.RequireFromString("24.99")},
		},
	}

	items := ConvertCreateRequestToItems(request)

	require.Len(t, items, 2)
	assert.NotEmpty(t, items[0].ID)
	assert.NotEmpty(t, items[1].ID)
	assert.NotEqual(t, items[0].ID, items[1].ID)
	assert.Equal(t, "Gaming Laptop", items[0].ProductName)
	assert.Equal(t, 2, items[1].Quantity)
	assert.True(t, items[1].UnitPrice.Equal(decimal.RequireFromString("24.99")))
}

func TestConvertOrderToResponse(t *testing.T) {
	created := time.Date(2025, 10, 23, 12, 0, 0, 0, time.UTC)
	order := entity.Order{
		ID:            entity.OrderID("8b5a0853-f2a0-4f0e-ae4f-5b2313f80a16"),
		Status:        entity.StatusPending,
		CustomerEmail: "customer@example.com",
		TotalAmount:   decimal.RequireFromString("47.97"),
		CreatedAt:     created,
		UpdatedAt:     created,
		Items: entity.Items{
			{
				ID:          entity.ItemID("item-1"),
				ProductName: "Widget",
				Quantity:    3,
				UnitPrice:   decimal.RequireFromString("15.99"),
			},
		},
	}

	response := ConvertOrderToResponse(order)

	assert.Equal(t, "8b5a0853-f2a0-4f0e-ae4f-5b2313f80a16", response.ID)
	assert.Equal(t, "PENDING", response.Status)
	assert.True(t, response.TotalAmount.Equal(decimal.RequireFromString("47.97")))
	assert.NotEmpty(t, response.CreatedAt)
	require.Len(t, response.Items, 1)
	assert.True(t, response.Items[0].Subtotal.Equal(decimal.RequireFromString("47.97")))
}

func TestConvertOrderPageToResponse(t *testing.T) {
	page := entity.OrderPage{
		Content:       entity.Orders{},
		PageNumber:    1,
		PageSize:      10,
		TotalElements: 0,
		TotalPages:    0,
	}

	response := ConvertOrderPageToResponse(page)

	assert.Empty(t, response.Content)
	assert.Equal(t, 1, response.PageNumber)
	assert.Equal(t, 10, response.PageSize)
	assert.Equal(t, int64(0), response.TotalElements)
	assert.Equal(t, 0, response.TotalPages)
}
