package converter

import (
	"github.com/golang-module/carbon/v2"

	"github.com/orderline/go-order-system/internal/app/entity"
	"github.com/orderline/go-order-system/internal/app/model"
)

func ConvertCreateRequestToItems(request model.CreateOrderRequest) entity.Items {
	items := make(entity.Items, 0, len(request.Items))

	for _, item := range request.Items {
		items = append(items, entity.Item{
			ID:          entity.NewItemID(),
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	return items
}

func ConvertOrderToResponse(order entity.Order) model.OrderResponse {
	items := make([]model.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, model.OrderItemResponse{
			ID:          string(item.ID),
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal(),
		})
	}

	return model.OrderResponse{
		ID:            order.ID.String(),
		Status:        string(order.Status),
		CustomerEmail: order.CustomerEmail,
		TotalAmount:   order.TotalAmount,
		CreatedAt:     carbon.CreateFromStdTime(order.CreatedAt).ToRfc3339String(),
		UpdatedAt:     carbon.CreateFromStdTime(order.UpdatedAt).ToRfc3339String(),
		Items:         items,
	}
}

func ConvertOrderPageToResponse(page entity.OrderPage) model.PagedOrdersResponse {
	content := make([]model.OrderResponse, 0, len(page.Content))
	for _, order := range page.Content {
		content = append(content, ConvertOrderToResponse(order))
	}

	return model.PagedOrdersResponse{
		Content:       content,
		PageNumber:    page.PageNumber,
		PageSize:      page.PageSize,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
	}
}
