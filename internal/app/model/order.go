package model

import "github.com/shopspring/decimal"

type CreateOrderRequest struct {
	CustomerEmail string            `json:"customerEmail"`
	Items         []CreateOrderItem `json:"items"`
}

type CreateOrderItem struct {
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

type OrderResponse struct {
	ID            string              `json:"id"`
	Status        string              `json:"status"`
	CustomerEmail string              `json:"customerEmail"`
	TotalAmount   decimal.Decimal     `json:"totalAmount"`
	CreatedAt     string              `json:"createdAt"`
	UpdatedAt     string              `json:"updatedAt"`
	Items         []OrderItemResponse `json:"items"`
}

type OrderItemResponse struct {
	ID          string          `json:"id"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type PagedOrdersResponse struct {
	Content       []OrderResponse `json:"content"`
	PageNumber    int             `json:"pageNumber"`
	PageSize      int             `json:"pageSize"`
	TotalElements int64           `json:"totalElements"`
	TotalPages    int             `json:"totalPages"`
}
