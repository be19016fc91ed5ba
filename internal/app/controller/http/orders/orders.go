package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	httputils "github.com/orderline/go-order-system/internal/app/controller/http/utils"
	"github.com/orderline/go-order-system/internal/app/converter"
	"github.com/orderline/go-order-system/internal/app/entity"
	"github.com/orderline/go-order-system/internal/app/model"
	err_usecase "github.com/orderline/go-order-system/internal/app/usecase/errors"
)

type OrderProcessor interface {
	CreateOrder(ctx context.Context, request model.CreateOrderRequest) (entity.Order, error)
	GetOrder(ctx context.Context, id entity.OrderID) (entity.Order, error)
	ListOrders(ctx context.Context, status *entity.OrderStatus, page entity.PageRequest) (entity.OrderPage, error)
	CancelOrder(ctx context.Context, id entity.OrderID) (entity.Order, error)
	UpdateStatus(ctx context.Context, id entity.OrderID, target entity.OrderStatus) (entity.Order, error)
}

type Order struct {
	processor OrderProcessor
}

func New(processor OrderProcessor) Order {
	return Order{
		processor: processor,
	}
}

func (p *Order) CreateOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request model.CreateOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			zap.L().Info("error while decoding create order request", zap.Error(err))
			httputils.WriteError(w, r, http.StatusBadRequest, "Malformed Request", "request body is not valid JSON", nil)
			return
		}
		defer r.Body.Close()

		ctx, cancel := context.WithTimeout(r.Context(), httputils.RequestTimeout)
		defer cancel()

		order, err := p.processor.CreateOrder(ctx, request)
		if err != nil {
			p.writeServiceError(w, r, err)
			return
		}

		httputils.WriteJSON(w, http.StatusCreated, converter.ConvertOrderToResponse(order))
	}
}

func (p *Order) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := entity.OrderID(chi.URLParam(r, "id"))

		ctx, cancel := context.WithTimeout(r.Context(), httputils.RequestTimeout)
		defer cancel()

		order, err := p.processor.GetOrder(ctx, id)
		if err != nil {
			p.writeServiceError(w, r, err)
			return
		}

		httputils.WriteJSON(w, http.StatusOK, converter.ConvertOrderToResponse(order))
	}
}

func (p *Order) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := parsePageRequest(r)

		status, ok, err := parseStatusFilter(r)
		if err != nil {
			httputils.WriteError(w, r, http.StatusBadRequest, "Invalid Order Status", err.Error(), nil)
			return
		}

		var filter *entity.OrderStatus
		if ok {
			filter = &status
		}

		ctx, cancel := context.WithTimeout(r.Context(), httputils.RequestTimeout)
		defer cancel()

		orderPage, err := p.processor.ListOrders(ctx, filter, page)
		if err != nil {
			p.writeServiceError(w, r, err)
			return
		}

		httputils.WriteJSON(w, http.StatusOK, converter.ConvertOrderPageToResponse(orderPage))
	}
}

func (p *Order) CancelOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := entity.OrderID(chi.URLParam(r, "id"))

		ctx, cancel := context.WithTimeout(r.Context(), httputils.RequestTimeout)
		defer cancel()

		order, err := p.processor.CancelOrder(ctx, id)
		if err != nil {
			p.writeServiceError(w, r, err)
			return
		}

		httputils.WriteJSON(w, http.StatusOK, converter.ConvertOrderToResponse(order))
	}
}

func (p *Order) UpdateStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := entity.OrderID(chi.URLParam(r, "id"))

		raw := r.URL.Query().Get("status")
		if len(raw) == 0 {
			httputils.WriteError(w, r, http.StatusBadRequest, "Invalid Order Status", "status query parameter is required", nil)
			return
		}

		target, err := entity.ParseOrderStatus(raw)
		if err != nil {
			httputils.WriteError(w, r, http.StatusBadRequest, "Invalid Order Status", err.Error(), nil)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), httputils.RequestTimeout)
		defer cancel()

		order, err := p.processor.UpdateStatus(ctx, id, target)
		if err != nil {
			p.writeServiceError(w, r, err)
			return
		}

		httputils.WriteJSON(w, http.StatusOK, converter.ConvertOrderToResponse(order))
	}
}

func (p *Order) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *err_usecase.ValidationError
	if errors.As(err, &validationErr) {
		zap.L().Info("order validation failed", zap.Error(err))
		httputils.WriteError(w, r, http.StatusBadRequest, "Order Validation Failed",
			validationErr.Message, convertViolations(validationErr.Violations))
		return
	}

	var notFoundErr *err_usecase.NotFoundError
	if errors.As(err, &notFoundErr) {
		zap.L().Info("order not found", zap.String("order_id", notFoundErr.OrderID.String()))
		httputils.WriteError(w, r, http.StatusNotFound, "Not Found", notFoundErr.Error(), nil)
		return
	}

	var transitionErr *err_usecase.InvalidTransitionError
	if errors.As(err, &transitionErr) {
		zap.L().Info("invalid order status operation", zap.Error(err))
		httputils.WriteError(w, r, http.StatusBadRequest, "Invalid Order Status", transitionErr.Error(), nil)
		return
	}

	zap.L().Error("error while processing order request", zap.Error(err))
	httputils.WriteError(w, r, http.StatusInternalServerError, "Internal Server Error",
		"an unexpected error occurred", nil)
}

func convertViolations(violations []err_usecase.Violation) []model.FieldViolation {
	if len(violations) == 0 {
		return nil
	}

	out := make([]model.FieldViolation, 0, len(violations))
	for _, violation := range violations {
		out = append(out, model.FieldViolation{
			Field:         violation.Field,
			RejectedValue: violation.RejectedValue,
			Message:       violation.Message,
		})
	}

	return out
}

func parsePageRequest(r *http.Request) entity.PageRequest {
	page := entity.DefaultPage
	if raw := r.URL.Query().Get("page"); len(raw) != 0 {
		if parsed, err := strconv.Atoi(raw); err == nil {
			page = parsed
		}
	}

	size := entity.DefaultPageSize
	if raw := r.URL.Query().Get("size"); len(raw) != 0 {
		if parsed, err := strconv.Atoi(raw); err == nil {
			size = parsed
		}
	}

	return entity.PageRequest{Page: page, Size: size}
}

func parseStatusFilter(r *http.Request) (entity.OrderStatus, bool, error) {
	raw := r.URL.Query().Get("status")
	if len(raw) == 0 {
		return "", false, nil
	}

	status, err := entity.ParseOrderStatus(raw)
	if err != nil {
		return "", false, fmt.Errorf("invalid status filter: %w", err)
	}

	return status, true, nil
}
