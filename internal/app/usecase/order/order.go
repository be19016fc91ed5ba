package order

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/orderline/go-order-system/internal/app/converter"
	"github.com/orderline/go-order-system/internal/app/entity"
	"github.com/orderline/go-order-system/internal/app/model"
	err_storage "github.com/orderline/go-order-system/internal/app/storage/api/errors"
	err_usecase "github.com/orderline/go-order-system/internal/app/usecase/errors"
	"github.com/orderline/go-order-system/internal/app/validator"
)

const (
	promoteWorkers = 8

	// alertFailureRate is the share of failed promotions in one batch
	// above which the sweep reports an elevated-severity signal.
	alertFailureRate = 0.1
)

type OrderStorage interface {
	CreateOrder(ctx context.Context, order entity.Order) error
	GetOrder(ctx context.Context, id entity.OrderID) (entity.Order, error)
	ListOrders(ctx context.Context, status *entity.OrderStatus, limit, offset int) (entity.Orders, error)
	CountOrders(ctx context.Context, status *entity.OrderStatus) (int64, error)
	OrdersByStatus(ctx context.Context, status entity.OrderStatus) (entity.Orders, error)
	UpdateOrderStatus(ctx context.Context, id entity.OrderID, from, to entity.OrderStatus, updatedAt time.Time) error
}

// Service is the only component that mutates order state. It holds no
// state of its own between calls and is safe for concurrent use.
type Service struct {
	storage OrderStorage
}

func New(storage OrderStorage) *Service {
	return &Service{storage: storage}
}

// CreateOrder validates the request, computes the total and persists
// the order with all items as one unit. The status is forced to
// PENDING no matter what the caller supplied.
func (s *Service) CreateOrder(ctx context.Context, request model.CreateOrderRequest) (entity.Order, error) {
	if len(request.Items) == 0 {
		return entity.Order{}, err_usecase.EmptyOrder()
	}

	// Structural constraints are normally caught at the HTTP boundary
	// but are re-checked here so the service never trusts its caller.
	if violations := validator.CreateOrderRequest(request); len(violations) != 0 {
		return entity.Order{}, err_usecase.FieldConstraints(violations)
	}

	items := converter.ConvertCreateRequestToItems(request)

	total := entity.ComputeTotal(items)
	if !total.IsPositive() {
		return entity.Order{}, err_usecase.InvalidTotal(total.String())
	}

	now := time.Now().UTC()
	order := entity.Order{
		ID:            entity.NewOrderID(),
		Status:        entity.StatusPending,
		CustomerEmail: request.CustomerEmail,
		TotalAmount:   total,
		CreatedAt:     now,
		UpdatedAt:     now,
		Items:         items,
	}

	if err := s.storage.CreateOrder(ctx, order); err != nil {
		return entity.Order{}, fmt.Errorf("error while creating order in storage: %w", err)
	}

	zap.L().Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.String("total_amount", order.TotalAmount.String()),
		zap.Int("items", len(order.Items)),
	)

	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, id entity.OrderID) (entity.Order, error) {
	order, err := s.storage.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, err_storage.ErrOrderNotFound) {
			return entity.Order{}, err_usecase.OrderNotFound(id)
		}

		return entity.Order{}, fmt.Errorf("error while getting order from storage: %w", err)
	}

	return order, nil
}

// ListOrders returns one page of orders, newest first. Page and size
// outside the allowed ranges are clamped, never rejected. An empty
// page is a valid result.
func (s *Service) ListOrders(ctx context.Context, status *entity.OrderStatus, page entity.PageRequest) (entity.OrderPage, error) {
	page = page.Clamped()

	total, err := s.storage.CountOrders(ctx, status)
	if err != nil {
		return entity.OrderPage{}, fmt.Errorf("error while counting orders in storage: %w", err)
	}

	orders, err := s.storage.ListOrders(ctx, status, page.Size, page.Offset())
	if err != nil {
		return entity.OrderPage{}, fmt.Errorf("error while listing orders from storage: %w", err)
	}

	totalPages := int((total + int64(page.Size) - 1) / int64(page.Size))

	return entity.OrderPage{
		Content:       orders,
		PageNumber:    page.Page,
		PageSize:      page.Size,
		TotalElements: total,
		TotalPages:    totalPages,
	}, nil
}

// CancelOrder is a one-shot PENDING -> CANCELLED transition, not an
// idempotent "ensure cancelled": cancelling twice fails the second
// time because CANCELLED is terminal.
func (s *Service) CancelOrder(ctx context.Context, id entity.OrderID) (entity.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return entity.Order{}, err
	}

	if !order.CanBeCancelled() {
		return entity.Order{}, err_usecase.CannotCancel(order.Status)
	}

	now := time.Now().UTC()
	err = s.storage.UpdateOrderStatus(ctx, id, order.Status, entity.StatusCancelled, now)
	if err != nil {
		if errors.Is(err, err_storage.ErrOrderStatusConflict) {
			return s.cancelConflict(ctx, id)
		}
		if errors.Is(err, err_storage.ErrOrderNotFound) {
			return entity.Order{}, err_usecase.OrderNotFound(id)
		}

		return entity.Order{}, fmt.Errorf("error while cancelling order in storage: %w", err)
	}

	zap.L().Info("order cancelled", zap.String("order_id", id.String()))

	order.Status = entity.StatusCancelled
	order.UpdatedAt = now

	return order, nil
}

// UpdateStatus applies one legal transition from the table in the
// entity package. The write is conditional on the status the decision
// was made against, so two racing writers cannot both win.
func (s *Service) UpdateStatus(ctx context.Context, id entity.OrderID, target entity.OrderStatus) (entity.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return entity.Order{}, err
	}

	if !order.Status.CanTransitionTo(target) {
		return entity.Order{}, err_usecase.InvalidTransition(order.Status, target)
	}

	now := time.Now().UTC()
	err = s.storage.UpdateOrderStatus(ctx, id, order.Status, target, now)
	if err != nil {
		if errors.Is(err, err_storage.ErrOrderStatusConflict) {
			return s.transitionConflict(ctx, id, target)
		}
		if errors.Is(err, err_storage.ErrOrderNotFound) {
			return entity.Order{}, err_usecase.OrderNotFound(id)
		}

		return entity.Order{}, fmt.Errorf("error while updating order status in storage: %w", err)
	}

	zap.L().Info("order status updated",
		zap.String("order_id", id.String()),
		zap.String("from", string(order.Status)),
		zap.String("to", string(target)),
	)

	order.Status = target
	order.UpdatedAt = now

	return order, nil
}

// PromotePendingToProcessing sweeps every PENDING order into
// PROCESSING. One failing order does not abort the batch; failed
// orders stay PENDING and are picked up again on the next run.
// Returns the number of successfully promoted orders.
func (s *Service) PromotePendingToProcessing(ctx context.Context) (int, error) {
	start := time.Now()

	pending, err := s.storage.OrdersByStatus(ctx, entity.StatusPending)
	if err != nil {
		return 0, fmt.Errorf("error while fetching pending orders: %w", err)
	}

	if len(pending) == 0 {
		zap.L().Info("no pending orders found to promote")
		return 0, nil
	}

	zap.L().Info("promoting pending orders", zap.Int("count", len(pending)))

	var successCount, failureCount, skippedCount atomic.Int64

	group := errgroup.Group{}
	group.SetLimit(promoteWorkers)

	for _, order := range pending {
		order := order
		group.Go(func() error {
			now := time.Now().UTC()
			err := s.storage.UpdateOrderStatus(ctx, order.ID, entity.StatusPending, entity.StatusProcessing, now)
			switch {
			case err == nil:
				successCount.Add(1)
				zap.L().Debug("order promoted to processing", zap.String("order_id", order.ID.String()))
			case errors.Is(err, err_storage.ErrOrderStatusConflict), errors.Is(err, err_storage.ErrOrderNotFound):
				// Another writer legally moved the order after the
				// fetch. Not a storage fault, so not a failure.
				skippedCount.Add(1)
				zap.L().Debug("order left pending before promotion", zap.String("order_id", order.ID.String()))
			default:
				failureCount.Add(1)
				zap.L().Error("failed to promote order",
					zap.String("order_id", order.ID.String()),
					zap.Error(err),
				)
			}

			return nil
		})
	}

	group.Wait()

	success := int(successCount.Load())
	failures := int(failureCount.Load())

	zap.L().Info("promotion completed",
		zap.Int("success", success),
		zap.Int("failed", failures),
		zap.Int("skipped", int(skippedCount.Load())),
		zap.Duration("duration", time.Since(start)),
	)

	if failures > 0 {
		failureRate := float64(failures) / float64(len(pending))
		if failureRate > alertFailureRate {
			zap.L().Error("high failure rate in order promotion",
				zap.Int("failed", failures),
				zap.Int("batch_size", len(pending)),
				zap.Float64("failure_rate", failureRate),
			)
		}
	}

	return success, nil
}

func (s *Service) cancelConflict(ctx context.Context, id entity.OrderID) (entity.Order, error) {
	fresh, err := s.GetOrder(ctx, id)
	if err != nil {
		return entity.Order{}, err
	}

	return entity.Order{}, err_usecase.CannotCancel(fresh.Status)
}

func (s *Service) transitionConflict(ctx context.Context, id entity.OrderID, target entity.OrderStatus) (entity.Order, error) {
	fresh, err := s.GetOrder(ctx, id)
	if err != nil {
		return entity.Order{}, err
	}

	return entity.Order{}, err_usecase.InvalidTransition(fresh.Status, target)
}
