package service

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/miniorder-service/internal/domain"
	"github.com/spec-kit/miniorder-service/internal/events"
	"github.com/spec-kit/miniorder-service/internal/repository"
	"github.com/spec-kit/miniorder-service/pkg/util"
)

// CreateOrderInput carries the caller-supplied order fields.
type CreateOrderInput struct {
	OrderID      string
	UserID       string
	Username     string
	Dishes       string
	TotalPrice   float64
	Notes        string
	Status       string
	RejectReason string
}

// OrderService coordinates order creation and listing.
type OrderService struct {
	orders repository.OrderRepository
	events events.Dispatcher
	logger *zap.Logger
}

// NewOrderService builds the service.
func NewOrderService(orders repository.OrderRepository, dispatcher events.Dispatcher, logger *zap.Logger) *OrderService {
	return &OrderService{orders: orders, events: dispatcher, logger: logger}
}

// CreateOrder validates required fields, applies defaults, and inserts the
// order. Validation failures name every missing field and perform no write.
func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error) {
	var missing []string
	if strings.TrimSpace(input.OrderID) == "" {
		missing = append(missing, "order_id")
	}
	if strings.TrimSpace(input.UserID) == "" {
		missing = append(missing, "user_id")
	}
	if strings.TrimSpace(input.Username) == "" {
		missing = append(missing, "username")
	}
	if !validDishes(input.Dishes) {
		missing = append(missing, "dishes")
	}
	if input.TotalPrice <= 0 {
		missing = append(missing, "total_price")
	}
	if len(missing) > 0 {
		return nil, util.NewInvalidArgument(
			"missing or invalid required fields: "+strings.Join(missing, ", "),
			map[string]any{"fields": missing})
	}

	status := domain.OrderStatusPending
	if input.Status != "" {
		status = domain.OrderStatus(input.Status)
		if !domain.ValidOrderStatus(status) {
			return nil, util.NewInvalidArgument("unknown order status: "+input.Status, nil)
		}
	}

	notes := input.Notes
	if strings.TrimSpace(notes) == "" {
		notes = domain.DefaultOrderNotes
	}

	order := &domain.Order{
		OrderID:      input.OrderID,
		UserID:       input.UserID,
		Username:     input.Username,
		Dishes:       input.Dishes,
		TotalPrice:   math.Round(input.TotalPrice*100) / 100,
		Notes:        notes,
		Status:       status,
		RejectReason: input.RejectReason,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	if s.events != nil {
		_ = s.events.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventOrderCreated,
			Timestamp: time.Now(),
			Payload: events.OrderCreatedPayload{
				OrderID:    order.OrderID,
				UserID:     order.UserID,
				Username:   order.Username,
				TotalPrice: order.TotalPrice,
				Status:     order.Status,
			},
		})
	}

	return order, nil
}

// ListOrdersByUser returns every order for the user. No orders is a valid
// empty result, never an error.
func (s *OrderService) ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, util.NewInvalidArgument("user_id must not be empty", nil)
	}
	return s.orders.ListByUser(ctx, userID)
}

// validDishes requires a serialized non-empty JSON array of line items.
func validDishes(raw string) bool {
	if strings.TrimSpace(raw) == "" {
		return false
	}
	var dishes []domain.Dish
	if err := json.Unmarshal([]byte(raw), &dishes); err != nil {
		return false
	}
	return len(dishes) > 0
}
