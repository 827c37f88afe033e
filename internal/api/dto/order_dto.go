package dto

import (
	"time"

	"github.com/spec-kit/miniorder-service/internal/domain"
)

// CreateOrderRequest payload for POST /createOrder.
type CreateOrderRequest struct {
	OrderID      string  `json:"order_id"`
	UserID       string  `json:"user_id"`
	Username     string  `json:"username"`
	Dishes       string  `json:"dishes"`
	TotalPrice   float64 `json:"total_price"`
	Notes        string  `json:"notes"`
	Status       string  `json:"status"`
	RejectReason string  `json:"reject_reason"`
}

// CreateOrderResponse is the envelope for /createOrder.
type CreateOrderResponse struct {
	Code    int    `json:"code"`
	Msg     string `json:"msg"`
	Success bool   `json:"success"`
}

// GetUserOrdersRequest payload for POST /getUserOrders.
type GetUserOrdersRequest struct {
	UserID string `json:"user_id"`
}

// OrderData is the order row rendered to callers.
type OrderData struct {
	OrderID      string    `json:"order_id"`
	UserID       string    `json:"user_id"`
	Username     string    `json:"username"`
	Dishes       string    `json:"dishes"`
	TotalPrice   float64   `json:"total_price"`
	Notes        string    `json:"notes"`
	Status       string    `json:"status"`
	RejectReason string    `json:"reject_reason"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewOrderList maps domain orders onto the wire form, never nil.
func NewOrderList(orders []domain.Order) []OrderData {
	result := make([]OrderData, 0, len(orders))
	for _, order := range orders {
		result = append(result, OrderData{
			OrderID:      order.OrderID,
			UserID:       order.UserID,
			Username:     order.Username,
			Dishes:       order.Dishes,
			TotalPrice:   order.TotalPrice,
			Notes:        order.Notes,
			Status:       string(order.Status),
			RejectReason: order.RejectReason,
			CreatedAt:    order.CreatedAt,
		})
	}
	return result
}

// UserOrdersResponse is the envelope for /getUserOrders. Data is an empty
// array on failure, never null.
type UserOrdersResponse struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data []OrderData `json:"data"`
}
