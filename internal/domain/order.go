package domain

import "time"

// OrderStatus enumerates lifecycle states for orders.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusAccepted  OrderStatus = "accepted"
	OrderStatusRejected  OrderStatus = "rejected"
	OrderStatusCompleted OrderStatus = "completed"
)

// DefaultOrderNotes is stored when the caller leaves notes empty.
const DefaultOrderNotes = "no special requests"

// ValidOrderStatus reports whether s is one of the known states.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusAccepted, OrderStatusRejected, OrderStatusCompleted:
		return true
	}
	return false
}

// Dish is a single line item inside an order's serialized dish list.
type Dish struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Order is the aggregate for a placed food order. Orders are immutable once
// created; status transitions happen outside this workflow. UserID is a soft
// reference: the user row is not required to exist.
type Order struct {
	OrderID      string      `json:"order_id"`
	UserID       string      `json:"user_id"`
	Username     string      `json:"username"`
	Dishes       string      `json:"dishes"`
	TotalPrice   float64     `json:"total_price"`
	Notes        string      `json:"notes"`
	Status       OrderStatus `json:"status"`
	RejectReason string      `json:"reject_reason"`
	CreatedAt    time.Time   `json:"created_at"`
}
