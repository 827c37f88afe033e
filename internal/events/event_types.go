package events

import (
	"time"

	"github.com/spec-kit/miniorder-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventOrderCreated   EventType = "order_created"
	EventUserRegistered EventType = "user_registered"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// OrderCreatedPayload payload.
type OrderCreatedPayload struct {
	OrderID    string             `json:"order_id"`
	UserID     string             `json:"user_id"`
	Username   string             `json:"username"`
	TotalPrice float64            `json:"total_price"`
	Status     domain.OrderStatus `json:"status"`
}

// UserRegisteredPayload payload, emitted on first resolution of an openid.
type UserRegisteredPayload struct {
	OpenID   string `json:"openid"`
	Username string `json:"username"`
}
