package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/miniorder-service/internal/api/dto"
	"github.com/spec-kit/miniorder-service/internal/service"
	"github.com/spec-kit/miniorder-service/pkg/util"
)

// OrdersHandler exposes order creation and per-user listing.
type OrdersHandler struct {
	orders *service.OrderService
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orderService *service.OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orderService}
}

// CreateOrder handles POST /createOrder.
func (h *OrdersHandler) CreateOrder(c *fiber.Ctx) error {
	var req dto.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewInvalidArgument("invalid payload", nil)
	}

	_, err := h.orders.CreateOrder(c.UserContext(), service.CreateOrderInput{
		OrderID:      req.OrderID,
		UserID:       req.UserID,
		Username:     req.Username,
		Dishes:       req.Dishes,
		TotalPrice:   req.TotalPrice,
		Notes:        req.Notes,
		Status:       req.Status,
		RejectReason: req.RejectReason,
	})
	if err != nil {
		return err
	}

	return c.JSON(dto.CreateOrderResponse{
		Code:    0,
		Msg:     "order created",
		Success: true,
	})
}

// GetUserOrders handles POST /getUserOrders. Zero orders is a success with an
// empty array.
func (h *OrdersHandler) GetUserOrders(c *fiber.Ctx) error {
	var req dto.GetUserOrdersRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewInvalidArgument("invalid payload", nil)
	}

	orders, err := h.orders.ListOrdersByUser(c.UserContext(), req.UserID)
	if err != nil {
		return err
	}

	return c.JSON(dto.UserOrdersResponse{
		Code: 0,
		Msg:  "success",
		Data: dto.NewOrderList(orders),
	})
}
