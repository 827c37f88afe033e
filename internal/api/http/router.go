package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/miniorder-service/internal/api/http/handlers"
)

// Route paths. The mini-program client posts JSON to these verbatim.
const (
	RouteGetOpenID     = "/getOpenid"
	RouteCreateOrder   = "/createOrder"
	RouteGetUserInfo   = "/getUserInfo"
	RouteGetUserOrders = "/getUserOrders"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Identity *handlers.IdentityHandler
	Orders   *handlers.OrdersHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post(RouteGetOpenID, cfg.Identity.ResolveIdentity)
	app.Post(RouteGetUserInfo, cfg.Identity.GetUserInfo)

	app.Post(RouteCreateOrder, cfg.Orders.CreateOrder)
	app.Post(RouteGetUserOrders, cfg.Orders.GetUserOrders)
}
