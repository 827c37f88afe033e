package http

import (
	"context"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/miniorder-service/internal/api/dto"
	"github.com/spec-kit/miniorder-service/internal/observability"
	"github.com/spec-kit/miniorder-service/pkg/util"
)

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration) {
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(envelopeErrorMiddleware(logger, metrics))
	app.Use(observability.RequestLogger(logger, metrics))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// envelopeErrorMiddleware converts every domain error (and recovered panic)
// into the uniform HTTP-200 envelope. Callers branch on the envelope's code
// field, never on transport status, so the failure payload keeps the shape
// each operation promises.
func envelopeErrorMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = util.NewInternalError(nil)
			}
			if err != nil {
				domainErr := util.ToDomainError(err)
				if metrics != nil {
					metrics.RecordError(c.Path(), c.Method(), domainErr.Code)
				}
				if domainErr.Code == util.CodeInternalError || domainErr.Code == util.CodeStorageError {
					logger.Error("request failed", zap.String("path", c.Path()), zap.Error(domainErr))
				}
				c.Status(http.StatusOK)
				_ = c.JSON(failureEnvelope(c.Path(), domainErr.Message))
				err = nil
			}
		}()
		return c.Next()
	}
}

// failureEnvelope picks the per-operation failure payload shape.
func failureEnvelope(path, msg string) any {
	switch path {
	case RouteGetOpenID:
		return dto.ResolveIdentityResponse{Code: -1, Msg: msg, WxID: ""}
	case RouteCreateOrder:
		return dto.CreateOrderResponse{Code: -1, Msg: msg, Success: false}
	case RouteGetUserInfo:
		return dto.UserInfoResponse{Code: -1, Msg: msg, Data: nil}
	case RouteGetUserOrders:
		return dto.UserOrdersResponse{Code: -1, Msg: msg, Data: []dto.OrderData{}}
	default:
		return fiber.Map{"code": -1, "msg": msg}
	}
}
