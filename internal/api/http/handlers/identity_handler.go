package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/miniorder-service/internal/api/dto"
	"github.com/spec-kit/miniorder-service/internal/service"
	"github.com/spec-kit/miniorder-service/pkg/util"
)

// IdentityHandler exposes the login-code resolution and profile lookup
// operations.
type IdentityHandler struct {
	identity *service.IdentityService
}

// NewIdentityHandler constructs handler.
func NewIdentityHandler(identityService *service.IdentityService) *IdentityHandler {
	return &IdentityHandler{identity: identityService}
}

// ResolveIdentity handles POST /getOpenid.
func (h *IdentityHandler) ResolveIdentity(c *fiber.Ctx) error {
	var req dto.ResolveIdentityRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewInvalidArgument("invalid payload", nil)
	}

	resolved, err := h.identity.ResolveIdentity(c.UserContext(), req.Code, req.Profile())
	if err != nil {
		return err
	}

	return c.JSON(dto.ResolveIdentityResponse{
		Code:    0,
		Msg:     "success",
		WxID:    resolved.OpenID,
		UnionID: resolved.UnionID,
		Token:   resolved.Token,
	})
}

// GetUserInfo handles POST /getUserInfo.
func (h *IdentityHandler) GetUserInfo(c *fiber.Ctx) error {
	var req dto.GetUserInfoRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewInvalidArgument("invalid payload", nil)
	}

	user, err := h.identity.GetUserProfile(c.UserContext(), req.OpenID)
	if err != nil {
		return err
	}

	return c.JSON(dto.UserInfoResponse{
		Code: 0,
		Msg:  "success",
		Data: dto.NewUserData(user),
	})
}
