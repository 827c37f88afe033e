package dto

import (
	"time"

	"github.com/spec-kit/miniorder-service/internal/domain"
)

// ResolveIdentityRequest payload for POST /getOpenid. Only code is required;
// the profile attributes default to empty.
type ResolveIdentityRequest struct {
	Code             string `json:"code"`
	Username         string `json:"username"`
	Sex              string `json:"sex"`
	Birthday         string `json:"birthday"`
	ConsumptionLevel string `json:"consumptionLevel"`
	AvatarURL        string `json:"avatarUrl"`
	Role             string `json:"role"`
}

// Profile converts the optional attributes into the domain form.
func (r ResolveIdentityRequest) Profile() domain.Profile {
	return domain.Profile{
		Username:         r.Username,
		Sex:              r.Sex,
		Birthday:         r.Birthday,
		ConsumptionLevel: r.ConsumptionLevel,
		AvatarURL:        r.AvatarURL,
		Role:             r.Role,
	}
}

// ResolveIdentityResponse is the envelope for /getOpenid.
type ResolveIdentityResponse struct {
	Code    int    `json:"code"`
	Msg     string `json:"msg"`
	WxID    string `json:"wxid"`
	UnionID string `json:"unionid,omitempty"`
	Token   string `json:"token,omitempty"`
}

// GetUserInfoRequest payload for POST /getUserInfo.
type GetUserInfoRequest struct {
	OpenID string `json:"openid"`
}

// UserData is the user row rendered to callers.
type UserData struct {
	OpenID           string    `json:"openid"`
	UnionID          string    `json:"unionid"`
	Username         string    `json:"username"`
	Sex              string    `json:"sex"`
	Birthday         string    `json:"birthday"`
	ConsumptionLevel string    `json:"consumptionLevel"`
	AvatarURL        string    `json:"avatarUrl"`
	Role             string    `json:"role"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewUserData maps the domain model onto the wire form.
func NewUserData(user *domain.User) *UserData {
	if user == nil {
		return nil
	}
	return &UserData{
		OpenID:           user.OpenID,
		UnionID:          user.UnionID,
		Username:         user.Username,
		Sex:              user.Sex,
		Birthday:         user.Birthday,
		ConsumptionLevel: user.ConsumptionLevel,
		AvatarURL:        user.AvatarURL,
		Role:             user.Role,
		CreatedAt:        user.CreatedAt,
		UpdatedAt:        user.UpdatedAt,
	}
}

// UserInfoResponse is the envelope for /getUserInfo. Data is null on failure.
type UserInfoResponse struct {
	Code int       `json:"code"`
	Msg  string    `json:"msg"`
	Data *UserData `json:"data"`
}
