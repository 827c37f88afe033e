package domain

import "time"

// User is the profile persisted for each resolved mini-program identity.
// OpenID is the stable key returned by the identity provider; all profile
// attributes are optional and overwritten wholesale on every login.
type User struct {
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

// Profile bundles the six optional attributes supplied alongside a login code.
type Profile struct {
	Username         string
	Sex              string
	Birthday         string
	ConsumptionLevel string
	AvatarURL        string
	Role             string
}
