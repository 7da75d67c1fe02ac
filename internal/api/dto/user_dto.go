package dto

import (
	"github.com/spec-kit/movie-service/internal/domain"
	"github.com/spec-kit/movie-service/internal/valid"
)

// UserIDParams constrains routes with a :userId path segment.
var UserIDParams = valid.Object().
	Field("userId", valid.Int().Min(1))

// UpdateNameBody constrains PATCH /users/me/name.
var UpdateNameBody = valid.Object().
	Field("name", valid.String().MinLen(1).MaxLen(50))

// UpdatePasswordBody constrains PATCH /users/me/password.
var UpdatePasswordBody = valid.Object().
	Field("oldPassword", valid.String().MinLen(4).MaxLen(100)).
	Field("newPassword", valid.String().MinLen(4).MaxLen(100))

// WithdrawBody constrains DELETE /users/me; withdrawal is password-confirmed.
var WithdrawBody = valid.Object().
	Field("password", valid.String().MinLen(4).MaxLen(100))

// UserOutput is the wire form of an account, password hash excluded.
type UserOutput struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// NewUserOutput maps a domain user.
func NewUserOutput(u *domain.User) UserOutput {
	return UserOutput{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
	}
}
