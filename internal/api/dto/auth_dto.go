package dto

import "github.com/spec-kit/movie-service/internal/valid"

// SignupBody constrains POST /auth/signup.
var SignupBody = valid.Object().
	Field("username", valid.String().MinLen(4).MaxLen(20)).
	Field("password", valid.String().MinLen(4).MaxLen(100)).
	Field("email", valid.String().MinLen(3).MaxLen(320)).
	Field("name", valid.String().MinLen(1).MaxLen(50))

// LoginBody constrains POST /auth/login.
var LoginBody = valid.Object().
	Field("username", valid.String().MinLen(4).MaxLen(20)).
	Field("password", valid.String().MinLen(4).MaxLen(100))

// GoogleCodeQuery constrains the OAuth redirect callbacks.
var GoogleCodeQuery = valid.Object().
	Field("code", valid.String().MinLen(1)).
	Field("state", valid.String().Optional())

// SignupOutput is the POST /auth/signup response body.
type SignupOutput struct {
	UserID int64 `json:"userId"`
}
