package auth

import "errors"

var (
	ErrInvalidUsername       = errors.New("auth: invalid username")
	ErrInvalidPassword       = errors.New("auth: invalid password")
	ErrInvalidRole           = errors.New("auth: invalid role")
	ErrInvalidCredentials    = errors.New("auth: invalid credentials")
	ErrInvalidToken          = errors.New("auth: invalid or expired token")
	ErrUserNotFound          = errors.New("auth: user not found")
	ErrUsernameAlreadyExists = errors.New("auth: username already exists")
	ErrMissingSecret         = errors.New("auth: jwt secret is required")
)
