package user

import "errors"

var (
	ErrNameRequired     = errors.New("user name is required")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrPasswordRequired = errors.New("password is required")
)
