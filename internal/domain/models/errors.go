package models

import "errors"

// Error kinds map to distinct HTTP outcomes at the transport layer:
// validation and not-found surface as 400, invalid credentials as 401,
// anything else is a storage failure.
var (
	ErrValidation         = errors.New("validation failed")
	ErrAccountNotFound    = errors.New("account not found")
	ErrMessageNotFound    = errors.New("message not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
