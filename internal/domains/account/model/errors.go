package model

import "thriven-backend/internal/shared"

// Error codes
const (
	ErrCodeAccountNotFound    = "ACC001"
	ErrCodeUsernameTaken      = "ACC002"
	ErrCodeInvalidCredentials = "ACC003"
)

var (
	ErrAccountNotFound    = shared.NewError(shared.ErrNotFound, ErrCodeAccountNotFound, "account not found")
	ErrUsernameTaken      = shared.NewError(shared.ErrConflict, ErrCodeUsernameTaken, "username already taken")
	ErrInvalidCredentials = shared.NewError(shared.ErrUnauthorized, ErrCodeInvalidCredentials, "invalid username or password")
)
