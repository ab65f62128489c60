package model

import "thriven-backend/internal/shared"

// Error codes
const (
	ErrCodeAlreadyFollowing = "FLW001"
	ErrCodeFollowNotFound   = "FLW002"
)

var (
	ErrAlreadyFollowing = shared.NewError(shared.ErrConflict, ErrCodeAlreadyFollowing, "already following this account")
	ErrFollowNotFound   = shared.NewError(shared.ErrNotFound, ErrCodeFollowNotFound, "not following this account")
)
