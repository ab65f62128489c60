package model

import "thriven-backend/internal/shared"

// Error codes
const (
	ErrCodeAlreadyLiked = "ENG001"
	ErrCodeAlreadySaved = "ENG002"
	ErrCodeLikeNotFound = "ENG003"
	ErrCodeSaveNotFound = "ENG004"
)

var (
	ErrAlreadyLiked = shared.NewError(shared.ErrConflict, ErrCodeAlreadyLiked, "post already liked")
	ErrAlreadySaved = shared.NewError(shared.ErrConflict, ErrCodeAlreadySaved, "post already saved")
	ErrLikeNotFound = shared.NewError(shared.ErrNotFound, ErrCodeLikeNotFound, "like not found")
	ErrSaveNotFound = shared.NewError(shared.ErrNotFound, ErrCodeSaveNotFound, "save not found")
)
