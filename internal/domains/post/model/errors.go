package model

import "thriven-backend/internal/shared"

// Error codes
const (
	ErrCodePostNotFound = "PST001"
	ErrCodeNotAuthor    = "PST002"
	ErrCodeNotOwner     = "PST003"
)

var (
	ErrPostNotFound = shared.NewError(shared.ErrNotFound, ErrCodePostNotFound, "post not found")
	ErrNotAuthor    = shared.NewError(shared.ErrForbidden, ErrCodeNotAuthor, "only author accounts can publish posts")
	ErrNotOwner     = shared.NewError(shared.ErrForbidden, ErrCodeNotOwner, "only the post's author can change it")
)
