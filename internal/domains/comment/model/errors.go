package model

import "thriven-backend/internal/shared"

// Error codes
const (
	ErrCodeCommentNotFound  = "CMT001"
	ErrCodeCommentingClosed = "CMT002"
	ErrCodeNotCommenter     = "CMT003"
)

var (
	ErrCommentNotFound  = shared.NewError(shared.ErrNotFound, ErrCodeCommentNotFound, "comment not found")
	ErrCommentingClosed = shared.NewError(shared.ErrForbidden, ErrCodeCommentingClosed, "this post does not accept comments")
	ErrNotCommenter     = shared.NewError(shared.ErrForbidden, ErrCodeNotCommenter, "not allowed to change this comment")
)
