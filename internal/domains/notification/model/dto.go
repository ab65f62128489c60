package model

import "github.com/google/uuid"

// ListNotificationsRequest filters the caller's notifications
type ListNotificationsRequest struct {
	UnreadOnly bool
	Page       int
	Limit      int
}

type ListNotificationsResponse struct {
	Notifications []*Notification `json:"notifications"`
	Total         int             `json:"total"`
	UnreadCount   int             `json:"unread_count"`
	Page          int             `json:"page"`
	Limit         int             `json:"limit"`
}

// MarkReadRequest marks the listed notifications as read
type MarkReadRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

type MarkReadResponse struct {
	Updated int `json:"updated"`
}

type UnreadCountResponse struct {
	UnreadCount int `json:"unread_count"`
}
