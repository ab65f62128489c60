package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	accountModel "thriven-backend/internal/domains/account/model"
)

// Follow is a directed subscription: FollowerID receives updates about FollowedID
type Follow struct {
	ID         uuid.UUID `json:"id"`
	FollowerID uuid.UUID `json:"follower_id"`
	FollowedID uuid.UUID `json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Validate rejects self-follows before anything reaches storage
func (f *Follow) Validate() error {
	if f.FollowerID == f.FollowedID {
		return validation.Errors{
			"followed_id": validation.NewError("validation_self_follow", "an account cannot follow itself"),
		}
	}
	return nil
}

// Entry is one row of a followers or following list
type Entry struct {
	Account    accountModel.Summary `json:"account"`
	FollowedAt time.Time            `json:"followed_at"`
}

type ListResponse struct {
	Accounts []*Entry `json:"accounts"`
	Total    int      `json:"total"`
	Page     int      `json:"page"`
	Limit    int      `json:"limit"`
}

// Status describes the relation between the viewer and another account
type Status struct {
	AccountID      uuid.UUID `json:"account_id"`
	Following      bool      `json:"following"`
	FollowersCount int       `json:"followers_count"`
	FollowingCount int       `json:"following_count"`
}
