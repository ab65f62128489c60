package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	accountModel "thriven-backend/internal/domains/account/model"
	"thriven-backend/internal/domains/follow/model"
	"thriven-backend/internal/domains/follow/repository"
	"thriven-backend/internal/infrastructure/metrics"
	"thriven-backend/internal/shared"
	"thriven-backend/internal/shared/utils"
	"thriven-backend/pkg/logger"
)

const (
	defaultLimit = 20
	maxLimit     = 100

	kindFollow = "follow"
)

type Service interface {
	Follow(ctx context.Context, viewer shared.Viewer, accountID uuid.UUID) (*model.Follow, error)
	Unfollow(ctx context.Context, viewer shared.Viewer, accountID uuid.UUID) error
	Status(ctx context.Context, viewer shared.Viewer, accountID uuid.UUID) (*model.Status, error)
	Followers(ctx context.Context, accountID uuid.UUID, page, limit int) (*model.ListResponse, error)
	Following(ctx context.Context, accountID uuid.UUID, page, limit int) (*model.ListResponse, error)
}

// AccountFinder is satisfied by the account repository
type AccountFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*accountModel.Account, error)
}

type followService struct {
	repo     repository.Repository
	accounts AccountFinder
	notifier shared.Notifier
	now      func() time.Time
}

func NewFollowService(repo repository.Repository, accounts AccountFinder, notifier shared.Notifier) Service {
	return &followService{
		repo:     repo,
		accounts: accounts,
		notifier: notifier,
		now:      time.Now,
	}
}

// Follow subscribes the viewer to accountID and tells the followed account about it
func (s *followService) Follow(ctx context.Context, viewer shared.Viewer, accountID uuid.UUID) (*model.Follow, error) {
	if !viewer.Authenticated() {
		return nil, shared.ErrUnauthorized
	}

	follow := &model.Follow{
		ID:         uuid.New(),
		FollowerID: viewer.AccountID,
		FollowedID: accountID,
		CreatedAt:  s.now(),
	}
	if err := follow.Validate(); err != nil {
		metrics.Engagements.WithLabelValues(kindFollow, metrics.OutcomeRejected).Inc()
		return nil, err
	}

	if _, err := s.accounts.FindByID(ctx, accountID); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, follow); err != nil {
		outcome := metrics.OutcomeFailed
		if errors.Is(err, shared.ErrConflict) {
			outcome = metrics.OutcomeConflict
		}
		metrics.Engagements.WithLabelValues(kindFollow, outcome).Inc()
		return nil, err
	}
	metrics.Engagements.WithLabelValues(kindFollow, metrics.OutcomeCreated).Inc()

	msg := fmt.Sprintf("%s started following you", viewer.Username)
	if err := s.notifier.Notify(ctx, accountID, nil, msg); err != nil {
		logger.Error("Failed to enqueue follow notification", err)
	}

	return follow, nil
}

func (s *followService) Unfollow(ctx context.Context, viewer shared.Viewer, accountID uuid.UUID) error {
	if !viewer.Authenticated() {
		return shared.ErrUnauthorized
	}
	return s.repo.Delete(ctx, viewer.AccountID, accountID)
}

// Status reports counts for accountID and whether the viewer follows it
func (s *followService) Status(ctx context.Context, viewer shared.Viewer, accountID uuid.UUID) (*model.Status, error) {
	if _, err := s.accounts.FindByID(ctx, accountID); err != nil {
		return nil, err
	}

	st := &model.Status{AccountID: accountID}
	var err error
	if st.FollowersCount, err = s.repo.CountFollowers(ctx, accountID); err != nil {
		return nil, err
	}
	if st.FollowingCount, err = s.repo.CountFollowing(ctx, accountID); err != nil {
		return nil, err
	}
	if viewer.Authenticated() && viewer.AccountID != accountID {
		if st.Following, err = s.repo.Exists(ctx, viewer.AccountID, accountID); err != nil {
			return nil, err
		}
	}
	return st, nil
}

func (s *followService) Followers(ctx context.Context, accountID uuid.UUID, page, limit int) (*model.ListResponse, error) {
	return s.list(ctx, accountID, page, limit, s.repo.ListFollowers)
}

func (s *followService) Following(ctx context.Context, accountID uuid.UUID, page, limit int) (*model.ListResponse, error) {
	return s.list(ctx, accountID, page, limit, s.repo.ListFollowing)
}

type listFunc func(ctx context.Context, accountID uuid.UUID, page, limit int) ([]*model.Entry, int, error)

func (s *followService) list(ctx context.Context, accountID uuid.UUID, page, limit int, fetch listFunc) (*model.ListResponse, error) {
	if _, err := s.accounts.FindByID(ctx, accountID); err != nil {
		return nil, err
	}
	page, limit = utils.NormalizePage(page, limit, defaultLimit, maxLimit)

	entries, total, err := fetch(ctx, accountID, page, limit)
	if err != nil {
		return nil, err
	}
	return &model.ListResponse{Accounts: entries, Total: total, Page: page, Limit: limit}, nil
}
