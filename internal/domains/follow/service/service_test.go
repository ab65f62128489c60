package service

import (
	"context"
	"sync"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountModel "thriven-backend/internal/domains/account/model"
	"thriven-backend/internal/domains/follow/model"
	"thriven-backend/internal/infrastructure/metrics"
	"thriven-backend/internal/shared"
)

type edge struct {
	follower, followed uuid.UUID
}

type fakeRepo struct {
	mu      sync.Mutex
	follows map[edge]*model.Follow
	calls   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{follows: map[edge]*model.Follow{}}
}

func (r *fakeRepo) Create(_ context.Context, f *model.Follow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	key := edge{f.FollowerID, f.FollowedID}
	if _, ok := r.follows[key]; ok {
		return model.ErrAlreadyFollowing
	}
	r.follows[key] = f
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, followerID, followedID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := edge{followerID, followedID}
	if _, ok := r.follows[key]; !ok {
		return model.ErrFollowNotFound
	}
	delete(r.follows, key)
	return nil
}

func (r *fakeRepo) Exists(_ context.Context, followerID, followedID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.follows[edge{followerID, followedID}]
	return ok, nil
}

func (r *fakeRepo) collect(match func(edge) (uuid.UUID, bool)) []*model.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*model.Entry{}
	for k, f := range r.follows {
		if id, ok := match(k); ok {
			out = append(out, &model.Entry{Account: accountModel.Summary{ID: id}, FollowedAt: f.CreatedAt})
		}
	}
	return out
}

func (r *fakeRepo) ListFollowers(_ context.Context, accountID uuid.UUID, _, _ int) ([]*model.Entry, int, error) {
	out := r.collect(func(e edge) (uuid.UUID, bool) { return e.follower, e.followed == accountID })
	return out, len(out), nil
}

func (r *fakeRepo) ListFollowing(_ context.Context, accountID uuid.UUID, _, _ int) ([]*model.Entry, int, error) {
	out := r.collect(func(e edge) (uuid.UUID, bool) { return e.followed, e.follower == accountID })
	return out, len(out), nil
}

func (r *fakeRepo) CountFollowers(ctx context.Context, accountID uuid.UUID) (int, error) {
	_, n, err := r.ListFollowers(ctx, accountID, 1, 0)
	return n, err
}

func (r *fakeRepo) CountFollowing(ctx context.Context, accountID uuid.UUID) (int, error) {
	_, n, err := r.ListFollowing(ctx, accountID, 1, 0)
	return n, err
}

type fakeAccounts map[uuid.UUID]*accountModel.Account

func (f fakeAccounts) FindByID(_ context.Context, id uuid.UUID) (*accountModel.Account, error) {
	a, ok := f[id]
	if !ok {
		return nil, accountModel.ErrAccountNotFound
	}
	return a, nil
}

type notification struct {
	to      uuid.UUID
	postID  *uuid.UUID
	message string
}

type fakeNotifier struct {
	sent []notification
}

func (n *fakeNotifier) Notify(_ context.Context, to uuid.UUID, postID *uuid.UUID, message string) error {
	n.sent = append(n.sent, notification{to, postID, message})
	return nil
}

type fixture struct {
	svc      Service
	repo     *fakeRepo
	notifier *fakeNotifier
	alice    shared.Viewer
	bob      shared.Viewer
}

func newFixture() *fixture {
	alice := shared.Viewer{AccountID: uuid.New(), Username: "alice"}
	bob := shared.Viewer{AccountID: uuid.New(), Username: "bob"}
	accounts := fakeAccounts{
		alice.AccountID: {ID: alice.AccountID, Username: alice.Username},
		bob.AccountID:   {ID: bob.AccountID, Username: bob.Username},
	}
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	svc := NewFollowService(repo, accounts, notifier)
	svc.(*followService).now = func() time.Time { return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC) }
	return &fixture{svc: svc, repo: repo, notifier: notifier, alice: alice, bob: bob}
}

func TestFollow_NotifiesFollowedAccount(t *testing.T) {
	f := newFixture()

	follow, err := f.svc.Follow(context.Background(), f.alice, f.bob.AccountID)
	require.NoError(t, err)
	assert.Equal(t, f.alice.AccountID, follow.FollowerID)
	assert.Equal(t, f.bob.AccountID, follow.FollowedID)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, f.bob.AccountID, f.notifier.sent[0].to)
	assert.Nil(t, f.notifier.sent[0].postID)
	assert.Equal(t, "alice started following you", f.notifier.sent[0].message)
}

func TestFollow_SelfIsValidationErrorWithoutStorage(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Follow(context.Background(), f.alice, f.alice.AccountID)

	var errs validation.Errors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "followed_id")
	assert.Zero(t, f.repo.calls)
	assert.Empty(t, f.notifier.sent)
}

func TestFollow_DuplicateIsConflict(t *testing.T) {
	f := newFixture()
	conflicts := testutil.ToFloat64(metrics.Engagements.WithLabelValues(kindFollow, metrics.OutcomeConflict))

	_, err := f.svc.Follow(context.Background(), f.alice, f.bob.AccountID)
	require.NoError(t, err)

	_, err = f.svc.Follow(context.Background(), f.alice, f.bob.AccountID)
	assert.ErrorIs(t, err, model.ErrAlreadyFollowing)
	assert.ErrorIs(t, err, shared.ErrConflict)
	assert.Equal(t, conflicts+1, testutil.ToFloat64(metrics.Engagements.WithLabelValues(kindFollow, metrics.OutcomeConflict)))

	// the reverse direction is a separate relation
	_, err = f.svc.Follow(context.Background(), f.bob, f.alice.AccountID)
	assert.NoError(t, err)
}

func TestFollow_UnknownAccountAndAnonymous(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Follow(context.Background(), f.alice, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = f.svc.Follow(context.Background(), shared.Anonymous, f.bob.AccountID)
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestUnfollowAndStatus(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	assert.ErrorIs(t, f.svc.Unfollow(ctx, f.alice, f.bob.AccountID), shared.ErrNotFound)

	_, err := f.svc.Follow(ctx, f.alice, f.bob.AccountID)
	require.NoError(t, err)

	st, err := f.svc.Status(ctx, f.alice, f.bob.AccountID)
	require.NoError(t, err)
	assert.True(t, st.Following)
	assert.Equal(t, 1, st.FollowersCount)
	assert.Zero(t, st.FollowingCount)

	followers, err := f.svc.Followers(ctx, f.bob.AccountID, 0, 0)
	require.NoError(t, err)
	require.Len(t, followers.Accounts, 1)
	assert.Equal(t, f.alice.AccountID, followers.Accounts[0].Account.ID)
	assert.Equal(t, 1, followers.Page)
	assert.Equal(t, defaultLimit, followers.Limit)

	following, err := f.svc.Following(ctx, f.alice.AccountID, 1, 500)
	require.NoError(t, err)
	require.Len(t, following.Accounts, 1)
	assert.Equal(t, maxLimit, following.Limit)

	require.NoError(t, f.svc.Unfollow(ctx, f.alice, f.bob.AccountID))
	st, err = f.svc.Status(ctx, f.alice, f.bob.AccountID)
	require.NoError(t, err)
	assert.False(t, st.Following)
	assert.Zero(t, st.FollowersCount)
}
