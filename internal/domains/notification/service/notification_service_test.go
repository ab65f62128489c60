package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thriven-backend/internal/domains/notification/model"
	"thriven-backend/internal/shared"
)

type fakeRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*model.Notification
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[uuid.UUID]*model.Notification{}}
}

func (r *fakeRepo) Create(_ context.Context, n *model.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[n.ID] = n
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.items[id]
	if !ok {
		return nil, model.ErrNotificationNotFound
	}
	return n, nil
}

func (r *fakeRepo) List(_ context.Context, accountID uuid.UUID, f model.ListNotificationsRequest) ([]*model.Notification, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*model.Notification{}
	for _, n := range r.items {
		if n.AccountID == accountID && (!f.UnreadOnly || !n.IsRead) {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, len(out), nil
}

func (r *fakeRepo) GetUnreadCount(ctx context.Context, accountID uuid.UUID) (int, error) {
	_, n, err := r.List(ctx, accountID, model.ListNotificationsRequest{UnreadOnly: true})
	return n, err
}

func (r *fakeRepo) MarkAsRead(_ context.Context, ids []uuid.UUID, accountID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	updated := 0
	for _, id := range ids {
		if n, ok := r.items[id]; ok && n.AccountID == accountID && !n.IsRead {
			n.IsRead = true
			updated++
		}
	}
	return updated, nil
}

func (r *fakeRepo) MarkAllAsRead(_ context.Context, accountID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	updated := 0
	for _, n := range r.items {
		if n.AccountID == accountID && !n.IsRead {
			n.IsRead = true
			updated++
		}
	}
	return updated, nil
}

func (r *fakeRepo) Delete(_ context.Context, id, accountID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.items[id]
	if !ok || n.AccountID != accountID {
		return model.ErrNotificationNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeRepo) DeleteOldRead(_ context.Context, before time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	deleted := 0
	for id, n := range r.items {
		if n.IsRead && n.CreatedAt.Before(before) {
			delete(r.items, id)
			deleted++
		}
	}
	return deleted, nil
}

var baseTime = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func newService(repo *fakeRepo) (NotificationService, *time.Time) {
	clock := baseTime
	svc := NewNotificationService(repo)
	svc.(*notificationService).now = func() time.Time { return clock }
	return svc, &clock
}

func TestCreate_TruncatesMessage(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newService(repo)

	n, err := svc.Create(context.Background(), uuid.New(), nil, strings.Repeat("x", 300))
	require.NoError(t, err)
	assert.Equal(t, model.MaxMessageLength, utf8.RuneCountInString(n.Message))
	assert.Len(t, repo.items, 1)
}

func TestCreate_EmptyMessageRejected(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newService(repo)

	_, err := svc.Create(context.Background(), uuid.New(), nil, "")
	assert.Error(t, err)
	assert.Empty(t, repo.items)
}

func TestInbox_ReadFlow(t *testing.T) {
	repo := newFakeRepo()
	svc, clock := newService(repo)
	ctx := context.Background()
	me := shared.Viewer{AccountID: uuid.New(), Username: "me"}
	other := shared.Viewer{AccountID: uuid.New(), Username: "other"}

	first, err := svc.Create(ctx, me.AccountID, nil, "first")
	require.NoError(t, err)
	*clock = clock.Add(time.Minute)
	_, err = svc.Create(ctx, me.AccountID, nil, "second")
	require.NoError(t, err)
	foreign, err := svc.Create(ctx, other.AccountID, nil, "not yours")
	require.NoError(t, err)

	list, err := svc.List(ctx, me, model.ListNotificationsRequest{})
	require.NoError(t, err)
	require.Len(t, list.Notifications, 2)
	assert.Equal(t, "second", list.Notifications[0].Message)
	assert.Equal(t, 2, list.UnreadCount)
	assert.Equal(t, defaultLimit, list.Limit)

	updated, err := svc.MarkAsRead(ctx, me, []uuid.UUID{first.ID, foreign.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, updated)
	assert.False(t, repo.items[foreign.ID].IsRead)

	unread, err := svc.List(ctx, me, model.ListNotificationsRequest{UnreadOnly: true})
	require.NoError(t, err)
	require.Len(t, unread.Notifications, 1)
	assert.Equal(t, "second", unread.Notifications[0].Message)

	updated, err = svc.MarkAllAsRead(ctx, me)
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	count, err := svc.UnreadCount(ctx, me)
	require.NoError(t, err)
	assert.Zero(t, count)

	assert.ErrorIs(t, svc.Delete(ctx, me, foreign.ID), shared.ErrNotFound)
	assert.NoError(t, svc.Delete(ctx, me, first.ID))
}

func TestInbox_RequiresAuthentication(t *testing.T) {
	svc, _ := newService(newFakeRepo())

	_, err := svc.List(context.Background(), shared.Anonymous, model.ListNotificationsRequest{})
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
	_, err = svc.MarkAllAsRead(context.Background(), shared.Anonymous)
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestCleanupOldReadNotifications(t *testing.T) {
	repo := newFakeRepo()
	svc, clock := newService(repo)
	ctx := context.Background()
	account := uuid.New()

	old, err := svc.Create(ctx, account, nil, "old and read")
	require.NoError(t, err)
	oldUnread, err := svc.Create(ctx, account, nil, "old but unread")
	require.NoError(t, err)
	repo.items[old.ID].IsRead = true

	*clock = clock.Add(31 * 24 * time.Hour)
	recent, err := svc.Create(ctx, account, nil, "recent and read")
	require.NoError(t, err)
	repo.items[recent.ID].IsRead = true

	deleted, err := svc.CleanupOldReadNotifications(ctx, 30*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)
	assert.NotContains(t, repo.items, old.ID)
	assert.Contains(t, repo.items, oldUnread.ID)
	assert.Contains(t, repo.items, recent.ID)
}
