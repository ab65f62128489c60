package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"thriven-backend/internal/domains/notification/model"
	"thriven-backend/internal/infrastructure/database"
	"thriven-backend/internal/shared/utils"
)

// ================================================
// NOTIFICATION REPOSITORY IMPLEMENTATION
// ================================================

type notificationRepository struct {
	db *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) NotificationRepository {
	return &notificationRepository{db: db}
}

const notificationColumns = `id, account_id, post_id, message, is_read, created_at`

func scanNotification(row pgx.Row) (*model.Notification, error) {
	n := &model.Notification{}
	err := row.Scan(&n.ID, &n.AccountID, &n.PostID, &n.Message, &n.IsRead, &n.CreatedAt)
	return n, err
}

// Create stores a notification
func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	query := `
		INSERT INTO notifications (id, account_id, post_id, message, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}

	_, err := r.db.Exec(ctx, query, n.ID, n.AccountID, n.PostID, n.Message, n.IsRead, n.CreatedAt)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return model.ErrTargetGone
		}
		return fmt.Errorf("create notification: %w", err)
	}

	return nil
}

// GetByID gets a notification by ID
func (r *notificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE id = $1`

	n, err := scanNotification(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("get notification: %w", err)
	}
	return n, nil
}

// List lists an account's notifications with an optional unread filter
func (r *notificationRepository) List(ctx context.Context, accountID uuid.UUID, filters model.ListNotificationsRequest) ([]*model.Notification, int, error) {
	where := &utils.WhereBuilder{}
	where.Add("account_id = ?", accountID)
	if filters.UnreadOnly {
		where.Add("is_read = FALSE")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM notifications ` + where.SQL()
	if err := r.db.QueryRow(ctx, countQuery, where.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM notifications
		%s
		ORDER BY created_at DESC, id
		LIMIT %s OFFSET %s`,
		notificationColumns, where.SQL(),
		where.Next(filters.Limit), where.Next(utils.Offset(filters.Page, filters.Limit)),
	)

	rows, err := r.db.Query(ctx, query, where.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	notifications := make([]*model.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	return notifications, total, rows.Err()
}

// GetUnreadCount counts unread notifications of an account
func (r *notificationRepository) GetUnreadCount(ctx context.Context, accountID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE account_id = $1 AND is_read = FALSE`,
		accountID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("get unread count: %w", err)
	}
	return count, nil
}

// MarkAsRead marks notifications as read
func (r *notificationRepository) MarkAsRead(ctx context.Context, ids []uuid.UUID, accountID uuid.UUID) (int, error) {
	query := `
		UPDATE notifications
		SET is_read = TRUE
		WHERE id = ANY($1) AND account_id = $2 AND is_read = FALSE
	`

	result, err := r.db.Exec(ctx, query, ids, accountID)
	if err != nil {
		return 0, fmt.Errorf("mark as read: %w", err)
	}
	return int(result.RowsAffected()), nil
}

// MarkAllAsRead marks all of an account's notifications as read
func (r *notificationRepository) MarkAllAsRead(ctx context.Context, accountID uuid.UUID) (int, error) {
	result, err := r.db.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE account_id = $1 AND is_read = FALSE`,
		accountID,
	)
	if err != nil {
		return 0, fmt.Errorf("mark all as read: %w", err)
	}
	return int(result.RowsAffected()), nil
}

// Delete removes one notification owned by accountID
func (r *notificationRepository) Delete(ctx context.Context, id, accountID uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM notifications WHERE id = $1 AND account_id = $2`, id, accountID)
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrNotificationNotFound
	}
	return nil
}

// DeleteOldRead deletes read notifications created before the cutoff
func (r *notificationRepository) DeleteOldRead(ctx context.Context, before time.Time) (int, error) {
	result, err := r.db.Exec(ctx,
		`DELETE FROM notifications WHERE is_read = TRUE AND created_at < $1`,
		before,
	)
	if err != nil {
		return 0, fmt.Errorf("delete old read notifications: %w", err)
	}
	return int(result.RowsAffected()), nil
}
