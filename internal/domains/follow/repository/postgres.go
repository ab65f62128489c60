package repository

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	accountModel "thriven-backend/internal/domains/account/model"
	"thriven-backend/internal/domains/follow/model"
	"thriven-backend/internal/infrastructure/database"
	"thriven-backend/internal/shared/utils"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, f *model.Follow) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO follows (id, follower_id, followed_id, created_at) VALUES ($1, $2, $3, $4)`,
		f.ID, f.FollowerID, f.FollowedID, f.CreatedAt,
	)
	if err == nil {
		return nil
	}

	switch {
	case database.IsUniqueViolation(err, "follows_pair_key"):
		return model.ErrAlreadyFollowing
	case database.IsCheckViolation(err, "follows_no_self"):
		return validation.Errors{"followed_id": validation.NewError("validation_self_follow", "an account cannot follow itself")}
	case database.IsForeignKeyViolation(err):
		return accountModel.ErrAccountNotFound
	}
	return fmt.Errorf("insert follow: %w", err)
}

func (r *postgresRepository) Delete(ctx context.Context, followerID, followedID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM follows WHERE follower_id = $1 AND followed_id = $2`,
		followerID, followedID,
	)
	if err != nil {
		return fmt.Errorf("delete follow: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrFollowNotFound
	}
	return nil
}

func (r *postgresRepository) Exists(ctx context.Context, followerID, followedID uuid.UUID) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = $1 AND followed_id = $2)`,
		followerID, followedID,
	).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("check follow: %w", err)
	}
	return ok, nil
}

// ListFollowers returns the accounts following accountID, newest first
func (r *postgresRepository) ListFollowers(ctx context.Context, accountID uuid.UUID, page, limit int) ([]*model.Entry, int, error) {
	return r.list(ctx, "followed_id", "follower_id", accountID, page, limit)
}

// ListFollowing returns the accounts accountID follows, newest first
func (r *postgresRepository) ListFollowing(ctx context.Context, accountID uuid.UUID, page, limit int) ([]*model.Entry, int, error) {
	return r.list(ctx, "follower_id", "followed_id", accountID, page, limit)
}

// list filters on one side of the relation and joins accounts on the other
func (r *postgresRepository) list(ctx context.Context, filterCol, joinCol string, accountID uuid.UUID, page, limit int) ([]*model.Entry, int, error) {
	total, err := r.count(ctx, filterCol, accountID)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT a.id, a.username, a.profile_image, a.is_author, f.created_at
		FROM follows f
		JOIN accounts a ON a.id = f.%s
		WHERE f.%s = $1
		ORDER BY f.created_at DESC, f.id
		LIMIT $2 OFFSET $3`, joinCol, filterCol)

	rows, err := r.pool.Query(ctx, query, accountID, limit, utils.Offset(page, limit))
	if err != nil {
		return nil, 0, fmt.Errorf("list follows: %w", err)
	}
	defer rows.Close()

	entries := make([]*model.Entry, 0)
	for rows.Next() {
		var (
			a  accountModel.Account
			e = &model.Entry{}
		)
		if err := rows.Scan(&a.ID, &a.Username, &a.ProfileImage, &a.IsAuthor, &e.FollowedAt); err != nil {
			return nil, 0, fmt.Errorf("scan follow: %w", err)
		}
		e.Account = a.ToSummary()
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}

func (r *postgresRepository) CountFollowers(ctx context.Context, accountID uuid.UUID) (int, error) {
	return r.count(ctx, "followed_id", accountID)
}

func (r *postgresRepository) CountFollowing(ctx context.Context, accountID uuid.UUID) (int, error) {
	return r.count(ctx, "follower_id", accountID)
}

func (r *postgresRepository) count(ctx context.Context, col string, accountID uuid.UUID) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM follows WHERE `+col+` = $1`, accountID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count follows: %w", err)
	}
	return n, nil
}
