package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"thriven-backend/internal/domains/engagement/model"
	postModel "thriven-backend/internal/domains/post/model"
	"thriven-backend/internal/infrastructure/database"
	"thriven-backend/internal/shared/utils"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// ========================================
// LIKES
// ========================================

func (r *postgresRepository) CreateLike(ctx context.Context, like *model.Like) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO likes (id, account_id, post_id, liked_at) VALUES ($1, $2, $3, $4)`,
		like.ID, like.AccountID, like.PostID, like.LikedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err, "likes_account_post_key") {
			return model.ErrAlreadyLiked
		}
		if database.IsForeignKeyViolation(err) {
			return postModel.ErrPostNotFound
		}
		return fmt.Errorf("insert like: %w", err)
	}
	return nil
}

func (r *postgresRepository) DeleteLike(ctx context.Context, accountID, postID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM likes WHERE account_id = $1 AND post_id = $2`, accountID, postID)
	if err != nil {
		return fmt.Errorf("delete like: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrLikeNotFound
	}
	return nil
}

func (r *postgresRepository) CountLikes(ctx context.Context, postID uuid.UUID) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM likes WHERE post_id = $1`, postID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return n, nil
}

func (r *postgresRepository) HasLiked(ctx context.Context, accountID, postID uuid.UUID) (bool, error) {
	var liked bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM likes WHERE account_id = $1 AND post_id = $2)`,
		accountID, postID,
	).Scan(&liked)
	if err != nil {
		return false, fmt.Errorf("check like: %w", err)
	}
	return liked, nil
}

// ========================================
// SAVES
// ========================================

func (r *postgresRepository) CreateSave(ctx context.Context, save *model.Save) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO saves (id, account_id, post_id, saved_at) VALUES ($1, $2, $3, $4)`,
		save.ID, save.AccountID, save.PostID, save.SavedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err, "saves_account_post_key") {
			return model.ErrAlreadySaved
		}
		if database.IsForeignKeyViolation(err) {
			return postModel.ErrPostNotFound
		}
		return fmt.Errorf("insert save: %w", err)
	}
	return nil
}

func (r *postgresRepository) DeleteSave(ctx context.Context, accountID, postID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM saves WHERE account_id = $1 AND post_id = $2`, accountID, postID)
	if err != nil {
		return fmt.Errorf("delete save: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrSaveNotFound
	}
	return nil
}

// ListSaved lists saved posts still visible to the account, most recently saved first
func (r *postgresRepository) ListSaved(ctx context.Context, accountID uuid.UUID, page, limit int) ([]*model.SavedPost, int, error) {
	const visible = `s.account_id = $1 AND (p.is_active OR p.author_id = $1)`

	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM saves s JOIN posts p ON p.id = s.post_id WHERE `+visible,
		accountID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count saved posts: %w", err)
	}

	query := `
		SELECT p.id, p.title, p.genre, p.age_rating, p.image, p.author_id, a.username, s.saved_at
		FROM saves s
		JOIN posts p ON p.id = s.post_id
		JOIN accounts a ON a.id = p.author_id
		WHERE ` + visible + `
		ORDER BY s.saved_at DESC, s.id
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, accountID, limit, utils.Offset(page, limit))
	if err != nil {
		return nil, 0, fmt.Errorf("list saved posts: %w", err)
	}
	defer rows.Close()

	saved := make([]*model.SavedPost, 0)
	for rows.Next() {
		sp := &model.SavedPost{}
		post := postModel.Post{}
		if err := rows.Scan(
			&sp.PostID,
			&sp.Title,
			&sp.Genre,
			&sp.AgeRating,
			&post.Image,
			&sp.AuthorID,
			&sp.AuthorUsername,
			&sp.SavedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan saved post: %w", err)
		}
		sp.Image = post.ImageRef()
		saved = append(saved, sp)
	}
	return saved, total, rows.Err()
}
