package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	accountModel "thriven-backend/internal/domains/account/model"
	"thriven-backend/internal/domains/comment/model"
	postModel "thriven-backend/internal/domains/post/model"
	"thriven-backend/internal/infrastructure/database"
	"thriven-backend/internal/shared/utils"
)

const selectComments = `
	SELECT c.id, c.post_id, c.account_id, c.text, c.is_pinned, c.importance, c.created_at, c.updated_at,
		a.username, a.profile_image, a.is_author
	FROM comments c
	JOIN accounts a ON a.id = c.account_id
`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func scanComment(row pgx.Row) (*model.CommentWithAuthor, error) {
	c := &model.CommentWithAuthor{}
	author := accountModel.Account{}
	err := row.Scan(
		&c.ID,
		&c.PostID,
		&c.AccountID,
		&c.Text,
		&c.IsPinned,
		&c.Importance,
		&c.CreatedAt,
		&c.UpdatedAt,
		&author.Username,
		&author.ProfileImage,
		&author.IsAuthor,
	)
	if err != nil {
		return nil, err
	}
	author.ID = c.AccountID
	c.Author = author.ToSummary()
	return c, nil
}

func (r *postgresRepository) Create(ctx context.Context, c *model.Comment) error {
	query := `
		INSERT INTO comments (id, post_id, account_id, text, is_pinned, importance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		c.ID, c.PostID, c.AccountID, c.Text, c.IsPinned, c.Importance, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return postModel.ErrPostNotFound
		}
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.CommentWithAuthor, error) {
	c, err := scanComment(r.pool.QueryRow(ctx, selectComments+` WHERE c.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCommentNotFound
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}
	return c, nil
}

func (r *postgresRepository) Update(ctx context.Context, c *model.Comment) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE comments SET text = $2, is_pinned = $3, importance = $4, updated_at = $5 WHERE id = $1`,
		c.ID, c.Text, c.IsPinned, c.Importance, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCommentNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCommentNotFound
	}
	return nil
}

func (r *postgresRepository) ListByPost(ctx context.Context, postID uuid.UUID, page, limit int) ([]*model.CommentWithAuthor, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM comments WHERE post_id = $1`, postID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count comments: %w", err)
	}

	query := selectComments + `
		WHERE c.post_id = $1
		ORDER BY c.is_pinned DESC,
			CASE WHEN c.is_pinned THEN c.importance END DESC,
			c.created_at ASC, c.id
		LIMIT $2 OFFSET $3`

	comments, err := r.query(ctx, query, postID, limit, utils.Offset(page, limit))
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *postgresRepository) ListPinned(ctx context.Context, postID uuid.UUID) ([]*model.CommentWithAuthor, error) {
	query := selectComments + `
		WHERE c.post_id = $1 AND c.is_pinned
		ORDER BY c.importance DESC, c.created_at ASC, c.id`
	return r.query(ctx, query, postID)
}

func (r *postgresRepository) query(ctx context.Context, query string, args ...interface{}) ([]*model.CommentWithAuthor, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]*model.CommentWithAuthor, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
