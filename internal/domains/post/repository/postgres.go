package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	accountModel "thriven-backend/internal/domains/account/model"
	"thriven-backend/internal/domains/post/model"
	"thriven-backend/internal/shared/utils"
	pkgdb "thriven-backend/pkg/database"
)

const (
	postColumns = `p.id, p.author_id, p.title, p.genre, p.age_rating, p.skill_level, p.image,
		p.description, p.is_active, p.comment_section_closed, p.created_at, p.updated_at`

	// statsColumns expects the viewer id in the placeholder substituted for %[1]s
	statsColumns = `a.username, a.profile_image, a.is_author,
		(SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id) AS likes_count,
		(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comments_count,
		EXISTS (SELECT 1 FROM likes l WHERE l.post_id = p.id AND l.account_id = %[1]s) AS liked_by_me,
		EXISTS (SELECT 1 FROM saves s WHERE s.post_id = p.id AND s.account_id = %[1]s) AS saved_by_me`
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func postDest(p *model.Post) []interface{} {
	return []interface{}{
		&p.ID,
		&p.AuthorID,
		&p.Title,
		&p.Genre,
		&p.AgeRating,
		&p.SkillLevel,
		&p.Image,
		&p.Description,
		&p.IsActive,
		&p.CommentSectionClosed,
		&p.CreatedAt,
		&p.UpdatedAt,
	}
}

func scanWithStats(row pgx.Row) (*model.PostWithStats, error) {
	ps := &model.PostWithStats{}
	author := accountModel.Account{}

	dest := postDest(&ps.Post)
	dest = append(dest,
		&author.Username,
		&author.ProfileImage,
		&author.IsAuthor,
		&ps.LikesCount,
		&ps.CommentsCount,
		&ps.LikedByMe,
		&ps.SavedByMe,
	)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	author.ID = ps.AuthorID
	ps.Author = author.ToSummary()
	return ps, nil
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresRepository) Create(ctx context.Context, p *model.Post) error {
	query := `
		INSERT INTO posts (
			id, author_id, title, genre, age_rating, skill_level, image,
			description, is_active, comment_section_closed, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID,
		p.AuthorID,
		p.Title,
		p.Genre,
		p.AgeRating,
		p.SkillLevel,
		p.Image,
		p.Description,
		p.IsActive,
		p.CommentSectionClosed,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

// =====================================================
// READ
// =====================================================

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	p := &model.Post{}
	err := r.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM posts p WHERE p.id = $1`, id).Scan(postDest(p)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return p, nil
}

func (r *postgresRepository) FindWithStats(ctx context.Context, id, viewerID uuid.UUID) (*model.PostWithStats, error) {
	query := `SELECT ` + postColumns + `, ` + fmt.Sprintf(statsColumns, "$2") + `
		FROM posts p
		JOIN accounts a ON a.id = p.author_id
		WHERE p.id = $1`

	ps, err := scanWithStats(r.pool.QueryRow(ctx, query, id, viewerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post with stats: %w", err)
	}
	return ps, nil
}

func (r *postgresRepository) List(
	ctx context.Context,
	req model.ListPostsRequest,
	viewerID uuid.UUID,
) ([]*model.PostWithStats, int, error) {
	w := &utils.WhereBuilder{}
	w.Add("(p.is_active OR p.author_id = ?)", viewerID)

	if req.Genre != nil {
		w.Add("p.genre = ?", *req.Genre)
	}
	if req.AgeRating != nil {
		w.Add("p.age_rating = ?", *req.AgeRating)
	}
	if req.SkillLevel != nil {
		w.Add("p.skill_level = ?", *req.SkillLevel)
	}
	if req.AuthorID != nil {
		w.Add("p.author_id = ?", *req.AuthorID)
	}
	if req.Search != "" {
		w.Add("(p.title ILIKE ? OR p.description ILIKE ?)", "%"+req.Search+"%", "%"+req.Search+"%")
	}

	return r.list(ctx, w, viewerID, req.Page, req.Limit)
}

func (r *postgresRepository) Feed(ctx context.Context, viewerID uuid.UUID, page, limit int) ([]*model.PostWithStats, int, error) {
	w := &utils.WhereBuilder{}
	w.Add("p.is_active")
	w.Add("p.author_id IN (SELECT followed_id FROM follows WHERE follower_id = ?)", viewerID)

	return r.list(ctx, w, viewerID, page, limit)
}

func (r *postgresRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*model.PostWithStats, error) {
	w := &utils.WhereBuilder{}
	w.Add("p.author_id = ?", authorID)

	posts, _, err := r.list(ctx, w, authorID, 0, 0)
	return posts, err
}

// list runs the count and page queries for a filter. limit <= 0 returns every row.
func (r *postgresRepository) list(
	ctx context.Context,
	w *utils.WhereBuilder,
	viewerID uuid.UUID,
	page, limit int,
) ([]*model.PostWithStats, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM posts p ` + w.SQL()
	if err := r.pool.QueryRow(ctx, countQuery, w.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	where := w.SQL()
	viewer := w.Next(viewerID)
	query := `SELECT ` + postColumns + `, ` + fmt.Sprintf(statsColumns, viewer) + `
		FROM posts p
		JOIN accounts a ON a.id = p.author_id
		` + where + `
		ORDER BY p.created_at DESC, p.id`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %s OFFSET %s", w.Next(limit), w.Next(utils.Offset(page, limit)))
	}

	rows, err := r.pool.Query(ctx, query, w.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]*model.PostWithStats, 0)
	for rows.Next() {
		ps, err := scanWithStats(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, ps)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate posts: %w", err)
	}

	return posts, total, nil
}

// =====================================================
// UPDATE
// =====================================================

func (r *postgresRepository) Update(ctx context.Context, p *model.Post) error {
	query := `
		UPDATE posts SET
			title = $2,
			genre = $3,
			age_rating = $4,
			skill_level = $5,
			description = $6,
			is_active = $7,
			comment_section_closed = $8,
			updated_at = $9
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		p.ID,
		p.Title,
		p.Genre,
		p.AgeRating,
		p.SkillLevel,
		p.Description,
		p.IsActive,
		p.CommentSectionClosed,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

func (r *postgresRepository) UpdateImage(ctx context.Context, id uuid.UUID, objectKey string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE posts SET image = $2, updated_at = NOW() WHERE id = $1`, id, objectKey)
	if err != nil {
		return fmt.Errorf("update post image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

// =====================================================
// DELETE
// =====================================================

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	statements := []string{
		`DELETE FROM notifications WHERE post_id = $1`,
		`DELETE FROM likes WHERE post_id = $1`,
		`DELETE FROM saves WHERE post_id = $1`,
		`DELETE FROM comments WHERE post_id = $1`,
	}

	return pkgdb.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		for _, stmt := range statements {
			if _, err := tx.Exec(ctx, stmt, id); err != nil {
				return fmt.Errorf("delete post dependents: %w", err)
			}
		}

		tag, err := tx.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete post: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrPostNotFound
		}
		return nil
	})
}

// =====================================================
// COUNTS
// =====================================================

func (r *postgresRepository) CountLikes(ctx context.Context, postID uuid.UUID) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM likes WHERE post_id = $1`, postID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return n, nil
}

func (r *postgresRepository) CountComments(ctx context.Context, postID uuid.UUID) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM comments WHERE post_id = $1`, postID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}
	return n, nil
}
