package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"thriven-backend/internal/domains/account/model"
	"thriven-backend/internal/infrastructure/database"
	"thriven-backend/pkg/cache"
	pkgdb "thriven-backend/pkg/database"
	"thriven-backend/pkg/logger"
)

const (
	cacheTTL = 15 * time.Minute

	accountColumns = `id, username, email, password_hash, pronoun, date_of_birth, profile_image,
		is_author, skill_level, biography, website, published_books, created_at, updated_at`
)

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) Repository {
	return &postgresRepository{pool: pool, cache: cache}
}

func cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("account:%s", id.String())
}

func scanAccount(row pgx.Row) (*model.Account, error) {
	a := &model.Account{}
	err := row.Scan(
		&a.ID,
		&a.Username,
		&a.Email,
		&a.PasswordHash,
		&a.Pronoun,
		&a.DateOfBirth,
		&a.ProfileImage,
		&a.IsAuthor,
		&a.SkillLevel,
		&a.Biography,
		&a.Website,
		&a.PublishedBooks,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ========================================
// CREATE
// ========================================

func (r *postgresRepository) Create(ctx context.Context, a *model.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.pool.Exec(ctx, query,
		a.ID,
		a.Username,
		a.Email,
		a.PasswordHash,
		a.Pronoun,
		a.DateOfBirth,
		a.ProfileImage,
		a.IsAuthor,
		a.SkillLevel,
		a.Biography,
		a.Website,
		a.PublishedBooks,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err, "accounts_username_key") {
			return model.ErrUsernameTaken
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// ========================================
// READ
// ========================================

// FindByID implements cache-aside on account:<id>
func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	key := cacheKey(id)

	var cached model.Account
	found, err := r.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn("Account cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
	if found {
		return &cached, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	a, err := scanAccount(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}

	if err := r.cache.Set(ctx, key, a, cacheTTL); err != nil {
		logger.Warn("Account cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
	return a, nil
}

func (r *postgresRepository) FindByUsername(ctx context.Context, username string) (*model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE username = $1`
	a, err := scanAccount(r.pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account by username: %w", err)
	}
	return a, nil
}

func (r *postgresRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*model.Account, error) {
	result := make(map[uuid.UUID]*model.Account, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = ANY($1)`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("find accounts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		result[a.ID] = a
	}
	return result, rows.Err()
}

// ========================================
// UPDATE
// ========================================

func (r *postgresRepository) Update(ctx context.Context, a *model.Account) error {
	query := `
		UPDATE accounts SET
			email = $2,
			pronoun = $3,
			date_of_birth = $4,
			is_author = $5,
			skill_level = $6,
			biography = $7,
			website = $8,
			published_books = $9,
			updated_at = $10
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		a.ID,
		a.Email,
		a.Pronoun,
		a.DateOfBirth,
		a.IsAuthor,
		a.SkillLevel,
		a.Biography,
		a.Website,
		a.PublishedBooks,
		a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAccountNotFound
	}

	r.invalidate(ctx, a.ID)
	return nil
}

func (r *postgresRepository) UpdateProfileImage(ctx context.Context, id uuid.UUID, objectKey string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE accounts SET profile_image = $2, updated_at = NOW() WHERE id = $1`,
		id, objectKey,
	)
	if err != nil {
		return fmt.Errorf("update profile image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAccountNotFound
	}

	r.invalidate(ctx, id)
	return nil
}

// ========================================
// DELETE
// ========================================

// Delete removes dependents explicitly so the cascade does not depend on the schema
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	statements := []string{
		`DELETE FROM notifications WHERE account_id = $1 OR post_id IN (SELECT id FROM posts WHERE author_id = $1)`,
		`DELETE FROM likes WHERE account_id = $1 OR post_id IN (SELECT id FROM posts WHERE author_id = $1)`,
		`DELETE FROM saves WHERE account_id = $1 OR post_id IN (SELECT id FROM posts WHERE author_id = $1)`,
		`DELETE FROM comments WHERE account_id = $1 OR post_id IN (SELECT id FROM posts WHERE author_id = $1)`,
		`DELETE FROM follows WHERE follower_id = $1 OR followed_id = $1`,
		`DELETE FROM posts WHERE author_id = $1`,
	}

	err := pkgdb.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		for _, stmt := range statements {
			if _, err := tx.Exec(ctx, stmt, id); err != nil {
				return fmt.Errorf("delete dependents: %w", err)
			}
		}

		tag, err := tx.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete account: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrAccountNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *postgresRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, cacheKey(id)); err != nil {
		logger.Warn("Account cache invalidation failed", map[string]interface{}{"account_id": id.String(), "error": err.Error()})
	}
}
