package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"sparkin-backend/internal/domains/bookmark"
	"sparkin-backend/pkg/logger"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) bookmark.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, b *bookmark.Bookmark) error {
	const query = `
		INSERT INTO bookmarks (user_id, post_id, created_at)
		VALUES ($1, $2, $3)
	`

	_, err := r.pool.Exec(ctx, query, b.UserID, b.PostID, b.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "bookmarks_pkey" {
			return bookmark.ErrAlreadyBookmarked
		}
		logger.Error("bookmark Create: database error", err)
		return fmt.Errorf("failed to create bookmark: %w", err)
	}

	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, userID, postID uuid.UUID) error {
	const query = `DELETE FROM bookmarks WHERE user_id = $1 AND post_id = $2`

	tag, err := r.pool.Exec(ctx, query, userID, postID)
	if err != nil {
		logger.Error("bookmark Delete: database error", err)
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return bookmark.ErrBookmarkNotFound
	}

	return nil
}

func (r *postgresRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]bookmark.BookmarkWithPost, error) {
	const query = `
		SELECT b.user_id, b.post_id, b.created_at, p.title, p.slug, p.created_at
		FROM bookmarks b
		JOIN posts p ON p.id = b.post_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	defer rows.Close()

	bookmarks := make([]bookmark.BookmarkWithPost, 0)
	for rows.Next() {
		var b bookmark.BookmarkWithPost
		err := rows.Scan(
			&b.UserID,
			&b.PostID,
			&b.CreatedAt,
			&b.PostTitle,
			&b.PostSlug,
			&b.PostCreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bookmark: %w", err)
		}
		bookmarks = append(bookmarks, b)
	}

	return bookmarks, rows.Err()
}

func (r *postgresRepository) Exists(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM bookmarks WHERE user_id = $1 AND post_id = $2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID, postID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check bookmark: %w", err)
	}

	return exists, nil
}
