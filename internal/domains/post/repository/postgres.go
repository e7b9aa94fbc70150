package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"sparkin-backend/internal/domains/post"
	"sparkin-backend/pkg/database"
	"sparkin-backend/pkg/logger"
)

const postWithAuthorColumns = `
	p.id, p.title, p.slug, p.content, p.tags, p.author_id,
	p.created_at, p.updated_at, u.username, u.avatar, u.email`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) post.Repository {
	return &postgresRepository{pool: pool}
}

func scanPostWithAuthor(row pgx.Row) (*post.PostWithAuthor, error) {
	p := &post.PostWithAuthor{}
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Slug,
		&p.Content,
		&p.Tags,
		&p.AuthorID,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.AuthorUsername,
		&p.AuthorAvatar,
		&p.AuthorEmail,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresRepository) Create(ctx context.Context, p *post.Post) error {
	const query = `
		INSERT INTO posts (id, title, slug, content, tags, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID,
		p.Title,
		p.Slug,
		p.Content,
		p.Tags,
		p.AuthorID,
		p.CreatedAt,
		p.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "idx_posts_slug" {
			return post.ErrDuplicateSlug
		}
		logger.Error("post Create: database error", err)
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*post.PostWithAuthor, error) {
	query := `
		SELECT` + postWithAuthorColumns + `
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.id = $1`

	p, err := scanPostWithAuthor(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, post.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}
	return p, nil
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*post.PostWithAuthor, error) {
	query := `
		SELECT` + postWithAuthorColumns + `
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.slug = $1`

	p, err := scanPostWithAuthor(r.pool.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, post.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post by slug: %w", err)
	}
	return p, nil
}

func (r *postgresRepository) List(ctx context.Context, authorUsername string, page, limit int) ([]post.PostWithAuthor, int, error) {
	offset := (page - 1) * limit

	baseWhere := ``
	args := []interface{}{limit, offset}
	countArgs := []interface{}{}
	if authorUsername != "" {
		baseWhere = `WHERE u.username = $3`
		args = append(args, authorUsername)
		countArgs = append(countArgs, authorUsername)
	}

	query := `
		SELECT` + postWithAuthorColumns + `
		FROM posts p
		JOIN users u ON u.id = p.author_id
		` + baseWhere + `
		ORDER BY p.created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]post.PostWithAuthor, 0)
	for rows.Next() {
		p, err := scanPostWithAuthor(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := `
		SELECT COUNT(*)
		FROM posts p
		JOIN users u ON u.id = p.author_id`
	if authorUsername != "" {
		countQuery += ` WHERE u.username = $1`
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	return posts, total, nil
}

func (r *postgresRepository) ListAll(ctx context.Context) ([]post.PostWithAuthor, error) {
	query := `
		SELECT` + postWithAuthorColumns + `
		FROM posts p
		JOIN users u ON u.id = p.author_id
		ORDER BY p.created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list all posts: %w", err)
	}
	defer rows.Close()

	posts := make([]post.PostWithAuthor, 0)
	for rows.Next() {
		p, err := scanPostWithAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, *p)
	}

	return posts, rows.Err()
}

func (r *postgresRepository) Update(ctx context.Context, p *post.Post) error {
	const query = `
		UPDATE posts
		SET title = $2, slug = $3, content = $4, tags = $5, updated_at = $6
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		p.ID,
		p.Title,
		p.Slug,
		p.Content,
		p.Tags,
		p.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "idx_posts_slug" {
			return post.ErrDuplicateSlug
		}
		logger.Error("post Update: database error", err)
		return fmt.Errorf("failed to update post: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return post.ErrPostNotFound
	}

	return nil
}

// DeleteCascade removes the post and everything referencing it. Children go
// first so an aborted transaction can never leave dangling references.
func (r *postgresRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		const deleteLikes = `
			DELETE FROM comment_likes
			WHERE comment_id IN (SELECT id FROM comments WHERE post_id = $1)`
		if _, err := tx.Exec(ctx, deleteLikes, id); err != nil {
			return fmt.Errorf("failed to delete comment likes: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM comments WHERE post_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete comments: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM bookmarks WHERE post_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete bookmarks: %w", err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete post: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return post.ErrPostNotFound
		}

		return nil
	})
}

func (r *postgresRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check post exists: %w", err)
	}
	return exists, nil
}
