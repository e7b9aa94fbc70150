package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sparkin-backend/internal/domains/comment"
	"sparkin-backend/pkg/database"
	"sparkin-backend/pkg/logger"
)

const commentWithAuthorColumns = `
	c.id, c.post_id, c.author_id, c.parent_id, c.content, c.is_edited,
	c.edited_at, c.created_at, c.updated_at, u.username, u.avatar,
	(SELECT COUNT(*) FROM comment_likes cl WHERE cl.comment_id = c.id)`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) comment.Repository {
	return &postgresRepository{pool: pool}
}

func scanCommentWithAuthor(row pgx.Row) (*comment.CommentWithAuthor, error) {
	c := &comment.CommentWithAuthor{}
	err := row.Scan(
		&c.ID,
		&c.PostID,
		&c.AuthorID,
		&c.ParentID,
		&c.Content,
		&c.IsEdited,
		&c.EditedAt,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.AuthorUsername,
		&c.AuthorAvatar,
		&c.LikesCount,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *postgresRepository) Create(ctx context.Context, c *comment.Comment) error {
	const query = `
		INSERT INTO comments (id, post_id, author_id, parent_id, content,
		                      is_edited, edited_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		c.ID,
		c.PostID,
		c.AuthorID,
		c.ParentID,
		c.Content,
		c.IsEdited,
		c.EditedAt,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		logger.Error("comment Create: database error", err)
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*comment.Comment, error) {
	const query = `
		SELECT id, post_id, author_id, parent_id, content, is_edited,
		       edited_at, created_at, updated_at
		FROM comments
		WHERE id = $1
	`

	c := &comment.Comment{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.PostID,
		&c.AuthorID,
		&c.ParentID,
		&c.Content,
		&c.IsEdited,
		&c.EditedAt,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, comment.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return c, nil
}

func (r *postgresRepository) GetWithAuthor(ctx context.Context, id uuid.UUID) (*comment.CommentWithAuthor, error) {
	query := `
		SELECT` + commentWithAuthorColumns + `
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.id = $1`

	c, err := scanCommentWithAuthor(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, comment.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment with author: %w", err)
	}
	return c, nil
}

func (r *postgresRepository) ListTopLevel(ctx context.Context, postID uuid.UUID, page, limit int) ([]comment.CommentWithAuthor, int, error) {
	offset := (page - 1) * limit

	query := `
		SELECT` + commentWithAuthorColumns + `
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = $1 AND c.parent_id IS NULL
		ORDER BY c.created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, postID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]comment.CommentWithAuthor, 0)
	parentIDs := make([]uuid.UUID, 0)
	for rows.Next() {
		c, err := scanCommentWithAuthor(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, *c)
		parentIDs = append(parentIDs, c.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if len(parentIDs) > 0 {
		replies, err := r.listReplies(ctx, parentIDs)
		if err != nil {
			return nil, 0, err
		}
		for i := range comments {
			comments[i].Replies = replies[comments[i].ID]
		}
	}

	const countQuery = `
		SELECT COUNT(*) FROM comments
		WHERE post_id = $1 AND parent_id IS NULL`

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, postID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count comments: %w", err)
	}

	return comments, total, nil
}

// listReplies fetches the children of a page of top-level comments in a
// single query, oldest first.
func (r *postgresRepository) listReplies(ctx context.Context, parentIDs []uuid.UUID) (map[uuid.UUID][]comment.CommentWithAuthor, error) {
	query := `
		SELECT` + commentWithAuthorColumns + `
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.parent_id = ANY($1)
		ORDER BY c.created_at ASC`

	rows, err := r.pool.Query(ctx, query, parentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list replies: %w", err)
	}
	defer rows.Close()

	replies := make(map[uuid.UUID][]comment.CommentWithAuthor)
	for rows.Next() {
		c, err := scanCommentWithAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reply: %w", err)
		}
		replies[*c.ParentID] = append(replies[*c.ParentID], *c)
	}

	return replies, rows.Err()
}

func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, content string, editedAt time.Time) error {
	const query = `
		UPDATE comments
		SET content = $2, is_edited = true, edited_at = $3, updated_at = $3
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, content, editedAt)
	if err != nil {
		logger.Error("comment Update: database error", err)
		return fmt.Errorf("failed to update comment: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return comment.ErrCommentNotFound
	}

	return nil
}

// DeleteCascade treats likes, replies and the comment itself as one unit so
// a partial failure can never strand a reply without its parent.
func (r *postgresRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		const deleteLikes = `
			DELETE FROM comment_likes
			WHERE comment_id = $1
			   OR comment_id IN (SELECT id FROM comments WHERE parent_id = $1)`
		if _, err := tx.Exec(ctx, deleteLikes, id); err != nil {
			return fmt.Errorf("failed to delete likes: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM comments WHERE parent_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete replies: %w", err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete comment: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return comment.ErrCommentNotFound
		}

		return nil
	})
}

type likeState struct {
	liked bool
	count int
}

func (r *postgresRepository) ToggleLike(ctx context.Context, commentID, userID uuid.UUID) (bool, int, error) {
	state, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (likeState, error) {
		const insert = `
			INSERT INTO comment_likes (comment_id, user_id, created_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (comment_id, user_id) DO NOTHING`

		tag, err := tx.Exec(ctx, insert, commentID, userID, time.Now())
		if err != nil {
			return likeState{}, fmt.Errorf("failed to insert like: %w", err)
		}

		// Already present means this toggle is an unlike.
		liked := tag.RowsAffected() > 0
		if !liked {
			const remove = `DELETE FROM comment_likes WHERE comment_id = $1 AND user_id = $2`
			if _, err := tx.Exec(ctx, remove, commentID, userID); err != nil {
				return likeState{}, fmt.Errorf("failed to delete like: %w", err)
			}
		}

		var count int
		const countQuery = `SELECT COUNT(*) FROM comment_likes WHERE comment_id = $1`
		if err := tx.QueryRow(ctx, countQuery, commentID).Scan(&count); err != nil {
			return likeState{}, fmt.Errorf("failed to count likes: %w", err)
		}

		return likeState{liked: liked, count: count}, nil
	})
	if err != nil {
		return false, 0, err
	}

	return state.liked, state.count, nil
}
