package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"sparkin-backend/internal/domains/user"
	"sparkin-backend/pkg/database"
	"sparkin-backend/pkg/logger"
)

const userColumns = `
	id, username, email, password_hash, role, bio, avatar,
	social_github, social_twitter, social_linkedin, created_at, updated_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) user.Repository {
	return &postgresRepository{pool: pool}
}

func scanUser(row pgx.Row) (*user.User, error) {
	u := &user.User{}
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.Bio,
		&u.Avatar,
		&u.Social.GitHub,
		&u.Social.Twitter,
		&u.Social.LinkedIn,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *postgresRepository) Create(ctx context.Context, u *user.User) error {
	const query = `
		INSERT INTO users (
			id, username, email, password_hash, role, bio, avatar,
			social_github, social_twitter, social_linkedin, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.pool.Exec(ctx, query,
		u.ID,
		u.Username,
		u.Email,
		u.PasswordHash,
		u.Role,
		u.Bio,
		u.Avatar,
		u.Social.GitHub,
		u.Social.Twitter,
		u.Social.LinkedIn,
		u.CreatedAt,
		u.UpdatedAt,
	)

	if err != nil {
		// The unique indexes are the authority on uniqueness; two
		// concurrent registrations can both pass the service pre-check.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.ConstraintName == "idx_users_email" {
				return user.ErrEmailAlreadyExists
			}
			if pgErr.ConstraintName == "idx_users_username" {
				return user.ErrUsernameAlreadyExists
			}
		}
		logger.Error("user Create: database error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := `SELECT` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return u, nil
}

func (r *postgresRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `SELECT` + userColumns + ` FROM users WHERE email = $1`

	u, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return u, nil
}

func (r *postgresRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	query := `SELECT` + userColumns + ` FROM users WHERE username = $1`

	u, err := scanUser(r.pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return u, nil
}

func (r *postgresRepository) UpdateProfile(ctx context.Context, username, bio, avatar string, social user.Social) (*user.User, error) {
	query := `
		UPDATE users
		SET bio = $2, avatar = $3, social_github = $4, social_twitter = $5,
		    social_linkedin = $6, updated_at = $7
		WHERE username = $1
		RETURNING` + userColumns

	u, err := scanUser(r.pool.QueryRow(ctx, query,
		username, bio, avatar, social.GitHub, social.Twitter, social.LinkedIn, time.Now(),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return u, nil
}

func (r *postgresRepository) UpdateAvatar(ctx context.Context, username, avatar string) (*user.User, error) {
	query := `
		UPDATE users
		SET avatar = $2, updated_at = $3
		WHERE username = $1
		RETURNING` + userColumns

	u, err := scanUser(r.pool.QueryRow(ctx, query, username, avatar, time.Now()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update avatar: %w", err)
	}
	return u, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]user.User, error) {
	query := `SELECT` + userColumns + ` FROM users ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *u)
	}

	return users, rows.Err()
}

func (r *postgresRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// Delete removes the account and cascades over everything it authored.
// Children go before parents so a crash mid-transaction can never leave a
// reply pointing at a deleted comment.
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		// Likes placed by the user, plus likes on any comment that is
		// about to disappear with them.
		const deleteLikes = `
			DELETE FROM comment_likes
			WHERE user_id = $1
			   OR comment_id IN (
					SELECT id FROM comments
					WHERE author_id = $1
					   OR post_id IN (SELECT id FROM posts WHERE author_id = $1)
					   OR parent_id IN (SELECT id FROM comments WHERE author_id = $1)
			   )`
		if _, err := tx.Exec(ctx, deleteLikes, id); err != nil {
			return fmt.Errorf("failed to delete likes: %w", err)
		}

		// Replies to comments that are about to disappear.
		const deleteReplies = `
			DELETE FROM comments
			WHERE parent_id IN (
				SELECT id FROM comments
				WHERE author_id = $1
				   OR post_id IN (SELECT id FROM posts WHERE author_id = $1)
			)`
		if _, err := tx.Exec(ctx, deleteReplies, id); err != nil {
			return fmt.Errorf("failed to delete replies: %w", err)
		}

		const deleteComments = `
			DELETE FROM comments
			WHERE author_id = $1
			   OR post_id IN (SELECT id FROM posts WHERE author_id = $1)`
		if _, err := tx.Exec(ctx, deleteComments, id); err != nil {
			return fmt.Errorf("failed to delete comments: %w", err)
		}

		const deleteBookmarks = `
			DELETE FROM bookmarks
			WHERE user_id = $1
			   OR post_id IN (SELECT id FROM posts WHERE author_id = $1)`
		if _, err := tx.Exec(ctx, deleteBookmarks, id); err != nil {
			return fmt.Errorf("failed to delete bookmarks: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM posts WHERE author_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete posts: %w", err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return user.ErrUserNotFound
		}

		return nil
	})
}
