package post

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*PostWithAuthor, error)
	GetBySlug(ctx context.Context, slug string) (*PostWithAuthor, error)

	// List returns a page of posts ordered by creation time descending,
	// optionally filtered by author username, plus the total matching the
	// filter.
	List(ctx context.Context, authorUsername string, page, limit int) ([]PostWithAuthor, int, error)

	// ListAll is the moderation view: every post, author email included.
	ListAll(ctx context.Context) ([]PostWithAuthor, error)

	Update(ctx context.Context, p *Post) error

	// DeleteCascade removes the post together with its comments, comment
	// likes and bookmarks in one transaction.
	DeleteCascade(ctx context.Context, id uuid.UUID) error

	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
