package comment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, c *Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Comment, error)
	GetWithAuthor(ctx context.Context, id uuid.UUID) (*CommentWithAuthor, error)

	// ListTopLevel returns a page of top-level comments (newest first) with
	// their replies (oldest first) and joined author fields, plus the total
	// number of top-level comments on the post.
	ListTopLevel(ctx context.Context, postID uuid.UUID, page, limit int) ([]CommentWithAuthor, int, error)

	Update(ctx context.Context, id uuid.UUID, content string, editedAt time.Time) error

	// DeleteCascade removes the comment, its replies and every like on any
	// of them as one transaction.
	DeleteCascade(ctx context.Context, id uuid.UUID) error

	// ToggleLike flips userID's membership in the comment's like set and
	// returns the resulting membership plus the new count.
	ToggleLike(ctx context.Context, commentID, userID uuid.UUID) (bool, int, error)
}
