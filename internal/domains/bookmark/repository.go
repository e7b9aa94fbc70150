package bookmark

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, b *Bookmark) error

	// Delete returns ErrBookmarkNotFound when no row matches.
	Delete(ctx context.Context, userID, postID uuid.UUID) error

	// ListByUser returns the user's bookmarks newest first, joined with the
	// post fields a listing renders.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]BookmarkWithPost, error)

	Exists(ctx context.Context, userID, postID uuid.UUID) (bool, error)
}
