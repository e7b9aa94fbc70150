package bookmark

import (
	"time"

	"github.com/google/uuid"
)

// Bookmark is a membership row; the pair (UserID, PostID) is the identity.
type Bookmark struct {
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	PostID    uuid.UUID `json:"post_id" db:"post_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// BookmarkWithPost carries the joined post fields a bookmark list renders.
type BookmarkWithPost struct {
	Bookmark
	PostTitle     string    `json:"post_title" db:"post_title"`
	PostSlug      string    `json:"post_slug" db:"post_slug"`
	PostCreatedAt time.Time `json:"post_created_at" db:"post_created_at"`
}
