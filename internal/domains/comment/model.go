package comment

import (
	"time"

	"github.com/google/uuid"
)

// Comment threading is normalized: a reply carries its parent's id and
// children are found by querying on parent_id. There is no reply-id list to
// keep in sync with reality.
type Comment struct {
	ID        uuid.UUID  `json:"id"`
	PostID    uuid.UUID  `json:"post_id"`
	AuthorID  uuid.UUID  `json:"author_id"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
	Content   string     `json:"content"`
	IsEdited  bool       `json:"is_edited"`
	EditedAt  *time.Time `json:"edited_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}

// CommentWithAuthor joins author public fields and the like count; Replies
// is populated for top-level comments in list views.
type CommentWithAuthor struct {
	Comment
	AuthorUsername string
	AuthorAvatar   string
	LikesCount     int
	Replies        []CommentWithAuthor
}
