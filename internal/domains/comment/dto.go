package comment

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const maxContentLength = 1000

type CreateCommentRequest struct {
	Content         string     `json:"content" binding:"required"`
	PostID          uuid.UUID  `json:"post_id" binding:"required"`
	ParentCommentID *uuid.UUID `json:"parent_comment_id"`
}

func (r CreateCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
			validation.Length(1, maxContentLength),
		),
		validation.Field(&r.PostID,
			validation.Required.Error("post id is required"),
		),
	)
}

type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (r UpdateCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
			validation.Length(1, maxContentLength),
		),
	)
}

type AuthorDTO struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

type CommentDTO struct {
	ID         uuid.UUID    `json:"id"`
	PostID     uuid.UUID    `json:"post_id"`
	ParentID   *uuid.UUID   `json:"parent_id,omitempty"`
	Content    string       `json:"content"`
	Author     AuthorDTO    `json:"author"`
	LikesCount int          `json:"likes_count"`
	IsEdited   bool         `json:"is_edited"`
	EditedAt   *time.Time   `json:"edited_at,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
	Replies    []CommentDTO `json:"replies,omitempty"`
}

func (c *CommentWithAuthor) ToDTO() CommentDTO {
	dto := CommentDTO{
		ID:         c.ID,
		PostID:     c.PostID,
		ParentID:   c.ParentID,
		Content:    c.Content,
		Author:     AuthorDTO{Username: c.AuthorUsername, Avatar: c.AuthorAvatar},
		LikesCount: c.LikesCount,
		IsEdited:   c.IsEdited,
		EditedAt:   c.EditedAt,
		CreatedAt:  c.CreatedAt,
	}

	for i := range c.Replies {
		dto.Replies = append(dto.Replies, c.Replies[i].ToDTO())
	}

	return dto
}

// LikeResult reports the state after a toggle.
type LikeResult struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likes_count"`
}
