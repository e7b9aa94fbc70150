package bookmark

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type CreateBookmarkRequest struct {
	PostID uuid.UUID `json:"post_id" binding:"required"`
}

func (r CreateBookmarkRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PostID,
			validation.Required.Error("post id is required"),
		),
	)
}

type PostSummary struct {
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

type BookmarkDTO struct {
	PostID    uuid.UUID   `json:"post_id"`
	Post      PostSummary `json:"post"`
	CreatedAt time.Time   `json:"created_at"`
}

func (b *BookmarkWithPost) ToDTO() BookmarkDTO {
	return BookmarkDTO{
		PostID: b.PostID,
		Post: PostSummary{
			Title:     b.PostTitle,
			Slug:      b.PostSlug,
			CreatedAt: b.PostCreatedAt,
		},
		CreatedAt: b.CreatedAt,
	}
}

// ExistsResult answers "is this post bookmarked by this user".
type ExistsResult struct {
	Bookmarked bool `json:"bookmarked"`
}
