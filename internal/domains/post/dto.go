package post

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const (
	maxTitleLength   = 200
	maxContentLength = 50000
	maxTags          = 10
	maxTagLength     = 30
)

type CreatePostRequest struct {
	Title   string   `json:"title" binding:"required"`
	Content string   `json:"content" binding:"required"`
	Tags    []string `json:"tags"`
}

func (r CreatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, maxTitleLength),
		),
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
			validation.Length(1, maxContentLength),
		),
		validation.Field(&r.Tags,
			validation.Length(0, maxTags),
			validation.Each(validation.Length(1, maxTagLength)),
		),
	)
}

// UpdatePostRequest uses pointers so that omitted fields stay untouched.
type UpdatePostRequest struct {
	Title   *string   `json:"title"`
	Content *string   `json:"content"`
	Tags    *[]string `json:"tags"`
}

func (r UpdatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.NilOrNotEmpty.Error("title cannot be empty"),
			validation.Length(1, maxTitleLength),
		),
		validation.Field(&r.Content,
			validation.NilOrNotEmpty.Error("content cannot be empty"),
			validation.Length(1, maxContentLength),
		),
	)
}

// ListQuery filters and paginates the feed.
type ListQuery struct {
	Author string
	Page   int
	Limit  int
}

// Normalize clamps pagination to sane bounds.
func (q *ListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}
	if q.Limit > 50 {
		q.Limit = 50
	}
}

type AuthorDTO struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	Email    string `json:"email,omitempty"`
}

type PostDTO struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	Author    AuthorDTO `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToDTO maps for the public surface; author email stays hidden.
func (p *PostWithAuthor) ToDTO() PostDTO {
	return PostDTO{
		ID:      p.ID,
		Title:   p.Title,
		Slug:    p.Slug,
		Content: p.Content,
		Tags:    p.Tags,
		Author: AuthorDTO{
			Username: p.AuthorUsername,
			Avatar:   p.AuthorAvatar,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ToAdminDTO additionally exposes the author's email for moderation views.
func (p *PostWithAuthor) ToAdminDTO() PostDTO {
	dto := p.ToDTO()
	dto.Author.Email = p.AuthorEmail
	return dto
}
