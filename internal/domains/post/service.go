package post

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	Create(ctx context.Context, actorID uuid.UUID, req CreatePostRequest) (*PostDTO, error)
	GetBySlug(ctx context.Context, slug string) (*PostDTO, error)
	List(ctx context.Context, q ListQuery) ([]PostDTO, int, error)
	UpdateBySlug(ctx context.Context, actorID uuid.UUID, slug string, req UpdatePostRequest) (*PostDTO, error)

	// DeleteBySlug allows the author or an administrator.
	DeleteBySlug(ctx context.Context, actorID uuid.UUID, actorRole, slug string) error

	// Moderation surface.
	AdminList(ctx context.Context) ([]PostDTO, error)
	AdminDeleteByID(ctx context.Context, id uuid.UUID) error
}
