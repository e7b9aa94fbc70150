package comment

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	// ListForPost never errors on an unknown post: the result is simply empty.
	ListForPost(ctx context.Context, postID uuid.UUID, page, limit int) ([]CommentDTO, int, error)

	Create(ctx context.Context, actorID uuid.UUID, req CreateCommentRequest) (*CommentDTO, error)
	Update(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req UpdateCommentRequest) (*CommentDTO, error)

	// Delete allows the author or an administrator.
	Delete(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID) error

	ToggleLike(ctx context.Context, actorID, id uuid.UUID) (*LikeResult, error)
}
