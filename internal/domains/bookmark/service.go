package bookmark

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	// List resolves username first and fails with the user domain's
	// not-found error when it is unknown.
	List(ctx context.Context, username string) ([]BookmarkDTO, error)

	// Create and Delete require the acting user to be the named user.
	Create(ctx context.Context, actorID uuid.UUID, username string, req CreateBookmarkRequest) (*BookmarkDTO, error)
	Delete(ctx context.Context, actorID uuid.UUID, username string, postID uuid.UUID) error

	// Exists never errors on absence; an unknown username reads as false.
	Exists(ctx context.Context, username string, postID uuid.UUID) (bool, error)
}
