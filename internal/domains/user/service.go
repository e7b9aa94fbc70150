package user

import (
	"context"

	"github.com/google/uuid"
)

// Service is the business logic contract for accounts.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)

	GetByUsername(ctx context.Context, username string) (*UserDTO, error)
	UpdateProfile(ctx context.Context, actorID uuid.UUID, username string, req UpdateProfileRequest) (*UserDTO, error)
	UploadAvatar(ctx context.Context, actorID uuid.UUID, username, filename, contentType string, data []byte) (*UserDTO, error)

	Count(ctx context.Context) (int, error)
	List(ctx context.Context) ([]UserDTO, error)

	// DeleteUser is the administrator moderation path. Administrators may
	// not delete their own account.
	DeleteUser(ctx context.Context, actorID, targetID uuid.UUID) error
}
