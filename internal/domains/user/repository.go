package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the data access contract for accounts.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)

	// UpdateProfile replaces bio, avatar and social links wholesale.
	UpdateProfile(ctx context.Context, username, bio, avatar string, social Social) (*User, error)
	UpdateAvatar(ctx context.Context, username, avatar string) (*User, error)

	List(ctx context.Context) ([]User, error)
	Count(ctx context.Context) (int, error)

	// Delete removes the account and everything it authored: posts (with
	// their comments and bookmarks), comments, likes and bookmarks, as one
	// transaction.
	Delete(ctx context.Context, id uuid.UUID) error
}
