package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Social holds the recognized profile links. Anything else sent by a client
// is dropped during binding.
type Social struct {
	GitHub   string `json:"github"`
	Twitter  string `json:"twitter"`
	LinkedIn string `json:"linkedin"`
}

type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Bio          string    `json:"bio"`
	Avatar       string    `json:"avatar"`
	Social       Social    `json:"social"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ToDTO strips fields that must never leave the server.
func (u *User) ToDTO() UserDTO {
	return UserDTO{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		Bio:       u.Bio,
		Avatar:    u.Avatar,
		Social:    u.Social,
		CreatedAt: u.CreatedAt,
	}
}
