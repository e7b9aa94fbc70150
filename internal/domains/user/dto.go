package user

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// ========================================
// AUTH DTOs
// ========================================

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required.Error("username is required"),
			validation.Length(3, 50),
			validation.Match(usernamePattern).Error("username may only contain letters, digits and underscores"),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
			validation.Length(5, 255),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(6, 128).Error("password must be 6-128 characters"),
		),
	)
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// AuthResponse carries the identity plus a signed session token.
type AuthResponse struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}

// ========================================
// PROFILE DTOs
// ========================================

// UpdateProfileRequest is a full replace: fields a client omits reset to "".
type UpdateProfileRequest struct {
	Bio    string `json:"bio"`
	Avatar string `json:"avatar"`
	Social Social `json:"social"`
}

func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Bio, validation.Length(0, 500)),
		validation.Field(&r.Avatar, validation.Length(0, 2048)),
	)
}

type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Bio       string    `json:"bio"`
	Avatar    string    `json:"avatar"`
	Social    Social    `json:"social"`
	CreatedAt time.Time `json:"created_at"`
}

// PublicProfile is what anyone may see about an account.
type PublicProfile struct {
	Username string `json:"username"`
	Bio      string `json:"bio"`
	Avatar   string `json:"avatar"`
	Social   Social `json:"social"`
}

func (u *User) ToPublicProfile() PublicProfile {
	return PublicProfile{
		Username: u.Username,
		Bio:      u.Bio,
		Avatar:   u.Avatar,
		Social:   u.Social,
	}
}
