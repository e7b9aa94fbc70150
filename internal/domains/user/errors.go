package user

import "errors"

// Sentinel errors compared with errors.Is in the handler layer and mapped to
// HTTP statuses there.
var (
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailAlreadyExists    = errors.New("email already registered")
	ErrUsernameAlreadyExists = errors.New("username already taken")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrTooManyLoginAttempts  = errors.New("too many failed login attempts, try again later")
	ErrNotProfileOwner       = errors.New("not authorized to modify this profile")
	ErrCannotDeleteSelf      = errors.New("cannot delete your own account")
)
