package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"sparkin-backend/internal/domains/user"
	"sparkin-backend/pkg/cache"
	"sparkin-backend/pkg/jwt"
	"sparkin-backend/pkg/logger"
)

const (
	bcryptCost = 12

	maxLoginAttempts  = 5
	loginAttemptTTL   = 15 * time.Minute
	loginAttemptKeyFm = "login:fail:%s"
)

// EmailQueue is the slice of the job queue the user service needs.
type EmailQueue interface {
	EnqueueWelcomeEmail(ctx context.Context, email, username string) error
}

// AvatarStore is the slice of object storage the user service needs.
type AvatarStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	DeleteByURL(ctx context.Context, url string) error
}

type userService struct {
	repo        user.Repository
	jwtManager  *jwt.Manager
	loginGuard  cache.Cache // optional, nil disables throttling
	emailQueue  EmailQueue  // optional, nil disables welcome emails
	avatarStore AvatarStore // optional, nil disables avatar uploads
}

// NewUserService creates the service instance. loginGuard, emailQueue and
// avatarStore may be nil in tests or reduced deployments.
func NewUserService(
	repo user.Repository,
	jwtManager *jwt.Manager,
	loginGuard cache.Cache,
	emailQueue EmailQueue,
	avatarStore AvatarStore,
) user.Service {
	return &userService{
		repo:        repo,
		jwtManager:  jwtManager,
		loginGuard:  loginGuard,
		emailQueue:  emailQueue,
		avatarStore: avatarStore,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Best-effort pre-checks; the unique indexes are authoritative under
	// concurrent registration.
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, user.ErrEmailAlreadyExists
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if _, err := s.repo.GetByUsername(ctx, req.Username); err == nil {
		return nil, user.ErrUsernameAlreadyExists
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return nil, fmt.Errorf("check username exists: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	newUser := &user.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		Role:         user.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	token, err := s.issueToken(newUser)
	if err != nil {
		return nil, err
	}

	// Delivery happens in the worker; a queue outage must not fail signup.
	if s.emailQueue != nil {
		if err := s.emailQueue.EnqueueWelcomeEmail(ctx, newUser.Email, newUser.Username); err != nil {
			logger.Error("enqueue welcome email", err)
		}
	}

	return &user.AuthResponse{User: newUser.ToDTO(), Token: token}, nil
}

func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	throttleKey := fmt.Sprintf(loginAttemptKeyFm, req.Email)
	if s.loginGuard != nil {
		attempts, err := s.loginGuard.GetInt64(ctx, throttleKey)
		if err != nil {
			logger.Error("login throttle read", err)
		} else if attempts >= maxLoginAttempts {
			return nil, user.ErrTooManyLoginAttempts
		}
	}

	u, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			s.recordFailedLogin(ctx, throttleKey)
			return nil, user.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		s.recordFailedLogin(ctx, throttleKey)
		return nil, user.ErrInvalidCredentials
	}

	if s.loginGuard != nil {
		if err := s.loginGuard.Delete(ctx, throttleKey); err != nil {
			logger.Error("login throttle reset", err)
		}
	}

	token, err := s.issueToken(u)
	if err != nil {
		return nil, err
	}

	return &user.AuthResponse{User: u.ToDTO(), Token: token}, nil
}

func (s *userService) recordFailedLogin(ctx context.Context, key string) {
	if s.loginGuard == nil {
		return
	}

	n, err := s.loginGuard.Increment(ctx, key)
	if err != nil {
		logger.Error("login throttle increment", err)
		return
	}
	if n == 1 {
		if err := s.loginGuard.Expire(ctx, key, loginAttemptTTL); err != nil {
			logger.Error("login throttle expire", err)
		}
	}
}

func (s *userService) issueToken(u *user.User) (string, error) {
	token, err := s.jwtManager.GenerateAccessToken(u.ID.String(), u.Username, u.Email, u.Role)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// ========================================
// PROFILE
// ========================================

func (s *userService) GetByUsername(ctx context.Context, username string) (*user.UserDTO, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	dto := u.ToDTO()
	return &dto, nil
}

func (s *userService) UpdateProfile(ctx context.Context, actorID uuid.UUID, username string, req user.UpdateProfileRequest) (*user.UserDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	target, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if target.ID != actorID {
		return nil, user.ErrNotProfileOwner
	}

	updated, err := s.repo.UpdateProfile(ctx, username, req.Bio, req.Avatar, req.Social)
	if err != nil {
		return nil, err
	}

	dto := updated.ToDTO()
	return &dto, nil
}

func (s *userService) UploadAvatar(ctx context.Context, actorID uuid.UUID, username, filename, contentType string, data []byte) (*user.UserDTO, error) {
	if s.avatarStore == nil {
		return nil, fmt.Errorf("avatar storage is not configured")
	}

	target, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if target.ID != actorID {
		return nil, user.ErrNotProfileOwner
	}

	key := fmt.Sprintf("avatars/%s/%s%s", username, uuid.NewString(), path.Ext(filename))
	url, err := s.avatarStore.Upload(ctx, key, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("upload avatar: %w", err)
	}

	updated, err := s.repo.UpdateAvatar(ctx, username, url)
	if err != nil {
		return nil, err
	}

	// Best-effort cleanup of the replaced file.
	if target.Avatar != "" {
		if err := s.avatarStore.DeleteByURL(ctx, target.Avatar); err != nil {
			logger.Error("delete old avatar", err)
		}
	}

	dto := updated.ToDTO()
	return &dto, nil
}

// ========================================
// LISTING / MODERATION
// ========================================

func (s *userService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *userService) List(ctx context.Context) ([]user.UserDTO, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]user.UserDTO, 0, len(users))
	for i := range users {
		dtos = append(dtos, users[i].ToDTO())
	}
	return dtos, nil
}

func (s *userService) DeleteUser(ctx context.Context, actorID, targetID uuid.UUID) error {
	if actorID == targetID {
		return user.ErrCannotDeleteSelf
	}

	return s.repo.Delete(ctx, targetID)
}
