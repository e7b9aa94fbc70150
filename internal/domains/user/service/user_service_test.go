package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sparkin-backend/internal/domains/user"
	"sparkin-backend/pkg/jwt"
)

// ========================================
// FAKES
// ========================================

type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*user.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return user.ErrEmailAlreadyExists
		}
		if existing.Username == u.Username {
			return user.ErrUsernameAlreadyExists
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, user.ErrUserNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*user.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, username, bio, avatar string, social user.Social) (*user.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			u.Bio = bio
			u.Avatar = avatar
			u.Social = social
			u.UpdatedAt = time.Now()
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *fakeUserRepo) UpdateAvatar(_ context.Context, username, avatar string) (*user.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			u.Avatar = avatar
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *fakeUserRepo) List(_ context.Context) ([]user.User, error) {
	out := make([]user.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int, error) {
	return len(r.users), nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.users[id]; !ok {
		return user.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeThrottle struct {
	counters map[string]int64
}

func newFakeThrottle() *fakeThrottle {
	return &fakeThrottle{counters: make(map[string]int64)}
}

func (f *fakeThrottle) Increment(_ context.Context, key string) (int64, error) {
	f.counters[key]++
	return f.counters[key], nil
}

func (f *fakeThrottle) GetInt64(_ context.Context, key string) (int64, error) {
	return f.counters[key], nil
}

func (f *fakeThrottle) Expire(_ context.Context, _ string, _ time.Duration) error {
	return nil
}

func (f *fakeThrottle) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.counters, k)
	}
	return nil
}

func (f *fakeThrottle) Ping(_ context.Context) error { return nil }

type fakeEmailQueue struct {
	sent []string
}

func (f *fakeEmailQueue) EnqueueWelcomeEmail(_ context.Context, email, _ string) error {
	f.sent = append(f.sent, email)
	return nil
}

type fakeAvatarStore struct {
	uploads map[string][]byte
}

func newFakeAvatarStore() *fakeAvatarStore {
	return &fakeAvatarStore{uploads: make(map[string][]byte)}
}

func (f *fakeAvatarStore) Upload(_ context.Context, key string, data []byte, _ string) (string, error) {
	f.uploads[key] = data
	return fmt.Sprintf("https://cdn.test/%s", key), nil
}

func (f *fakeAvatarStore) DeleteByURL(_ context.Context, url string) error {
	delete(f.uploads, strings.TrimPrefix(url, "https://cdn.test/"))
	return nil
}

// ========================================
// HELPERS
// ========================================

func newTestService(t *testing.T) (user.Service, *fakeUserRepo, *fakeThrottle, *fakeEmailQueue) {
	t.Helper()
	repo := newFakeUserRepo()
	throttle := newFakeThrottle()
	queue := &fakeEmailQueue{}
	svc := NewUserService(repo, jwt.NewManager("test-secret", time.Hour), throttle, queue, newFakeAvatarStore())
	return svc, repo, throttle, queue
}

func registerTestUser(t *testing.T, svc user.Service, username, email string) *user.AuthResponse {
	t.Helper()
	auth, err := svc.Register(context.Background(), user.RegisterRequest{
		Username: username,
		Email:    email,
		Password: "password123",
	})
	require.NoError(t, err)
	return auth
}

// ========================================
// TESTS
// ========================================

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user with standard role and a valid token", func(t *testing.T) {
		svc, _, _, queue := newTestService(t)

		auth := registerTestUser(t, svc, "alice", "alice@example.com")

		assert.Equal(t, "alice", auth.User.Username)
		assert.Equal(t, user.RoleUser, auth.User.Role)
		assert.NotEmpty(t, auth.Token)

		claims, err := jwt.NewManager("test-secret", time.Hour).ValidateAccessToken(auth.Token)
		require.NoError(t, err)
		assert.Equal(t, auth.User.ID.String(), claims.UserID)

		assert.Equal(t, []string{"alice@example.com"}, queue.sent)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		registerTestUser(t, svc, "alice", "alice@example.com")

		_, err := svc.Register(ctx, user.RegisterRequest{
			Username: "alice2",
			Email:    "alice@example.com",
			Password: "password123",
		})
		assert.ErrorIs(t, err, user.ErrEmailAlreadyExists)
	})

	t.Run("rejects duplicate username", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		registerTestUser(t, svc, "alice", "alice@example.com")

		_, err := svc.Register(ctx, user.RegisterRequest{
			Username: "alice",
			Email:    "other@example.com",
			Password: "password123",
		})
		assert.ErrorIs(t, err, user.ErrUsernameAlreadyExists)
	})

	t.Run("rejects invalid payloads", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)

		cases := []user.RegisterRequest{
			{Username: "al", Email: "a@example.com", Password: "password123"},
			{Username: "alice", Email: "not-an-email", Password: "password123"},
			{Username: "alice", Email: "a@example.com", Password: "short"},
			{Username: "bad name!", Email: "a@example.com", Password: "password123"},
		}
		for _, req := range cases {
			_, err := svc.Register(ctx, req)
			assert.Error(t, err)
		}
	})

	t.Run("does not store the raw password", func(t *testing.T) {
		svc, repo, _, _ := newTestService(t)
		auth := registerTestUser(t, svc, "alice", "alice@example.com")

		stored, err := repo.GetByID(ctx, auth.User.ID)
		require.NoError(t, err)
		assert.NotEqual(t, "password123", stored.PasswordHash)
		assert.NotEmpty(t, stored.PasswordHash)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds with correct credentials", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		registerTestUser(t, svc, "alice", "alice@example.com")

		auth, err := svc.Login(ctx, user.LoginRequest{Email: "alice@example.com", Password: "password123"})
		require.NoError(t, err)
		assert.Equal(t, "alice", auth.User.Username)
		assert.NotEmpty(t, auth.Token)
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		registerTestUser(t, svc, "alice", "alice@example.com")

		_, err := svc.Login(ctx, user.LoginRequest{Email: "alice@example.com", Password: "wrongpass"})
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})

	t.Run("rejects unknown email with the same error as wrong password", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)

		_, err := svc.Login(ctx, user.LoginRequest{Email: "ghost@example.com", Password: "password123"})
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})

	t.Run("locks out after repeated failures", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		registerTestUser(t, svc, "alice", "alice@example.com")

		for i := 0; i < 5; i++ {
			_, err := svc.Login(ctx, user.LoginRequest{Email: "alice@example.com", Password: "wrongpass"})
			assert.ErrorIs(t, err, user.ErrInvalidCredentials)
		}

		// Even the correct password is refused while throttled.
		_, err := svc.Login(ctx, user.LoginRequest{Email: "alice@example.com", Password: "password123"})
		assert.ErrorIs(t, err, user.ErrTooManyLoginAttempts)
	})

	t.Run("successful login resets the failure counter", func(t *testing.T) {
		svc, _, throttle, _ := newTestService(t)
		registerTestUser(t, svc, "alice", "alice@example.com")

		_, err := svc.Login(ctx, user.LoginRequest{Email: "alice@example.com", Password: "wrongpass"})
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)

		_, err = svc.Login(ctx, user.LoginRequest{Email: "alice@example.com", Password: "password123"})
		require.NoError(t, err)

		assert.Empty(t, throttle.counters)
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("owner can update bio, avatar and social links", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		auth := registerTestUser(t, svc, "alice", "alice@example.com")

		updated, err := svc.UpdateProfile(ctx, auth.User.ID, "alice", user.UpdateProfileRequest{
			Bio:    "gopher",
			Avatar: "https://example.com/a.png",
			Social: user.Social{GitHub: "alice"},
		})
		require.NoError(t, err)
		assert.Equal(t, "gopher", updated.Bio)
		assert.Equal(t, "https://example.com/a.png", updated.Avatar)
		assert.Equal(t, "alice", updated.Social.GitHub)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		registerTestUser(t, svc, "alice", "alice@example.com")
		mallory := registerTestUser(t, svc, "mallory", "mallory@example.com")

		_, err := svc.UpdateProfile(ctx, mallory.User.ID, "alice", user.UpdateProfileRequest{Bio: "pwned"})
		assert.ErrorIs(t, err, user.ErrNotProfileOwner)
	})

	t.Run("unknown username is not found", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)

		_, err := svc.UpdateProfile(ctx, uuid.New(), "ghost", user.UpdateProfileRequest{})
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})
}

func TestUploadAvatar(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the file and updates the profile", func(t *testing.T) {
		svc, repo, _, _ := newTestService(t)
		auth := registerTestUser(t, svc, "alice", "alice@example.com")

		updated, err := svc.UploadAvatar(ctx, auth.User.ID, "alice", "me.png", "image/png", []byte{1, 2, 3})
		require.NoError(t, err)
		assert.Contains(t, updated.Avatar, "https://cdn.test/avatars/alice/")

		stored, err := repo.GetByID(ctx, auth.User.ID)
		require.NoError(t, err)
		assert.Equal(t, updated.Avatar, stored.Avatar)
	})

	t.Run("replacing an avatar removes the old file", func(t *testing.T) {
		store := newFakeAvatarStore()
		svc := NewUserService(newFakeUserRepo(), jwt.NewManager("test-secret", time.Hour), nil, nil, store)
		auth := registerTestUser(t, svc, "alice", "alice@example.com")

		_, err := svc.UploadAvatar(ctx, auth.User.ID, "alice", "one.png", "image/png", []byte{1})
		require.NoError(t, err)
		_, err = svc.UploadAvatar(ctx, auth.User.ID, "alice", "two.png", "image/png", []byte{2})
		require.NoError(t, err)

		assert.Len(t, store.uploads, 1)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		registerTestUser(t, svc, "alice", "alice@example.com")
		mallory := registerTestUser(t, svc, "mallory", "mallory@example.com")

		_, err := svc.UploadAvatar(ctx, mallory.User.ID, "alice", "me.png", "image/png", []byte{1})
		assert.ErrorIs(t, err, user.ErrNotProfileOwner)
	})
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("admin cannot delete their own account", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		admin := registerTestUser(t, svc, "root", "root@example.com")

		err := svc.DeleteUser(ctx, admin.User.ID, admin.User.ID)
		assert.ErrorIs(t, err, user.ErrCannotDeleteSelf)
	})

	t.Run("deletes another account", func(t *testing.T) {
		svc, repo, _, _ := newTestService(t)
		admin := registerTestUser(t, svc, "root", "root@example.com")
		target := registerTestUser(t, svc, "alice", "alice@example.com")

		require.NoError(t, svc.DeleteUser(ctx, admin.User.ID, target.User.ID))

		_, err := repo.GetByID(ctx, target.User.ID)
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})

	t.Run("unknown target is not found", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		admin := registerTestUser(t, svc, "root", "root@example.com")

		err := svc.DeleteUser(ctx, admin.User.ID, uuid.New())
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})
}

func TestCountAndList(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestService(t)

	registerTestUser(t, svc, "alice", "alice@example.com")
	registerTestUser(t, svc, "bob", "bob@example.com")

	count, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	users, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
