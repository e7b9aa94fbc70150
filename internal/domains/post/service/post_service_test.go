package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sparkin-backend/internal/domains/post"
	"sparkin-backend/internal/domains/user"
)

// fakePostRepo keeps posts in memory and mimics the unique slug index.
type fakePostRepo struct {
	posts   map[uuid.UUID]*post.Post
	authors map[uuid.UUID]user.User
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{
		posts:   make(map[uuid.UUID]*post.Post),
		authors: make(map[uuid.UUID]user.User),
	}
}

func (r *fakePostRepo) addAuthor(username string) uuid.UUID {
	id := uuid.New()
	r.authors[id] = user.User{ID: id, Username: username, Email: username + "@example.com"}
	return id
}

func (r *fakePostRepo) withAuthor(p *post.Post) *post.PostWithAuthor {
	author := r.authors[p.AuthorID]
	return &post.PostWithAuthor{
		Post:           *p,
		AuthorUsername: author.Username,
		AuthorAvatar:   author.Avatar,
		AuthorEmail:    author.Email,
	}
}

func (r *fakePostRepo) Create(_ context.Context, p *post.Post) error {
	for _, existing := range r.posts {
		if existing.Slug == p.Slug {
			return post.ErrDuplicateSlug
		}
	}
	cp := *p
	r.posts[p.ID] = &cp
	return nil
}

func (r *fakePostRepo) GetByID(_ context.Context, id uuid.UUID) (*post.PostWithAuthor, error) {
	if p, ok := r.posts[id]; ok {
		return r.withAuthor(p), nil
	}
	return nil, post.ErrPostNotFound
}

func (r *fakePostRepo) GetBySlug(_ context.Context, slug string) (*post.PostWithAuthor, error) {
	for _, p := range r.posts {
		if p.Slug == slug {
			return r.withAuthor(p), nil
		}
	}
	return nil, post.ErrPostNotFound
}

func (r *fakePostRepo) List(_ context.Context, authorUsername string, page, limit int) ([]post.PostWithAuthor, int, error) {
	matching := make([]post.PostWithAuthor, 0)
	for _, p := range r.posts {
		pa := r.withAuthor(p)
		if authorUsername != "" && pa.AuthorUsername != authorUsername {
			continue
		}
		matching = append(matching, *pa)
	}
	sort.Slice(matching, func(i, j int) bool {
		return matching[i].CreatedAt.After(matching[j].CreatedAt)
	})

	total := len(matching)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return matching[start:end], total, nil
}

func (r *fakePostRepo) ListAll(_ context.Context) ([]post.PostWithAuthor, error) {
	out := make([]post.PostWithAuthor, 0, len(r.posts))
	for _, p := range r.posts {
		out = append(out, *r.withAuthor(p))
	}
	return out, nil
}

func (r *fakePostRepo) Update(_ context.Context, p *post.Post) error {
	existing, ok := r.posts[p.ID]
	if !ok {
		return post.ErrPostNotFound
	}
	for _, other := range r.posts {
		if other.ID != p.ID && other.Slug == p.Slug {
			return post.ErrDuplicateSlug
		}
	}
	*existing = *p
	return nil
}

func (r *fakePostRepo) DeleteCascade(_ context.Context, id uuid.UUID) error {
	if _, ok := r.posts[id]; !ok {
		return post.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *fakePostRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := r.posts[id]
	return ok, nil
}

func newTestPostService(t *testing.T) (post.Service, *fakePostRepo) {
	t.Helper()
	repo := newFakePostRepo()
	return NewPostService(repo), repo
}

func strPtr(s string) *string { return &s }

func TestCreatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("derives the slug from the title", func(t *testing.T) {
		svc, repo := newTestPostService(t)
		author := repo.addAuthor("alice")

		created, err := svc.Create(ctx, author, post.CreatePostRequest{
			Title:   "Hello, World! v2",
			Content: "body",
			Tags:    []string{" go ", "", "web"},
		})
		require.NoError(t, err)

		assert.Equal(t, "hello-world-v2", created.Slug)
		assert.Equal(t, []string{"go", "web"}, created.Tags)
		assert.Equal(t, "alice", created.Author.Username)
		assert.Empty(t, created.Author.Email, "public view must not leak the email")
	})

	t.Run("rejects a colliding slug", func(t *testing.T) {
		svc, repo := newTestPostService(t)
		author := repo.addAuthor("alice")

		_, err := svc.Create(ctx, author, post.CreatePostRequest{Title: "Same Title", Content: "a"})
		require.NoError(t, err)

		_, err = svc.Create(ctx, author, post.CreatePostRequest{Title: "Same title", Content: "b"})
		assert.ErrorIs(t, err, post.ErrDuplicateSlug)
	})

	t.Run("rejects a title that produces no slug", func(t *testing.T) {
		svc, repo := newTestPostService(t)
		author := repo.addAuthor("alice")

		_, err := svc.Create(ctx, author, post.CreatePostRequest{Title: "!!!", Content: "body"})
		assert.ErrorIs(t, err, post.ErrInvalidSlug)
	})

	t.Run("rejects empty title or content", func(t *testing.T) {
		svc, repo := newTestPostService(t)
		author := repo.addAuthor("alice")

		_, err := svc.Create(ctx, author, post.CreatePostRequest{Title: "", Content: "body"})
		assert.Error(t, err)

		_, err = svc.Create(ctx, author, post.CreatePostRequest{Title: "Title", Content: ""})
		assert.Error(t, err)
	})
}

func TestUpdatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("title change regenerates the slug", func(t *testing.T) {
		svc, repo := newTestPostService(t)
		author := repo.addAuthor("alice")

		created, err := svc.Create(ctx, author, post.CreatePostRequest{Title: "Old Title", Content: "body"})
		require.NoError(t, err)

		updated, err := svc.UpdateBySlug(ctx, author, created.Slug, post.UpdatePostRequest{
			Title: strPtr("New Title"),
		})
		require.NoError(t, err)
		assert.Equal(t, "new-title", updated.Slug)
		assert.Equal(t, "body", updated.Content)
	})

	t.Run("new slug colliding with another post fails", func(t *testing.T) {
		svc, repo := newTestPostService(t)
		author := repo.addAuthor("alice")

		_, err := svc.Create(ctx, author, post.CreatePostRequest{Title: "First", Content: "a"})
		require.NoError(t, err)
		second, err := svc.Create(ctx, author, post.CreatePostRequest{Title: "Second", Content: "b"})
		require.NoError(t, err)

		_, err = svc.UpdateBySlug(ctx, author, second.Slug, post.UpdatePostRequest{Title: strPtr("First")})
		assert.ErrorIs(t, err, post.ErrDuplicateSlug)
	})

	t.Run("only the author may edit", func(t *testing.T) {
		svc, repo := newTestPostService(t)
		author := repo.addAuthor("alice")
		stranger := repo.addAuthor("mallory")

		created, err := svc.Create(ctx, author, post.CreatePostRequest{Title: "Mine", Content: "body"})
		require.NoError(t, err)

		_, err = svc.UpdateBySlug(ctx, stranger, created.Slug, post.UpdatePostRequest{Content: strPtr("theirs")})
		assert.ErrorIs(t, err, post.ErrNotAuthor)
	})

	t.Run("unknown slug is not found", func(t *testing.T) {
		svc, repo := newTestPostService(t)
		author := repo.addAuthor("alice")

		_, err := svc.UpdateBySlug(ctx, author, "missing", post.UpdatePostRequest{Content: strPtr("x")})
		assert.ErrorIs(t, err, post.ErrPostNotFound)
	})
}

func TestDeletePost(t *testing.T) {
	ctx := context.Background()

	t.Run("author deletes own post", func(t *testing.T) {
		svc, repo := newTestPostService(t)
		author := repo.addAuthor("alice")

		created, err := svc.Create(ctx, author, post.CreatePostRequest{Title: "Mine", Content: "body"})
		require.NoError(t, err)

		require.NoError(t, svc.DeleteBySlug(ctx, author, user.RoleUser, created.Slug))

		_, err = svc.GetBySlug(ctx, created.Slug)
		assert.ErrorIs(t, err, post.ErrPostNotFound)
	})

	t.Run("admin deletes any post", func(t *testing.T) {
		svc, repo := newTestPostService(t)
		author := repo.addAuthor("alice")
		admin := repo.addAuthor("root")

		created, err := svc.Create(ctx, author, post.CreatePostRequest{Title: "Mine", Content: "body"})
		require.NoError(t, err)

		require.NoError(t, svc.DeleteBySlug(ctx, admin, user.RoleAdmin, created.Slug))
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		svc, repo := newTestPostService(t)
		author := repo.addAuthor("alice")
		stranger := repo.addAuthor("mallory")

		created, err := svc.Create(ctx, author, post.CreatePostRequest{Title: "Mine", Content: "body"})
		require.NoError(t, err)

		err = svc.DeleteBySlug(ctx, stranger, user.RoleUser, created.Slug)
		assert.ErrorIs(t, err, post.ErrNotAuthor)
	})
}

func TestListPosts(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestPostService(t)
	alice := repo.addAuthor("alice")
	bob := repo.addAuthor("bob")

	titles := []struct {
		author uuid.UUID
		title  string
	}{
		{alice, "Alpha"},
		{bob, "Beta"},
		{alice, "Gamma"},
	}
	for _, tc := range titles {
		_, err := svc.Create(ctx, tc.author, post.CreatePostRequest{Title: tc.title, Content: "body"})
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
	}

	t.Run("returns everything newest first", func(t *testing.T) {
		posts, total, err := svc.List(ctx, post.ListQuery{Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, posts, 3)
		assert.Equal(t, "Gamma", posts[0].Title)
	})

	t.Run("filters by author", func(t *testing.T) {
		posts, total, err := svc.List(ctx, post.ListQuery{Author: "alice", Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		for _, p := range posts {
			assert.Equal(t, "alice", p.Author.Username)
		}
	})

	t.Run("paginates", func(t *testing.T) {
		posts, total, err := svc.List(ctx, post.ListQuery{Page: 2, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Len(t, posts, 1)
	})
}

func TestAdminPostOperations(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestPostService(t)
	author := repo.addAuthor("alice")

	created, err := svc.Create(ctx, author, post.CreatePostRequest{Title: "Seen by admin", Content: "body"})
	require.NoError(t, err)

	t.Run("admin list exposes author email", func(t *testing.T) {
		posts, err := svc.AdminList(ctx)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "alice@example.com", posts[0].Author.Email)
	})

	t.Run("admin delete by id", func(t *testing.T) {
		require.NoError(t, svc.AdminDeleteByID(ctx, created.ID))
		assert.ErrorIs(t, svc.AdminDeleteByID(ctx, created.ID), post.ErrPostNotFound)
	})
}
