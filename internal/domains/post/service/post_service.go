package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"sparkin-backend/internal/domains/post"
	"sparkin-backend/internal/shared/utils"
)

type postService struct {
	repo post.Repository
}

func NewPostService(repo post.Repository) post.Service {
	return &postService{repo: repo}
}

func (s *postService) Create(ctx context.Context, actorID uuid.UUID, req post.CreatePostRequest) (*post.PostDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	slug := utils.GenerateSlug(req.Title)
	if slug == "" {
		return nil, post.ErrInvalidSlug
	}

	now := time.Now()
	p := &post.Post{
		ID:        uuid.New(),
		Title:     req.Title,
		Slug:      slug,
		Content:   req.Content,
		Tags:      normalizeTags(req.Tags),
		AuthorID:  actorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// The unique slug index turns a concurrent duplicate into ErrDuplicateSlug.
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	created, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	dto := created.ToDTO()
	return &dto, nil
}

func (s *postService) GetBySlug(ctx context.Context, slug string) (*post.PostDTO, error) {
	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	dto := p.ToDTO()
	return &dto, nil
}

func (s *postService) List(ctx context.Context, q post.ListQuery) ([]post.PostDTO, int, error) {
	q.Normalize()

	posts, total, err := s.repo.List(ctx, q.Author, q.Page, q.Limit)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]post.PostDTO, 0, len(posts))
	for i := range posts {
		dtos = append(dtos, posts[i].ToDTO())
	}

	return dtos, total, nil
}

func (s *postService) UpdateBySlug(ctx context.Context, actorID uuid.UUID, slug string, req post.UpdatePostRequest) (*post.PostDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	// Editing stays author-only; administrators moderate via delete.
	if existing.AuthorID != actorID {
		return nil, post.ErrNotAuthor
	}

	updated := existing.Post
	if req.Title != nil && *req.Title != updated.Title {
		updated.Title = *req.Title
		newSlug := utils.GenerateSlug(*req.Title)
		if newSlug == "" {
			return nil, post.ErrInvalidSlug
		}
		updated.Slug = newSlug
	}
	if req.Content != nil {
		updated.Content = *req.Content
	}
	if req.Tags != nil {
		updated.Tags = normalizeTags(*req.Tags)
	}
	updated.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, err
	}

	result, err := s.repo.GetBySlug(ctx, updated.Slug)
	if err != nil {
		return nil, err
	}

	dto := result.ToDTO()
	return &dto, nil
}

func (s *postService) DeleteBySlug(ctx context.Context, actorID uuid.UUID, actorRole, slug string) error {
	existing, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}

	if existing.AuthorID != actorID && actorRole != "admin" {
		return post.ErrNotAuthor
	}

	return s.repo.DeleteCascade(ctx, existing.ID)
}

func (s *postService) AdminList(ctx context.Context) ([]post.PostDTO, error) {
	posts, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]post.PostDTO, 0, len(posts))
	for i := range posts {
		dtos = append(dtos, posts[i].ToAdminDTO())
	}

	return dtos, nil
}

func (s *postService) AdminDeleteByID(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	return s.repo.DeleteCascade(ctx, id)
}

// normalizeTags trims whitespace and drops empties while preserving order.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if trimmed := strings.TrimSpace(t); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
