package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"sparkin-backend/internal/domains/bookmark"
	"sparkin-backend/internal/domains/post"
	"sparkin-backend/internal/domains/user"
	"sparkin-backend/pkg/logger"
)

type bookmarkService struct {
	repo     bookmark.Repository
	userRepo user.Repository
	postRepo post.Repository
}

func NewBookmarkService(repo bookmark.Repository, userRepo user.Repository, postRepo post.Repository) bookmark.Service {
	return &bookmarkService{repo: repo, userRepo: userRepo, postRepo: postRepo}
}

func (s *bookmarkService) List(ctx context.Context, username string) ([]bookmark.BookmarkDTO, error) {
	u, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	bookmarks, err := s.repo.ListByUser(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	dtos := make([]bookmark.BookmarkDTO, 0, len(bookmarks))
	for i := range bookmarks {
		dtos = append(dtos, bookmarks[i].ToDTO())
	}

	return dtos, nil
}

func (s *bookmarkService) Create(ctx context.Context, actorID uuid.UUID, username string, req bookmark.CreateBookmarkRequest) (*bookmark.BookmarkDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u.ID != actorID {
		return nil, bookmark.ErrNotOwner
	}

	p, err := s.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	b := &bookmark.Bookmark{
		UserID:    u.ID,
		PostID:    p.ID,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	logger.Info("bookmark created", map[string]interface{}{
		"user_id": u.ID.String(),
		"post_id": p.ID.String(),
	})

	dto := bookmark.BookmarkDTO{
		PostID: p.ID,
		Post: bookmark.PostSummary{
			Title:     p.Title,
			Slug:      p.Slug,
			CreatedAt: p.CreatedAt,
		},
		CreatedAt: b.CreatedAt,
	}
	return &dto, nil
}

func (s *bookmarkService) Delete(ctx context.Context, actorID uuid.UUID, username string, postID uuid.UUID) error {
	u, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if u.ID != actorID {
		return bookmark.ErrNotOwner
	}

	return s.repo.Delete(ctx, u.ID, postID)
}

func (s *bookmarkService) Exists(ctx context.Context, username string, postID uuid.UUID) (bool, error) {
	u, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		// An unknown user simply has no bookmarks.
		if errors.Is(err, user.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}

	return s.repo.Exists(ctx, u.ID, postID)
}
