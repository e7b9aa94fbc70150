package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"sparkin-backend/internal/domains/comment"
	"sparkin-backend/internal/domains/post"
	"sparkin-backend/pkg/logger"
)

type commentService struct {
	repo     comment.Repository
	postRepo post.Repository
}

func NewCommentService(repo comment.Repository, postRepo post.Repository) comment.Service {
	return &commentService{repo: repo, postRepo: postRepo}
}

func (s *commentService) ListForPost(ctx context.Context, postID uuid.UUID, page, limit int) ([]comment.CommentDTO, int, error) {
	comments, total, err := s.repo.ListTopLevel(ctx, postID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]comment.CommentDTO, 0, len(comments))
	for i := range comments {
		dtos = append(dtos, comments[i].ToDTO())
	}

	return dtos, total, nil
}

func (s *commentService) Create(ctx context.Context, actorID uuid.UUID, req comment.CreateCommentRequest) (*comment.CommentDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.postRepo.Exists(ctx, req.PostID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, post.ErrPostNotFound
	}

	if req.ParentCommentID != nil {
		parent, err := s.repo.GetByID(ctx, *req.ParentCommentID)
		if err != nil {
			if errors.Is(err, comment.ErrCommentNotFound) {
				return nil, comment.ErrParentNotFound
			}
			return nil, err
		}
		if parent.PostID != req.PostID {
			return nil, comment.ErrParentMismatch
		}
		// Threads stay one level deep.
		if parent.IsReply() {
			return nil, comment.ErrReplyDepth
		}
	}

	now := time.Now()
	c := &comment.Comment{
		ID:        uuid.New(),
		PostID:    req.PostID,
		AuthorID:  actorID,
		ParentID:  req.ParentCommentID,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	logger.Info("comment created", map[string]interface{}{
		"comment_id": c.ID.String(),
		"post_id":    c.PostID.String(),
	})

	created, err := s.repo.GetWithAuthor(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	dto := created.ToDTO()
	return &dto, nil
}

func (s *commentService) Update(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req comment.UpdateCommentRequest) (*comment.CommentDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.AuthorID != actorID {
		return nil, comment.ErrNotAuthor
	}

	if err := s.repo.Update(ctx, id, req.Content, time.Now()); err != nil {
		return nil, err
	}

	updated, err := s.repo.GetWithAuthor(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := updated.ToDTO()
	return &dto, nil
}

func (s *commentService) Delete(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if existing.AuthorID != actorID && actorRole != "admin" {
		return comment.ErrNotAuthor
	}

	if err := s.repo.DeleteCascade(ctx, id); err != nil {
		return err
	}

	logger.Info("comment deleted", map[string]interface{}{
		"comment_id": id.String(),
		"actor_id":   actorID.String(),
	})

	return nil
}

func (s *commentService) ToggleLike(ctx context.Context, actorID, id uuid.UUID) (*comment.LikeResult, error) {
	// Confirm existence first so a like on a vanished comment reads as 404,
	// not a silent insert of an orphan row.
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	liked, count, err := s.repo.ToggleLike(ctx, id, actorID)
	if err != nil {
		return nil, err
	}

	return &comment.LikeResult{Liked: liked, LikesCount: count}, nil
}
