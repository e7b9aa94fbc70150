package handler

import (
	"errors"
	"net/http"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"sparkin-backend/internal/domains/comment"
	"sparkin-backend/internal/domains/post"
	"sparkin-backend/internal/shared/middleware"
	"sparkin-backend/internal/shared/response"
)

type CommentHandler struct {
	service comment.Service
}

func NewCommentHandler(service comment.Service) *CommentHandler {
	return &CommentHandler{service: service}
}

// ListForPost - GET /comments/post/:postId
// Query params: page, limit
func (h *CommentHandler) ListForPost(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("postId"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}

	page := 1
	limit := 10
	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 50 {
			limit = l
		}
	}

	comments, total, err := h.service.ListForPost(c.Request.Context(), postID, page, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	totalPages := (total + limit - 1) / limit
	response.SuccessWithMeta(c, http.StatusOK, comments, &response.Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	})
}

// Create - POST /comments
func (h *CommentHandler) Create(c *gin.Context) {
	actorID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req comment.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	created, err := h.service.Create(c.Request.Context(), actorID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, created)
}

// Update - PUT /comments/:id
func (h *CommentHandler) Update(c *gin.Context) {
	actorID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid comment id")
		return
	}

	var req comment.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	updated, err := h.service.Update(c.Request.Context(), actorID, id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, updated)
}

// Delete - DELETE /comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	actorID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid comment id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), actorID, c.GetString("role"), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// ToggleLike - POST /comments/:id/like
func (h *CommentHandler) ToggleLike(c *gin.Context) {
	actorID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid comment id")
		return
	}

	result, err := h.service.ToggleLike(c.Request.Context(), actorID, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *CommentHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", vErrs)
		return
	}

	switch {
	case errors.Is(err, comment.ErrCommentNotFound):
		response.NotFound(c, "comment not found")
	case errors.Is(err, comment.ErrParentNotFound):
		response.NotFound(c, "parent comment not found")
	case errors.Is(err, post.ErrPostNotFound):
		response.NotFound(c, "post not found")
	case errors.Is(err, comment.ErrParentMismatch):
		response.BadRequest(c, "parent comment belongs to a different post")
	case errors.Is(err, comment.ErrReplyDepth):
		response.BadRequest(c, "replies to replies are not supported")
	case errors.Is(err, comment.ErrNotAuthor):
		response.Forbidden(c, "you are not the author of this comment")
	default:
		response.InternalServerError(c, "internal server error")
	}
}
