package handler

import (
	"errors"
	"net/http"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"sparkin-backend/internal/domains/post"
	"sparkin-backend/internal/shared/middleware"
	"sparkin-backend/internal/shared/response"
)

type PostHandler struct {
	service post.Service
}

func NewPostHandler(service post.Service) *PostHandler {
	return &PostHandler{service: service}
}

// List - GET /posts
// Query params: author, page, limit
func (h *PostHandler) List(c *gin.Context) {
	q := post.ListQuery{Author: c.Query("author")}
	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil {
			q.Page = p
		}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil {
			q.Limit = l
		}
	}
	q.Normalize()

	posts, total, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		h.handleError(c, err)
		return
	}

	totalPages := (total + q.Limit - 1) / q.Limit
	response.SuccessWithMeta(c, http.StatusOK, posts, &response.Meta{
		Page:       q.Page,
		Limit:      q.Limit,
		Total:      total,
		TotalPages: totalPages,
	})
}

// Create - POST /posts
func (h *PostHandler) Create(c *gin.Context) {
	actorID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req post.CreatePostRequest
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

// GetBySlug - GET /posts/slug/:slug
func (h *PostHandler) GetBySlug(c *gin.Context) {
	p, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, p)
}

// Update - PUT /posts/:slug
func (h *PostHandler) Update(c *gin.Context) {
	actorID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req post.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	updated, err := h.service.UpdateBySlug(c.Request.Context(), actorID, c.Param("slug"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, updated)
}

// Delete - DELETE /posts/:slug
func (h *PostHandler) Delete(c *gin.Context) {
	actorID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	err := h.service.DeleteBySlug(c.Request.Context(), actorID, c.GetString("role"), c.Param("slug"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// AdminList - GET /admin/posts
func (h *PostHandler) AdminList(c *gin.Context) {
	posts, err := h.service.AdminList(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, posts)
}

// AdminDeleteBySlug - DELETE /admin/posts/slug/:slug
func (h *PostHandler) AdminDeleteBySlug(c *gin.Context) {
	actorID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	err := h.service.DeleteBySlug(c.Request.Context(), actorID, c.GetString("role"), c.Param("slug"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// AdminDeleteByID - DELETE /admin/posts/:id
func (h *PostHandler) AdminDeleteByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}

	if err := h.service.AdminDeleteByID(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *PostHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", vErrs)
		return
	}

	switch {
	case errors.Is(err, post.ErrPostNotFound):
		response.NotFound(c, "post not found")
	case errors.Is(err, post.ErrDuplicateSlug):
		response.Conflict(c, "a post with this title already exists")
	case errors.Is(err, post.ErrInvalidSlug):
		response.BadRequest(c, "title does not produce a usable slug")
	case errors.Is(err, post.ErrNotAuthor):
		response.Forbidden(c, "you are not the author of this post")
	default:
		response.InternalServerError(c, "internal server error")
	}
}
