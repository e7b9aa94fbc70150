package handler

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"sparkin-backend/internal/domains/bookmark"
	"sparkin-backend/internal/domains/post"
	"sparkin-backend/internal/domains/user"
	"sparkin-backend/internal/shared/middleware"
	"sparkin-backend/internal/shared/response"
)

type BookmarkHandler struct {
	service bookmark.Service
}

func NewBookmarkHandler(service bookmark.Service) *BookmarkHandler {
	return &BookmarkHandler{service: service}
}

// List - GET /users/:username/bookmarks
func (h *BookmarkHandler) List(c *gin.Context) {
	bookmarks, err := h.service.List(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, bookmarks)
}

// Create - POST /users/:username/bookmarks
func (h *BookmarkHandler) Create(c *gin.Context) {
	actorID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req bookmark.CreateBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	created, err := h.service.Create(c.Request.Context(), actorID, c.Param("username"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, created)
}

// Delete - DELETE /users/:username/bookmarks/:postId
func (h *BookmarkHandler) Delete(c *gin.Context) {
	actorID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	postID, err := uuid.Parse(c.Param("postId"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), actorID, c.Param("username"), postID); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// Exists - GET /users/:username/bookmarks/:postId
func (h *BookmarkHandler) Exists(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("postId"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}

	exists, err := h.service.Exists(c.Request.Context(), c.Param("username"), postID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, bookmark.ExistsResult{Bookmarked: exists})
}

func (h *BookmarkHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", vErrs)
		return
	}

	switch {
	case errors.Is(err, bookmark.ErrBookmarkNotFound):
		response.NotFound(c, "bookmark not found")
	case errors.Is(err, bookmark.ErrAlreadyBookmarked):
		response.Conflict(c, "post is already bookmarked")
	case errors.Is(err, bookmark.ErrNotOwner):
		response.Forbidden(c, "you can only manage your own bookmarks")
	case errors.Is(err, user.ErrUserNotFound):
		response.NotFound(c, "user not found")
	case errors.Is(err, post.ErrPostNotFound):
		response.NotFound(c, "post not found")
	default:
		response.InternalServerError(c, "internal server error")
	}
}
