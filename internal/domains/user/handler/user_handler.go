package handler

import (
	"errors"
	"io"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"sparkin-backend/internal/domains/post"
	"sparkin-backend/internal/domains/user"
	"sparkin-backend/internal/shared/middleware"
	"sparkin-backend/internal/shared/response"
)

const maxAvatarSize = 5 << 20 // 5 MiB

type UserHandler struct {
	service     user.Service
	postService post.Service
}

func NewUserHandler(service user.Service, postService post.Service) *UserHandler {
	return &UserHandler{
		service:     service,
		postService: postService,
	}
}

// Register - POST /auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	auth, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, auth)
}

// Login - POST /auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	auth, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, auth)
}

// Count - GET /auth/count
func (h *UserHandler) Count(c *gin.Context) {
	count, err := h.service.Count(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"count": count})
}

// List - GET /users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, users)
}

// GetProfile - GET /users/:username
// Returns the profile together with the user's recent posts.
func (h *UserHandler) GetProfile(c *gin.Context) {
	username := c.Param("username")

	profile, err := h.service.GetByUsername(c.Request.Context(), username)
	if err != nil {
		h.handleError(c, err)
		return
	}

	q := post.ListQuery{Author: username}
	q.Normalize()
	posts, _, err := h.postService.List(c.Request.Context(), q)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":  profile,
		"posts": posts,
	})
}

// UpdateProfile - PUT /users/:username
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	actorID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req user.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	updated, err := h.service.UpdateProfile(c.Request.Context(), actorID, c.Param("username"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, updated)
}

// UploadAvatar - POST /users/:username/avatar
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	actorID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	file, header, err := c.Request.FormFile("avatar")
	if err != nil {
		response.BadRequest(c, "avatar file is required")
		return
	}
	defer file.Close()

	if header.Size > maxAvatarSize {
		response.BadRequest(c, "avatar exceeds the 5MB limit")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(c, "failed to read avatar file")
		return
	}

	updated, err := h.service.UploadAvatar(
		c.Request.Context(),
		actorID,
		c.Param("username"),
		header.Filename,
		header.Header.Get("Content-Type"),
		data,
	)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, updated)
}

// AdminDelete - DELETE /admin/users/:id
func (h *UserHandler) AdminDelete(c *gin.Context) {
	actorID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), actorID, targetID); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *UserHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", vErrs)
		return
	}

	switch {
	case errors.Is(err, user.ErrUserNotFound):
		response.NotFound(c, "user not found")
	case errors.Is(err, user.ErrEmailAlreadyExists):
		response.Conflict(c, "email is already registered")
	case errors.Is(err, user.ErrUsernameAlreadyExists):
		response.Conflict(c, "username is already taken")
	case errors.Is(err, user.ErrInvalidCredentials):
		response.Unauthorized(c, "invalid email or password")
	case errors.Is(err, user.ErrTooManyLoginAttempts):
		response.TooManyRequests(c, "too many failed login attempts, try again later")
	case errors.Is(err, user.ErrNotProfileOwner):
		response.Forbidden(c, "you can only modify your own profile")
	case errors.Is(err, user.ErrCannotDeleteSelf):
		response.Forbidden(c, "administrators cannot delete their own account")
	default:
		response.InternalServerError(c, "internal server error")
	}
}
