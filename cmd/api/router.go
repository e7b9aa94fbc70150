package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sparkin-backend/internal/shared/middleware"
	"sparkin-backend/internal/shared/response"
	"sparkin-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.CORS.AllowedOrigins),
	)

	auth := middleware.AuthMiddleware(c.JWTManager)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupPostRoutes(v1, c, auth)
		setupCommentRoutes(v1, c, auth)
		setupUserRoutes(v1, c, auth)
		setupAdminRoutes(v1, c, auth)
	}

	return router
}

func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.GET("/count", c.UserHandler.Count)
	}
}

func setupPostRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	posts := v1.Group("/posts")
	{
		posts.GET("", c.PostHandler.List)
		posts.GET("/slug/:slug", c.PostHandler.GetBySlug)

		posts.POST("", auth, c.PostHandler.Create)
		posts.PUT("/:slug", auth, c.PostHandler.Update)
		posts.DELETE("/:slug", auth, c.PostHandler.Delete)
	}
}

func setupCommentRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	comments := v1.Group("/comments")
	{
		comments.GET("/post/:postId", c.CommentHandler.ListForPost)

		comments.POST("", auth, c.CommentHandler.Create)
		comments.PUT("/:id", auth, c.CommentHandler.Update)
		comments.DELETE("/:id", auth, c.CommentHandler.Delete)
		comments.POST("/:id/like", auth, c.CommentHandler.ToggleLike)
	}
}

func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	users := v1.Group("/users")
	{
		users.GET("", c.UserHandler.List)
		users.GET("/:username", c.UserHandler.GetProfile)
		users.PUT("/:username", auth, c.UserHandler.UpdateProfile)
		users.POST("/:username/avatar", auth, c.UserHandler.UploadAvatar)

		users.GET("/:username/bookmarks", c.BookmarkHandler.List)
		users.GET("/:username/bookmarks/:postId", c.BookmarkHandler.Exists)
		users.POST("/:username/bookmarks", auth, c.BookmarkHandler.Create)
		users.DELETE("/:username/bookmarks/:postId", auth, c.BookmarkHandler.Delete)
	}
}

func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	admin := v1.Group("/admin")
	admin.Use(auth, middleware.AdminMiddleware())
	{
		admin.GET("/posts", c.PostHandler.AdminList)
		admin.DELETE("/posts/slug/:slug", c.PostHandler.AdminDeleteBySlug)
		admin.DELETE("/posts/:id", c.PostHandler.AdminDeleteByID)
		admin.DELETE("/users/:id", c.UserHandler.AdminDelete)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if err := c.DB.Ping(ctx.Request.Context()); err != nil {
			response.ErrorResponse(ctx, http.StatusServiceUnavailable, "UNHEALTHY", "database unreachable")
			return
		}

		response.Success(ctx, http.StatusOK, gin.H{
			"status":  "ok",
			"version": c.Config.App.Version,
		})
	}
}
