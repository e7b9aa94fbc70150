package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"sparkin-backend/internal/config"
	infraCache "sparkin-backend/internal/infrastructure/cache"
	"sparkin-backend/internal/infrastructure/database"
	"sparkin-backend/internal/infrastructure/email"
	"sparkin-backend/internal/infrastructure/queue"
	"sparkin-backend/internal/infrastructure/storage"
	"sparkin-backend/pkg/cache"
	"sparkin-backend/pkg/jwt"

	"sparkin-backend/internal/domains/bookmark"
	bookmarkHandler "sparkin-backend/internal/domains/bookmark/handler"
	bookmarkRepo "sparkin-backend/internal/domains/bookmark/repository"
	bookmarkService "sparkin-backend/internal/domains/bookmark/service"
	"sparkin-backend/internal/domains/comment"
	commentHandler "sparkin-backend/internal/domains/comment/handler"
	commentRepo "sparkin-backend/internal/domains/comment/repository"
	commentService "sparkin-backend/internal/domains/comment/service"
	"sparkin-backend/internal/domains/post"
	postHandler "sparkin-backend/internal/domains/post/handler"
	postRepo "sparkin-backend/internal/domains/post/repository"
	postService "sparkin-backend/internal/domains/post/service"
	"sparkin-backend/internal/domains/user"
	userHandler "sparkin-backend/internal/domains/user/handler"
	userRepo "sparkin-backend/internal/domains/user/repository"
	userService "sparkin-backend/internal/domains/user/service"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton built once at startup, in dependency order: config, then
// infrastructure, then repositories, services and handlers.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager

	EmailService email.EmailService
	Storage      *storage.MinIOStorage
	QueueClient  *queue.Client

	UserRepo     user.Repository
	PostRepo     post.Repository
	CommentRepo  comment.Repository
	BookmarkRepo bookmark.Repository

	UserService     user.Service
	PostService     post.Service
	CommentService  comment.Service
	BookmarkService bookmark.Service

	UserHandler     *userHandler.UserHandler
	PostHandler     *postHandler.PostHandler
	CommentHandler  *commentHandler.CommentHandler
	BookmarkHandler *bookmarkHandler.BookmarkHandler
}

func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("environment", cfg.App.Environment).Msg("[Container] Config loaded")

	db := database.NewPostgresDB(cfg.Database)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	redisClient := infraCache.NewRedisClient(cfg.Redis)
	if err := redisClient.Ping(context.Background()); err != nil {
		// Login throttling degrades gracefully without Redis.
		log.Warn().Err(err).Msg("[Container] Redis unreachable, login throttling disabled")
	} else {
		c.Cache = redisClient
	}

	c.JWTManager = jwt.NewManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
	)

	c.EmailService = email.NewSMTPEmailService(cfg.Email.SMTPHost, cfg.Email.SMTPPort, cfg.Email.From)
	c.QueueClient = queue.NewClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)

	minioStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		// Avatar uploads degrade gracefully without object storage.
		log.Warn().Err(err).Msg("[Container] MinIO unreachable, avatar uploads disabled")
	} else {
		c.Storage = minioStorage
	}

	c.UserRepo = userRepo.NewPostgresRepository(db.Pool)
	c.PostRepo = postRepo.NewPostgresRepository(db.Pool)
	c.CommentRepo = commentRepo.NewPostgresRepository(db.Pool)
	c.BookmarkRepo = bookmarkRepo.NewPostgresRepository(db.Pool)

	var avatarStore userService.AvatarStore
	if c.Storage != nil {
		avatarStore = c.Storage
	}
	var emailQueue userService.EmailQueue
	if c.QueueClient != nil {
		emailQueue = c.QueueClient
	}

	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager, c.Cache, emailQueue, avatarStore)
	c.PostService = postService.NewPostService(c.PostRepo)
	c.CommentService = commentService.NewCommentService(c.CommentRepo, c.PostRepo)
	c.BookmarkService = bookmarkService.NewBookmarkService(c.BookmarkRepo, c.UserRepo, c.PostRepo)

	c.UserHandler = userHandler.NewUserHandler(c.UserService, c.PostService)
	c.PostHandler = postHandler.NewPostHandler(c.PostService)
	c.CommentHandler = commentHandler.NewCommentHandler(c.CommentService)
	c.BookmarkHandler = bookmarkHandler.NewBookmarkHandler(c.BookmarkService)

	log.Info().Msg("[Container] Dependency graph initialized")
	return c, nil
}

// Cleanup releases infrastructure resources in reverse order.
func (c *Container) Cleanup() {
	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			log.Error().Err(err).Msg("[Container] Failed to close queue client")
		}
	}

	if redisClient, ok := c.Cache.(*infraCache.RedisClient); ok && redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error().Err(err).Msg("[Container] Failed to close Redis client")
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	log.Info().Msg("[Container] Cleanup complete")
}
