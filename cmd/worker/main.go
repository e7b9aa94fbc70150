package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"sparkin-backend/internal/infrastructure/queue"
	"sparkin-backend/pkg/container"
	"sparkin-backend/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using system environment variables")
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	logger.Init(env)

	c, err := container.NewContainer()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize container")
	}
	defer c.Cleanup()

	cfg := loadWorkerConfig()

	handlers := initializeHandlers(c)
	srv := setupAsynqServer(cfg, handlers)

	scheduler := queue.NewScheduler(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := scheduler.RegisterMaintenanceJobs(); err != nil {
		log.Fatal().Err(err).Msg("Failed to register scheduled jobs")
	}
	if err := scheduler.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start scheduler")
	}

	waitForShutdown(srv, scheduler)
}

func waitForShutdown(srv *asynqServer, scheduler *queue.Scheduler) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Worker shutting down")
	scheduler.Shutdown()
	srv.Shutdown()
	log.Info().Msg("Worker stopped")
}
