package main

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"sparkin-backend/internal/shared"
)

type asynqServer struct {
	*asynq.Server
}

func setupAsynqServer(cfg *WorkerConfig, handlers *HandlerRegistry) *asynqServer {
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		},
		asynq.Config{
			Concurrency: cfg.Concurrency,
			Queues: map[string]int{
				shared.QueueEmail:       5,
				shared.QueueDefault:     3,
				shared.QueueMaintenance: 1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Error().Err(err).Str("type", task.Type()).Msg("Task failed")
			}),
		},
	)

	go func() {
		log.Info().Msg("Worker starting")
		if err := srv.Run(mux); err != nil {
			log.Fatal().Err(err).Msg("Worker failed")
		}
	}()

	return &asynqServer{Server: srv}
}

func (s *asynqServer) Shutdown() {
	s.Server.Shutdown()
}
