package main

import (
	"github.com/hibiken/asynq"

	"sparkin-backend/internal/infrastructure/queue/handlers"
	"sparkin-backend/internal/shared"
	"sparkin-backend/pkg/container"
)

// HandlerRegistry holds all task handlers the worker serves.
type HandlerRegistry struct {
	welcomeEmail  *handlers.WelcomeEmailHandler
	orphanCleanup *handlers.OrphanCleanupHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		welcomeEmail:  handlers.NewWelcomeEmailHandler(c.EmailService),
		orphanCleanup: handlers.NewOrphanCleanupHandler(c.DB.Pool),
	}
}

func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeWelcomeEmail, h.welcomeEmail.ProcessTask)
	mux.HandleFunc(shared.TypeOrphanCleanup, h.orphanCleanup.ProcessTask)
}
