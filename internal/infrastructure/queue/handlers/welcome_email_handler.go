package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"sparkin-backend/internal/infrastructure/email"
	"sparkin-backend/internal/infrastructure/queue"
)

type WelcomeEmailHandler struct {
	emailService email.EmailService
}

func NewWelcomeEmailHandler(emailService email.EmailService) *WelcomeEmailHandler {
	return &WelcomeEmailHandler{
		emailService: emailService,
	}
}

func (h *WelcomeEmailHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload queue.WelcomeEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal WelcomeEmail payload")
		// A malformed payload will never become valid on retry.
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	log.Info().
		Str("email", payload.Email).
		Msg("Processing welcome email")

	data := email.WelcomeEmailData{
		Email:    payload.Email,
		Username: payload.Username,
	}
	if err := h.emailService.SendWelcomeEmail(ctx, data); err != nil {
		log.Error().Err(err).Msg("Failed to send welcome email")
		return fmt.Errorf("send welcome email: %w", err)
	}

	log.Info().
		Str("email", payload.Email).
		Msg("Welcome email sent successfully")

	return nil
}
