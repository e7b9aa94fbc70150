package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"sparkin-backend/internal/shared"
)

// WelcomeEmailPayload is the task payload for shared.TypeWelcomeEmail.
type WelcomeEmailPayload struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Client wraps the asynq producer used by the API process.
type Client struct {
	client *asynq.Client
}

func NewClient(redisAddr, redisPassword string, redisDB int) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: redisPassword,
			DB:       redisDB,
		}),
	}
}

// EnqueueWelcomeEmail queues a welcome email for a freshly registered user.
func (c *Client) EnqueueWelcomeEmail(ctx context.Context, email, username string) error {
	payload, err := json.Marshal(WelcomeEmailPayload{Email: email, Username: username})
	if err != nil {
		return fmt.Errorf("marshal welcome email payload: %w", err)
	}

	task := asynq.NewTask(shared.TypeWelcomeEmail, payload)

	_, err = c.client.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueueEmail),
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Second),
	)
	if err != nil {
		return fmt.Errorf("enqueue welcome email: %w", err)
	}

	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
