package queue

import (
	"time"

	"github.com/hibiken/asynq"

	"sparkin-backend/internal/shared"
	"sparkin-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisAddr, redisPassword string, redisDB int) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: redisPassword,
			DB:       redisDB,
		},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{scheduler: scheduler}
}

// RegisterMaintenanceJobs registers the recurring cleanup work.
func (s *Scheduler) RegisterMaintenanceJobs() error {
	// Nightly orphan cleanup at 3 AM UTC. The synchronous cascades keep
	// references consistent; this job mops up anything left behind by a
	// crash mid-delete.
	task := asynq.NewTask(shared.TypeOrphanCleanup, nil)

	_, err := s.scheduler.Register(
		"0 3 * * *",
		task,
		asynq.Queue(shared.QueueMaintenance),
		asynq.MaxRetry(1),
		asynq.Timeout(5*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register orphan cleanup job", err)
		return err
	}

	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
