package queue

import (
	"meetmatch/core/config"
	"meetmatch/core/constants"
	"meetmatch/core/logger"

	"github.com/hibiken/asynq"
)

// Queue wraps the asynq client, worker and scheduler used for background
// maintenance tasks (currently the periodic Google token refresh).
type Queue struct {
	client    *asynq.Client
	server    *asynq.Server
	scheduler *asynq.Scheduler
}

func New(cfg config.RedisConfig) *Queue {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}

	return &Queue{
		client: asynq.NewClient(redisOpt),
		server: asynq.NewServer(redisOpt, asynq.Config{
			Concurrency: 2,
		}),
		scheduler: asynq.NewScheduler(redisOpt, nil),
	}
}

// Start launches the worker and the periodic schedule. Both run until
// Shutdown is called.
func (q *Queue) Start(mux *asynq.ServeMux) error {
	if _, err := q.scheduler.Register("@every 30m", asynq.NewTask(constants.TaskRefreshCalendarTokens, nil)); err != nil {
		return err
	}

	go func() {
		if err := q.server.Run(mux); err != nil {
			logger.Error("Task worker stopped", "error", err)
		}
	}()
	go func() {
		if err := q.scheduler.Run(); err != nil {
			logger.Error("Task scheduler stopped", "error", err)
		}
	}()

	logger.Info("Background task queue started")
	return nil
}

// Enqueue submits a task for immediate processing.
func (q *Queue) Enqueue(task *asynq.Task) error {
	_, err := q.client.Enqueue(task)
	return err
}

func (q *Queue) Shutdown() {
	q.scheduler.Shutdown()
	q.server.Shutdown()
	if err := q.client.Close(); err != nil {
		logger.Error("Failed to close task client", "error", err)
	}
}
