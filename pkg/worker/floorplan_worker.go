package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/feichai0017/floorplan-processor/internal/service/floorplan"
	"github.com/feichai0017/floorplan-processor/pkg/logger"
	"github.com/feichai0017/floorplan-processor/pkg/queue"
)

// FloorplanWorker drains the prewarm queue, parsing floors into the
// result cache before anyone asks for them.
type FloorplanWorker struct {
	BaseWorker
	service floorplan.Service
}

func NewFloorplanWorker(cfg *Config, service floorplan.Service, log logger.Logger) (*FloorplanWorker, error) {
	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: cfg.RedisAddr, DB: cfg.RedisDB},
		asynq.Config{
			Concurrency: cfg.Concurrency,
			Queues:      cfg.Queues,
		},
	)

	w := &FloorplanWorker{
		BaseWorker: BaseWorker{
			server:   server,
			mux:      asynq.NewServeMux(),
			logger:   log,
			stopChan: make(chan struct{}),
		},
		service: service,
	}
	w.mux.HandleFunc(queue.TaskTypeFloorPrewarm, w.handlePrewarm)
	return w, nil
}

func (w *FloorplanWorker) handlePrewarm(ctx context.Context, t *asynq.Task) error {
	var task queue.Task
	if err := json.Unmarshal(t.Payload(), &task); err != nil {
		w.logger.Error("Failed to unmarshal task",
			logger.Error(err),
			logger.String("payload", string(t.Payload())),
		)
		return fmt.Errorf("failed to unmarshal task: %w", err)
	}

	w.logger.Info("Prewarming floor",
		logger.String("taskId", task.ID),
		logger.Int("floor", task.Floor),
	)

	if err := w.service.HandlePrewarm(ctx, &task); err != nil {
		w.logger.Error("Prewarm failed",
			logger.String("taskId", task.ID),
			logger.Int("floor", task.Floor),
			logger.Error(err),
		)
		return err
	}
	return nil
}

func (w *FloorplanWorker) Start(ctx context.Context) error {
	go func() {
		if err := w.server.Run(w.mux); err != nil {
			w.logger.Error("Worker server stopped", logger.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		w.Stop()
	}()

	return nil
}
