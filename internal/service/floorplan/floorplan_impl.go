package floorplan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	cfg "github.com/feichai0017/floorplan-processor/config"
	"github.com/feichai0017/floorplan-processor/internal/cache"
	"github.com/feichai0017/floorplan-processor/internal/models"
	"github.com/feichai0017/floorplan-processor/internal/svg"
	"github.com/feichai0017/floorplan-processor/pkg/logger"
	"github.com/feichai0017/floorplan-processor/pkg/queue"
	"github.com/feichai0017/floorplan-processor/pkg/storage"
)

type FloorplanService struct {
	parser  *svg.Parser
	cache   *cache.ResultCache
	storage storage.Storage
	queue   queue.Queue
	logger  logger.Logger
	config  *ServiceConfig
}

type ServiceConfig struct {
	// KeyPattern maps a floor number to its object key.
	KeyPattern    string
	MaxConcurrent int
}

func NewService(
	parser *svg.Parser,
	resultCache *cache.ResultCache,
	store storage.Storage,
	q queue.Queue,
	log logger.Logger,
	sc *ServiceConfig,
) Service {
	if sc == nil {
		sc = &ServiceConfig{
			KeyPattern:    "floor_%d.svg",
			MaxConcurrent: 4,
		}
	}
	return &FloorplanService{
		parser:  parser,
		cache:   resultCache,
		storage: store,
		queue:   q,
		logger:  log,
		config:  sc,
	}
}

// GetService wires the service from environment configuration.
func GetService(log logger.Logger) (Service, error) {
	pc := cfg.GetParserConfig()

	store, err := storage.NewStorage(storage.StorageType(cfg.GetStorageConfig().Backend), log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	q, err := queue.GetQueue()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize queue: %w", err)
	}

	return NewService(
		svg.NewParser(pc.Pipeline, log),
		cache.New(pc.CacheCapacity, pc.CacheTTL),
		store,
		q,
		log,
		nil,
	), nil
}

// GetFloor serves the plan from cache when present; otherwise it resolves
// the source stream, runs the full pipeline, and caches the result. A
// cached entry may be stale if the backing object changed; it is served
// until its TTL lapses.
func (s *FloorplanService) GetFloor(ctx context.Context, floor int) (*models.FloorPlan, error) {
	key := cacheKey(floor)
	if plan, ok := s.cache.Get(key); ok {
		s.logger.Debug("Cache hit", logger.Int("floor", floor))
		return plan, nil
	}

	plan, err := s.parseFloor(ctx, floor, nil)
	if err != nil {
		return nil, err
	}

	s.cache.Put(key, plan)
	return plan, nil
}

func (s *FloorplanService) parseFloor(ctx context.Context, floor int, onProgress svg.ProgressFunc) (*models.FloorPlan, error) {
	objectKey := fmt.Sprintf(s.config.KeyPattern, floor)

	reader, size, err := s.storage.Get(ctx, objectKey)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("floor %d: %w", floor, svg.ErrSourceNotFound)
		}
		return nil, fmt.Errorf("failed to resolve floor %d: %w", floor, err)
	}
	defer reader.Close()

	started := time.Now()
	plan, err := s.parser.Parse(ctx, reader, size, floor, onProgress)
	if err != nil {
		s.logger.Error("Parse failed",
			logger.Int("floor", floor),
			logger.Error(err),
		)
		return nil, err
	}

	s.logger.Info("Floor parsed",
		logger.Int("floor", floor),
		logger.Int("primitives", plan.PrimitiveCount),
		logger.Bool("truncated", plan.Truncated),
		logger.Duration("elapsed", time.Since(started)),
	)
	return plan, nil
}

// PrewarmFloors fans out one queue task per floor.
func (s *FloorplanService) PrewarmFloors(ctx context.Context, floors []int) ([]*models.ParseTask, error) {
	tasks := make([]*models.ParseTask, len(floors))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.MaxConcurrent)

	for i, floor := range floors {
		i, floor := i, floor
		g.Go(func() error {
			task := &queue.Task{
				ID:        uuid.New().String(),
				Type:      queue.TaskTypeFloorPrewarm,
				Floor:     floor,
				CreatedAt: time.Now(),
			}
			if err := s.queue.Enqueue(ctx, task); err != nil {
				return fmt.Errorf("failed to enqueue floor %d: %w", floor, err)
			}
			tasks[i] = &models.ParseTask{
				ID:        task.ID,
				Floor:     floor,
				Status:    models.TaskPending,
				CreatedAt: task.CreatedAt,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tasks, nil
}

// HandlePrewarm parses the floor and fills the cache, mirroring parse
// progress into the task status.
func (s *FloorplanService) HandlePrewarm(ctx context.Context, task *queue.Task) error {
	if task == nil || task.ID == "" {
		return fmt.Errorf("invalid task: missing id")
	}

	s.saveStatus(ctx, task, "running", 0, nil)

	lastSaved := -1
	plan, err := s.parseFloor(ctx, task.Floor, func(percent int) {
		// Status writes are throttled to 10% steps; the channel is
		// advisory and duplicates are fine.
		if percent/10 > lastSaved/10 {
			lastSaved = percent
			s.saveStatus(ctx, task, "running", float64(percent)/100, nil)
		}
	})
	if err != nil {
		s.saveStatus(ctx, task, "failed", 0, err)
		return err
	}

	s.cache.Put(cacheKey(task.Floor), plan)
	s.saveStatus(ctx, task, "completed", 1.0, nil)
	return nil
}

// GetTaskStatus maps the queue status onto the task model.
func (s *FloorplanService) GetTaskStatus(ctx context.Context, taskID string) (*models.ParseTask, error) {
	status, err := s.queue.GetTaskStatus(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task status: %w", err)
	}

	var taskStatus models.ParseTaskStatus
	switch status.Status {
	case "pending":
		taskStatus = models.TaskPending
	case "running", "active":
		taskStatus = models.TaskRunning
	case "completed":
		taskStatus = models.TaskCompleted
	case "failed":
		taskStatus = models.TaskFailed
	default:
		taskStatus = models.TaskPending
	}

	return &models.ParseTask{
		ID:        status.TaskID,
		Floor:     status.Floor,
		Status:    taskStatus,
		Progress:  status.Progress,
		Error:     status.Error,
		CreatedAt: status.StartedAt,
		UpdatedAt: status.FinishedAt,
	}, nil
}

// InvalidateCache drops every memoized plan.
func (s *FloorplanService) InvalidateCache() {
	s.cache.Clear()
	s.logger.Info("Result cache cleared")
}

func (s *FloorplanService) saveStatus(ctx context.Context, task *queue.Task, state string, progress float64, cause error) {
	status := &queue.TaskStatus{
		TaskID:    task.ID,
		Floor:     task.Floor,
		Status:    state,
		Progress:  progress,
		StartedAt: task.CreatedAt,
	}
	if state == "completed" || state == "failed" {
		status.FinishedAt = time.Now()
	}
	if cause != nil {
		status.Error = cause.Error()
	}
	if err := s.queue.SaveStatus(ctx, status); err != nil {
		s.logger.Error("Failed to save task status",
			logger.String("taskId", task.ID),
			logger.Error(err),
		)
	}
}

func cacheKey(floor int) string {
	return fmt.Sprintf("%d", floor)
}
