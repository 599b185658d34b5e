package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	cfg "github.com/feichai0017/floorplan-processor/config"
)

// TaskTypeFloorPrewarm parses a floor ahead of demand so the first request
// hits the result cache.
const TaskTypeFloorPrewarm = "floorplan:prewarm"

// statusTTL bounds how long finished task statuses stay queryable.
const statusTTL = 24 * time.Hour

// Queue is the prewarm job interface.
type Queue interface {
	Enqueue(ctx context.Context, task *Task) error
	GetTaskStatus(ctx context.Context, taskID string) (*TaskStatus, error)
	CancelTask(ctx context.Context, taskID string) error
	SaveStatus(ctx context.Context, status *TaskStatus) error
}

// Task is one queued prewarm request.
type Task struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Floor     int       `json:"floor"`
	CreatedAt time.Time `json:"createdAt"`
}

// TaskStatus is the externally visible state of a task.
type TaskStatus struct {
	TaskID     string    `json:"taskId"`
	Floor      int       `json:"floor"`
	Status     string    `json:"status"`
	Progress   float64   `json:"progress"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt,omitempty"`
}

// AsynqQueue backs Queue with asynq for delivery and redis for status.
type AsynqQueue struct {
	client    *asynq.Client
	inspector *asynq.Inspector
	redis     *redis.Client
}

type QueueConfig struct {
	RedisAddr  string
	RedisDB    int
	MaxRetries int
	Timeout    time.Duration
}

// GetQueue builds a queue from the environment redis config.
func GetQueue() (*AsynqQueue, error) {
	rc := cfg.GetRedisConfig()
	return NewAsynqQueue(&QueueConfig{
		RedisAddr:  rc.Addr,
		RedisDB:    rc.DB,
		MaxRetries: 1,
		Timeout:    5 * time.Minute,
	})
}

func NewAsynqQueue(qc *QueueConfig) (*AsynqQueue, error) {
	redisOpt := asynq.RedisClientOpt{
		Addr: qc.RedisAddr,
		DB:   qc.RedisDB,
	}

	return &AsynqQueue{
		client:    asynq.NewClient(redisOpt),
		inspector: asynq.NewInspector(redisOpt),
		redis: redis.NewClient(&redis.Options{
			Addr: qc.RedisAddr,
			DB:   qc.RedisDB,
		}),
	}, nil
}

// Enqueue submits a prewarm task. A failed parse is not retried by the
// queue beyond its single attempt; callers re-enqueue if they want another
// run.
func (q *AsynqQueue) Enqueue(ctx context.Context, task *Task) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	t := asynq.NewTask(task.Type, payload,
		asynq.TaskID(task.ID),
		asynq.MaxRetry(0),
		asynq.Timeout(5*time.Minute),
	)
	if _, err := q.client.EnqueueContext(ctx, t); err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	return q.SaveStatus(ctx, &TaskStatus{
		TaskID:    task.ID,
		Floor:     task.Floor,
		Status:    "pending",
		StartedAt: task.CreatedAt,
	})
}

// GetTaskStatus reads the saved status; it falls back to the asynq
// inspector when no status has been written yet.
func (q *AsynqQueue) GetTaskStatus(ctx context.Context, taskID string) (*TaskStatus, error) {
	key := statusKey(taskID)
	data, err := q.redis.Get(ctx, key).Bytes()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get status from redis: %w", err)
	}
	if err == nil {
		var status TaskStatus
		if err := json.Unmarshal(data, &status); err != nil {
			return nil, fmt.Errorf("failed to unmarshal status: %w", err)
		}
		return &status, nil
	}

	info, err := q.inspector.GetTaskInfo("default", taskID)
	if err != nil {
		return nil, fmt.Errorf("task not found: %w", err)
	}

	return &TaskStatus{
		TaskID:    info.ID,
		Status:    info.State.String(),
		StartedAt: info.NextProcessAt,
	}, nil
}

// CancelTask removes a pending task from the queue.
func (q *AsynqQueue) CancelTask(ctx context.Context, taskID string) error {
	if err := q.inspector.DeleteTask("default", taskID); err != nil {
		return fmt.Errorf("failed to cancel task: %w", err)
	}
	return nil
}

// SaveStatus persists a task status with the standard expiry.
func (q *AsynqQueue) SaveStatus(ctx context.Context, status *TaskStatus) error {
	data, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}
	if err := q.redis.Set(ctx, statusKey(status.TaskID), data, statusTTL).Err(); err != nil {
		return fmt.Errorf("failed to save status: %w", err)
	}
	return nil
}

func statusKey(taskID string) string {
	return fmt.Sprintf("floorplan:task_status:%s", taskID)
}
