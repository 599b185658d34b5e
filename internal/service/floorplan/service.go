package floorplan

import (
	"context"

	"github.com/feichai0017/floorplan-processor/internal/models"
	"github.com/feichai0017/floorplan-processor/pkg/queue"
)

// Service is the floor-plan orchestration boundary: resolve a floor
// identifier to a source stream, run the parse pipeline over it, and
// memoize the assembled result.
type Service interface {
	// GetFloor returns the parsed plan for a floor, serving from cache
	// when possible.
	GetFloor(ctx context.Context, floor int) (*models.FloorPlan, error)
	// PrewarmFloors enqueues background parses for the given floors.
	PrewarmFloors(ctx context.Context, floors []int) ([]*models.ParseTask, error)
	// HandlePrewarm is the worker-side execution of one prewarm task.
	HandlePrewarm(ctx context.Context, task *queue.Task) error
	// GetTaskStatus reports the state of a prewarm task.
	GetTaskStatus(ctx context.Context, taskID string) (*models.ParseTask, error)
	// InvalidateCache drops every memoized result.
	InvalidateCache()
}
