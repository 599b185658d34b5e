package floorplan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feichai0017/floorplan-processor/internal/cache"
	"github.com/feichai0017/floorplan-processor/internal/svg"
	"github.com/feichai0017/floorplan-processor/pkg/logger"
	"github.com/feichai0017/floorplan-processor/pkg/queue"
)

const floorDoc = `<svg width="1000" height="800" viewBox="0 0 1000 800">` +
	`<path id="Wall_1" d="M0,0 H10 V10 H0 Z" style="fill:none;stroke:#000000;stroke-width:0.1"/></svg>`

// fakeStorage serves objects from memory and counts resolutions.
type fakeStorage struct {
	mu      sync.Mutex
	objects map[string]string
	gets    int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string]string)}
}

func (s *fakeStorage) Get(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	body, ok := s.objects[key]
	if !ok {
		return nil, 0, fmt.Errorf("object %s: %w", key, os.ErrNotExist)
	}
	return io.NopCloser(strings.NewReader(body)), int64(len(body)), nil
}

func (s *fakeStorage) Store(ctx context.Context, reader io.Reader, key string) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = string(data)
	return key, nil
}

func (s *fakeStorage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *fakeStorage) CleanupBefore(ctx context.Context, threshold time.Time) error {
	return nil
}

func (s *fakeStorage) getCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gets
}

// fakeQueue records enqueued tasks and saved statuses in memory.
type fakeQueue struct {
	mu       sync.Mutex
	enqueued []*queue.Task
	statuses map[string][]*queue.TaskStatus
	failWith error
}

func newFakeQueue() *fakeQueue {
	return &fakeQueue{statuses: make(map[string][]*queue.TaskStatus)}
}

func (q *fakeQueue) Enqueue(ctx context.Context, task *queue.Task) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.failWith != nil {
		return q.failWith
	}
	q.enqueued = append(q.enqueued, task)
	q.statuses[task.ID] = append(q.statuses[task.ID], &queue.TaskStatus{
		TaskID: task.ID, Floor: task.Floor, Status: "pending", StartedAt: task.CreatedAt,
	})
	return nil
}

func (q *fakeQueue) GetTaskStatus(ctx context.Context, taskID string) (*queue.TaskStatus, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	history := q.statuses[taskID]
	if len(history) == 0 {
		return nil, errors.New("task not found")
	}
	return history[len(history)-1], nil
}

func (q *fakeQueue) CancelTask(ctx context.Context, taskID string) error { return nil }

func (q *fakeQueue) SaveStatus(ctx context.Context, status *queue.TaskStatus) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.statuses[status.TaskID] = append(q.statuses[status.TaskID], status)
	return nil
}

func (q *fakeQueue) history(taskID string) []*queue.TaskStatus {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]*queue.TaskStatus(nil), q.statuses[taskID]...)
}

func newTestService(t *testing.T) (Service, *fakeStorage, *fakeQueue) {
	t.Helper()
	store := newFakeStorage()
	q := newFakeQueue()
	log := logger.NewTestLogger()
	svc := NewService(
		svg.NewParser(svg.DefaultConfig(), log),
		cache.New(4, time.Minute),
		store,
		q,
		log,
		nil,
	)
	return svc, store, q
}

func TestGetFloorParsesAndCaches(t *testing.T) {
	svc, store, _ := newTestService(t)
	store.objects["floor_1.svg"] = floorDoc

	plan, err := svc.GetFloor(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, plan.Floor)
	assert.Equal(t, 1, plan.PrimitiveCount)
	assert.Equal(t, 1, store.getCount())

	// Second call is a cache hit: storage is not touched again.
	again, err := svc.GetFloor(context.Background(), 1)
	require.NoError(t, err)
	assert.Same(t, plan, again)
	assert.Equal(t, 1, store.getCount())
}

func TestGetFloorMissingSource(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.GetFloor(context.Background(), 7)
	require.ErrorIs(t, err, svg.ErrSourceNotFound)
}

func TestGetFloorMalformedSource(t *testing.T) {
	svc, store, _ := newTestService(t)
	store.objects["floor_1.svg"] = "not a drawing at all"

	_, err := svc.GetFloor(context.Background(), 1)
	require.ErrorIs(t, err, svg.ErrMalformedSource)
}

func TestInvalidateCacheForcesReparse(t *testing.T) {
	svc, store, _ := newTestService(t)
	store.objects["floor_1.svg"] = floorDoc

	_, err := svc.GetFloor(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 1, store.getCount())

	svc.InvalidateCache()

	_, err = svc.GetFloor(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, store.getCount())
}

func TestPrewarmFloorsEnqueuesPerFloor(t *testing.T) {
	svc, _, q := newTestService(t)

	tasks, err := svc.PrewarmFloors(context.Background(), []int{1, 2, 3})
	require.NoError(t, err)
	require.Len(t, tasks, 3)

	floors := make(map[int]bool)
	ids := make(map[string]bool)
	for _, task := range tasks {
		assert.NotEmpty(t, task.ID)
		ids[task.ID] = true
		floors[task.Floor] = true
	}
	assert.Len(t, ids, 3, "task ids must be unique")
	assert.Equal(t, map[int]bool{1: true, 2: true, 3: true}, floors)
	assert.Len(t, q.enqueued, 3)
}

func TestPrewarmFloorsEnqueueFailure(t *testing.T) {
	svc, _, q := newTestService(t)
	q.failWith = errors.New("redis down")

	_, err := svc.PrewarmFloors(context.Background(), []int{1})
	require.Error(t, err)
}

func TestHandlePrewarmFillsCacheAndStatus(t *testing.T) {
	svc, store, q := newTestService(t)
	store.objects["floor_2.svg"] = floorDoc

	task := &queue.Task{ID: "t1", Type: queue.TaskTypeFloorPrewarm, Floor: 2, CreatedAt: time.Now()}
	require.NoError(t, svc.HandlePrewarm(context.Background(), task))

	history := q.history("t1")
	require.NotEmpty(t, history)
	assert.Equal(t, "running", history[0].Status)
	final := history[len(history)-1]
	assert.Equal(t, "completed", final.Status)
	assert.Equal(t, 1.0, final.Progress)
	assert.False(t, final.FinishedAt.IsZero())

	// The worker warmed the cache: the next GetFloor skips storage.
	before := store.getCount()
	_, err := svc.GetFloor(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, before, store.getCount())
}

func TestHandlePrewarmFailureRecorded(t *testing.T) {
	svc, _, q := newTestService(t)

	task := &queue.Task{ID: "t2", Type: queue.TaskTypeFloorPrewarm, Floor: 9, CreatedAt: time.Now()}
	err := svc.HandlePrewarm(context.Background(), task)
	require.ErrorIs(t, err, svg.ErrSourceNotFound)

	history := q.history("t2")
	require.NotEmpty(t, history)
	final := history[len(history)-1]
	assert.Equal(t, "failed", final.Status)
	assert.NotEmpty(t, final.Error)
}

func TestHandlePrewarmRejectsEmptyTask(t *testing.T) {
	svc, _, _ := newTestService(t)
	assert.Error(t, svc.HandlePrewarm(context.Background(), nil))
	assert.Error(t, svc.HandlePrewarm(context.Background(), &queue.Task{}))
}

func TestGetTaskStatusMapsStates(t *testing.T) {
	svc, _, q := newTestService(t)

	q.statuses["t3"] = []*queue.TaskStatus{{
		TaskID:   "t3",
		Floor:    4,
		Status:   "running",
		Progress: 0.5,
	}}

	task, err := svc.GetTaskStatus(context.Background(), "t3")
	require.NoError(t, err)
	assert.Equal(t, "t3", task.ID)
	assert.Equal(t, 4, task.Floor)
	assert.Equal(t, 0.5, task.Progress)

	_, err = svc.GetTaskStatus(context.Background(), "missing")
	assert.Error(t, err)
}
