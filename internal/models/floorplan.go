package models

import (
	"time"
)

// Category is the semantic classification of an extracted primitive.
type Category string

const (
	CategoryWall   Category = "wall"
	CategoryWindow Category = "window"
	CategoryDoor   Category = "door"
	CategoryOther  Category = "other"
)

// Primitive is one extracted path record. Immutable once classified; it is
// owned by the FloorPlan it belongs to and lives exactly as long as it.
type Primitive struct {
	ID        string   `json:"id"`
	Geometry  string   `json:"d"`
	Category  Category `json:"category"`
	Style     string   `json:"style,omitempty"`
	Transform string   `json:"transform,omitempty"`
	Floor     int      `json:"floor"`
}

// Dimensions holds the canvas bounds as declared on the root element,
// not recomputed from geometry.
type Dimensions struct {
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	ViewBox string `json:"viewBox"`
}

// FloorPlan is the assembled result of one parse invocation. It is built
// once, optionally cached, and shared read-only with callers.
type FloorPlan struct {
	Floor          int         `json:"floor"`
	Dimensions     Dimensions  `json:"dimensions"`
	Scale          float64     `json:"scale"`
	PrimitiveCount int         `json:"primitiveCount"`
	Primitives     []Primitive `json:"primitives"`
	Truncated      bool        `json:"truncated,omitempty"`
}

// ParseTask tracks a queued prewarm request.
type ParseTask struct {
	ID        string          `json:"id"`
	Floor     int             `json:"floor"`
	Status    ParseTaskStatus `json:"status"`
	Progress  float64         `json:"progress"`
	Error     string          `json:"error,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt,omitempty"`
}

type ParseTaskStatus string

const (
	TaskPending   ParseTaskStatus = "pending"
	TaskRunning   ParseTaskStatus = "running"
	TaskCompleted ParseTaskStatus = "completed"
	TaskFailed    ParseTaskStatus = "failed"
)
