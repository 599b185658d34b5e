package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/feichai0017/floorplan-processor/internal/service/floorplan"
	"github.com/feichai0017/floorplan-processor/internal/svg"
	"github.com/feichai0017/floorplan-processor/internal/utils/validator"
	"github.com/feichai0017/floorplan-processor/pkg/converters"
	"github.com/feichai0017/floorplan-processor/pkg/logger"
)

type FloorplanHandler struct {
	service   floorplan.Service
	converter *converters.SceneConverter
	logger    logger.Logger
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// PrewarmRequest lists the floors to parse ahead of demand.
type PrewarmRequest struct {
	Floors []int `json:"floors" binding:"required"`
}

func NewFloorplanHandler(service floorplan.Service, logger logger.Logger) *FloorplanHandler {
	return &FloorplanHandler{
		service:   service,
		converter: converters.NewSceneConverter(),
		logger:    logger,
	}
}

// GetFloor serves the parsed plan for one floor.
func (h *FloorplanHandler) GetFloor(c *gin.Context) {
	floor, err := validator.ParseFloorID(c.Param("floorId"))
	if err != nil {
		h.handleError(c, http.StatusBadRequest, "Invalid floor id", err)
		return
	}

	plan, err := h.service.GetFloor(c.Request.Context(), floor)
	if err != nil {
		h.handleParseError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

// GetFloorScene serves the flattened polyline projection of a floor.
func (h *FloorplanHandler) GetFloorScene(c *gin.Context) {
	floor, err := validator.ParseFloorID(c.Param("floorId"))
	if err != nil {
		h.handleError(c, http.StatusBadRequest, "Invalid floor id", err)
		return
	}

	plan, err := h.service.GetFloor(c.Request.Context(), floor)
	if err != nil {
		h.handleParseError(c, err)
		return
	}

	scene, err := h.converter.Convert(plan)
	if err != nil {
		h.handleError(c, http.StatusInternalServerError, "Failed to convert plan", err)
		return
	}

	c.JSON(http.StatusOK, scene)
}

// Prewarm enqueues background parses for a list of floors.
func (h *FloorplanHandler) Prewarm(c *gin.Context) {
	var req PrewarmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(req.Floors) == 0 {
		h.handleError(c, http.StatusBadRequest, "No floors provided", nil)
		return
	}

	tasks, err := h.service.PrewarmFloors(c.Request.Context(), req.Floors)
	if err != nil {
		h.handleError(c, http.StatusInternalServerError, "Failed to enqueue floors", err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"tasks": tasks})
}

// GetStatus reports the state of a prewarm task.
func (h *FloorplanHandler) GetStatus(c *gin.Context) {
	taskID := c.Param("taskId")
	if taskID == "" {
		h.handleError(c, http.StatusBadRequest, "Task ID is required", nil)
		return
	}

	task, err := h.service.GetTaskStatus(c.Request.Context(), taskID)
	if err != nil {
		h.handleError(c, http.StatusNotFound, "Failed to get status", err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// ClearCache drops every memoized result.
func (h *FloorplanHandler) ClearCache(c *gin.Context) {
	h.service.InvalidateCache()
	c.JSON(http.StatusOK, gin.H{"message": "Cache cleared"})
}

// handleParseError maps the parse error taxonomy onto HTTP statuses: a
// missing source is 404, a malformed one 422, everything else 500.
func (h *FloorplanHandler) handleParseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, svg.ErrSourceNotFound):
		h.handleError(c, http.StatusNotFound, "Floor not found", err)
	case errors.Is(err, svg.ErrMalformedSource):
		h.handleError(c, http.StatusUnprocessableEntity, "Floor source is malformed", err)
	default:
		h.handleError(c, http.StatusInternalServerError, "Failed to parse floor", err)
	}
}

func (h *FloorplanHandler) handleError(c *gin.Context, status int, message string, err error) {
	h.logger.Error(message,
		logger.String("path", c.Request.URL.Path),
		logger.Error(err),
	)

	response := ErrorResponse{Message: message}
	if err != nil {
		response.Error = err.Error()
	}

	c.JSON(status, response)
}
