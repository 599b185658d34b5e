package handlers

import (
	"github.com/feichai0017/floorplan-processor/internal/service/floorplan"
	"github.com/feichai0017/floorplan-processor/pkg/logger"
)

type Handlers struct {
	Floorplan *FloorplanHandler
}

func NewHandlers(
	floorplanService floorplan.Service,
	logger logger.Logger,
) *Handlers {
	return &Handlers{
		Floorplan: NewFloorplanHandler(floorplanService, logger),
	}
}
