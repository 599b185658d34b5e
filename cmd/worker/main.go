package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	cfg "github.com/feichai0017/floorplan-processor/config"
	"github.com/feichai0017/floorplan-processor/internal/service/floorplan"
	"github.com/feichai0017/floorplan-processor/pkg/logger"
	"github.com/feichai0017/floorplan-processor/pkg/worker"
)

func main() {
	log, err := logger.NewLogger(
		logger.WithLevel("info"),
		logger.WithEncoding("json"),
		logger.WithOutputPaths([]string{"stdout", "logs/worker.log"}),
	)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	svc, err := floorplan.GetService(log)
	if err != nil {
		log.Error("Failed to create floorplan service", logger.Error(err))
		os.Exit(1)
	}

	rc := cfg.GetRedisConfig()
	workerCfg := &worker.Config{
		RedisAddr:   rc.Addr,
		RedisDB:     rc.DB,
		Concurrency: 4,
		Queues: map[string]int{
			"default": 1,
		},
	}

	floorplanWorker, err := worker.NewFloorplanWorker(workerCfg, svc, log)
	if err != nil {
		log.Error("Failed to create floorplan worker", logger.Error(err))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := floorplanWorker.Start(ctx); err != nil {
		log.Error("Failed to start worker", logger.Error(err))
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down worker...")
	floorplanWorker.Stop()
	log.Info("Worker stopped")
}
