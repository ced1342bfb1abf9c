package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/navigara/navigara-backend/config"
	"github.com/navigara/navigara-backend/internal/logging"
	"github.com/navigara/navigara-backend/internal/org_network_analysis/service"
)

const usage = `usage:
  worker analyze <snapshot.(json|yaml)> [outDir] [title]
  worker dot <snapshot.(json|yaml)> <out.dot> [title]
  worker schedule`

func main() {
	if len(os.Args) < 2 {
		log.Fatal(usage)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "analyze":
		err = runAnalyze(ctx, os.Args[2:])
	case "dot":
		err = runDOT(os.Args[2:])
	case "schedule":
		err = runSchedule(ctx)
	default:
		err = fmt.Errorf("unknown command: %s\n%s", os.Args[1], usage)
	}
	if err != nil {
		log.Fatal(err)
	}
}

// offlineService builds a service with no snapshot or log store, for
// commands that only read files.
func offlineService(cfg *config.Config, logger *zap.Logger) *service.AnalysisService {
	return service.NewAnalysisService(nil, nil, service.Options{
		StrictIDs: cfg.Analysis.StrictIDs,
		HubDegree: cfg.Analysis.HubDegree,
	}, logger)
}

func newLogger() (*config.Config, *zap.Logger) {
	cfg := config.FromEnv()
	return cfg, logging.New(cfg)
}
