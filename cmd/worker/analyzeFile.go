package main

import (
	"context"
	"fmt"

	"github.com/navigara/navigara-backend/internal/logging"
	"github.com/navigara/navigara-backend/internal/org_network_analysis/service"
)

// runAnalyze analyses a snapshot file and prints where the artefacts went.
func runAnalyze(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: analyze <snapshot.(json|yaml)> [outDir] [title]")
	}
	cfg, logger := newLogger()
	defer logging.Sync(logger)

	opt := service.RunOptions{OutDir: cfg.Worker.OutDir, DotBin: cfg.Worker.DotBin}
	if len(args) > 1 {
		opt.OutDir = args[1]
	}
	if len(args) > 2 {
		opt.Title = args[2]
	}

	res, err := offlineService(cfg, logger).AnalyzeFile(ctx, args[0], opt)
	if err != nil {
		return err
	}

	m := res.Analysis.Metrics
	fmt.Printf("Wrote: %s\n", res.RunDir)
	fmt.Printf("People: %d, collaborations: %d, silos: %d, avg effectiveness: %.2f\n",
		m.TotalPeople, m.TotalCollaborations, m.NumSilos, m.AvgEffectiveness)
	fmt.Printf("Detections (%d):\n", len(res.Detections))
	for _, d := range res.Detections {
		fmt.Printf(" - [%s] %s: %s\n", d.Severity, d.Title, d.Summary)
	}
	return nil
}
