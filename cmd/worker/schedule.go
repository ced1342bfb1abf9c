package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/navigara/navigara-backend/config"
	"github.com/navigara/navigara-backend/internal/bootstrap"
	"github.com/navigara/navigara-backend/internal/cronjob"
	"github.com/navigara/navigara-backend/internal/logging"
	"github.com/navigara/navigara-backend/internal/org_network_analysis/service"
)

// runSchedule refreshes the baseline analysis on Worker.RefreshCron until
// ctx is cancelled.
func runSchedule(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger := logging.New(cfg)
	defer logging.Sync(logger)

	stores, err := bootstrap.OpenStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer stores.Close()

	svc := service.NewAnalysisService(stores.Snapshots, stores.LogStore(), service.Options{
		StrictIDs: cfg.Analysis.StrictIDs,
		HubDegree: cfg.Analysis.HubDegree,
	}, logger)
	opt := service.RunOptions{OutDir: cfg.Worker.OutDir, DotBin: cfg.Worker.DotBin}

	s := cronjob.NewScheduler(logger.Named("scheduler"))
	if err := s.Add("baseline_refresh", cfg.Worker.RefreshCron, func(jctx context.Context) error {
		res, err := svc.RefreshRun(jctx, opt)
		if err != nil {
			return err
		}
		logger.Info("baseline refreshed", zap.String("run_dir", res.RunDir))
		return nil
	}); err != nil {
		return err
	}

	s.Start()
	<-ctx.Done()
	s.Stop()
	return nil
}
