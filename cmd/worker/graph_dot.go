package main

import (
	"context"
	"fmt"

	"github.com/navigara/navigara-backend/internal/logging"
	"github.com/navigara/navigara-backend/internal/org_network_analysis/graph/export"
	"github.com/navigara/navigara-backend/internal/org_network_analysis/ingest/parser"
	"github.com/navigara/navigara-backend/internal/utils"
)

// runDOT writes only the Graphviz rendering of a snapshot file.
func runDOT(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: dot <snapshot.(json|yaml)> <out.dot> [title]")
	}
	title := "Organisation"
	if len(args) > 2 {
		title = args[2]
	}

	cfg, logger := newLogger()
	defer logging.Sync(logger)

	snap, _, err := parser.ParseSnapshotFile(args[0])
	if err != nil {
		return err
	}
	res, err := offlineService(cfg, logger).Analyze(context.Background(), snap)
	if err != nil {
		return err
	}
	return utils.WriteFile(args[1], export.ToDOT(res, title))
}
