package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/navigara/navigara-backend/internal/org_network_analysis/detection"
	"github.com/navigara/navigara-backend/internal/org_network_analysis/domain"
	"github.com/navigara/navigara-backend/internal/org_network_analysis/graph/export"
	"github.com/navigara/navigara-backend/internal/org_network_analysis/ingest/parser"
	"github.com/navigara/navigara-backend/internal/utils"
)

type RunOptions struct {
	OutDir string
	Title  string
	DotBin string
}

// RunResult is what an offline run writes to analysis.json and
// analysis.yaml. SVGPath is empty when Graphviz is not installed.
type RunResult struct {
	RunDir     string                 `json:"run_dir" yaml:"run_dir"`
	DOTPath    string                 `json:"dot_path" yaml:"dot_path"`
	SVGPath    string                 `json:"svg_path,omitempty" yaml:"svg_path,omitempty"`
	XLSXPath   string                 `json:"xlsx_path" yaml:"xlsx_path"`
	Analysis   *domain.AnalysisResult `json:"analysis" yaml:"analysis"`
	Detections []domain.Detection     `json:"detections" yaml:"detections"`
}

// AnalyzeFile analyses a snapshot document on disk and writes the run
// artefacts under opt.OutDir/runs/<id>.
func (s *AnalysisService) AnalyzeFile(ctx context.Context, path string, opt RunOptions) (*RunResult, error) {
	snap, warns, err := parser.ParseSnapshotFile(path)
	if err != nil {
		return nil, err
	}
	s.warn(ctx, warns)

	res, err := s.Analyze(ctx, snap)
	if err != nil {
		return nil, err
	}
	analysesTotal.WithLabelValues("file").Inc()
	return s.WriteRun(ctx, res, opt)
}

// RefreshRun re-analyses the stored baseline and writes its artefacts.
func (s *AnalysisService) RefreshRun(ctx context.Context, opt RunOptions) (*RunResult, error) {
	res, err := s.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	return s.WriteRun(ctx, res, opt)
}

func (s *AnalysisService) WriteRun(ctx context.Context, res *domain.AnalysisResult, opt RunOptions) (*RunResult, error) {
	if opt.OutDir == "" {
		opt.OutDir = "out"
	}
	if opt.Title == "" {
		opt.Title = s.opt.ReportTitle
	}
	runDir := filepath.Join(opt.OutDir, "runs", utils.NewRunID(time.Now()))
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return nil, fmt.Errorf("create run dir: %w", err)
	}

	dets, err := detection.RunAll(res, detection.Options{HubDegree: s.opt.HubDegree})
	if err != nil {
		return nil, err
	}
	out := &RunResult{RunDir: runDir, Analysis: res, Detections: dets}

	out.DOTPath = filepath.Join(runDir, "graph.dot")
	if err := utils.WriteFile(out.DOTPath, export.ToDOT(res, opt.Title)); err != nil {
		return nil, err
	}

	svgPath := filepath.Join(runDir, "graph.svg")
	switch err := utils.DotTo(ctx, out.DOTPath, svgPath, "svg", opt.DotBin); {
	case err == nil:
		out.SVGPath = svgPath
	case errors.Is(err, utils.ErrDotNotFound):
		s.logger(ctx).Info("graphviz not installed, skipping svg", zap.String("dot_bin", opt.DotBin))
	default:
		return nil, fmt.Errorf("graphviz render: %w", err)
	}

	out.XLSXPath, err = export.SaveExcel(filepath.Join(runDir, "report.xlsx"), res, opt.Title)
	if err != nil {
		return nil, err
	}

	if err := export.WriteJSON(filepath.Join(runDir, "analysis.json"), out); err != nil {
		return nil, err
	}
	if err := export.WriteYAML(filepath.Join(runDir, "analysis.yaml"), out); err != nil {
		return nil, err
	}

	s.logger(ctx).Info("analysis run written",
		zap.String("run_dir", runDir),
		zap.Int("detections", len(dets)))
	return out, nil
}
