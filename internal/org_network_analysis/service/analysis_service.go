package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/navigara/navigara-backend/internal/logging"
	"github.com/navigara/navigara-backend/internal/org_network_analysis/detection"
	_ "github.com/navigara/navigara-backend/internal/org_network_analysis/detection/rules"
	"github.com/navigara/navigara-backend/internal/org_network_analysis/domain"
	"github.com/navigara/navigara-backend/internal/org_network_analysis/graph"
	"github.com/navigara/navigara-backend/internal/org_network_analysis/graph/export"
	"github.com/navigara/navigara-backend/internal/org_network_analysis/ingest/parser"
	"github.com/navigara/navigara-backend/internal/org_network_analysis/ingest/validator"
	"github.com/navigara/navigara-backend/internal/org_network_analysis/metrics"
	"github.com/navigara/navigara-backend/internal/org_network_analysis/repository"
	"github.com/navigara/navigara-backend/internal/org_network_analysis/simulation"
)

// LogStore persists analysis history. *repository.AnalysisLogRepository
// satisfies it.
type LogStore interface {
	Insert(ctx context.Context, l *domain.AnalysisLog) error
	ListRecent(ctx context.Context, limit int) ([]domain.AnalysisLog, error)
}

type Options struct {
	StrictIDs   bool
	HubDegree   int
	ReportTitle string
}

type AnalysisService struct {
	snapshots repository.SnapshotStore
	logs      LogStore
	opt       Options
	log       *zap.Logger
}

// NewAnalysisService wires the service. logs may be nil, in which case
// history is disabled.
func NewAnalysisService(snapshots repository.SnapshotStore, logs LogStore, opt Options, log *zap.Logger) *AnalysisService {
	if log == nil {
		log = zap.NewNop()
	}
	if opt.HubDegree <= 0 {
		opt.HubDegree = detection.DefaultHubDegree
	}
	if opt.ReportTitle == "" {
		opt.ReportTitle = "Organisational Network Report"
	}
	return &AnalysisService{snapshots: snapshots, logs: logs, opt: opt, log: log.Named("analysis")}
}

// SimulateRequest carries the raw, optional lists as received on the wire.
type SimulateRequest struct {
	PersonID       string
	TargetUnit     string
	Persons        []byte
	Collaborations []byte
}

// GetGraph analyses the stored baseline organisation.
func (s *AnalysisService) GetGraph(ctx context.Context) (*domain.AnalysisResult, error) {
	res, err := s.baseline(ctx)
	if err != nil {
		return nil, err
	}
	s.record(ctx, &domain.AnalysisLog{Kind: domain.LogBaseline}, res)
	analysesTotal.WithLabelValues(string(domain.LogBaseline)).Inc()
	return res, nil
}

// Refresh re-analyses the baseline on schedule and records it as a refresh.
func (s *AnalysisService) Refresh(ctx context.Context) (*domain.AnalysisResult, error) {
	res, err := s.baseline(ctx)
	if err != nil {
		return nil, err
	}
	s.record(ctx, &domain.AnalysisLog{Kind: domain.LogRefresh}, res)
	analysesTotal.WithLabelValues(string(domain.LogRefresh)).Inc()
	return res, nil
}

// LoadCustomGraph analyses caller-supplied lists without touching the store.
func (s *AnalysisService) LoadCustomGraph(ctx context.Context, personsRaw, collabsRaw []byte) (*domain.AnalysisResult, error) {
	persons, collabs, err := s.decode(ctx, personsRaw, collabsRaw)
	if err != nil {
		return nil, err
	}
	if persons == nil {
		return nil, domain.InvalidInputf("persons are required")
	}

	res, err := s.analyze(ctx, "custom", persons, collabs)
	if err != nil {
		return nil, err
	}
	s.record(ctx, &domain.AnalysisLog{Kind: domain.LogCustom}, res)
	analysesTotal.WithLabelValues(string(domain.LogCustom)).Inc()
	return res, nil
}

// SimulateMove runs a what-if move. Lists missing from the request fall back
// to the stored snapshot.
func (s *AnalysisService) SimulateMove(ctx context.Context, req SimulateRequest) (*domain.SimulationResult, error) {
	l := s.logger(ctx)

	persons, collabs, err := s.decode(ctx, req.Persons, req.Collaborations)
	if err != nil {
		simulationsTotal.WithLabelValues(outcomeRejected).Inc()
		return nil, err
	}

	in := simulation.Input{PersonID: req.PersonID, TargetUnit: req.TargetUnit}
	if persons != nil {
		in.Persons = &persons
		if err := s.inspect(ctx, persons, collabs); err != nil {
			simulationsTotal.WithLabelValues(outcomeRejected).Inc()
			return nil, err
		}
	}
	if collabs != nil {
		in.Collaborations = &collabs
	}

	start := time.Now()
	res, err := simulation.Simulate(ctx, in, s.inspectedSnapshot(collabs))
	analysisDuration.WithLabelValues("simulate").Observe(time.Since(start).Seconds())
	if err != nil {
		var simErr *domain.SimulationError
		if errors.As(err, &simErr) {
			simulationsTotal.WithLabelValues(outcomeFailed).Inc()
			l.Error("simulation failed", zap.Error(err))
		} else {
			simulationsTotal.WithLabelValues(outcomeRejected).Inc()
		}
		return nil, err
	}

	if !res.PersonFound {
		dataQualityWarnings.WithLabelValues(string(domain.WarnPersonNotFound)).Inc()
		l.Warn("simulation person not found, organisation unchanged",
			zap.String("kind", string(domain.WarnPersonNotFound)),
			zap.String("person_id", res.PersonID),
			zap.Error(domain.ErrPersonNotFound))
		simulationsTotal.WithLabelValues(outcomeNoop).Inc()
	} else {
		simulationsTotal.WithLabelValues(outcomeOK).Inc()
	}

	impact := res.Impact
	s.record(ctx, &domain.AnalysisLog{
		Kind:       domain.LogSimulation,
		PersonID:   res.PersonID,
		TargetUnit: res.TargetUnit,
		Impact:     &impact,
	}, res.Result)
	return res, nil
}

func (s *AnalysisService) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	snap, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return snap, nil
}

// ReplaceSnapshot validates and stores a new baseline organisation.
func (s *AnalysisService) ReplaceSnapshot(ctx context.Context, personsRaw, collabsRaw []byte) (*domain.Snapshot, error) {
	persons, collabs, err := s.decode(ctx, personsRaw, collabsRaw)
	if err != nil {
		return nil, err
	}
	if persons == nil {
		return nil, domain.InvalidInputf("persons are required")
	}
	if collabs == nil {
		collabs = []domain.Collaboration{}
	}
	if err := s.inspect(ctx, persons, collabs); err != nil {
		return nil, err
	}

	snap := &domain.Snapshot{Persons: persons, Collaborations: collabs}
	if err := s.snapshots.Save(ctx, snap); err != nil {
		return nil, fmt.Errorf("save snapshot: %w", err)
	}
	s.logger(ctx).Info("snapshot replaced",
		zap.Int("persons", len(persons)), zap.Int("collaborations", len(collabs)))
	return snap, nil
}

// Insights runs the detectors over the baseline organisation.
func (s *AnalysisService) Insights(ctx context.Context) ([]domain.Detection, error) {
	res, err := s.baseline(ctx)
	if err != nil {
		return nil, err
	}
	return detection.RunAll(res, detection.Options{HubDegree: s.opt.HubDegree})
}

func (s *AnalysisService) ExportDOT(ctx context.Context) (string, error) {
	res, err := s.baseline(ctx)
	if err != nil {
		return "", err
	}
	return export.ToDOT(res, s.opt.ReportTitle), nil
}

func (s *AnalysisService) ExportExcel(ctx context.Context, w io.Writer) error {
	res, err := s.baseline(ctx)
	if err != nil {
		return err
	}
	return export.WriteExcel(w, res, s.opt.ReportTitle)
}

func (s *AnalysisService) History(ctx context.Context, limit int) ([]domain.AnalysisLog, error) {
	if s.logs == nil {
		return nil, domain.ErrLogStoreDisabled
	}
	return s.logs.ListRecent(ctx, limit)
}

// Analyze is the pure analysis path used by the offline worker.
func (s *AnalysisService) Analyze(ctx context.Context, snap *domain.Snapshot) (*domain.AnalysisResult, error) {
	return s.analyze(ctx, "file", snap.Persons, snap.Collaborations)
}

// logger prefers the request-scoped logger set by the HTTP middleware.
func (s *AnalysisService) logger(ctx context.Context) *zap.Logger {
	if l, ok := logging.Lookup(ctx); ok {
		return l
	}
	return s.log
}

func (s *AnalysisService) baseline(ctx context.Context) (*domain.AnalysisResult, error) {
	snap, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return s.analyze(ctx, "baseline", snap.Persons, snap.Collaborations)
}

func (s *AnalysisService) analyze(ctx context.Context, op string, persons []domain.Person, collabs []domain.Collaboration) (*domain.AnalysisResult, error) {
	if err := s.inspect(ctx, persons, collabs); err != nil {
		return nil, err
	}

	start := time.Now()
	res := metrics.Analyze(graph.Build(persons, collabs))
	analysisDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	s.logger(ctx).Debug("organisation analysed",
		zap.String("operation", op),
		zap.Int("people", res.Metrics.TotalPeople),
		zap.Int("collaborations", res.Metrics.TotalCollaborations),
		zap.Int("silos", res.Metrics.NumSilos))
	return res, nil
}

// inspectedSnapshot loads the stored organisation for a simulation that
// omitted its persons, applying the same data-quality checks as GetGraph.
// Supplied collaborations replace the stored ones.
func (s *AnalysisService) inspectedSnapshot(collabs []domain.Collaboration) simulation.SnapshotLoader {
	return func(ctx context.Context) (*domain.Snapshot, error) {
		snap, err := s.snapshots.Load(ctx)
		if err != nil || snap == nil {
			return snap, err
		}
		c := snap.Collaborations
		if collabs != nil {
			c = collabs
		}
		if err := s.inspect(ctx, snap.Persons, c); err != nil {
			return nil, err
		}
		return snap, nil
	}
}

// decode parses the optional wire lists and logs boundary warnings.
func (s *AnalysisService) decode(ctx context.Context, personsRaw, collabsRaw []byte) ([]domain.Person, []domain.Collaboration, error) {
	persons, pw, err := parser.DecodePersons(personsRaw)
	if err != nil {
		return nil, nil, err
	}
	collabs, cw, err := parser.DecodeCollaborations(collabsRaw)
	if err != nil {
		return nil, nil, err
	}
	s.warn(ctx, append(pw, cw...))
	return persons, collabs, nil
}

// inspect logs graph-level data-quality warnings and enforces strict ids.
func (s *AnalysisService) inspect(ctx context.Context, persons []domain.Person, collabs []domain.Collaboration) error {
	warns := validator.Inspect(persons, collabs)
	s.warn(ctx, warns)
	if s.opt.StrictIDs {
		return validator.CheckStrict(warns)
	}
	return nil
}

func (s *AnalysisService) warn(ctx context.Context, warns []domain.Warning) {
	if len(warns) == 0 {
		return
	}
	l := s.logger(ctx)
	for _, w := range warns {
		dataQualityWarnings.WithLabelValues(string(w.Kind)).Inc()
		l.Warn("data quality",
			zap.String("kind", string(w.Kind)),
			zap.String("subject", w.Subject),
			zap.String("detail", w.Message))
	}
}

// record writes a history row. Failures are logged and never surface.
func (s *AnalysisService) record(ctx context.Context, entry *domain.AnalysisLog, res *domain.AnalysisResult) {
	if s.logs == nil || res == nil {
		return
	}
	entry.TotalPeople = res.Metrics.TotalPeople
	entry.TotalCollaborations = res.Metrics.TotalCollaborations
	entry.AvgEffectiveness = res.Metrics.AvgEffectiveness
	entry.NumSilos = res.Metrics.NumSilos

	if err := s.logs.Insert(ctx, entry); err != nil {
		s.logger(ctx).Warn("failed to record analysis log",
			zap.String("kind", string(entry.Kind)), zap.Error(err))
	}
}
