package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/navigara/navigara-backend/internal/logging"
	"github.com/navigara/navigara-backend/internal/org_network_analysis/domain"
)

type memStore struct {
	snap    *domain.Snapshot
	loadErr error
	saved   []*domain.Snapshot
	loads   int
}

func (m *memStore) Load(context.Context) (*domain.Snapshot, error) {
	m.loads++
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.snap == nil {
		m.snap = domain.DefaultSnapshot()
	}
	return m.snap, nil
}

func (m *memStore) Save(_ context.Context, s *domain.Snapshot) error {
	m.saved = append(m.saved, s)
	m.snap = s
	return nil
}

type memLogs struct {
	rows      []domain.AnalysisLog
	insertErr error
}

func (m *memLogs) Insert(_ context.Context, l *domain.AnalysisLog) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.rows = append(m.rows, *l)
	return nil
}

func (m *memLogs) ListRecent(_ context.Context, limit int) ([]domain.AnalysisLog, error) {
	if limit > len(m.rows) || limit <= 0 {
		limit = len(m.rows)
	}
	return m.rows[:limit], nil
}

func newService(t *testing.T, store *memStore, logs LogStore, opt Options) (*AnalysisService, *observer.ObservedLogs) {
	t.Helper()
	core, observed := observer.New(zap.DebugLevel)
	return NewAnalysisService(store, logs, opt, zap.New(core)), observed
}

func TestGetGraph_DefaultSnapshot(t *testing.T) {
	logs := &memLogs{}
	svc, _ := newService(t, &memStore{}, logs, Options{})

	res, err := svc.GetGraph(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Metrics.TotalPeople)
	assert.Equal(t, 3, res.Metrics.TotalCollaborations)
	assert.Equal(t, 1, res.Metrics.NumSilos)

	require.Len(t, logs.rows, 1)
	assert.Equal(t, domain.LogBaseline, logs.rows[0].Kind)
	assert.Equal(t, 3, logs.rows[0].TotalPeople)
}

func TestGetGraph_LoadFailure(t *testing.T) {
	boom := errors.New("disk gone")
	svc, _ := newService(t, &memStore{loadErr: boom}, nil, Options{})
	_, err := svc.GetGraph(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestLoadCustomGraph_WarnsAndTolerates(t *testing.T) {
	svc, observed := newService(t, &memStore{}, nil, Options{})
	before := testutil.ToFloat64(dataQualityWarnings.WithLabelValues(string(domain.WarnUnknownEndpoint)))

	persons := []byte(`"[{\"id\":\"1\",\"nama\":\"A\",\"unit\":\"X\",\"skor_potensi\":80,\"skor_kinerja\":80},{\"id\":\"2\",\"nama\":\"B\",\"unit\":\"Y\",\"skor_potensi\":50,\"skor_kinerja\":50}]"`)
	collabs := []byte(`[{"source":"1","target":"2"},{"source":"1","target":"ghost"}]`)

	res, err := svc.LoadCustomGraph(context.Background(), persons, collabs)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Metrics.TotalCollaborations)
	assert.Equal(t, 1, res.Metrics.NumSilos)

	warned := observed.FilterMessage("data quality").FilterField(zap.String("kind", string(domain.WarnUnknownEndpoint)))
	assert.Equal(t, 1, warned.Len())
	assert.Equal(t, before+1, testutil.ToFloat64(dataQualityWarnings.WithLabelValues(string(domain.WarnUnknownEndpoint))))
}

func TestLoadCustomGraph_Rejects(t *testing.T) {
	svc, _ := newService(t, &memStore{}, nil, Options{})

	_, err := svc.LoadCustomGraph(context.Background(), []byte(`{"id":"1"}`), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.LoadCustomGraph(context.Background(), nil, []byte(`[]`))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoadCustomGraph_StrictIDs(t *testing.T) {
	persons := []byte(`[{"id":"1"},{"id":"1"}]`)

	lenient, _ := newService(t, &memStore{}, nil, Options{})
	res, err := lenient.LoadCustomGraph(context.Background(), persons, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Metrics.TotalPeople)

	strict, _ := newService(t, &memStore{}, nil, Options{StrictIDs: true})
	_, err = strict.LoadCustomGraph(context.Background(), persons, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSimulateMove_FallsBackToSnapshot(t *testing.T) {
	store := &memStore{}
	logs := &memLogs{}
	svc, _ := newService(t, store, logs, Options{})

	res, err := svc.SimulateMove(context.Background(), SimulateRequest{PersonID: "3", TargetUnit: "A"})
	require.NoError(t, err)
	assert.Equal(t, 1, store.loads)
	assert.True(t, res.PersonFound)
	assert.InDelta(t, 0, res.Impact, 1e-9)
	assert.Contains(t, res.Report, "Employee (ID: 3) moved to unit 'A'.")

	require.Len(t, logs.rows, 1)
	assert.Equal(t, domain.LogSimulation, logs.rows[0].Kind)
	assert.Equal(t, "3", logs.rows[0].PersonID)
	require.NotNil(t, logs.rows[0].Impact)
}

func dirtySnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Persons: []domain.Person{
			{ID: "1", Name: "A", Unit: "X"},
			{ID: "1", Name: "A2", Unit: "X"},
			{ID: "2", Name: "B", Unit: "Y"},
		},
		Collaborations: []domain.Collaboration{{SourceID: "1", TargetID: "9"}},
	}
}

func TestSimulateMove_StoredSnapshotIsInspected(t *testing.T) {
	svc, observed := newService(t, &memStore{snap: dirtySnapshot()}, nil, Options{})

	res, err := svc.SimulateMove(context.Background(), SimulateRequest{PersonID: "2", TargetUnit: "X"})
	require.NoError(t, err)
	assert.True(t, res.PersonFound)
	assert.Equal(t, 2, observed.FilterMessage("data quality").Len())
}

func TestSimulateMove_StrictIDsRejectStoredSnapshot(t *testing.T) {
	svc, _ := newService(t, &memStore{snap: dirtySnapshot()}, nil, Options{StrictIDs: true})
	before := testutil.ToFloat64(simulationsTotal.WithLabelValues(outcomeRejected))

	_, err := svc.GetGraph(context.Background())
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	res, err := svc.SimulateMove(context.Background(), SimulateRequest{PersonID: "2", TargetUnit: "X"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, res)
	assert.Equal(t, before+1, testutil.ToFloat64(simulationsTotal.WithLabelValues(outcomeRejected)))
}

func TestSimulateMove_SuppliedListsSkipStore(t *testing.T) {
	store := &memStore{}
	svc, _ := newService(t, store, nil, Options{})

	res, err := svc.SimulateMove(context.Background(), SimulateRequest{
		PersonID:       "1",
		TargetUnit:     "B",
		Persons:        []byte(`[{"id":"1","unit":"A"},{"id":"2","unit":"A"}]`),
		Collaborations: []byte(`[]`),
	})
	require.NoError(t, err)
	assert.Zero(t, store.loads)
	assert.Equal(t, 2, res.Result.Metrics.NumSilos)
}

func TestSimulateMove_UnknownPersonIsLoggedNoop(t *testing.T) {
	svc, observed := newService(t, &memStore{}, nil, Options{})
	before := testutil.ToFloat64(simulationsTotal.WithLabelValues(outcomeNoop))

	res, err := svc.SimulateMove(context.Background(), SimulateRequest{PersonID: "404", TargetUnit: "A"})
	require.NoError(t, err)
	assert.False(t, res.PersonFound)
	assert.Equal(t, res.Baseline, res.Result)
	assert.Equal(t, 1, observed.FilterField(zap.String("kind", string(domain.WarnPersonNotFound))).Len())
	assert.Equal(t, before+1, testutil.ToFloat64(simulationsTotal.WithLabelValues(outcomeNoop)))
}

func TestSimulateMove_Errors(t *testing.T) {
	svc, _ := newService(t, &memStore{}, nil, Options{})
	_, err := svc.SimulateMove(context.Background(), SimulateRequest{TargetUnit: "A"})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	_, err = svc.SimulateMove(context.Background(), SimulateRequest{PersonID: "1", TargetUnit: "A", Persons: []byte(`42`)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	boom := errors.New("redis down")
	broken, _ := newService(t, &memStore{loadErr: boom}, nil, Options{})
	_, err = broken.SimulateMove(context.Background(), SimulateRequest{PersonID: "1", TargetUnit: "A"})
	var simErr *domain.SimulationError
	require.ErrorAs(t, err, &simErr)
	assert.ErrorIs(t, err, boom)
}

func TestReplaceSnapshot(t *testing.T) {
	store := &memStore{}
	svc, _ := newService(t, store, nil, Options{})

	snap, err := svc.ReplaceSnapshot(context.Background(), []byte(`[{"id":"9","nama":"Z","unit":"Q"}]`), nil)
	require.NoError(t, err)
	require.Len(t, store.saved, 1)
	assert.Equal(t, "9", snap.Persons[0].ID)
	assert.NotNil(t, snap.Collaborations)

	got, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, snap, got)

	_, err = svc.ReplaceSnapshot(context.Background(), nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInsightsAndExports(t *testing.T) {
	store := &memStore{snap: &domain.Snapshot{
		Persons: []domain.Person{{ID: "1", Unit: "A"}, {ID: "2", Unit: "B"}},
	}}
	svc, _ := newService(t, store, nil, Options{ReportTitle: "HQ"})

	ds, err := svc.Insights(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, ds)

	dot, err := svc.ExportDOT(context.Background())
	require.NoError(t, err)
	assert.Contains(t, dot, `label="HQ"`)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportExcel(context.Background(), &buf))
	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), "People")
}

func TestHistory(t *testing.T) {
	disabled, _ := newService(t, &memStore{}, nil, Options{})
	_, err := disabled.History(context.Background(), 10)
	assert.ErrorIs(t, err, domain.ErrLogStoreDisabled)

	logs := &memLogs{}
	svc, _ := newService(t, &memStore{}, logs, Options{})
	_, err = svc.GetGraph(context.Background())
	require.NoError(t, err)

	rows, err := svc.History(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestLogStoreFailureDoesNotFailAnalysis(t *testing.T) {
	svc, observed := newService(t, &memStore{}, &memLogs{insertErr: errors.New("db down")}, Options{})

	_, err := svc.GetGraph(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, observed.FilterMessage("failed to record analysis log").Len())
}

func TestRequestScopedLoggerIsPreferred(t *testing.T) {
	svc, serviceLogs := newService(t, &memStore{}, nil, Options{})
	core, reqLogs := observer.New(zap.WarnLevel)
	ctx := logging.WithLogger(context.Background(), zap.New(core))

	_, err := svc.LoadCustomGraph(ctx, []byte(`[{"id":"1"}]`), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, reqLogs.FilterMessage("data quality").Len())
	assert.Zero(t, serviceLogs.FilterMessage("data quality").Len())
}
