package simulation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navigara/navigara-backend/internal/org_network_analysis/domain"
)

func snapshotLoader(s *domain.Snapshot, err error) SnapshotLoader {
	return func(context.Context) (*domain.Snapshot, error) { return s, err }
}

func failLoader(t *testing.T) SnapshotLoader {
	return func(context.Context) (*domain.Snapshot, error) {
		t.Fatal("snapshot loader must not be called")
		return nil, nil
	}
}

func TestSimulate_UnitChangeKeepsTopology(t *testing.T) {
	s := domain.DefaultSnapshot()
	res, err := Simulate(context.Background(), Input{
		Persons:        &s.Persons,
		Collaborations: &s.Collaborations,
		PersonID:       "3",
		TargetUnit:     "A",
	}, failLoader(t))
	require.NoError(t, err)

	assert.True(t, res.PersonFound)
	assert.Equal(t, res.Baseline.Metrics.TotalCollaborations, res.Result.Metrics.TotalCollaborations)
	assert.Equal(t, res.Baseline.Metrics.NumSilos, res.Result.Metrics.NumSilos)
	assert.InDelta(t, 0.0, res.Impact, 1e-9)
	assert.Equal(t, "A", res.Result.Node("3").Unit)
	assert.Equal(t, "SDM", res.Baseline.Node("3").Unit)

	// the caller's slice is untouched
	assert.Equal(t, "SDM", s.Persons[2].Unit)
}

func TestSimulate_UnknownPersonIsNoop(t *testing.T) {
	s := domain.DefaultSnapshot()
	res, err := Simulate(context.Background(), Input{
		Persons:        &s.Persons,
		Collaborations: &s.Collaborations,
		PersonID:       "999",
		TargetUnit:     "A",
	}, nil)
	require.NoError(t, err)

	assert.False(t, res.PersonFound)
	assert.Equal(t, res.Baseline, res.Result)
	assert.Zero(t, res.Impact)
	assert.Contains(t, res.Report, "no employee with ID 999 was found")
}

func TestSimulate_InvalidRequest(t *testing.T) {
	s := domain.DefaultSnapshot()
	for _, in := range []Input{
		{Persons: &s.Persons, TargetUnit: "A"},
		{Persons: &s.Persons, PersonID: "1", TargetUnit: "   "},
	} {
		_, err := Simulate(context.Background(), in, failLoader(t))
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	}
}

func TestSimulate_FallsBackToSnapshot(t *testing.T) {
	res, err := Simulate(context.Background(), Input{PersonID: "1", TargetUnit: "SDM"},
		snapshotLoader(domain.DefaultSnapshot(), nil))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Result.Metrics.TotalPeople)
	assert.Equal(t, 3, res.Result.Metrics.TotalCollaborations)
}

func TestSimulate_SuppliedPersonsWithoutCollaborations(t *testing.T) {
	s := domain.DefaultSnapshot()
	res, err := Simulate(context.Background(), Input{Persons: &s.Persons, PersonID: "1", TargetUnit: "SDM"}, failLoader(t))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Result.Metrics.TotalCollaborations)
	assert.Equal(t, 3, res.Result.Metrics.NumSilos)
}

func TestSimulate_ExplicitEmptyPersons(t *testing.T) {
	empty := []domain.Person{}
	res, err := Simulate(context.Background(), Input{Persons: &empty, PersonID: "1", TargetUnit: "A"}, failLoader(t))
	require.NoError(t, err)
	assert.False(t, res.PersonFound)
	assert.Zero(t, res.Result.Metrics.TotalPeople)
	assert.Zero(t, res.Result.Metrics.AvgEffectiveness)
}

func TestSimulate_SnapshotFailure(t *testing.T) {
	boom := errors.New("redis down")
	_, err := Simulate(context.Background(), Input{PersonID: "1", TargetUnit: "A"}, snapshotLoader(nil, boom))

	var simErr *domain.SimulationError
	require.ErrorAs(t, err, &simErr)
	assert.Equal(t, "load snapshot", simErr.Op)
	assert.ErrorIs(t, err, boom)

	_, err = Simulate(context.Background(), Input{PersonID: "1", TargetUnit: "A"}, nil)
	assert.ErrorAs(t, err, &simErr)
}

func TestSimulate_LoaderRejectsData(t *testing.T) {
	_, err := Simulate(context.Background(), Input{PersonID: "1", TargetUnit: "A"},
		snapshotLoader(nil, domain.InvalidInputf("duplicate person ids: 1")))

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	var simErr *domain.SimulationError
	assert.False(t, errors.As(err, &simErr))
}

func TestMove(t *testing.T) {
	in := []domain.Person{{ID: "1", Unit: "A"}, {ID: "2", Unit: "B"}, {ID: "1", Unit: "C"}}
	out, found := Move(in, "1", "Z")
	require.True(t, found)
	assert.Equal(t, "Z", out[0].Unit)
	assert.Equal(t, "B", out[1].Unit)
	assert.Equal(t, "Z", out[2].Unit)
	assert.Equal(t, "A", in[0].Unit)
}

func TestReport(t *testing.T) {
	got := Report("3", "A",
		domain.Summary{AvgEffectiveness: 170.666, NumSilos: 2},
		domain.Summary{AvgEffectiveness: 168.5, NumSilos: 1},
		true)

	want := "Simulation Impact Report:\n" +
		"- Employee (ID: 3) moved to unit 'A'.\n\n" +
		"**Team Effectiveness Score (New): 168.50**\n" +
		"**Team Effectiveness Score (Old): 170.67**\n" +
		"**Impact: -2.17 Points**\n\n" +
		"- Organizational Silos: 1 (Before: 2)"
	assert.Equal(t, want, got)

	pos := Report("3", "A", domain.Summary{AvgEffectiveness: 1}, domain.Summary{AvgEffectiveness: 2}, true)
	assert.Contains(t, pos, "**Impact: +1.00 Points**")
}
