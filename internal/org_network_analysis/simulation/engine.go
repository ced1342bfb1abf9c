package simulation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/navigara/navigara-backend/internal/org_network_analysis/domain"
	"github.com/navigara/navigara-backend/internal/org_network_analysis/graph"
	"github.com/navigara/navigara-backend/internal/org_network_analysis/metrics"
)

// SnapshotLoader supplies the stored organisation when a request omits it.
// A loader may reject the stored data with an ErrInvalidInput error, which
// is returned as is; any other failure becomes a SimulationError.
type SnapshotLoader func(ctx context.Context) (*domain.Snapshot, error)

// Input describes one what-if move. A nil Persons or Collaborations pointer
// means the list was not supplied; a pointer to an empty slice is an explicit
// empty organisation.
type Input struct {
	Persons        *[]domain.Person
	Collaborations *[]domain.Collaboration
	PersonID       string
	TargetUnit     string
}

// Simulate moves one person to another unit, analyses the organisation
// before and after, and reports the difference. Unknown person ids leave the
// organisation unchanged and are reported through PersonFound.
func Simulate(ctx context.Context, in Input, load SnapshotLoader) (res *domain.SimulationResult, err error) {
	personID := strings.TrimSpace(in.PersonID)
	targetUnit := strings.TrimSpace(in.TargetUnit)
	if personID == "" {
		return nil, domain.InvalidRequestf("person_id is required")
	}
	if targetUnit == "" {
		return nil, domain.InvalidRequestf("target_unit is required")
	}

	persons, collabs, err := resolve(ctx, in, load)
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = &domain.SimulationError{Op: "analyze", Err: fmt.Errorf("%v", r)}
		}
	}()

	moved, found := Move(persons, personID, targetUnit)

	before := metrics.Analyze(graph.Build(persons, collabs))
	after := metrics.Analyze(graph.Build(moved, collabs))
	impact := after.Metrics.AvgEffectiveness - before.Metrics.AvgEffectiveness

	return &domain.SimulationResult{
		Result:      after,
		Baseline:    before,
		PersonID:    personID,
		TargetUnit:  targetUnit,
		PersonFound: found,
		Impact:      impact,
		Report:      Report(personID, targetUnit, before.Metrics, after.Metrics, found),
	}, nil
}

func resolve(ctx context.Context, in Input, load SnapshotLoader) ([]domain.Person, []domain.Collaboration, error) {
	if in.Persons != nil {
		var collabs []domain.Collaboration
		if in.Collaborations != nil {
			collabs = *in.Collaborations
		}
		return *in.Persons, collabs, nil
	}

	if load == nil {
		return nil, nil, &domain.SimulationError{Op: "load snapshot", Err: fmt.Errorf("no snapshot loader configured")}
	}
	snap, err := load(ctx)
	if errors.Is(err, domain.ErrInvalidInput) {
		return nil, nil, err
	}
	if err != nil {
		return nil, nil, &domain.SimulationError{Op: "load snapshot", Err: err}
	}
	if snap == nil {
		return nil, nil, &domain.SimulationError{Op: "load snapshot", Err: domain.ErrSnapshotNotFound}
	}

	collabs := snap.Collaborations
	if in.Collaborations != nil {
		collabs = *in.Collaborations
	}
	return snap.Persons, collabs, nil
}

// Move returns a copy of persons with every record of personID assigned to
// targetUnit. The input slice is not modified.
func Move(persons []domain.Person, personID, targetUnit string) ([]domain.Person, bool) {
	out := make([]domain.Person, len(persons))
	copy(out, persons)

	found := false
	for i := range out {
		if out[i].ID == personID {
			out[i].Unit = targetUnit
			found = true
		}
	}
	return out, found
}
