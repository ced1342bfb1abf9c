package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/navigara/navigara-backend/internal/org_network_analysis/domain"
)

// SnapshotStore holds the baseline organisation. Implementations seed
// domain.DefaultSnapshot when nothing has been stored yet.
type SnapshotStore interface {
	Load(ctx context.Context) (*domain.Snapshot, error)
	Save(ctx context.Context, s *domain.Snapshot) error
}

// withEmptyLists replaces nil lists so stored documents never hold null.
func withEmptyLists(s *domain.Snapshot) (domain.Snapshot, error) {
	if s == nil {
		return domain.Snapshot{}, fmt.Errorf("snapshot is nil")
	}
	out := *s
	if out.Persons == nil {
		out.Persons = []domain.Person{}
	}
	if out.Collaborations == nil {
		out.Collaborations = []domain.Collaboration{}
	}
	return out, nil
}

func marshalSnapshot(s *domain.Snapshot) ([]byte, error) {
	out, err := withEmptyLists(s)
	if err != nil {
		return nil, err
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return b, nil
}

func marshalSnapshotYAML(s *domain.Snapshot) ([]byte, error) {
	out, err := withEmptyLists(s)
	if err != nil {
		return nil, err
	}
	b, err := yaml.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return b, nil
}
