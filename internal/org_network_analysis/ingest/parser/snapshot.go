package parser

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/navigara/navigara-backend/internal/org_network_analysis/domain"
)

// ParseSnapshotFile reads a snapshot document from disk. Files ending in
// .yaml or .yml are read as YAML, everything else as JSON.
func ParseSnapshotFile(path string) (*domain.Snapshot, []domain.Warning, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseSnapshotYAML(b)
	default:
		return ParseSnapshotJSON(b)
	}
}

// ParseSnapshotJSON accepts {"pegawai": [...], "kolaborasi": [...]} as well
// as the English keys "persons" and "collaborations".
func ParseSnapshotJSON(b []byte) (*domain.Snapshot, []domain.Warning, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, nil, domain.InvalidInputf("snapshot: %v", err)
	}
	if doc == nil {
		return nil, nil, domain.InvalidInputf("snapshot: document is empty")
	}

	persons, pw, err := DecodePersons(firstRaw(doc, "pegawai", "persons"))
	if err != nil {
		return nil, nil, err
	}
	collabs, cw, err := DecodeCollaborations(firstRaw(doc, "kolaborasi", "collaborations"))
	if err != nil {
		return nil, nil, err
	}

	if persons == nil {
		persons = []domain.Person{}
	}
	if collabs == nil {
		collabs = []domain.Collaboration{}
	}
	return &domain.Snapshot{Persons: persons, Collaborations: collabs}, append(pw, cw...), nil
}

func ParseSnapshotYAML(b []byte) (*domain.Snapshot, []domain.Warning, error) {
	var doc any
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, nil, domain.InvalidInputf("snapshot: %v", err)
	}
	if doc == nil {
		return nil, nil, domain.InvalidInputf("snapshot: document is empty")
	}
	asJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, nil, domain.InvalidInputf("snapshot: %v", err)
	}
	return ParseSnapshotJSON(asJSON)
}

func firstRaw(doc map[string]json.RawMessage, keys ...string) json.RawMessage {
	for _, k := range keys {
		if v, ok := doc[k]; ok {
			return v
		}
	}
	return nil
}
