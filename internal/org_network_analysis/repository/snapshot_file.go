package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/navigara/navigara-backend/internal/org_network_analysis/domain"
	"github.com/navigara/navigara-backend/internal/org_network_analysis/ingest/parser"
)

// FileSnapshotStore keeps the snapshot in a JSON (or YAML) document on disk.
type FileSnapshotStore struct {
	path string
	log  *zap.Logger
	mu   sync.RWMutex
}

func NewFileSnapshotStore(path string, log *zap.Logger) *FileSnapshotStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &FileSnapshotStore{path: path, log: log.Named("snapshot_file")}
}

func (s *FileSnapshotStore) Load(ctx context.Context) (*domain.Snapshot, error) {
	s.mu.RLock()
	snap, warns, err := parser.ParseSnapshotFile(s.path)
	s.mu.RUnlock()

	if errors.Is(err, fs.ErrNotExist) {
		s.log.Info("snapshot file missing, seeding default", zap.String("path", s.path))
		seed := domain.DefaultSnapshot()
		if err := s.Save(ctx, seed); err != nil {
			return nil, err
		}
		return seed, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %s: %w", s.path, err)
	}

	for _, w := range warns {
		s.log.Warn("snapshot data quality", zap.String("kind", string(w.Kind)), zap.String("subject", w.Subject), zap.String("detail", w.Message))
	}
	return snap, nil
}

// Save writes YAML when the path ends in .yaml or .yml, JSON otherwise,
// matching how Load picks the parser.
func (s *FileSnapshotStore) Save(_ context.Context, snap *domain.Snapshot) error {
	marshal := marshalSnapshot
	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".yaml", ".yml":
		marshal = marshalSnapshotYAML
	}
	b, err := marshal(snap)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create snapshot dir: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}
