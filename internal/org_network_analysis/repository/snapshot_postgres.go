package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/navigara/navigara-backend/internal/org_network_analysis/domain"
	"github.com/navigara/navigara-backend/internal/org_network_analysis/ingest/parser"
)

// DBPool is the subset of *pgxpool.Pool the snapshot store needs.
type DBPool interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const snapshotSchema = `
	CREATE TABLE IF NOT EXISTS org_snapshots (
		id             BIGSERIAL PRIMARY KEY,
		name           TEXT        NOT NULL,
		persons        JSONB       NOT NULL,
		collaborations JSONB       NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS org_snapshots_name_created_idx ON org_snapshots (name, created_at DESC);
`

// PostgresSnapshotStore appends every saved snapshot as a new row; Load
// returns the most recent one for the configured name.
type PostgresSnapshotStore struct {
	pool DBPool
	name string
	log  *zap.Logger
}

func NewPostgresSnapshotStore(pool DBPool, name string, log *zap.Logger) *PostgresSnapshotStore {
	if name == "" {
		name = "default"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &PostgresSnapshotStore{pool: pool, name: name, log: log.Named("snapshot_postgres")}
}

func (s *PostgresSnapshotStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, snapshotSchema); err != nil {
		return fmt.Errorf("failed to create org_snapshots: %w", err)
	}
	return nil
}

func (s *PostgresSnapshotStore) Load(ctx context.Context) (*domain.Snapshot, error) {
	query := `
		SELECT persons, collaborations
		FROM org_snapshots
		WHERE name = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`

	var personsJSON, collabsJSON []byte
	err := s.pool.QueryRow(ctx, query, s.name).Scan(&personsJSON, &collabsJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		s.log.Info("no stored snapshot, seeding default", zap.String("name", s.name))
		seed := domain.DefaultSnapshot()
		if err := s.Save(ctx, seed); err != nil {
			return nil, err
		}
		return seed, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	persons, pw, err := parser.DecodePersons(personsJSON)
	if err != nil {
		return nil, err
	}
	collabs, cw, err := parser.DecodeCollaborations(collabsJSON)
	if err != nil {
		return nil, err
	}
	for _, w := range append(pw, cw...) {
		s.log.Warn("snapshot data quality", zap.String("kind", string(w.Kind)), zap.String("subject", w.Subject), zap.String("detail", w.Message))
	}
	if persons == nil {
		persons = []domain.Person{}
	}
	if collabs == nil {
		collabs = []domain.Collaboration{}
	}
	return &domain.Snapshot{Persons: persons, Collaborations: collabs}, nil
}

func (s *PostgresSnapshotStore) Save(ctx context.Context, snap *domain.Snapshot) error {
	if snap == nil {
		return fmt.Errorf("snapshot is nil")
	}
	persons, collabs := snap.Persons, snap.Collaborations
	if persons == nil {
		persons = []domain.Person{}
	}
	if collabs == nil {
		collabs = []domain.Collaboration{}
	}

	personsJSON, err := json.Marshal(persons)
	if err != nil {
		return fmt.Errorf("failed to marshal persons: %w", err)
	}
	collabsJSON, err := json.Marshal(collabs)
	if err != nil {
		return fmt.Errorf("failed to marshal collaborations: %w", err)
	}

	query := `
		INSERT INTO org_snapshots (name, persons, collaborations)
		VALUES ($1, $2, $3)
	`
	if _, err := s.pool.Exec(ctx, query, s.name, json.RawMessage(personsJSON), json.RawMessage(collabsJSON)); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}
