package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/navigara/navigara-backend/internal/org_network_analysis/domain"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 200
)

const analysisLogSchema = `
	CREATE TABLE IF NOT EXISTS analysis_logs (
		id                   UUID PRIMARY KEY,
		kind                 TEXT             NOT NULL,
		person_id            TEXT,
		target_unit          TEXT,
		total_people         INTEGER          NOT NULL,
		total_collaborations INTEGER          NOT NULL,
		avg_effectiveness    DOUBLE PRECISION NOT NULL,
		num_silos            INTEGER          NOT NULL,
		impact               DOUBLE PRECISION,
		created_at           TIMESTAMPTZ      NOT NULL DEFAULT NOW()
	)
`

// AnalysisLogRepository handles PostgreSQL operations for analysis history
type AnalysisLogRepository struct {
	db *sql.DB
}

func NewAnalysisLogRepository(db *sql.DB) *AnalysisLogRepository {
	return &AnalysisLogRepository{db: db}
}

func (r *AnalysisLogRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, analysisLogSchema); err != nil {
		return fmt.Errorf("failed to create analysis_logs: %w", err)
	}
	return nil
}

// Insert stores one log row. ID and CreatedAt are filled in when empty.
func (r *AnalysisLogRepository) Insert(ctx context.Context, l *domain.AnalysisLog) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}

	query := `
		INSERT INTO analysis_logs (
			id, kind, person_id, target_unit, total_people,
			total_collaborations, avg_effectiveness, num_silos, impact
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`

	var personID, targetUnit sql.NullString
	if l.PersonID != "" {
		personID = sql.NullString{String: l.PersonID, Valid: true}
	}
	if l.TargetUnit != "" {
		targetUnit = sql.NullString{String: l.TargetUnit, Valid: true}
	}
	var impact sql.NullFloat64
	if l.Impact != nil {
		impact = sql.NullFloat64{Float64: *l.Impact, Valid: true}
	}

	var createdAt time.Time
	err := r.db.QueryRowContext(ctx, query,
		l.ID,
		string(l.Kind),
		personID,
		targetUnit,
		l.TotalPeople,
		l.TotalCollaborations,
		l.AvgEffectiveness,
		l.NumSilos,
		impact,
	).Scan(&createdAt)
	if err != nil {
		return fmt.Errorf("failed to insert analysis log: %w", err)
	}

	l.CreatedAt = createdAt
	return nil
}

// ListRecent returns the newest rows first. limit is clamped to
// [1, MaxHistoryLimit]; zero or negative selects DefaultHistoryLimit.
func (r *AnalysisLogRepository) ListRecent(ctx context.Context, limit int) ([]domain.AnalysisLog, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	query := `
		SELECT id, kind, person_id, target_unit, total_people,
		       total_collaborations, avg_effectiveness, num_silos, impact, created_at
		FROM analysis_logs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis logs: %w", err)
	}
	defer rows.Close()

	out := []domain.AnalysisLog{}
	for rows.Next() {
		var (
			l                    domain.AnalysisLog
			kind                 string
			personID, targetUnit sql.NullString
			impact               sql.NullFloat64
		)
		if err := rows.Scan(
			&l.ID,
			&kind,
			&personID,
			&targetUnit,
			&l.TotalPeople,
			&l.TotalCollaborations,
			&l.AvgEffectiveness,
			&l.NumSilos,
			&impact,
			&l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan analysis log: %w", err)
		}
		l.Kind = domain.LogKind(kind)
		l.PersonID = personID.String
		l.TargetUnit = targetUnit.String
		if impact.Valid {
			v := impact.Float64
			l.Impact = &v
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate analysis logs: %w", err)
	}
	return out, nil
}
