package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/navigara/navigara-backend/config"
	"github.com/navigara/navigara-backend/internal/org_network_analysis/repository"
	"github.com/navigara/navigara-backend/internal/org_network_analysis/service"
	"github.com/navigara/navigara-backend/internal/storage/postgres"
)

// Stores holds the backends selected by configuration. Unused backends are nil.
type Stores struct {
	Snapshots repository.SnapshotStore
	Logs      *repository.AnalysisLogRepository

	Pool  *pgxpool.Pool
	Redis *redis.Client
	LogDB *sql.DB
}

// OpenStores connects the configured snapshot store and, when enabled, the
// analysis log store, creating their tables if needed.
func OpenStores(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Stores, error) {
	st := &Stores{}

	switch cfg.Snapshot.Store {
	case config.SnapshotStoreRedis:
		client, err := OpenRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		st.Redis = client
		st.Snapshots = repository.NewRedisSnapshotStore(client, cfg.Snapshot.RedisPrefix, cfg.Snapshot.Name, log)

	case config.SnapshotStorePostgres:
		pool, err := OpenDB(ctx, DBOptions{
			DSN:      cfg.Postgres.DSN,
			MaxConns: cfg.Postgres.MaxConns,
			MinConns: cfg.Postgres.MinConns,
		})
		if err != nil {
			return nil, err
		}
		st.Pool = pool
		pg := repository.NewPostgresSnapshotStore(pool, cfg.Snapshot.Name, log)
		if err := pg.EnsureSchema(ctx); err != nil {
			st.Close()
			return nil, fmt.Errorf("snapshot schema: %w", err)
		}
		st.Snapshots = pg

	default:
		st.Snapshots = repository.NewFileSnapshotStore(cfg.Snapshot.FilePath, log)
	}

	if cfg.LogStore.Enabled {
		db, err := postgres.NewConnection(ctx, &cfg.Database)
		if err != nil {
			st.Close()
			return nil, err
		}
		st.LogDB = db
		st.Logs = repository.NewAnalysisLogRepository(db)
		if err := st.Logs.EnsureSchema(ctx); err != nil {
			st.Close()
			return nil, fmt.Errorf("analysis log schema: %w", err)
		}
	}

	log.Info("stores ready",
		zap.String("snapshot_store", cfg.Snapshot.Store),
		zap.Bool("analysis_log", st.Logs != nil))
	return st, nil
}

// LogStore returns the analysis log as a service.LogStore, or a nil
// interface when the log store is disabled.
func (s *Stores) LogStore() service.LogStore {
	if s.Logs == nil {
		return nil
	}
	return s.Logs
}

func (s *Stores) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
	if s.Redis != nil {
		_ = s.Redis.Close()
	}
	if s.LogDB != nil {
		_ = s.LogDB.Close()
	}
}
