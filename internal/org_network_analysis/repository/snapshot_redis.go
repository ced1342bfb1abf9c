package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/navigara/navigara-backend/internal/org_network_analysis/domain"
	"github.com/navigara/navigara-backend/internal/org_network_analysis/ingest/parser"
)

const defaultSnapshotKeyPrefix = "nakhoda:snapshot:"

// RedisSnapshotStore keeps the snapshot as one JSON value without expiry.
type RedisSnapshotStore struct {
	client *redis.Client
	key    string
	log    *zap.Logger
}

func NewRedisSnapshotStore(client *redis.Client, prefix, name string, log *zap.Logger) *RedisSnapshotStore {
	if prefix == "" {
		prefix = defaultSnapshotKeyPrefix
	}
	if name == "" {
		name = "default"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisSnapshotStore{client: client, key: prefix + name, log: log.Named("snapshot_redis")}
}

func (s *RedisSnapshotStore) Key() string { return s.key }

func (s *RedisSnapshotStore) Load(ctx context.Context) (*domain.Snapshot, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		s.log.Info("snapshot key missing, seeding default", zap.String("key", s.key))
		seed := domain.DefaultSnapshot()
		if err := s.Save(ctx, seed); err != nil {
			return nil, err
		}
		return seed, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	snap, warns, err := parser.ParseSnapshotJSON(data)
	if err != nil {
		return nil, err
	}
	for _, w := range warns {
		s.log.Warn("snapshot data quality", zap.String("kind", string(w.Kind)), zap.String("subject", w.Subject), zap.String("detail", w.Message))
	}
	return snap, nil
}

func (s *RedisSnapshotStore) Save(ctx context.Context, snap *domain.Snapshot) error {
	b, err := marshalSnapshot(snap)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, b, 0).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}
