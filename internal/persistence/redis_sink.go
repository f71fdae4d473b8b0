package persistence

import (
	"context"
	"fmt"

	"github.com/awieserg/Notes-Ibacy/internal/model"
)

// SnapshotStore 以键值方式存取快照的客户端（*redis.Client 实现）
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, key string, data []byte) error
	LoadSnapshot(ctx context.Context, key string) ([]byte, bool, error)
}

// RedisSink 将快照 JSON 保存在单个 Redis key 中
type RedisSink struct {
	client SnapshotStore
	key    string
}

// NewRedisSink 创建 Redis 持久化目标
func NewRedisSink(client SnapshotStore, key string) *RedisSink {
	return &RedisSink{client: client, key: key}
}

// Name 实现 Sink
func (s *RedisSink) Name() string { return "redis" }

// Save 实现 Sink
func (s *RedisSink) Save(ctx context.Context, snap model.Snapshot) error {
	data, err := Encode(snap)
	if err != nil {
		return err
	}
	if err := s.client.SaveSnapshot(ctx, s.key, data); err != nil {
		return fmt.Errorf("写入 Redis 快照失败: %w", err)
	}
	return nil
}

// Load 实现 Sink
func (s *RedisSink) Load(ctx context.Context) (model.Snapshot, bool, error) {
	data, ok, err := s.client.LoadSnapshot(ctx, s.key)
	if err != nil {
		return model.Snapshot{}, false, fmt.Errorf("读取 Redis 快照失败: %w", err)
	}
	if !ok {
		return model.Snapshot{}, false, nil
	}

	snap, err := Decode(data)
	if err != nil {
		return model.Snapshot{}, false, fmt.Errorf("redis key %s: %w", s.key, err)
	}
	return snap, true, nil
}
