package persistence

import (
	"context"

	"github.com/awieserg/Notes-Ibacy/internal/model"
)

// SnapshotRepository 以四张表存取快照的仓储（*repository.Repository 实现）
type SnapshotRepository interface {
	ReplaceSnapshot(ctx context.Context, snap model.Snapshot) error
	LoadSnapshot(ctx context.Context) (model.Snapshot, error)
	IsEmpty(ctx context.Context) (bool, error)
}

// SQLSink 将快照写入关系型数据库，每次保存在一个事务内整体替换
type SQLSink struct {
	repo SnapshotRepository
}

// NewSQLSink 创建 SQL 持久化目标
func NewSQLSink(repo SnapshotRepository) *SQLSink {
	return &SQLSink{repo: repo}
}

// Name 实现 Sink
func (s *SQLSink) Name() string { return "sql" }

// Save 实现 Sink
func (s *SQLSink) Save(ctx context.Context, snap model.Snapshot) error {
	return s.repo.ReplaceSnapshot(ctx, snap)
}

// Load 实现 Sink，四张表都为空视为尚无数据
func (s *SQLSink) Load(ctx context.Context) (model.Snapshot, bool, error) {
	empty, err := s.repo.IsEmpty(ctx)
	if err != nil {
		return model.Snapshot{}, false, err
	}
	if empty {
		return model.Snapshot{}, false, nil
	}

	snap, err := s.repo.LoadSnapshot(ctx)
	if err != nil {
		return model.Snapshot{}, false, err
	}
	return normalize(snap), true, nil
}
