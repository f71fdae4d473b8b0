package service

import (
	"context"

	"github.com/awieserg/Notes-Ibacy/internal/dto"
	"github.com/awieserg/Notes-Ibacy/internal/model"
	"github.com/awieserg/Notes-Ibacy/internal/store"
)

// SnapshotService 全量数据读取（持久化格式）
type SnapshotService interface {
	Get(ctx context.Context) (model.Snapshot, error)
	Stats(ctx context.Context) (*dto.SnapshotStatsResponse, error)
}

type snapshotService struct {
	store *store.Store
}

// NewSnapshotService 创建 SnapshotService 实例
func NewSnapshotService(st *store.Store) SnapshotService {
	return &snapshotService{store: st}
}

func (s *snapshotService) Get(ctx context.Context) (model.Snapshot, error) {
	return s.store.Snapshot(), nil
}

func (s *snapshotService) Stats(ctx context.Context) (*dto.SnapshotStatsResponse, error) {
	counts := s.store.Counts()
	return &dto.SnapshotStatsResponse{
		Students: counts[model.KindStudent],
		Teachers: counts[model.KindTeacher],
		Courses:  counts[model.KindCourse],
		Grades:   counts[model.KindGrade],
	}, nil
}
