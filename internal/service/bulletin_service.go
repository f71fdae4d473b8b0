package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/awieserg/Notes-Ibacy/internal/dto"
	"github.com/awieserg/Notes-Ibacy/internal/model"
	"github.com/awieserg/Notes-Ibacy/internal/report"
	"github.com/awieserg/Notes-Ibacy/internal/store"
)

// BulletinService 成绩单业务接口
type BulletinService interface {
	// Get 组装单个学生的成绩单
	Get(ctx context.Context, studentID string) (*report.Bulletin, error)
	// List 按年级/姓名筛选的成绩单摘要
	List(ctx context.Context, req *dto.BulletinListRequest) ([]report.Summary, error)
}

type bulletinService struct {
	store  *store.Store
	header report.Header
	logger *zap.Logger
}

// NewBulletinService 创建 BulletinService 实例
func NewBulletinService(st *store.Store, header report.Header, logger *zap.Logger) BulletinService {
	return &bulletinService{store: st, header: header, logger: logger}
}

func (s *bulletinService) Get(ctx context.Context, studentID string) (*report.Bulletin, error) {
	b, ok := report.Assemble(s.store.Snapshot(), studentID, s.header)
	if !ok {
		return nil, ErrStudentNotFound
	}
	return b, nil
}

func (s *bulletinService) List(ctx context.Context, req *dto.BulletinListRequest) ([]report.Summary, error) {
	filter := report.Filter{Class: model.ClassLevel(req.Class), Search: req.Query}
	return report.Summaries(s.store.Snapshot(), filter), nil
}
