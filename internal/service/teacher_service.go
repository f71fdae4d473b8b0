package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/awieserg/Notes-Ibacy/internal/dto"
	"github.com/awieserg/Notes-Ibacy/internal/model"
	"github.com/awieserg/Notes-Ibacy/internal/store"
)

// ── 教师模块业务错误 ──

var (
	ErrTeacherNotFound = errors.New("教师不存在")
)

// TeacherService 教师业务接口
type TeacherService interface {
	Create(ctx context.Context, req *dto.TeacherRequest) (*dto.TeacherResponse, error)
	GetByID(ctx context.Context, id string) (*dto.TeacherResponse, error)
	List(ctx context.Context) ([]dto.TeacherResponse, error)
	Update(ctx context.Context, id string, req *dto.TeacherRequest) (*dto.TeacherResponse, error)
	// Delete 删除教师，引用该教师的课程保持原值并显示为未分配
	Delete(ctx context.Context, id string) error
}

type teacherService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewTeacherService 创建 TeacherService 实例
func NewTeacherService(st *store.Store, logger *zap.Logger) TeacherService {
	return &teacherService{store: st, logger: logger}
}

func (s *teacherService) Create(ctx context.Context, req *dto.TeacherRequest) (*dto.TeacherResponse, error) {
	v := teacherFromRequest(req)
	id, err := s.store.CreateTeacher(v)
	if err != nil {
		s.logger.Warn("创建教师失败", zap.Error(err))
		return nil, translateStoreError(err, ErrTeacherNotFound)
	}
	v.ID = id

	s.logger.Info("教师已创建", zap.String("id", id))
	return toTeacherResponse(v), nil
}

func (s *teacherService) GetByID(ctx context.Context, id string) (*dto.TeacherResponse, error) {
	v, ok := s.store.GetTeacher(id)
	if !ok {
		return nil, ErrTeacherNotFound
	}
	return toTeacherResponse(v), nil
}

func (s *teacherService) List(ctx context.Context) ([]dto.TeacherResponse, error) {
	teachers := s.store.ListTeachers()
	result := make([]dto.TeacherResponse, 0, len(teachers))
	for _, v := range teachers {
		result = append(result, *toTeacherResponse(v))
	}
	return result, nil
}

func (s *teacherService) Update(ctx context.Context, id string, req *dto.TeacherRequest) (*dto.TeacherResponse, error) {
	v := teacherFromRequest(req)
	if err := s.store.UpdateTeacher(id, v); err != nil {
		return nil, translateStoreError(err, ErrTeacherNotFound)
	}
	v.ID = id
	return toTeacherResponse(v), nil
}

func (s *teacherService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteTeacher(id); err != nil {
		return translateStoreError(err, ErrTeacherNotFound)
	}
	s.logger.Info("教师已删除", zap.String("id", id))
	return nil
}

// ── 内部辅助方法 ──

func teacherFromRequest(req *dto.TeacherRequest) model.Teacher {
	subjects := make(model.StringList, 0, len(req.Subjects))
	subjects = append(subjects, req.Subjects...)
	return model.Teacher{
		LastName:  req.LastName,
		FirstName: req.FirstName,
		Subjects:  subjects,
	}
}

func toTeacherResponse(v model.Teacher) *dto.TeacherResponse {
	subjects := make([]string, 0, len(v.Subjects))
	subjects = append(subjects, v.Subjects...)
	return &dto.TeacherResponse{
		ID:        v.ID,
		LastName:  v.LastName,
		FirstName: v.FirstName,
		FullName:  v.FullName(),
		Subjects:  subjects,
	}
}
