package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/awieserg/Notes-Ibacy/internal/dto"
	"github.com/awieserg/Notes-Ibacy/internal/model"
	"github.com/awieserg/Notes-Ibacy/internal/report"
	"github.com/awieserg/Notes-Ibacy/internal/store"
)

// ── 学生模块业务错误 ──

var (
	ErrStudentNotFound = errors.New("学生不存在")
)

// StudentService 学生业务接口
type StudentService interface {
	Create(ctx context.Context, req *dto.StudentRequest) (*dto.StudentResponse, error)
	GetByID(ctx context.Context, id string) (*dto.StudentResponse, error)
	List(ctx context.Context, req *dto.StudentListRequest) ([]dto.StudentResponse, error)
	Update(ctx context.Context, id string, req *dto.StudentRequest) (*dto.StudentResponse, error)
	// Delete 删除学生及其全部成绩
	Delete(ctx context.Context, id string) error
}

type studentService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewStudentService 创建 StudentService 实例
func NewStudentService(st *store.Store, logger *zap.Logger) StudentService {
	return &studentService{store: st, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *studentService) Create(ctx context.Context, req *dto.StudentRequest) (*dto.StudentResponse, error) {
	v := studentFromRequest(req)
	id, err := s.store.CreateStudent(v)
	if err != nil {
		s.logger.Warn("创建学生失败", zap.Error(err))
		return nil, translateStoreError(err, ErrStudentNotFound)
	}
	v.ID = id

	s.logger.Info("学生已创建", zap.String("id", id), zap.String("class", string(v.Class)))
	return toStudentResponse(v), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *studentService) GetByID(ctx context.Context, id string) (*dto.StudentResponse, error) {
	v, ok := s.store.GetStudent(id)
	if !ok {
		return nil, ErrStudentNotFound
	}
	return toStudentResponse(v), nil
}

// ────────────────────── List ──────────────────────

func (s *studentService) List(ctx context.Context, req *dto.StudentListRequest) ([]dto.StudentResponse, error) {
	filter := report.Filter{Class: model.ClassLevel(req.Class), Search: req.Query}

	students := s.store.ListStudents()
	result := make([]dto.StudentResponse, 0, len(students))
	for _, v := range students {
		if !filter.Match(v) {
			continue
		}
		result = append(result, *toStudentResponse(v))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *studentService) Update(ctx context.Context, id string, req *dto.StudentRequest) (*dto.StudentResponse, error) {
	v := studentFromRequest(req)
	if err := s.store.UpdateStudent(id, v); err != nil {
		err = translateStoreError(err, ErrStudentNotFound)
		if !errors.Is(err, ErrStudentNotFound) {
			s.logger.Warn("更新学生失败", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}
	v.ID = id
	return toStudentResponse(v), nil
}

// ────────────────────── Delete ──────────────────────

func (s *studentService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteStudent(id); err != nil {
		return translateStoreError(err, ErrStudentNotFound)
	}
	s.logger.Info("学生已删除", zap.String("id", id))
	return nil
}

// ── 内部辅助方法 ──

func studentFromRequest(req *dto.StudentRequest) model.Student {
	return model.Student{
		LastName:  req.LastName,
		FirstName: req.FirstName,
		Class:     model.ClassLevel(req.Class),
		BirthDate: req.BirthDate,
	}
}

func toStudentResponse(v model.Student) *dto.StudentResponse {
	return &dto.StudentResponse{
		ID:        v.ID,
		LastName:  v.LastName,
		FirstName: v.FirstName,
		FullName:  v.FullName(),
		Class:     string(v.Class),
		BirthDate: v.BirthDate,
	}
}
