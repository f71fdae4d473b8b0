package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/awieserg/Notes-Ibacy/internal/dto"
	"github.com/awieserg/Notes-Ibacy/internal/model"
	"github.com/awieserg/Notes-Ibacy/internal/store"
)

// ── 成绩模块业务错误 ──

var (
	ErrGradeNotFound          = errors.New("成绩不存在")
	ErrGradeDanglingReference = errors.New("成绩引用的学生或课程不存在")
)

// GradeService 成绩业务接口
type GradeService interface {
	Create(ctx context.Context, req *dto.GradeRequest) (*dto.GradeResponse, error)
	GetByID(ctx context.Context, id string) (*dto.GradeResponse, error)
	List(ctx context.Context, req *dto.GradeListRequest) ([]dto.GradeResponse, error)
	// ListByStudent 返回某学生的成绩，学生不存在时返回 ErrStudentNotFound
	ListByStudent(ctx context.Context, studentID string, semester int) ([]dto.GradeResponse, error)
	Update(ctx context.Context, id string, req *dto.GradeRequest) (*dto.GradeResponse, error)
	Delete(ctx context.Context, id string) error
}

type gradeService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewGradeService 创建 GradeService 实例
func NewGradeService(st *store.Store, logger *zap.Logger) GradeService {
	return &gradeService{store: st, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *gradeService) Create(ctx context.Context, req *dto.GradeRequest) (*dto.GradeResponse, error) {
	v := gradeFromRequest(req)
	id, err := s.store.CreateGrade(v)
	if err != nil {
		s.logger.Warn("创建成绩失败",
			zap.String("student_id", v.StudentID),
			zap.String("course_id", v.CourseID),
			zap.Error(err),
		)
		return nil, translateStoreError(err, ErrGradeNotFound)
	}
	v.ID = id
	return s.toGradeResponse(v, s.courseIndex()), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *gradeService) GetByID(ctx context.Context, id string) (*dto.GradeResponse, error) {
	v, ok := s.store.GetGrade(id)
	if !ok {
		return nil, ErrGradeNotFound
	}
	return s.toGradeResponse(v, s.courseIndex()), nil
}

// ────────────────────── List ──────────────────────

func (s *gradeService) List(ctx context.Context, req *dto.GradeListRequest) ([]dto.GradeResponse, error) {
	courses := s.courseIndex()
	grades := s.store.ListGrades()

	result := make([]dto.GradeResponse, 0, len(grades))
	for _, v := range grades {
		if req.StudentID != "" && v.StudentID != req.StudentID {
			continue
		}
		if req.CourseID != "" && v.CourseID != req.CourseID {
			continue
		}
		if req.Semester != 0 && int(v.Semester) != req.Semester {
			continue
		}
		result = append(result, *s.toGradeResponse(v, courses))
	}
	return result, nil
}

func (s *gradeService) ListByStudent(ctx context.Context, studentID string, semester int) ([]dto.GradeResponse, error) {
	if _, ok := s.store.GetStudent(studentID); !ok {
		return nil, ErrStudentNotFound
	}
	return s.List(ctx, &dto.GradeListRequest{StudentID: studentID, Semester: semester})
}

// ────────────────────── Update ──────────────────────

func (s *gradeService) Update(ctx context.Context, id string, req *dto.GradeRequest) (*dto.GradeResponse, error) {
	v := gradeFromRequest(req)
	if err := s.store.UpdateGrade(id, v); err != nil {
		return nil, translateStoreError(err, ErrGradeNotFound)
	}
	v.ID = id
	return s.toGradeResponse(v, s.courseIndex()), nil
}

// ────────────────────── Delete ──────────────────────

func (s *gradeService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteGrade(id); err != nil {
		return translateStoreError(err, ErrGradeNotFound)
	}
	return nil
}

// ── 内部辅助方法 ──

func gradeFromRequest(req *dto.GradeRequest) model.Grade {
	v := model.Grade{
		StudentID:    req.StudentID,
		CourseID:     req.CourseID,
		Semester:     model.Semester(req.Semester),
		Appreciation: req.Appreciation,
	}
	if req.Value != nil {
		v.Value = *req.Value
	}
	return v
}

func (s *gradeService) courseIndex() map[string]model.Course {
	courses := s.store.ListCourses()
	idx := make(map[string]model.Course, len(courses))
	for _, c := range courses {
		idx[c.ID] = c
	}
	return idx
}

func (s *gradeService) toGradeResponse(v model.Grade, courses map[string]model.Course) *dto.GradeResponse {
	resp := &dto.GradeResponse{
		ID:           v.ID,
		StudentID:    v.StudentID,
		CourseID:     v.CourseID,
		Value:        v.Value,
		Semester:     int(v.Semester),
		Appreciation: v.Appreciation,
	}
	if c, ok := courses[v.CourseID]; ok {
		resp.CourseName = c.Name
		resp.Coefficient = c.Coefficient
	}
	return resp
}
