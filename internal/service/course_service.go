package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/awieserg/Notes-Ibacy/internal/dto"
	"github.com/awieserg/Notes-Ibacy/internal/model"
	"github.com/awieserg/Notes-Ibacy/internal/report"
	"github.com/awieserg/Notes-Ibacy/internal/store"
)

// ── 课程模块业务错误 ──

var (
	ErrCourseNotFound = errors.New("课程不存在")
)

// CourseService 课程业务接口
type CourseService interface {
	Create(ctx context.Context, req *dto.CourseRequest) (*dto.CourseResponse, error)
	GetByID(ctx context.Context, id string) (*dto.CourseResponse, error)
	List(ctx context.Context, req *dto.CourseListRequest) ([]dto.CourseResponse, error)
	Update(ctx context.Context, id string, req *dto.CourseRequest) (*dto.CourseResponse, error)
	// Delete 删除课程及其全部成绩
	Delete(ctx context.Context, id string) error
}

type courseService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(st *store.Store, logger *zap.Logger) CourseService {
	return &courseService{store: st, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *courseService) Create(ctx context.Context, req *dto.CourseRequest) (*dto.CourseResponse, error) {
	v := courseFromRequest(req)
	id, err := s.store.CreateCourse(v)
	if err != nil {
		s.logger.Warn("创建课程失败", zap.Error(err))
		return nil, translateStoreError(err, ErrCourseNotFound)
	}
	v.ID = id

	s.logger.Info("课程已创建",
		zap.String("id", id),
		zap.String("subject", v.SubjectName),
		zap.Int("coefficient", v.Coefficient),
	)
	return s.toCourseResponse(v), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *courseService) GetByID(ctx context.Context, id string) (*dto.CourseResponse, error) {
	v, ok := s.store.GetCourse(id)
	if !ok {
		return nil, ErrCourseNotFound
	}
	return s.toCourseResponse(v), nil
}

// ────────────────────── List ──────────────────────

func (s *courseService) List(ctx context.Context, req *dto.CourseListRequest) ([]dto.CourseResponse, error) {
	subject := strings.TrimSpace(req.Subject)

	courses := s.store.ListCourses()
	result := make([]dto.CourseResponse, 0, len(courses))
	for _, v := range courses {
		if subject != "" && !strings.EqualFold(v.SubjectName, subject) {
			continue
		}
		result = append(result, *s.toCourseResponse(v))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *courseService) Update(ctx context.Context, id string, req *dto.CourseRequest) (*dto.CourseResponse, error) {
	v := courseFromRequest(req)
	if err := s.store.UpdateCourse(id, v); err != nil {
		return nil, translateStoreError(err, ErrCourseNotFound)
	}
	v.ID = id
	return s.toCourseResponse(v), nil
}

// ────────────────────── Delete ──────────────────────

func (s *courseService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteCourse(id); err != nil {
		return translateStoreError(err, ErrCourseNotFound)
	}
	s.logger.Info("课程已删除", zap.String("id", id))
	return nil
}

// ── 内部辅助方法 ──

func courseFromRequest(req *dto.CourseRequest) model.Course {
	v := model.Course{
		Name:        req.Name,
		Description: req.Description,
		SubjectName: strings.TrimSpace(req.SubjectName),
		Coefficient: req.Coefficient,
		TeacherID:   req.TeacherID,
	}
	if req.Hours != nil {
		h := *req.Hours
		v.Hours = &h
	}
	return v
}

// toCourseResponse 解析授课教师；教师不存在或未设置时显示为未分配
func (s *courseService) toCourseResponse(v model.Course) *dto.CourseResponse {
	resp := &dto.CourseResponse{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		SubjectName: v.SubjectName,
		Coefficient: v.Coefficient,
		Hours:       v.Hours,
		TeacherID:   v.TeacherID,
		TeacherName: report.UnassignedTeacher,
	}
	if v.TeacherID != "" {
		if t, ok := s.store.GetTeacher(v.TeacherID); ok {
			resp.TeacherName = t.FullName()
			resp.TeacherAssigned = true
		}
	}
	return resp
}
