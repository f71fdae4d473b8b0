package service

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/awieserg/Notes-Ibacy/config"
	"github.com/awieserg/Notes-Ibacy/internal/report"
	"github.com/awieserg/Notes-Ibacy/internal/store"
	pkgerrors "github.com/awieserg/Notes-Ibacy/pkg/errors"
)

// ── 通用业务错误 ──

var (
	ErrInvalidRecord = errors.New("记录字段不合法")
)

// Service 所有 Service 的聚合入口
type Service struct {
	Student  StudentService
	Teacher  TeacherService
	Course   CourseService
	Grade    GradeService
	Subject  SubjectService
	Bulletin BulletinService
	Export   ExportService
	Snapshot SnapshotService
}

// NewService 创建 Service 聚合
func NewService(cfg *config.Config, st *store.Store, logger *zap.Logger) *Service {
	header := HeaderFromConfig(&cfg.Report)
	return &Service{
		Student:  NewStudentService(st, logger),
		Teacher:  NewTeacherService(st, logger),
		Course:   NewCourseService(st, logger),
		Grade:    NewGradeService(st, logger),
		Subject:  NewSubjectService(st),
		Bulletin: NewBulletinService(st, header, logger),
		Export:   NewExportService(st, header, logger),
		Snapshot: NewSnapshotService(st),
	}
}

// HeaderFromConfig 由配置生成成绩单抬头
func HeaderFromConfig(cfg *config.ReportConfig) report.Header {
	return report.Header{
		Institution:  cfg.Institution,
		AcademicYear: cfg.AcademicYear,
	}
}

// translateStoreError 将 store 返回的通用错误翻译为业务错误
// notFound 为当前模块的"记录不存在"错误
func translateStoreError(err error, notFound error) error {
	switch {
	case errors.Is(err, pkgerrors.ErrRecordNotFound):
		return notFound
	case errors.Is(err, pkgerrors.ErrDanglingReference):
		return fmt.Errorf("%w: %v", ErrGradeDanglingReference, err)
	case errors.Is(err, pkgerrors.ErrInvalidRecord):
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	default:
		return err
	}
}
