package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/awieserg/Notes-Ibacy/internal/model"
)

// CourseRepository 课程数据访问接口
type CourseRepository interface {
	List(ctx context.Context) ([]model.Course, error)
	BatchCreate(ctx context.Context, courses []model.Course) error
	DeleteAll(ctx context.Context) error
}

type courseRepo struct {
	db *gorm.DB
}

// NewCourseRepo 创建 CourseRepository 实例
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) List(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	if err := r.db.WithContext(ctx).Order("position ASC").Find(&courses).Error; err != nil {
		return nil, err
	}
	for i := range courses {
		courses[i].Position = 0
	}
	return courses, nil
}

func (r *courseRepo) BatchCreate(ctx context.Context, courses []model.Course) error {
	if len(courses) == 0 {
		return nil
	}
	rows := make([]model.Course, len(courses))
	for i, c := range courses {
		c = c.Clone()
		c.Position = i
		rows[i] = c
	}
	return r.db.WithContext(ctx).CreateInBatches(&rows, batchSize).Error
}

func (r *courseRepo) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.Course{}).Error
}
