package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/awieserg/Notes-Ibacy/internal/model"
)

// TeacherRepository 教师数据访问接口
type TeacherRepository interface {
	List(ctx context.Context) ([]model.Teacher, error)
	BatchCreate(ctx context.Context, teachers []model.Teacher) error
	DeleteAll(ctx context.Context) error
}

type teacherRepo struct {
	db *gorm.DB
}

// NewTeacherRepo 创建 TeacherRepository 实例
func NewTeacherRepo(db *gorm.DB) TeacherRepository {
	return &teacherRepo{db: db}
}

func (r *teacherRepo) List(ctx context.Context) ([]model.Teacher, error) {
	var teachers []model.Teacher
	if err := r.db.WithContext(ctx).Order("position ASC").Find(&teachers).Error; err != nil {
		return nil, err
	}
	for i := range teachers {
		teachers[i].Position = 0
	}
	return teachers, nil
}

func (r *teacherRepo) BatchCreate(ctx context.Context, teachers []model.Teacher) error {
	if len(teachers) == 0 {
		return nil
	}
	rows := make([]model.Teacher, len(teachers))
	for i, t := range teachers {
		t = t.Clone()
		t.Position = i
		rows[i] = t
	}
	return r.db.WithContext(ctx).CreateInBatches(&rows, batchSize).Error
}

func (r *teacherRepo) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.Teacher{}).Error
}
