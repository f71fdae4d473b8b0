package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/awieserg/Notes-Ibacy/internal/model"
)

// StudentRepository 学生数据访问接口
type StudentRepository interface {
	List(ctx context.Context) ([]model.Student, error)
	BatchCreate(ctx context.Context, students []model.Student) error
	DeleteAll(ctx context.Context) error
}

type studentRepo struct {
	db *gorm.DB
}

// NewStudentRepo 创建 StudentRepository 实例
func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) List(ctx context.Context) ([]model.Student, error) {
	var students []model.Student
	if err := r.db.WithContext(ctx).Order("position ASC").Find(&students).Error; err != nil {
		return nil, err
	}
	for i := range students {
		students[i].Position = 0
	}
	return students, nil
}

func (r *studentRepo) BatchCreate(ctx context.Context, students []model.Student) error {
	if len(students) == 0 {
		return nil
	}
	rows := make([]model.Student, len(students))
	for i, s := range students {
		s.Position = i
		rows[i] = s
	}
	return r.db.WithContext(ctx).CreateInBatches(&rows, batchSize).Error
}

func (r *studentRepo) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.Student{}).Error
}
