package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/awieserg/Notes-Ibacy/internal/model"
)

// GradeRepository 成绩数据访问接口
type GradeRepository interface {
	List(ctx context.Context) ([]model.Grade, error)
	BatchCreate(ctx context.Context, grades []model.Grade) error
	DeleteAll(ctx context.Context) error
}

type gradeRepo struct {
	db *gorm.DB
}

// NewGradeRepo 创建 GradeRepository 实例
func NewGradeRepo(db *gorm.DB) GradeRepository {
	return &gradeRepo{db: db}
}

func (r *gradeRepo) List(ctx context.Context) ([]model.Grade, error) {
	var grades []model.Grade
	if err := r.db.WithContext(ctx).Order("position ASC").Find(&grades).Error; err != nil {
		return nil, err
	}
	for i := range grades {
		grades[i].Position = 0
	}
	return grades, nil
}

func (r *gradeRepo) BatchCreate(ctx context.Context, grades []model.Grade) error {
	if len(grades) == 0 {
		return nil
	}
	rows := make([]model.Grade, len(grades))
	for i, g := range grades {
		g.Position = i
		rows[i] = g
	}
	return r.db.WithContext(ctx).CreateInBatches(&rows, batchSize).Error
}

func (r *gradeRepo) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.Grade{}).Error
}
