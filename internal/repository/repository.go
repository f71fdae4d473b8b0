package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/awieserg/Notes-Ibacy/internal/model"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db      *gorm.DB
	Student StudentRepository
	Teacher TeacherRepository
	Course  CourseRepository
	Grade   GradeRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:      db,
		Student: NewStudentRepo(db),
		Teacher: NewTeacherRepo(db),
		Course:  NewCourseRepo(db),
		Grade:   NewGradeRepo(db),
	}
}

// BeginTx 开启事务
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tx, nil
}

// WithTx 返回绑定到事务连接的 Repository 副本
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}

// ReplaceSnapshot 在同一事务内用快照整体替换四张表
// 删除顺序先成绩后学生/课程，插入顺序相反，满足外键约束
func (r *Repository) ReplaceSnapshot(ctx context.Context, snap model.Snapshot) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := r.WithTx(tx)

		if err := txRepo.Grade.DeleteAll(ctx); err != nil {
			return fmt.Errorf("清空成绩表失败: %w", err)
		}
		if err := txRepo.Course.DeleteAll(ctx); err != nil {
			return fmt.Errorf("清空课程表失败: %w", err)
		}
		if err := txRepo.Teacher.DeleteAll(ctx); err != nil {
			return fmt.Errorf("清空教师表失败: %w", err)
		}
		if err := txRepo.Student.DeleteAll(ctx); err != nil {
			return fmt.Errorf("清空学生表失败: %w", err)
		}

		if err := txRepo.Student.BatchCreate(ctx, snap.Students); err != nil {
			return fmt.Errorf("写入学生失败: %w", err)
		}
		if err := txRepo.Teacher.BatchCreate(ctx, snap.Teachers); err != nil {
			return fmt.Errorf("写入教师失败: %w", err)
		}
		if err := txRepo.Course.BatchCreate(ctx, snap.Courses); err != nil {
			return fmt.Errorf("写入课程失败: %w", err)
		}
		if err := txRepo.Grade.BatchCreate(ctx, snap.Grades); err != nil {
			return fmt.Errorf("写入成绩失败: %w", err)
		}
		return nil
	})
}

// LoadSnapshot 读取四张表组成快照，各集合按插入顺序排列
func (r *Repository) LoadSnapshot(ctx context.Context) (model.Snapshot, error) {
	var (
		snap model.Snapshot
		err  error
	)
	if snap.Students, err = r.Student.List(ctx); err != nil {
		return model.Snapshot{}, fmt.Errorf("读取学生失败: %w", err)
	}
	if snap.Teachers, err = r.Teacher.List(ctx); err != nil {
		return model.Snapshot{}, fmt.Errorf("读取教师失败: %w", err)
	}
	if snap.Courses, err = r.Course.List(ctx); err != nil {
		return model.Snapshot{}, fmt.Errorf("读取课程失败: %w", err)
	}
	if snap.Grades, err = r.Grade.List(ctx); err != nil {
		return model.Snapshot{}, fmt.Errorf("读取成绩失败: %w", err)
	}
	return snap, nil
}

// IsEmpty 四张表均无数据时返回 true
func (r *Repository) IsEmpty(ctx context.Context) (bool, error) {
	for _, m := range []interface{}{&model.Student{}, &model.Teacher{}, &model.Course{}, &model.Grade{}} {
		var n int64
		if err := r.db.WithContext(ctx).Model(m).Count(&n).Error; err != nil {
			return false, err
		}
		if n > 0 {
			return false, nil
		}
	}
	return true, nil
}

// 快照整体替换时的批量大小
const batchSize = 200
