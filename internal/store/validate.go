package store

import (
	"fmt"

	"github.com/awieserg/Notes-Ibacy/internal/model"
	pkgerrors "github.com/awieserg/Notes-Ibacy/pkg/errors"
)

func validateStudent(v model.Student) error {
	if !v.Class.Valid() {
		return fmt.Errorf("年级 %q: %w", v.Class, pkgerrors.ErrInvalidRecord)
	}
	return nil
}

func validateCourse(v model.Course) error {
	if v.Coefficient < model.MinCoefficient || v.Coefficient > model.MaxCoefficient {
		return fmt.Errorf("系数 %d: %w", v.Coefficient, pkgerrors.ErrInvalidRecord)
	}
	if v.Hours != nil && *v.Hours < 1 {
		return fmt.Errorf("学时 %d: %w", *v.Hours, pkgerrors.ErrInvalidRecord)
	}
	return nil
}

// validateGrade 成绩分值不做范围校验
func validateGrade(v model.Grade) error {
	if !v.Semester.Valid() {
		return fmt.Errorf("学期 %d: %w", v.Semester, pkgerrors.ErrInvalidRecord)
	}
	return nil
}
