package store

import (
	"fmt"

	"github.com/awieserg/Notes-Ibacy/internal/model"
	pkgerrors "github.com/awieserg/Notes-Ibacy/pkg/errors"
)

// Save 按实体变体分派：ID 为空时新增，否则整体替换。返回记录 ID。
func (s *Store) Save(e model.Entity) (string, error) {
	id := e.EntityID()
	switch v := e.(type) {
	case model.Student:
		if id == "" {
			return s.CreateStudent(v)
		}
		return id, s.UpdateStudent(id, v)
	case model.Teacher:
		if id == "" {
			return s.CreateTeacher(v)
		}
		return id, s.UpdateTeacher(id, v)
	case model.Course:
		if id == "" {
			return s.CreateCourse(v)
		}
		return id, s.UpdateCourse(id, v)
	case model.Grade:
		if id == "" {
			return s.CreateGrade(v)
		}
		return id, s.UpdateGrade(id, v)
	default:
		return "", fmt.Errorf("未知实体类型 %T: %w", e, pkgerrors.ErrInvalidRecord)
	}
}

// Remove 按类型删除记录，级联规则同 DeleteX
func (s *Store) Remove(kind model.Kind, id string) error {
	switch kind {
	case model.KindStudent:
		return s.DeleteStudent(id)
	case model.KindTeacher:
		return s.DeleteTeacher(id)
	case model.KindCourse:
		return s.DeleteCourse(id)
	case model.KindGrade:
		return s.DeleteGrade(id)
	default:
		return fmt.Errorf("未知实体类型 %q: %w", kind, pkgerrors.ErrInvalidRecord)
	}
}

// Get 按类型查询记录，返回实体变体；不存在时返回 nil, false
func (s *Store) Get(kind model.Kind, id string) (model.Entity, bool) {
	var (
		e  model.Entity
		ok bool
	)
	switch kind {
	case model.KindStudent:
		e, ok = s.GetStudent(id)
	case model.KindTeacher:
		e, ok = s.GetTeacher(id)
	case model.KindCourse:
		e, ok = s.GetCourse(id)
	case model.KindGrade:
		e, ok = s.GetGrade(id)
	}
	if !ok {
		return nil, false
	}
	return e, true
}
