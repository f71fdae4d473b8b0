package service

import (
	"context"
	"sort"
	"strings"

	"github.com/awieserg/Notes-Ibacy/internal/store"
)

// SubjectService 科目目录：课程科目与教师可授科目的并集
type SubjectService interface {
	List(ctx context.Context) ([]string, error)
}

type subjectService struct {
	store *store.Store
}

// NewSubjectService 创建 SubjectService 实例
func NewSubjectService(st *store.Store) SubjectService {
	return &subjectService{store: st}
}

// List 去重（忽略大小写与首尾空白，保留首次出现的写法）后按字母序返回
func (s *subjectService) List(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var subjects []string
	add := func(name string) {
		name = strings.TrimSpace(name)
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			return
		}
		seen[key] = true
		subjects = append(subjects, name)
	}

	for _, c := range s.store.ListCourses() {
		add(c.SubjectName)
	}
	for _, t := range s.store.ListTeachers() {
		for _, name := range t.Subjects {
			add(name)
		}
	}

	sort.Slice(subjects, func(i, j int) bool {
		return strings.ToLower(subjects[i]) < strings.ToLower(subjects[j])
	})
	if subjects == nil {
		subjects = []string{}
	}
	return subjects, nil
}
