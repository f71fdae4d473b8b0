package service

import (
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/awieserg/Notes-Ibacy/internal/model"
	"github.com/awieserg/Notes-Ibacy/internal/report"
	"github.com/awieserg/Notes-Ibacy/internal/store"
)

// ── 测试辅助 ──

var testHeader = report.Header{Institution: "Institut Biblique IBACY", AcademicYear: "2024-2025"}

func newTestStore() *store.Store {
	n := 0
	return store.New(store.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("id-%03d", n)
	}))
}

func seedStudent(t *testing.T, st *store.Store, last, first string, class model.ClassLevel) string {
	t.Helper()
	id, err := st.CreateStudent(model.Student{LastName: last, FirstName: first, Class: class, BirthDate: "2000-01-01"})
	if err != nil {
		t.Fatalf("创建学生失败: %v", err)
	}
	return id
}

func seedCourse(t *testing.T, st *store.Store, name, subject string, coef int, teacherID string) string {
	t.Helper()
	id, err := st.CreateCourse(model.Course{Name: name, SubjectName: subject, Coefficient: coef, TeacherID: teacherID})
	if err != nil {
		t.Fatalf("创建课程失败: %v", err)
	}
	return id
}

func seedGrade(t *testing.T, st *store.Store, studentID, courseID string, value float64, sem model.Semester) string {
	t.Helper()
	id, err := st.CreateGrade(model.Grade{StudentID: studentID, CourseID: courseID, Value: value, Semester: sem})
	if err != nil {
		t.Fatalf("创建成绩失败: %v", err)
	}
	return id
}

var nop = zap.NewNop()
