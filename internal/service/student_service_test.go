package service

import (
	"context"
	"errors"
	"testing"

	"github.com/awieserg/Notes-Ibacy/internal/dto"
	"github.com/awieserg/Notes-Ibacy/internal/model"
)

// ── Create 测试 ──

func TestStudentService_Create_Success(t *testing.T) {
	svc := NewStudentService(newTestStore(), nop)

	req := &dto.StudentRequest{LastName: "Koffi", FirstName: "Awa", Class: "2", BirthDate: "2000-05-01"}
	result, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.ID == "" {
		t.Error("期望返回新 ID")
	}
	if result.FullName != "Awa Koffi" {
		t.Errorf("期望FullName=Awa Koffi，实际=%s", result.FullName)
	}
	if result.Class != "2" {
		t.Errorf("期望Class=2，实际=%s", result.Class)
	}
}

func TestStudentService_Create_InvalidClass(t *testing.T) {
	svc := NewStudentService(newTestStore(), nop)

	_, err := svc.Create(context.Background(), &dto.StudentRequest{LastName: "A", FirstName: "B", Class: "4"})
	if !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("期望 ErrInvalidRecord，实际: %v", err)
	}
}

// ── GetByID / List 测试 ──

func TestStudentService_GetByID_NotFound(t *testing.T) {
	svc := NewStudentService(newTestStore(), nop)

	_, err := svc.GetByID(context.Background(), "nonexistent")
	if !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("期望 ErrStudentNotFound，实际: %v", err)
	}
}

func TestStudentService_List_Filters(t *testing.T) {
	st := newTestStore()
	seedStudent(t, st, "Kouassi", "Ama", model.ClassLevel1)
	seedStudent(t, st, "Yao", "Paul", model.ClassLevel2)
	seedStudent(t, st, "Konan", "Marc", model.ClassLevel1)
	svc := NewStudentService(st, nop)

	all, err := svc.List(context.Background(), &dto.StudentListRequest{})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("期望3名学生，实际=%d", len(all))
	}
	if all[0].LastName != "Kouassi" || all[2].LastName != "Konan" {
		t.Error("期望按插入顺序返回")
	}

	class1, _ := svc.List(context.Background(), &dto.StudentListRequest{Class: "1"})
	if len(class1) != 2 {
		t.Errorf("期望一年级2名学生，实际=%d", len(class1))
	}

	byName, _ := svc.List(context.Background(), &dto.StudentListRequest{Class: "1", Query: "kon"})
	if len(byName) != 1 || byName[0].LastName != "Konan" {
		t.Errorf("期望仅匹配 Konan，实际=%v", byName)
	}
}

// ── Update 测试 ──

func TestStudentService_Update_Success(t *testing.T) {
	st := newTestStore()
	id := seedStudent(t, st, "Koffi", "Awa", model.ClassLevel1)
	svc := NewStudentService(st, nop)

	result, err := svc.Update(context.Background(), id, &dto.StudentRequest{LastName: "Koffi", FirstName: "Awa", Class: "3"})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if result.ID != id || result.Class != "3" {
		t.Errorf("期望ID不变且Class=3，实际=%+v", result)
	}

	stored, _ := st.GetStudent(id)
	if stored.Class != model.ClassLevel3 {
		t.Errorf("store 中的年级未更新: %s", stored.Class)
	}
}

func TestStudentService_Update_NotFound(t *testing.T) {
	svc := NewStudentService(newTestStore(), nop)

	_, err := svc.Update(context.Background(), "nonexistent", &dto.StudentRequest{LastName: "A", FirstName: "B", Class: "1"})
	if !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("期望 ErrStudentNotFound，实际: %v", err)
	}
}

// ── Delete 测试 ──

func TestStudentService_Delete_CascadesGrades(t *testing.T) {
	st := newTestStore()
	a := seedStudent(t, st, "Koffi", "Awa", model.ClassLevel1)
	b := seedStudent(t, st, "Yao", "Paul", model.ClassLevel1)
	c := seedCourse(t, st, "Grec", "Langues", 2, "")
	seedGrade(t, st, a, c, 12, model.Semester1)
	seedGrade(t, st, b, c, 15, model.Semester1)
	svc := NewStudentService(st, nop)

	if err := svc.Delete(context.Background(), a); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}

	grades := st.ListGrades()
	if len(grades) != 1 || grades[0].StudentID != b {
		t.Errorf("期望仅保留学生 %s 的成绩，实际=%v", b, grades)
	}
}

func TestStudentService_Delete_NotFound(t *testing.T) {
	svc := NewStudentService(newTestStore(), nop)

	if err := svc.Delete(context.Background(), "nonexistent"); !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("期望 ErrStudentNotFound，实际: %v", err)
	}
}
