package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awieserg/Notes-Ibacy/internal/model"
	"github.com/awieserg/Notes-Ibacy/internal/notify"
	pkgerrors "github.com/awieserg/Notes-Ibacy/pkg/errors"
)

// ── 测试辅助 ──

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%03d", n)
	}
}

type recorder struct {
	events []notify.Event
}

func (r *recorder) Notify(ev notify.Event) { r.events = append(r.events, ev) }

func setupTestStore() (*Store, *recorder) {
	n := notify.New()
	rec := &recorder{}
	n.RegisterPersistence(rec)
	return New(WithPublisher(n), WithIDGenerator(sequentialIDs())), rec
}

func mustStudent(t *testing.T, s *Store, last string) string {
	t.Helper()
	id, err := s.CreateStudent(model.Student{LastName: last, FirstName: "Test", Class: model.ClassLevel1, BirthDate: "2001-02-03"})
	require.NoError(t, err)
	return id
}

func mustCourse(t *testing.T, s *Store, name string, coef int, teacherID string) string {
	t.Helper()
	id, err := s.CreateCourse(model.Course{Name: name, SubjectName: "Théologie", Coefficient: coef, TeacherID: teacherID})
	require.NoError(t, err)
	return id
}

func mustGrade(t *testing.T, s *Store, studentID, courseID string, value float64, sem model.Semester) string {
	t.Helper()
	id, err := s.CreateGrade(model.Grade{StudentID: studentID, CourseID: courseID, Value: value, Semester: sem})
	require.NoError(t, err)
	return id
}

// ── Create / Get / List ──

func TestStore_CreateStudent_AssignsFreshID(t *testing.T) {
	s, rec := setupTestStore()

	id, err := s.CreateStudent(model.Student{ID: "ignored", LastName: "Kouassi", FirstName: "Ama", Class: model.ClassLevel2})
	require.NoError(t, err)
	assert.Equal(t, "id-001", id)

	got, ok := s.GetStudent(id)
	require.True(t, ok)
	assert.Equal(t, "Kouassi", got.LastName)
	assert.Equal(t, id, got.ID)

	_, ok = s.GetStudent("ignored")
	assert.False(t, ok)

	require.Len(t, rec.events, 1)
	assert.Equal(t, notify.OpCreated, rec.events[0].Op)
	assert.Equal(t, model.KindStudent, rec.events[0].Kind)
	assert.Equal(t, id, rec.events[0].ID)
}

func TestStore_List_PreservesInsertionOrder(t *testing.T) {
	s, _ := setupTestStore()
	a := mustStudent(t, s, "A")
	b := mustStudent(t, s, "B")
	c := mustStudent(t, s, "C")

	require.NoError(t, s.UpdateStudent(b, model.Student{LastName: "B2", Class: model.ClassLevel3}))

	list := s.ListStudents()
	require.Len(t, list, 3)
	assert.Equal(t, []string{a, b, c}, []string{list[0].ID, list[1].ID, list[2].ID})
	assert.Equal(t, "B2", list[1].LastName)
}

func TestStore_CreateStudent_InvalidClass(t *testing.T) {
	s, rec := setupTestStore()

	_, err := s.CreateStudent(model.Student{LastName: "X", Class: "4"})
	assert.True(t, errors.Is(err, pkgerrors.ErrInvalidRecord))
	assert.Empty(t, rec.events)
}

func TestStore_CreateCourse_CoefficientBounds(t *testing.T) {
	s, _ := setupTestStore()

	_, err := s.CreateCourse(model.Course{Name: "X", Coefficient: 0})
	assert.ErrorIs(t, err, pkgerrors.ErrInvalidRecord)
	_, err = s.CreateCourse(model.Course{Name: "X", Coefficient: 11})
	assert.ErrorIs(t, err, pkgerrors.ErrInvalidRecord)

	zero := 0
	_, err = s.CreateCourse(model.Course{Name: "X", Coefficient: 2, Hours: &zero})
	assert.ErrorIs(t, err, pkgerrors.ErrInvalidRecord)

	_, err = s.CreateCourse(model.Course{Name: "X", Coefficient: 10})
	assert.NoError(t, err)
}

func TestStore_CreateGrade_RequiresExistingReferences(t *testing.T) {
	s, _ := setupTestStore()
	st := mustStudent(t, s, "A")
	co := mustCourse(t, s, "Grec", 2, "")

	_, err := s.CreateGrade(model.Grade{StudentID: "missing", CourseID: co, Value: 10, Semester: 1})
	assert.ErrorIs(t, err, pkgerrors.ErrDanglingReference)

	_, err = s.CreateGrade(model.Grade{StudentID: st, CourseID: "missing", Value: 10, Semester: 1})
	assert.ErrorIs(t, err, pkgerrors.ErrDanglingReference)

	_, err = s.CreateGrade(model.Grade{StudentID: st, CourseID: co, Value: 10, Semester: 3})
	assert.ErrorIs(t, err, pkgerrors.ErrInvalidRecord)

	assert.Empty(t, s.ListGrades())
}

func TestStore_ReturnedTeacherIsACopy(t *testing.T) {
	s, _ := setupTestStore()
	subjects := model.StringList{"Hébreu"}
	id, err := s.CreateTeacher(model.Teacher{LastName: "Yao", FirstName: "Paul", Subjects: subjects})
	require.NoError(t, err)

	subjects[0] = "modifié"
	got, _ := s.GetTeacher(id)
	got.Subjects[0] = "modifié aussi"

	again, _ := s.GetTeacher(id)
	assert.Equal(t, model.StringList{"Hébreu"}, again.Subjects)
}

// ── Update / Delete NotFound ──

func TestStore_UpdateAndDelete_NotFound(t *testing.T) {
	s, rec := setupTestStore()

	assert.ErrorIs(t, s.UpdateStudent("nope", model.Student{Class: model.ClassLevel1}), pkgerrors.ErrRecordNotFound)
	assert.ErrorIs(t, s.UpdateTeacher("nope", model.Teacher{}), pkgerrors.ErrRecordNotFound)
	assert.ErrorIs(t, s.UpdateCourse("nope", model.Course{Coefficient: 1}), pkgerrors.ErrRecordNotFound)
	assert.ErrorIs(t, s.UpdateGrade("nope", model.Grade{Semester: 1}), pkgerrors.ErrRecordNotFound)

	assert.ErrorIs(t, s.DeleteStudent("nope"), pkgerrors.ErrRecordNotFound)
	assert.ErrorIs(t, s.DeleteTeacher("nope"), pkgerrors.ErrRecordNotFound)
	assert.ErrorIs(t, s.DeleteCourse("nope"), pkgerrors.ErrRecordNotFound)
	assert.ErrorIs(t, s.DeleteGrade("nope"), pkgerrors.ErrRecordNotFound)

	assert.Empty(t, rec.events, "未命中的更新/删除不应发布事件")
}

func TestStore_UpdateGrade_KeepsIDAndPosition(t *testing.T) {
	s, _ := setupTestStore()
	st := mustStudent(t, s, "A")
	co := mustCourse(t, s, "Grec", 2, "")
	g1 := mustGrade(t, s, st, co, 10, 1)
	g2 := mustGrade(t, s, st, co, 11, 1)

	require.NoError(t, s.UpdateGrade(g1, model.Grade{StudentID: st, CourseID: co, Value: 18, Semester: 2, Appreciation: "Très bien"}))

	grades := s.ListGrades()
	require.Len(t, grades, 2)
	assert.Equal(t, g1, grades[0].ID)
	assert.Equal(t, 18.0, grades[0].Value)
	assert.Equal(t, model.Semester2, grades[0].Semester)
	assert.Equal(t, g2, grades[1].ID)

	err := s.UpdateGrade(g1, model.Grade{StudentID: "missing", CourseID: co, Value: 1, Semester: 1})
	assert.ErrorIs(t, err, pkgerrors.ErrDanglingReference)
}

// ── 级联删除 ──

func TestStore_DeleteStudent_CascadesOnlyOwnGrades(t *testing.T) {
	s, rec := setupTestStore()
	a := mustStudent(t, s, "A")
	b := mustStudent(t, s, "B")
	c1 := mustCourse(t, s, "Grec", 2, "")
	c2 := mustCourse(t, s, "Hébreu", 3, "")

	ga1 := mustGrade(t, s, a, c1, 12, 1)
	gb1 := mustGrade(t, s, b, c1, 14, 1)
	ga2 := mustGrade(t, s, a, c2, 9, 2)
	gb2 := mustGrade(t, s, b, c2, 16, 2)

	require.NoError(t, s.DeleteStudent(a))

	var ids []string
	for _, g := range s.ListGrades() {
		ids = append(ids, g.ID)
		assert.NotEqual(t, a, g.StudentID)
	}
	assert.Equal(t, []string{gb1, gb2}, ids)

	last := rec.events[len(rec.events)-1]
	assert.Equal(t, notify.OpDeleted, last.Op)
	assert.Equal(t, []string{ga1, ga2}, last.Cascaded)
	assert.Len(t, last.Snapshot.Grades, 2)
}

func TestStore_DeleteCourse_CascadesOnlyItsGrades(t *testing.T) {
	s, _ := setupTestStore()
	a := mustStudent(t, s, "A")
	b := mustStudent(t, s, "B")
	c1 := mustCourse(t, s, "Grec", 2, "")
	c2 := mustCourse(t, s, "Hébreu", 3, "")

	mustGrade(t, s, a, c1, 12, 1)
	keep1 := mustGrade(t, s, a, c2, 9, 2)
	mustGrade(t, s, b, c1, 14, 1)
	keep2 := mustGrade(t, s, b, c2, 16, 2)

	require.NoError(t, s.DeleteCourse(c1))

	grades := s.ListGrades()
	require.Len(t, grades, 2)
	assert.Equal(t, keep1, grades[0].ID)
	assert.Equal(t, keep2, grades[1].ID)
	for _, g := range grades {
		assert.NotEqual(t, c1, g.CourseID)
	}
}

func TestStore_DeleteTeacher_LeavesDanglingCourseReference(t *testing.T) {
	s, rec := setupTestStore()
	tid, err := s.CreateTeacher(model.Teacher{LastName: "Yao", FirstName: "Paul"})
	require.NoError(t, err)
	cid := mustCourse(t, s, "Grec", 2, tid)

	require.NoError(t, s.DeleteTeacher(tid))

	c, ok := s.GetCourse(cid)
	require.True(t, ok)
	assert.Equal(t, tid, c.TeacherID)
	assert.Empty(t, rec.events[len(rec.events)-1].Cascaded)
}

// ── 变体分派 ──

func TestStore_SaveAndRemove_DispatchByVariant(t *testing.T) {
	s, _ := setupTestStore()

	id, err := s.Save(model.Student{LastName: "A", Class: model.ClassLevel1})
	require.NoError(t, err)

	_, err = s.Save(model.Student{ID: id, LastName: "A2", Class: model.ClassLevel2})
	require.NoError(t, err)

	e, ok := s.Get(model.KindStudent, id)
	require.True(t, ok)
	st, isStudent := e.(model.Student)
	require.True(t, isStudent)
	assert.Equal(t, "A2", st.LastName)

	cid, err := s.Save(model.Course{Name: "Grec", Coefficient: 1})
	require.NoError(t, err)
	_, err = s.Save(model.Grade{StudentID: id, CourseID: cid, Value: 10, Semester: 1})
	require.NoError(t, err)

	require.NoError(t, s.Remove(model.KindCourse, cid))
	assert.Empty(t, s.ListGrades())

	_, ok = s.Get(model.KindCourse, cid)
	assert.False(t, ok)
	assert.ErrorIs(t, s.Remove(model.Kind("unknown"), id), pkgerrors.ErrInvalidRecord)
}

// ── 快照 ──

func TestStore_SnapshotRestore_RoundTrip(t *testing.T) {
	s, _ := setupTestStore()
	a := mustStudent(t, s, "A")
	tid, _ := s.CreateTeacher(model.Teacher{LastName: "Yao", Subjects: model.StringList{"Grec"}})
	hours := 30
	cid, err := s.CreateCourse(model.Course{Name: "Grec", Coefficient: 2, Hours: &hours, TeacherID: tid})
	require.NoError(t, err)
	mustGrade(t, s, a, cid, 13.5, 1)

	snap := s.Snapshot()

	restored := New()
	pruned, err := restored.Restore(snap)
	require.NoError(t, err)
	assert.Empty(t, pruned)
	assert.Equal(t, snap, restored.Snapshot())
}

func TestStore_Restore_PrunesOrphanGrades(t *testing.T) {
	s := New()
	snap := model.Snapshot{
		Students: []model.Student{{ID: "s1", Class: model.ClassLevel1}},
		Courses:  []model.Course{{ID: "c1", Coefficient: 1}},
		Grades: []model.Grade{
			{ID: "g1", StudentID: "s1", CourseID: "c1", Value: 10, Semester: 1},
			{ID: "g2", StudentID: "ghost", CourseID: "c1", Value: 10, Semester: 1},
			{ID: "g3", StudentID: "s1", CourseID: "ghost", Value: 10, Semester: 2},
		},
	}

	pruned, err := s.Restore(snap)
	require.NoError(t, err)
	assert.Equal(t, []string{"g2", "g3"}, pruned)
	require.Len(t, s.ListGrades(), 1)
	assert.Equal(t, "g1", s.ListGrades()[0].ID)
}

func TestStore_Restore_RejectsDuplicateIDs(t *testing.T) {
	s, _ := setupTestStore()
	mustStudent(t, s, "kept")

	_, err := s.Restore(model.Snapshot{
		Students: []model.Student{
			{ID: "s1", Class: model.ClassLevel1},
			{ID: "s1", Class: model.ClassLevel2},
		},
	})
	assert.ErrorIs(t, err, pkgerrors.ErrDuplicateID)
	assert.Len(t, s.ListStudents(), 1, "失败的 Restore 不应修改现有数据")
}

// ── 事件顺序 ──

func TestStore_EventsFollowMutationOrder(t *testing.T) {
	s, rec := setupTestStore()
	a := mustStudent(t, s, "A")
	c := mustCourse(t, s, "Grec", 2, "")
	g := mustGrade(t, s, a, c, 10, 1)
	require.NoError(t, s.DeleteStudent(a))

	require.Len(t, rec.events, 4)
	for i, ev := range rec.events {
		assert.Equal(t, uint64(i+1), ev.Seq)
	}
	assert.Equal(t, []string{a, c, g, a}, []string{rec.events[0].ID, rec.events[1].ID, rec.events[2].ID, rec.events[3].ID})
	assert.Len(t, rec.events[2].Snapshot.Grades, 1)
	assert.Empty(t, rec.events[3].Snapshot.Students)
}
