package store

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/awieserg/Notes-Ibacy/internal/model"
	"github.com/awieserg/Notes-Ibacy/internal/notify"
	pkgerrors "github.com/awieserg/Notes-Ibacy/pkg/errors"
)

// Publisher 变更事件发布者（通常为 *notify.Notifier）
type Publisher interface {
	Publish(ev notify.Event) notify.Event
}

// Store 学籍数据的唯一所有者：学生、教师、课程、成绩四个集合。
//
// 一致性约束：
//   - 成绩对学生、课程是强引用：任何时刻不存在引用缺失学生/课程的成绩
//   - 课程对教师是弱引用：删除教师不级联，课程保留原 TeacherID
//   - 每次成功变更恰好发布一个事件，发布发生在写锁内，顺序与变更一致
type Store struct {
	mu sync.RWMutex

	students *collection[model.Student]
	teachers *collection[model.Teacher]
	courses  *collection[model.Course]
	grades   *collection[model.Grade]

	publisher Publisher
	newID     func() string
	logger    *zap.Logger
}

// Option Store 构造选项
type Option func(*Store)

// WithPublisher 设置变更事件发布者
func WithPublisher(p Publisher) Option {
	return func(s *Store) { s.publisher = p }
}

// WithIDGenerator 替换 ID 生成器（测试中使用确定性 ID）
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithLogger 设置日志器
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// New 创建空 Store
func New(opts ...Option) *Store {
	s := &Store{
		students: newCollection(func(v model.Student) string { return v.ID }),
		teachers: newCollection(func(v model.Teacher) string { return v.ID }),
		courses:  newCollection(func(v model.Course) string { return v.ID }),
		grades:   newCollection(func(v model.Grade) string { return v.ID }),
		newID:    uuid.NewString,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ────────────────────── 学生 ──────────────────────

// CreateStudent 新增学生，忽略入参中的 ID，返回新 ID
func (s *Store) CreateStudent(v model.Student) (string, error) {
	if err := validateStudent(v); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v.ID = s.newID()
	v.Position = 0
	s.students.append(v)
	s.publish(notify.OpCreated, model.KindStudent, v.ID, nil)
	return v.ID, nil
}

// UpdateStudent 以完整记录替换指定学生
func (s *Store) UpdateStudent(id string, v model.Student) error {
	if err := validateStudent(v); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v.ID = id
	v.Position = 0
	if !s.students.replace(v) {
		return notFound(model.KindStudent, id)
	}
	s.publish(notify.OpUpdated, model.KindStudent, id, nil)
	return nil
}

// DeleteStudent 删除学生，并在同一临界区内删除其全部成绩
func (s *Store) DeleteStudent(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.students.remove(id) {
		return notFound(model.KindStudent, id)
	}
	cascaded := s.grades.removeWhere(func(g model.Grade) bool { return g.StudentID == id })
	s.publish(notify.OpDeleted, model.KindStudent, id, cascaded)
	return nil
}

// GetStudent 按 ID 查询学生
func (s *Store) GetStudent(id string) (model.Student, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.students.get(id)
}

// ListStudents 按插入顺序返回全部学生
func (s *Store) ListStudents() []model.Student {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.students.list()
}

// ────────────────────── 教师 ──────────────────────

// CreateTeacher 新增教师
func (s *Store) CreateTeacher(v model.Teacher) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v = v.Clone()
	v.ID = s.newID()
	v.Position = 0
	s.teachers.append(v)
	s.publish(notify.OpCreated, model.KindTeacher, v.ID, nil)
	return v.ID, nil
}

// UpdateTeacher 以完整记录替换指定教师
func (s *Store) UpdateTeacher(id string, v model.Teacher) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v = v.Clone()
	v.ID = id
	v.Position = 0
	if !s.teachers.replace(v) {
		return notFound(model.KindTeacher, id)
	}
	s.publish(notify.OpUpdated, model.KindTeacher, id, nil)
	return nil
}

// DeleteTeacher 仅删除教师记录；引用该教师的课程保持悬空引用
func (s *Store) DeleteTeacher(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.teachers.remove(id) {
		return notFound(model.KindTeacher, id)
	}
	s.publish(notify.OpDeleted, model.KindTeacher, id, nil)
	return nil
}

// GetTeacher 按 ID 查询教师
func (s *Store) GetTeacher(id string) (model.Teacher, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.teachers.get(id)
	return t.Clone(), ok
}

// ListTeachers 按插入顺序返回全部教师
func (s *Store) ListTeachers() []model.Teacher {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.teachers.list()
	for i := range out {
		out[i] = out[i].Clone()
	}
	return out
}

// ────────────────────── 课程 ──────────────────────

// CreateCourse 新增课程；TeacherID 不做存在性校验（弱引用）
func (s *Store) CreateCourse(v model.Course) (string, error) {
	if err := validateCourse(v); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v = v.Clone()
	v.ID = s.newID()
	v.Position = 0
	s.courses.append(v)
	s.publish(notify.OpCreated, model.KindCourse, v.ID, nil)
	return v.ID, nil
}

// UpdateCourse 以完整记录替换指定课程
func (s *Store) UpdateCourse(id string, v model.Course) error {
	if err := validateCourse(v); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v = v.Clone()
	v.ID = id
	v.Position = 0
	if !s.courses.replace(v) {
		return notFound(model.KindCourse, id)
	}
	s.publish(notify.OpUpdated, model.KindCourse, id, nil)
	return nil
}

// DeleteCourse 删除课程，并在同一临界区内删除引用该课程的全部成绩
func (s *Store) DeleteCourse(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.courses.remove(id) {
		return notFound(model.KindCourse, id)
	}
	cascaded := s.grades.removeWhere(func(g model.Grade) bool { return g.CourseID == id })
	s.publish(notify.OpDeleted, model.KindCourse, id, cascaded)
	return nil
}

// GetCourse 按 ID 查询课程
func (s *Store) GetCourse(id string) (model.Course, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.courses.get(id)
	return c.Clone(), ok
}

// ListCourses 按插入顺序返回全部课程
func (s *Store) ListCourses() []model.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.courses.list()
	for i := range out {
		out[i] = out[i].Clone()
	}
	return out
}

// ────────────────────── 成绩 ──────────────────────

// CreateGrade 新增成绩；引用的学生与课程必须存在
func (s *Store) CreateGrade(v model.Grade) (string, error) {
	if err := validateGrade(v); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkGradeRefs(v); err != nil {
		return "", err
	}
	v.ID = s.newID()
	v.Position = 0
	s.grades.append(v)
	s.publish(notify.OpCreated, model.KindGrade, v.ID, nil)
	return v.ID, nil
}

// UpdateGrade 以完整记录替换指定成绩
func (s *Store) UpdateGrade(id string, v model.Grade) error {
	if err := validateGrade(v); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.grades.has(id) {
		return notFound(model.KindGrade, id)
	}
	if err := s.checkGradeRefs(v); err != nil {
		return err
	}
	v.ID = id
	v.Position = 0
	s.grades.replace(v)
	s.publish(notify.OpUpdated, model.KindGrade, id, nil)
	return nil
}

// DeleteGrade 删除成绩
func (s *Store) DeleteGrade(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.grades.remove(id) {
		return notFound(model.KindGrade, id)
	}
	s.publish(notify.OpDeleted, model.KindGrade, id, nil)
	return nil
}

// GetGrade 按 ID 查询成绩
func (s *Store) GetGrade(id string) (model.Grade, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grades.get(id)
}

// ListGrades 按插入顺序返回全部成绩
func (s *Store) ListGrades() []model.Grade {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grades.list()
}

func (s *Store) checkGradeRefs(g model.Grade) error {
	if !s.students.has(g.StudentID) {
		return fmt.Errorf("学生 %s: %w", g.StudentID, pkgerrors.ErrDanglingReference)
	}
	if !s.courses.has(g.CourseID) {
		return fmt.Errorf("课程 %s: %w", g.CourseID, pkgerrors.ErrDanglingReference)
	}
	return nil
}

// ────────────────────── 快照 ──────────────────────

// Snapshot 返回四个集合的深拷贝
func (s *Store) Snapshot() model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() model.Snapshot {
	return model.Snapshot{
		Students: s.students.items,
		Teachers: s.teachers.items,
		Courses:  s.courses.items,
		Grades:   s.grades.items,
	}.Clone()
}

// Restore 以快照替换全部数据（启动加载时使用），不发布事件。
// 重复 ID 或字段越界时返回错误且不修改现有数据；
// 违反强引用约束的成绩被剔除，返回其 ID。
func (s *Store) Restore(snap model.Snapshot) ([]string, error) {
	snap = snap.Clone()

	students := newCollection(func(v model.Student) string { return v.ID })
	teachers := newCollection(func(v model.Teacher) string { return v.ID })
	courses := newCollection(func(v model.Course) string { return v.ID })
	grades := newCollection(func(v model.Grade) string { return v.ID })

	for _, v := range snap.Students {
		if err := restoreCheck(students.has(v.ID), model.KindStudent, v.ID, validateStudent(v)); err != nil {
			return nil, err
		}
		v.Position = 0
		students.append(v)
	}
	for _, v := range snap.Teachers {
		if err := restoreCheck(teachers.has(v.ID), model.KindTeacher, v.ID, nil); err != nil {
			return nil, err
		}
		v.Position = 0
		teachers.append(v)
	}
	for _, v := range snap.Courses {
		if err := restoreCheck(courses.has(v.ID), model.KindCourse, v.ID, validateCourse(v)); err != nil {
			return nil, err
		}
		v.Position = 0
		courses.append(v)
	}

	var pruned []string
	for _, v := range snap.Grades {
		if err := restoreCheck(grades.has(v.ID), model.KindGrade, v.ID, validateGrade(v)); err != nil {
			return nil, err
		}
		if !students.has(v.StudentID) || !courses.has(v.CourseID) {
			pruned = append(pruned, v.ID)
			continue
		}
		v.Position = 0
		grades.append(v)
	}

	s.mu.Lock()
	s.students, s.teachers, s.courses, s.grades = students, teachers, courses, grades
	s.mu.Unlock()

	if len(pruned) > 0 {
		s.logger.Warn("快照中存在引用缺失的成绩，已剔除", zap.Strings("grade_ids", pruned))
	}
	return pruned, nil
}

func restoreCheck(dup bool, kind model.Kind, id string, invalid error) error {
	if id == "" {
		return fmt.Errorf("%s: 空 ID: %w", kind, pkgerrors.ErrInvalidRecord)
	}
	if dup {
		return fmt.Errorf("%s %s: %w", kind, id, pkgerrors.ErrDuplicateID)
	}
	if invalid != nil {
		return fmt.Errorf("%s %s: %w", kind, id, invalid)
	}
	return nil
}

// Counts 返回各集合记录数
func (s *Store) Counts() map[model.Kind]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[model.Kind]int{
		model.KindStudent: s.students.len(),
		model.KindTeacher: s.teachers.len(),
		model.KindCourse:  s.courses.len(),
		model.KindGrade:   s.grades.len(),
	}
}

// ── 内部辅助方法 ──

// publish 必须在持有写锁时调用
func (s *Store) publish(op notify.Op, kind model.Kind, id string, cascaded []string) {
	if s.publisher == nil {
		return
	}
	ev := s.publisher.Publish(notify.Event{
		Op:       op,
		Kind:     kind,
		ID:       id,
		Cascaded: cascaded,
		Snapshot: s.snapshotLocked(),
	})
	s.logger.Debug("数据变更",
		zap.Uint64("seq", ev.Seq),
		zap.String("op", string(op)),
		zap.String("kind", string(kind)),
		zap.String("id", id),
		zap.Int("cascaded", len(cascaded)),
	)
}

func notFound(kind model.Kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, pkgerrors.ErrRecordNotFound)
}
