package report

import (
	"github.com/awieserg/Notes-Ibacy/internal/grading"
	"github.com/awieserg/Notes-Ibacy/internal/model"
)

// UnassignedTeacher 课程未分配教师（或教师已被删除）时的显示文本
const UnassignedTeacher = "Non assigné"

// Header 报表抬头
type Header struct {
	Institution  string `json:"institution"`
	AcademicYear string `json:"academic_year"`
}

// Identity 学生身份信息
type Identity struct {
	ID        string           `json:"id"`
	LastName  string           `json:"last_name"`
	FirstName string           `json:"first_name"`
	Class     model.ClassLevel `json:"class"`
	BirthDate string           `json:"birth_date"`
}

// LineItem 一门课程的成绩行
type LineItem struct {
	GradeID         string  `json:"grade_id"`
	CourseID        string  `json:"course_id"`
	CourseName      string  `json:"course_name"`
	SubjectName     string  `json:"subject_name"`
	TeacherName     string  `json:"teacher_name"`
	TeacherAssigned bool    `json:"teacher_assigned"`
	Coefficient     int     `json:"coefficient"`
	Value           float64 `json:"value"`
	Appreciation    string  `json:"appreciation,omitempty"`
}

// SemesterSection 一个学期的成绩明细及学期平均分
type SemesterSection struct {
	Semester model.Semester `json:"semester"`
	Lines    []LineItem     `json:"lines"`
	Average  float64        `json:"average"`
}

// Results 学年结果
type Results struct {
	Semester1Average float64 `json:"semester1_average"`
	Semester2Average float64 `json:"semester2_average"`
	AnnualAverage    float64 `json:"annual_average"`
}

// Bulletin 学生成绩单
type Bulletin struct {
	Header    Header            `json:"header"`
	Student   Identity          `json:"student"`
	Semesters []SemesterSection `json:"semesters"`
	Results   Results           `json:"results"`
}

// Assemble 根据快照组装某学生的成绩单，学生不存在时返回 false。
//
// 明细行按成绩插入顺序排列，先第一学期再第二学期；
// 课程已不存在的成绩不出现在明细中，与平均分计算的过滤规则一致。
func Assemble(snap model.Snapshot, studentID string, header Header) (*Bulletin, bool) {
	var (
		student model.Student
		found   bool
	)
	for _, s := range snap.Students {
		if s.ID == studentID {
			student, found = s, true
			break
		}
	}
	if !found {
		return nil, false
	}

	courses := make(map[string]model.Course, len(snap.Courses))
	for _, c := range snap.Courses {
		courses[c.ID] = c
	}
	teachers := make(map[string]model.Teacher, len(snap.Teachers))
	for _, t := range snap.Teachers {
		teachers[t.ID] = t
	}

	avg := grading.Compute(studentID, snap.Grades, snap.Courses)

	b := &Bulletin{
		Header:  header,
		Student: identityOf(student),
		Results: Results{
			Semester1Average: avg.Semester1,
			Semester2Average: avg.Semester2,
			AnnualAverage:    avg.Annual,
		},
	}

	for _, sem := range model.Semesters {
		section := SemesterSection{
			Semester: sem,
			Lines:    []LineItem{},
			Average:  avg.Of(sem),
		}
		for _, g := range snap.Grades {
			if g.StudentID != studentID || g.Semester != sem {
				continue
			}
			course, ok := courses[g.CourseID]
			if !ok {
				continue
			}
			section.Lines = append(section.Lines, lineItem(g, course, teachers))
		}
		b.Semesters = append(b.Semesters, section)
	}

	return b, true
}

func lineItem(g model.Grade, c model.Course, teachers map[string]model.Teacher) LineItem {
	item := LineItem{
		GradeID:      g.ID,
		CourseID:     c.ID,
		CourseName:   c.Name,
		SubjectName:  c.SubjectName,
		TeacherName:  UnassignedTeacher,
		Coefficient:  c.Coefficient,
		Value:        g.Value,
		Appreciation: g.Appreciation,
	}
	if t, ok := teachers[c.TeacherID]; ok && c.TeacherID != "" {
		item.TeacherName = t.FullName()
		item.TeacherAssigned = true
	}
	return item
}

func identityOf(s model.Student) Identity {
	return Identity{
		ID:        s.ID,
		LastName:  s.LastName,
		FirstName: s.FirstName,
		Class:     s.Class,
		BirthDate: s.BirthDate,
	}
}
