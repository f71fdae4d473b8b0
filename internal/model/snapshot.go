package model

// Snapshot 四个集合的完整快照，即唯一的持久化格式：
// 集合名 → 按插入顺序排列的记录
type Snapshot struct {
	Students []Student `json:"etudiants"`
	Teachers []Teacher `json:"enseignants"`
	Courses  []Course  `json:"cours"`
	Grades   []Grade   `json:"notes"`
}

// Clone 深拷贝快照，调用方可自由修改返回值
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Students: make([]Student, len(s.Students)),
		Teachers: make([]Teacher, len(s.Teachers)),
		Courses:  make([]Course, len(s.Courses)),
		Grades:   make([]Grade, len(s.Grades)),
	}
	copy(out.Students, s.Students)
	for i, t := range s.Teachers {
		out.Teachers[i] = t.Clone()
	}
	for i, c := range s.Courses {
		out.Courses[i] = c.Clone()
	}
	copy(out.Grades, s.Grades)
	return out
}

// Count 返回各集合记录数
func (s Snapshot) Count() map[Kind]int {
	return map[Kind]int{
		KindStudent: len(s.Students),
		KindTeacher: len(s.Teachers),
		KindCourse:  len(s.Courses),
		KindGrade:   len(s.Grades),
	}
}
