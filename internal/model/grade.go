package model

// Semester 学期：1 或 2
type Semester int

const (
	Semester1 Semester = 1
	Semester2 Semester = 2
)

// Semesters 报表中的学期顺序
var Semesters = []Semester{Semester1, Semester2}

// Valid 判断学期取值是否合法
func (s Semester) Valid() bool { return s == Semester1 || s == Semester2 }

// Grade 成绩，快照集合 notes
// StudentID / CourseID 为强引用，由 store 的级联删除保证始终有效
type Grade struct {
	ID           string   `gorm:"type:varchar(64);primaryKey"     json:"id"`
	StudentID    string   `gorm:"type:varchar(64);not null;index" json:"etudiantId"`
	CourseID     string   `gorm:"type:varchar(64);not null;index" json:"coursId"`
	Value        float64  `gorm:"not null"                        json:"valeur"`
	Semester     Semester `gorm:"not null"                        json:"semestre"`
	Appreciation string   `gorm:"type:text"                       json:"appreciation,omitempty"`
	Position     int      `gorm:"not null;default:0"              json:"-"`
}

// TableName 指定表名
func (Grade) TableName() string { return "grades" }
