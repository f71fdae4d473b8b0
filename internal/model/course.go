package model

const (
	MinCoefficient = 1
	MaxCoefficient = 10
)

// Course 课程，快照集合 cours
// TeacherID 为弱引用：教师被删除后保留原值，报表中显示为未分配
type Course struct {
	ID          string `gorm:"type:varchar(64);primaryKey" json:"id"`
	Name        string `gorm:"type:varchar(200);not null"  json:"nom"`
	Description string `gorm:"type:text"                   json:"description"`
	SubjectName string `gorm:"type:varchar(100);not null"  json:"matiereNom"`
	Coefficient int    `gorm:"not null;default:1"          json:"coefficient"`
	Hours       *int   `gorm:""                            json:"heures,omitempty"`
	TeacherID   string `gorm:"type:varchar(64)"            json:"enseignantId"`
	Position    int    `gorm:"not null;default:0"          json:"-"`
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }

// Clone 深拷贝（Hours 为指针）
func (c Course) Clone() Course {
	if c.Hours != nil {
		h := *c.Hours
		c.Hours = &h
	}
	return c
}
