package model

// Teacher 教师，快照集合 enseignants
type Teacher struct {
	ID        string     `gorm:"type:varchar(64);primaryKey" json:"id"`
	LastName  string     `gorm:"type:varchar(100);not null"  json:"nom"`
	FirstName string     `gorm:"type:varchar(100);not null"  json:"prenom"`
	Subjects  StringList `gorm:"type:text;not null"          json:"matieres"`
	Position  int        `gorm:"not null;default:0"          json:"-"`
}

// TableName 指定表名
func (Teacher) TableName() string { return "teachers" }

// FullName 返回 "名 姓"
func (t Teacher) FullName() string { return t.FirstName + " " + t.LastName }

// Clone 深拷贝（Subjects 为切片）
func (t Teacher) Clone() Teacher {
	t.Subjects = t.Subjects.Clone()
	return t
}
