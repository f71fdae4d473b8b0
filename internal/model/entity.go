package model

// Kind 实体类型，取值即持久化快照中的集合名
type Kind string

const (
	KindStudent Kind = "etudiants"
	KindTeacher Kind = "enseignants"
	KindCourse  Kind = "cours"
	KindGrade   Kind = "notes"
)

// Kinds 按快照字段顺序列出全部实体类型
var Kinds = []Kind{KindStudent, KindTeacher, KindCourse, KindGrade}

// Valid 判断是否为已知实体类型
func (k Kind) Valid() bool {
	switch k {
	case KindStudent, KindTeacher, KindCourse, KindGrade:
		return true
	}
	return false
}

// Entity 实体的封闭变体：Student | Teacher | Course | Grade。
// 只有本包内的四种记录类型实现该接口，按 Kind 分派时由类型开关保证载荷形状正确。
type Entity interface {
	Kind() Kind
	EntityID() string
	entity()
}

func (Student) Kind() Kind { return KindStudent }
func (Teacher) Kind() Kind { return KindTeacher }
func (Course) Kind() Kind  { return KindCourse }
func (Grade) Kind() Kind   { return KindGrade }

func (s Student) EntityID() string { return s.ID }
func (t Teacher) EntityID() string { return t.ID }
func (c Course) EntityID() string  { return c.ID }
func (g Grade) EntityID() string   { return g.ID }

func (Student) entity() {}
func (Teacher) entity() {}
func (Course) entity()  {}
func (Grade) entity()   {}
