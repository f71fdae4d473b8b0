package dto

// ── 课程模块 DTO ──

// CourseRequest 新增/整体替换课程请求
type CourseRequest struct {
	Name        string `json:"name"         binding:"required,max=200"`
	Description string `json:"description"  binding:"omitempty,max=1000"`
	SubjectName string `json:"subject_name" binding:"required,max=100"`
	Coefficient int    `json:"coefficient"  binding:"required,min=1,max=10"`
	Hours       *int   `json:"hours"        binding:"omitempty,min=1"`
	TeacherID   string `json:"teacher_id"   binding:"omitempty,max=64"` // 为空表示未分配
}

// CourseListRequest 课程列表查询参数
type CourseListRequest struct {
	Subject string `form:"matiere" binding:"omitempty,max=100"`
}

// CourseResponse 课程信息响应
type CourseResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	SubjectName     string `json:"subject_name"`
	Coefficient     int    `json:"coefficient"`
	Hours           *int   `json:"hours,omitempty"`
	TeacherID       string `json:"teacher_id"`
	TeacherName     string `json:"teacher_name"`
	TeacherAssigned bool   `json:"teacher_assigned"`
}
