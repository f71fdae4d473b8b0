package dto

// ── 教师模块 DTO ──

// TeacherRequest 新增/整体替换教师请求
type TeacherRequest struct {
	LastName  string   `json:"last_name"  binding:"required,max=100"`
	FirstName string   `json:"first_name" binding:"required,max=100"`
	Subjects  []string `json:"subjects"   binding:"omitempty,dive,required,max=100"`
}

// TeacherResponse 教师信息响应
type TeacherResponse struct {
	ID        string   `json:"id"`
	LastName  string   `json:"last_name"`
	FirstName string   `json:"first_name"`
	FullName  string   `json:"full_name"`
	Subjects  []string `json:"subjects"`
}
