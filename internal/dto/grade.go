package dto

// ── 成绩模块 DTO ──

// GradeRequest 新增/整体替换成绩请求
// Value 使用指针区分"未填写"与 0 分
type GradeRequest struct {
	StudentID    string   `json:"student_id"   binding:"required,max=64"`
	CourseID     string   `json:"course_id"    binding:"required,max=64"`
	Value        *float64 `json:"value"        binding:"required"`
	Semester     int      `json:"semester"     binding:"required,oneof=1 2"`
	Appreciation string   `json:"appreciation" binding:"omitempty,max=500"`
}

// GradeListRequest 成绩列表查询参数
type GradeListRequest struct {
	StudentID string `form:"student_id" binding:"omitempty,max=64"`
	CourseID  string `form:"course_id"  binding:"omitempty,max=64"`
	Semester  int    `form:"semestre"   binding:"omitempty,oneof=1 2"`
}

// GradeResponse 成绩信息响应
type GradeResponse struct {
	ID           string  `json:"id"`
	StudentID    string  `json:"student_id"`
	CourseID     string  `json:"course_id"`
	CourseName   string  `json:"course_name"`
	Coefficient  int     `json:"coefficient"`
	Value        float64 `json:"value"`
	Semester     int     `json:"semester"`
	Appreciation string  `json:"appreciation,omitempty"`
}
