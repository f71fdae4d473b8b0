package dto

// ── 学生模块 DTO ──

// StudentRequest 新增/整体替换学生请求
type StudentRequest struct {
	LastName  string `json:"last_name"  binding:"required,max=100"`
	FirstName string `json:"first_name" binding:"required,max=100"`
	Class     string `json:"class"      binding:"required,oneof=1 2 3"`
	BirthDate string `json:"birth_date" binding:"omitempty,datetime=2006-01-02"`
}

// StudentListRequest 学生列表查询参数
type StudentListRequest struct {
	Class string `form:"classe" binding:"omitempty,oneof=1 2 3"`
	Query string `form:"q"      binding:"omitempty,max=100"`
}

// StudentResponse 学生信息响应
type StudentResponse struct {
	ID        string `json:"id"`
	LastName  string `json:"last_name"`
	FirstName string `json:"first_name"`
	FullName  string `json:"full_name"`
	Class     string `json:"class"`
	BirthDate string `json:"birth_date"`
}
