package dto

// ── 成绩单模块 DTO ──

// BulletinListRequest 成绩单列表查询参数
type BulletinListRequest struct {
	Class string `form:"classe" binding:"omitempty,oneof=1 2 3"`
	Query string `form:"q"      binding:"omitempty,max=100"`
}

// ClassResultsRequest 班级成绩导出参数
type ClassResultsRequest struct {
	Class string `form:"classe" binding:"required,oneof=1 2 3"`
}
