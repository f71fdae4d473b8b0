package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/awieserg/Notes-Ibacy/internal/service"
	"github.com/awieserg/Notes-Ibacy/pkg/response"
)

// SubjectHandler 科目目录 HTTP 处理器
type SubjectHandler struct {
	subjectSvc service.SubjectService
}

// NewSubjectHandler 创建 SubjectHandler
func NewSubjectHandler(subjectSvc service.SubjectService) *SubjectHandler {
	return &SubjectHandler{subjectSvc: subjectSvc}
}

// ListSubjects 获取科目名称列表（课程科目与教师科目的并集）
// GET /api/v1/subjects
func (h *SubjectHandler) ListSubjects(c *gin.Context) {
	subjects, err := h.subjectSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.List(c, subjects)
}
