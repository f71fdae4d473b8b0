package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/awieserg/Notes-Ibacy/internal/dto"
	"github.com/awieserg/Notes-Ibacy/internal/service"
	"github.com/awieserg/Notes-Ibacy/pkg/response"
)

// GradeHandler 成绩模块 HTTP 处理器
type GradeHandler struct {
	gradeSvc service.GradeService
}

// NewGradeHandler 创建 GradeHandler
func NewGradeHandler(gradeSvc service.GradeService) *GradeHandler {
	return &GradeHandler{gradeSvc: gradeSvc}
}

// ListGrades 获取成绩列表
// GET /api/v1/grades?student_id=xxx&course_id=xxx&semestre=1
func (h *GradeHandler) ListGrades(c *gin.Context) {
	var req dto.GradeListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	grades, err := h.gradeSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.List(c, grades)
}

// GetGrade 获取成绩详情
// GET /api/v1/grades/:id
func (h *GradeHandler) GetGrade(c *gin.Context) {
	grade, err := h.gradeSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleGradeError(c, err)
		return
	}

	response.OK(c, grade)
}

// CreateGrade 录入成绩
// POST /api/v1/grades
func (h *GradeHandler) CreateGrade(c *gin.Context) {
	var req dto.GradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	grade, err := h.gradeSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleGradeError(c, err)
		return
	}

	response.Created(c, grade)
}

// UpdateGrade 整体替换成绩记录
// PUT /api/v1/grades/:id
func (h *GradeHandler) UpdateGrade(c *gin.Context) {
	var req dto.GradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	grade, err := h.gradeSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleGradeError(c, err)
		return
	}

	response.OK(c, grade)
}

// DeleteGrade 删除成绩
// DELETE /api/v1/grades/:id
func (h *GradeHandler) DeleteGrade(c *gin.Context) {
	if err := h.gradeSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleGradeError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *GradeHandler) handleGradeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrGradeNotFound):
		response.NotFound(c, 20301, "成绩不存在")
	case errors.Is(err, service.ErrGradeDanglingReference):
		response.BadRequest(c, 20302, "成绩引用的学生或课程不存在")
	case errors.Is(err, service.ErrInvalidRecord):
		response.BadRequest(c, response.CodeInvalidParams, "参数校验失败")
	default:
		response.InternalError(c)
	}
}
