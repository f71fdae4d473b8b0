package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/awieserg/Notes-Ibacy/internal/dto"
	"github.com/awieserg/Notes-Ibacy/internal/service"
	"github.com/awieserg/Notes-Ibacy/pkg/response"
)

// TeacherHandler 教师模块 HTTP 处理器
type TeacherHandler struct {
	teacherSvc service.TeacherService
}

// NewTeacherHandler 创建 TeacherHandler
func NewTeacherHandler(teacherSvc service.TeacherService) *TeacherHandler {
	return &TeacherHandler{teacherSvc: teacherSvc}
}

// ListTeachers 获取教师列表
// GET /api/v1/teachers
func (h *TeacherHandler) ListTeachers(c *gin.Context) {
	teachers, err := h.teacherSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.List(c, teachers)
}

// GetTeacher 获取教师详情
// GET /api/v1/teachers/:id
func (h *TeacherHandler) GetTeacher(c *gin.Context) {
	teacher, err := h.teacherSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleTeacherError(c, err)
		return
	}

	response.OK(c, teacher)
}

// CreateTeacher 新增教师
// POST /api/v1/teachers
func (h *TeacherHandler) CreateTeacher(c *gin.Context) {
	var req dto.TeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	teacher, err := h.teacherSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleTeacherError(c, err)
		return
	}

	response.Created(c, teacher)
}

// UpdateTeacher 整体替换教师记录
// PUT /api/v1/teachers/:id
func (h *TeacherHandler) UpdateTeacher(c *gin.Context) {
	var req dto.TeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	teacher, err := h.teacherSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleTeacherError(c, err)
		return
	}

	response.OK(c, teacher)
}

// DeleteTeacher 删除教师，其课程保留并显示为未分配
// DELETE /api/v1/teachers/:id
func (h *TeacherHandler) DeleteTeacher(c *gin.Context) {
	if err := h.teacherSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleTeacherError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *TeacherHandler) handleTeacherError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTeacherNotFound):
		response.NotFound(c, 20101, "教师不存在")
	case errors.Is(err, service.ErrInvalidRecord):
		response.BadRequest(c, response.CodeInvalidParams, "参数校验失败")
	default:
		response.InternalError(c)
	}
}
