package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/awieserg/Notes-Ibacy/internal/dto"
	"github.com/awieserg/Notes-Ibacy/internal/service"
	"github.com/awieserg/Notes-Ibacy/pkg/response"
)

// StudentHandler 学生模块 HTTP 处理器
type StudentHandler struct {
	studentSvc service.StudentService
	gradeSvc   service.GradeService
}

// NewStudentHandler 创建 StudentHandler
func NewStudentHandler(studentSvc service.StudentService, gradeSvc service.GradeService) *StudentHandler {
	return &StudentHandler{studentSvc: studentSvc, gradeSvc: gradeSvc}
}

// ListStudents 获取学生列表
// GET /api/v1/students?classe=1&q=koffi
func (h *StudentHandler) ListStudents(c *gin.Context) {
	var req dto.StudentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	students, err := h.studentSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.List(c, students)
}

// GetStudent 获取学生详情
// GET /api/v1/students/:id
func (h *StudentHandler) GetStudent(c *gin.Context) {
	student, err := h.studentSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleStudentError(c, err)
		return
	}

	response.OK(c, student)
}

// CreateStudent 新增学生
// POST /api/v1/students
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	var req dto.StudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	student, err := h.studentSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleStudentError(c, err)
		return
	}

	response.Created(c, student)
}

// UpdateStudent 整体替换学生记录
// PUT /api/v1/students/:id
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	var req dto.StudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	student, err := h.studentSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleStudentError(c, err)
		return
	}

	response.OK(c, student)
}

// DeleteStudent 删除学生，并级联删除其全部成绩
// DELETE /api/v1/students/:id
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	if err := h.studentSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleStudentError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListStudentGrades 获取某学生的成绩
// GET /api/v1/students/:id/grades?semestre=1
func (h *StudentHandler) ListStudentGrades(c *gin.Context) {
	var req dto.GradeListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	grades, err := h.gradeSvc.ListByStudent(c.Request.Context(), c.Param("id"), req.Semester)
	if err != nil {
		h.handleStudentError(c, err)
		return
	}

	response.List(c, grades)
}

// handleStudentError 统一处理学生模块业务错误
func (h *StudentHandler) handleStudentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 20001, "学生不存在")
	case errors.Is(err, service.ErrInvalidRecord):
		response.BadRequest(c, response.CodeInvalidParams, "参数校验失败")
	default:
		response.InternalError(c)
	}
}
