package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/awieserg/Notes-Ibacy/internal/dto"
	"github.com/awieserg/Notes-Ibacy/internal/service"
	"github.com/awieserg/Notes-Ibacy/pkg/response"
)

// CourseHandler 课程模块 HTTP 处理器
type CourseHandler struct {
	courseSvc service.CourseService
}

// NewCourseHandler 创建 CourseHandler
func NewCourseHandler(courseSvc service.CourseService) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc}
}

// ListCourses 获取课程列表
// GET /api/v1/courses?matiere=Grec
func (h *CourseHandler) ListCourses(c *gin.Context) {
	var req dto.CourseListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	courses, err := h.courseSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.List(c, courses)
}

// GetCourse 获取课程详情
// GET /api/v1/courses/:id
func (h *CourseHandler) GetCourse(c *gin.Context) {
	course, err := h.courseSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, course)
}

// CreateCourse 新增课程
// POST /api/v1/courses
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req dto.CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	course, err := h.courseSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.Created(c, course)
}

// UpdateCourse 整体替换课程记录
// PUT /api/v1/courses/:id
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	var req dto.CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	course, err := h.courseSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, course)
}

// DeleteCourse 删除课程，并级联删除引用它的成绩
// DELETE /api/v1/courses/:id
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	if err := h.courseSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *CourseHandler) handleCourseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 20201, "课程不存在")
	case errors.Is(err, service.ErrInvalidRecord):
		response.BadRequest(c, response.CodeInvalidParams, "参数校验失败")
	default:
		response.InternalError(c)
	}
}
