package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/awieserg/Notes-Ibacy/internal/dto"
	"github.com/awieserg/Notes-Ibacy/internal/service"
	"github.com/awieserg/Notes-Ibacy/pkg/response"
)

// BulletinHandler 成绩单模块 HTTP 处理器
type BulletinHandler struct {
	bulletinSvc service.BulletinService
}

// NewBulletinHandler 创建 BulletinHandler
func NewBulletinHandler(bulletinSvc service.BulletinService) *BulletinHandler {
	return &BulletinHandler{bulletinSvc: bulletinSvc}
}

// ListBulletins 获取成绩单摘要列表
// GET /api/v1/bulletins?classe=2&q=yao
func (h *BulletinHandler) ListBulletins(c *gin.Context) {
	var req dto.BulletinListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	summaries, err := h.bulletinSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.List(c, summaries)
}

// GetBulletin 获取学生成绩单
// GET /api/v1/students/:id/bulletin
func (h *BulletinHandler) GetBulletin(c *gin.Context) {
	bulletin, err := h.bulletinSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			response.NotFound(c, 20001, "学生不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, bulletin)
}
