package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/awieserg/Notes-Ibacy/internal/service"
	"github.com/awieserg/Notes-Ibacy/pkg/response"
)

// SnapshotHandler 快照模块 HTTP 处理器
type SnapshotHandler struct {
	snapshotSvc service.SnapshotService
}

// NewSnapshotHandler 创建 SnapshotHandler
func NewSnapshotHandler(snapshotSvc service.SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{snapshotSvc: snapshotSvc}
}

// GetSnapshot 获取四个集合的完整快照，字段名与持久化格式一致
// GET /api/v1/snapshot
func (h *SnapshotHandler) GetSnapshot(c *gin.Context) {
	snap, err := h.snapshotSvc.Get(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, snap)
}

// GetStats 获取各集合记录数
// GET /api/v1/snapshot/stats
func (h *SnapshotHandler) GetStats(c *gin.Context) {
	stats, err := h.snapshotSvc.Stats(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, stats)
}
