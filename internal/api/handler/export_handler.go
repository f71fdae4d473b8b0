package handler

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/awieserg/Notes-Ibacy/internal/dto"
	"github.com/awieserg/Notes-Ibacy/internal/model"
	"github.com/awieserg/Notes-Ibacy/internal/service"
	"github.com/awieserg/Notes-Ibacy/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportBulletin 导出学生成绩单
// GET /api/v1/students/:id/bulletin/export
func (h *ExportHandler) ExportBulletin(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportBulletin(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	sendXLSX(c, buf, filename)
}

// ExportClassResults 导出班级平均分
// GET /api/v1/export/class-results?classe=1
func (h *ExportHandler) ExportClassResults(c *gin.Context) {
	var req dto.ClassResultsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	buf, filename, err := h.exportSvc.ExportClassResults(c.Request.Context(), model.ClassLevel(req.Class))
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	sendXLSX(c, buf, filename)
}

// sendXLSX 设置下载响应头并写出文件内容
func sendXLSX(c *gin.Context, buf *bytes.Buffer, filename string) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 20001, "学生不存在")
	case errors.Is(err, service.ErrInvalidRecord):
		response.BadRequest(c, response.CodeInvalidParams, "参数校验失败")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.Error(c, http.StatusInternalServerError, 20401, "成绩单导出失败")
	default:
		response.InternalError(c)
	}
}
