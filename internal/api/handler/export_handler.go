package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mohamamdsajadi/shift/internal/service"
	"github.com/mohamamdsajadi/shift/pkg/jalali"
	"github.com/mohamamdsajadi/shift/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// RosterXLSX 导出某月排班总表（管理员）
// GET /api/v1/admin/export/roster.xlsx?year=&month=
func (h *ExportHandler) RosterXLSX(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		response.BadRequest(c, 10001, "year 无效")
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		response.BadRequest(c, 10001, "month 无效")
		return
	}

	buf, filename, xerr := h.exportSvc.RosterXLSX(c.Request.Context(), year, month)
	if xerr != nil {
		h.handleExportError(c, xerr)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// ShiftsICS 导出本人已确认班次日历
// GET /api/v1/export/shifts.ics
func (h *ExportHandler) ShiftsICS(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ShiftsICS(c.Request.Context(), userID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, jalali.ErrInvalidDate):
		response.BadRequest(c, 16001, "日期无效")
	case errors.Is(err, service.ErrExportNoRecords):
		response.NotFound(c, 16002, "暂无可导出的排班记录")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
