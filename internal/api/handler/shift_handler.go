package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/mohamamdsajadi/shift/internal/dto"
	"github.com/mohamamdsajadi/shift/internal/service"
	"github.com/mohamamdsajadi/shift/pkg/jalali"
	"github.com/mohamamdsajadi/shift/pkg/response"
)

// ShiftHandler 排班模块 HTTP 处理器
type ShiftHandler struct {
	shiftSvc service.ShiftService
}

// NewShiftHandler 创建 ShiftHandler
func NewShiftHandler(shiftSvc service.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftSvc: shiftSvc}
}

// CurrentMonth 当月排班视图
// GET /api/v1/shifts/current-month
func (h *ShiftHandler) CurrentMonth(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	view, err := h.shiftSvc.CurrentMonth(c.Request.Context(), userID)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.OK(c, view)
}

// NextMonth 下月排班视图（含提交窗口开放标记）
// GET /api/v1/shifts/next-month
func (h *ShiftHandler) NextMonth(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	view, err := h.shiftSvc.NextMonth(c.Request.Context(), userID)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.OK(c, view)
}

// SetFlag 开放窗口内置位某日某时段
// POST /api/v1/shifts/flags
func (h *ShiftHandler) SetFlag(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SetFlagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	day, err := h.shiftSvc.SetFlag(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.OK(c, day)
}

func (h *ShiftHandler) handleShiftError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, jalali.ErrInvalidDate):
		response.BadRequest(c, 13001, "日期无效")
	case errors.Is(err, service.ErrShiftDayNotFound):
		response.NotFound(c, 13002, "排班日记录不存在")
	case errors.Is(err, service.ErrMonthClosed):
		response.Conflict(c, 13003, "该月编辑窗口已关闭，请提交改班申请")
	case errors.Is(err, service.ErrInvalidSlot):
		response.BadRequest(c, 13004, "班次时段无效")
	case errors.Is(err, service.ErrMonthConflict):
		response.Conflict(c, 13005, "该月记录创建冲突，请重试")
	default:
		response.InternalError(c)
	}
}
