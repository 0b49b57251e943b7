package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mohamamdsajadi/shift/internal/dto"
	"github.com/mohamamdsajadi/shift/internal/service"
	"github.com/mohamamdsajadi/shift/pkg/jalali"
	"github.com/mohamamdsajadi/shift/pkg/response"
)

// EditRequestHandler 改班申请模块 HTTP 处理器
type EditRequestHandler struct {
	editSvc service.EditRequestService
}

// NewEditRequestHandler 创建 EditRequestHandler
func NewEditRequestHandler(editSvc service.EditRequestService) *EditRequestHandler {
	return &EditRequestHandler{editSvc: editSvc}
}

// File 提交改班申请
// POST /api/v1/edit-requests
func (h *EditRequestHandler) File(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.FileEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.editSvc.File(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleEditError(c, err)
		return
	}

	response.Created(c, result)
}

// ListMine 查询本人申请
// GET /api/v1/edit-requests/mine
func (h *EditRequestHandler) ListMine(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.editSvc.ListMine(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": result})
}

// Quota 查询某月配额使用情况
// GET /api/v1/edit-requests/quota?year=&month=
func (h *EditRequestHandler) Quota(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

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

	result, qerr := h.editSvc.Quota(c.Request.Context(), userID, year, month)
	if qerr != nil {
		h.handleEditError(c, qerr)
		return
	}

	response.OK(c, result)
}

// ListPending 分页查询待审批申请（管理员）
// GET /api/v1/admin/edit-requests?page=&page_size=
func (h *EditRequestHandler) ListPending(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	result, total, err := h.editSvc.ListPending(c.Request.Context(), page, pageSize)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": result, "total": total})
}

// Approve 批准改班申请（管理员）
// PUT /api/v1/admin/edit-requests/:id/approve
func (h *EditRequestHandler) Approve(c *gin.Context) {
	adminID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "申请ID不能为空")
		return
	}

	result, err := h.editSvc.Approve(c.Request.Context(), id, adminID)
	if err != nil {
		h.handleEditError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *EditRequestHandler) handleEditError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, jalali.ErrInvalidDate):
		response.BadRequest(c, 14001, "日期无效")
	case errors.Is(err, service.ErrShiftDayNotFound):
		response.NotFound(c, 14002, "排班日记录不存在")
	case errors.Is(err, service.ErrQuotaExceeded):
		response.Conflict(c, 14003, "本月改班申请次数已用尽")
	case errors.Is(err, service.ErrEditRequestNotFound):
		response.NotFound(c, 14004, "改班申请不存在")
	case errors.Is(err, service.ErrQuotaConflict):
		response.Conflict(c, 14005, "改班配额记录创建冲突，请重试")
	default:
		response.InternalError(c)
	}
}
