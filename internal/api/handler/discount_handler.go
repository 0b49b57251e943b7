package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/mohamamdsajadi/shift/internal/dto"
	"github.com/mohamamdsajadi/shift/internal/service"
	"github.com/mohamamdsajadi/shift/pkg/response"
)

// DiscountHandler 折扣申报模块 HTTP 处理器
type DiscountHandler struct {
	discountSvc service.DiscountService
}

// NewDiscountHandler 创建 DiscountHandler
func NewDiscountHandler(discountSvc service.DiscountService) *DiscountHandler {
	return &DiscountHandler{discountSvc: discountSvc}
}

// Declare 申报当月折扣
// POST /api/v1/discounts
func (h *DiscountHandler) Declare(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.DeclareDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.discountSvc.Declare(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleDiscountError(c, err)
		return
	}

	response.Created(c, result)
}

// GetCurrent 查询当月折扣申报
// GET /api/v1/discounts/current
func (h *DiscountHandler) GetCurrent(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.discountSvc.GetCurrent(c.Request.Context(), userID)
	if err != nil {
		h.handleDiscountError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *DiscountHandler) handleDiscountError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAlreadyDeclared):
		response.Conflict(c, 15001, "当月折扣已申报，不可重复")
	case errors.Is(err, service.ErrDiscountNotFound):
		response.NotFound(c, 15002, "当月暂无折扣申报记录")
	default:
		response.InternalError(c)
	}
}
