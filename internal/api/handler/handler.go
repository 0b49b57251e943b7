package handler

import "github.com/mohamamdsajadi/shift/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth        *AuthHandler
	User        *UserHandler
	Shift       *ShiftHandler
	EditRequest *EditRequestHandler
	Discount    *DiscountHandler
	Export      *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(svc.Auth),
		User:        NewUserHandler(svc.User),
		Shift:       NewShiftHandler(svc.Shift),
		EditRequest: NewEditRequestHandler(svc.EditRequest),
		Discount:    NewDiscountHandler(svc.Discount),
		Export:      NewExportHandler(svc.Export),
	}
}
