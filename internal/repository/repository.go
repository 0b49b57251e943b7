package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	User         UserRepository
	ShiftDay     ShiftDayRepository
	EditRequest  EditRequestRepository
	MonthControl MonthControlRepository
	Discount     DiscountRepository
	Code         VerificationCodeRepository
	BankInfo     BankInfoRepository
	Document     DocumentRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:           db,
		User:         NewUserRepo(db),
		ShiftDay:     NewShiftDayRepo(db),
		EditRequest:  NewEditRequestRepo(db),
		MonthControl: NewMonthControlRepo(db),
		Discount:     NewDiscountRepo(db),
		Code:         NewVerificationCodeRepo(db),
		BankInfo:     NewBankInfoRepo(db),
		Document:     NewDocumentRepo(db),
	}
}

// Transaction 在单个数据库事务内执行 fn，fn 返回错误时整体回滚
// 未注入 db 时（测试中以 mock 构造聚合）直接在当前 Repository 上执行
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
