package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mohamamdsajadi/shift/internal/model"
)

// BankInfoRepository 银行账户信息数据访问接口
type BankInfoRepository interface {
	Create(ctx context.Context, info *model.BankInfo) error
	ListByUser(ctx context.Context, userID string) ([]model.BankInfo, error)
}

// bankInfoRepo BankInfoRepository 的 GORM 实现
type bankInfoRepo struct {
	db *gorm.DB
}

// NewBankInfoRepo 创建 BankInfoRepository 实例
func NewBankInfoRepo(db *gorm.DB) BankInfoRepository {
	return &bankInfoRepo{db: db}
}

func (r *bankInfoRepo) Create(ctx context.Context, info *model.BankInfo) error {
	return r.db.WithContext(ctx).Create(info).Error
}

func (r *bankInfoRepo) ListByUser(ctx context.Context, userID string) ([]model.BankInfo, error) {
	var infos []model.BankInfo
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&infos).Error
	return infos, err
}
