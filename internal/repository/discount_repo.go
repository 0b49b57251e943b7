package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mohamamdsajadi/shift/internal/model"
)

// DiscountRepository 折扣申报数据访问接口
type DiscountRepository interface {
	Create(ctx context.Context, discount *model.Discount) error
	GetByUserMonth(ctx context.Context, userID string, year, month int) (*model.Discount, error)
	ListByMonth(ctx context.Context, year, month int) ([]model.Discount, error)
}

// discountRepo DiscountRepository 的 GORM 实现
type discountRepo struct {
	db *gorm.DB
}

// NewDiscountRepo 创建 DiscountRepository 实例
func NewDiscountRepo(db *gorm.DB) DiscountRepository {
	return &discountRepo{db: db}
}

func (r *discountRepo) Create(ctx context.Context, discount *model.Discount) error {
	return r.db.WithContext(ctx).Create(discount).Error
}

func (r *discountRepo) GetByUserMonth(ctx context.Context, userID string, year, month int) (*model.Discount, error) {
	var discount model.Discount
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		First(&discount).Error
	if err != nil {
		return nil, err
	}
	return &discount, nil
}

func (r *discountRepo) ListByMonth(ctx context.Context, year, month int) ([]model.Discount, error) {
	var discounts []model.Discount
	err := r.db.WithContext(ctx).
		Where("year = ? AND month = ?", year, month).
		Find(&discounts).Error
	return discounts, err
}
