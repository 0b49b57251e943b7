package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mohamamdsajadi/shift/internal/model"
)

// MonthControlRepository 月度改班配额数据访问接口
type MonthControlRepository interface {
	Create(ctx context.Context, control *model.MonthEditControl) error
	GetByUserMonth(ctx context.Context, userID string, year, month int) (*model.MonthEditControl, error)
	// GetByUserMonthForUpdate 行锁读取，须在 Repository.Transaction 内调用
	GetByUserMonthForUpdate(ctx context.Context, userID string, year, month int) (*model.MonthEditControl, error)
	Update(ctx context.Context, control *model.MonthEditControl) error
}

// monthControlRepo MonthControlRepository 的 GORM 实现
type monthControlRepo struct {
	db *gorm.DB
}

// NewMonthControlRepo 创建 MonthControlRepository 实例
func NewMonthControlRepo(db *gorm.DB) MonthControlRepository {
	return &monthControlRepo{db: db}
}

func (r *monthControlRepo) Create(ctx context.Context, control *model.MonthEditControl) error {
	return r.db.WithContext(ctx).Create(control).Error
}

func (r *monthControlRepo) GetByUserMonth(ctx context.Context, userID string, year, month int) (*model.MonthEditControl, error) {
	var control model.MonthEditControl
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		First(&control).Error
	if err != nil {
		return nil, err
	}
	return &control, nil
}

func (r *monthControlRepo) GetByUserMonthForUpdate(ctx context.Context, userID string, year, month int) (*model.MonthEditControl, error) {
	var control model.MonthEditControl
	err := r.db.WithContext(ctx).
		Clauses(forUpdateClause()).
		Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		First(&control).Error
	if err != nil {
		return nil, err
	}
	return &control, nil
}

func (r *monthControlRepo) Update(ctx context.Context, control *model.MonthEditControl) error {
	return r.db.WithContext(ctx).Save(control).Error
}
