package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mohamamdsajadi/shift/internal/model"
)

// ShiftDayRepository 排班日记录数据访问接口
type ShiftDayRepository interface {
	BatchCreate(ctx context.Context, days []*model.ShiftDay) error
	GetByUserAndDate(ctx context.Context, userID, stringDate string) (*model.ShiftDay, error)
	ListByUserMonth(ctx context.Context, userID string, year, month int) ([]model.ShiftDay, error)
	ListByMonth(ctx context.Context, year, month int) ([]model.ShiftDay, error)
	ListAssignedByUserRange(ctx context.Context, userID string, fromStringDate string) ([]model.ShiftDay, error)
	CountAssigned(ctx context.Context, userID string, year, month int) (int64, error)
	Update(ctx context.Context, day *model.ShiftDay) error
}

// shiftDayRepo ShiftDayRepository 的 GORM 实现
type shiftDayRepo struct {
	db *gorm.DB
}

// NewShiftDayRepo 创建 ShiftDayRepository 实例
func NewShiftDayRepo(db *gorm.DB) ShiftDayRepository {
	return &shiftDayRepo{db: db}
}

// BatchCreate 批量创建日记录；调用方负责将其置于事务中以保证整月原子写入
func (r *shiftDayRepo) BatchCreate(ctx context.Context, days []*model.ShiftDay) error {
	if len(days) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(days).Error
}

func (r *shiftDayRepo) GetByUserAndDate(ctx context.Context, userID, stringDate string) (*model.ShiftDay, error) {
	var day model.ShiftDay
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND string_date = ?", userID, stringDate).
		First(&day).Error
	if err != nil {
		return nil, err
	}
	return &day, nil
}

func (r *shiftDayRepo) ListByUserMonth(ctx context.Context, userID string, year, month int) ([]model.ShiftDay, error) {
	var days []model.ShiftDay
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		Order("day ASC").
		Find(&days).Error
	return days, err
}

// ListByMonth 整月全员记录（管理员导出用），按用户、日期排序
func (r *shiftDayRepo) ListByMonth(ctx context.Context, year, month int) ([]model.ShiftDay, error) {
	var days []model.ShiftDay
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("year = ? AND month = ?", year, month).
		Order("user_id ASC, day ASC").
		Find(&days).Error
	return days, err
}

// ListAssignedByUserRange 指定日期（含）之后所有已选班次的记录（iCalendar 导出用）
func (r *shiftDayRepo) ListAssignedByUserRange(ctx context.Context, userID string, fromStringDate string) ([]model.ShiftDay, error) {
	var days []model.ShiftDay
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND string_date >= ?", userID, fromStringDate).
		Where("morning OR afternoon OR night").
		Order("string_date ASC").
		Find(&days).Error
	return days, err
}

// CountAssigned 统计该月已选过班次的记录数；为 0 说明整月仍处于开放编辑窗口
func (r *shiftDayRepo) CountAssigned(ctx context.Context, userID string, year, month int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ShiftDay{}).
		Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		Where("morning OR afternoon OR night").
		Count(&count).Error
	return count, err
}

func (r *shiftDayRepo) Update(ctx context.Context, day *model.ShiftDay) error {
	return r.db.WithContext(ctx).Save(day).Error
}
