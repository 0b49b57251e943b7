package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mohamamdsajadi/shift/internal/model"
)

// EditRequestRepository 改班申请数据访问接口
type EditRequestRepository interface {
	Create(ctx context.Context, req *model.EditRequest) error
	GetByID(ctx context.Context, id string) (*model.EditRequest, error)
	Update(ctx context.Context, req *model.EditRequest) error
	ListByUser(ctx context.Context, userID string) ([]model.EditRequest, error)
	ListPending(ctx context.Context, offset, limit int) ([]model.EditRequest, int64, error)
}

// editRequestRepo EditRequestRepository 的 GORM 实现
type editRequestRepo struct {
	db *gorm.DB
}

// NewEditRequestRepo 创建 EditRequestRepository 实例
func NewEditRequestRepo(db *gorm.DB) EditRequestRepository {
	return &editRequestRepo{db: db}
}

func (r *editRequestRepo) Create(ctx context.Context, req *model.EditRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *editRequestRepo) GetByID(ctx context.Context, id string) (*model.EditRequest, error) {
	var req model.EditRequest
	err := r.db.WithContext(ctx).
		Where("edit_request_id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *editRequestRepo) Update(ctx context.Context, req *model.EditRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *editRequestRepo) ListByUser(ctx context.Context, userID string) ([]model.EditRequest, error) {
	var reqs []model.EditRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("requested_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *editRequestRepo) ListPending(ctx context.Context, offset, limit int) ([]model.EditRequest, int64, error) {
	var reqs []model.EditRequest
	var total int64

	db := r.db.WithContext(ctx).
		Model(&model.EditRequest{}).
		Where("is_approved = ?", false)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("User").
		Offset(offset).Limit(limit).
		Order("requested_at ASC").
		Find(&reqs).Error; err != nil {
		return nil, 0, err
	}

	return reqs, total, nil
}
