package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mohamamdsajadi/shift/internal/model"
)

// DocumentRepository 上传文件记录数据访问接口
type DocumentRepository interface {
	Create(ctx context.Context, doc *model.Document) error
	ListByUser(ctx context.Context, userID string) ([]model.Document, error)
}

// documentRepo DocumentRepository 的 GORM 实现
type documentRepo struct {
	db *gorm.DB
}

// NewDocumentRepo 创建 DocumentRepository 实例
func NewDocumentRepo(db *gorm.DB) DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, doc *model.Document) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *documentRepo) ListByUser(ctx context.Context, userID string) ([]model.Document, error) {
	var docs []model.Document
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("uploaded_at DESC").
		Find(&docs).Error
	return docs, err
}
