package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mohamamdsajadi/shift/internal/model"
)

// VerificationCodeRepository 验证码数据访问接口
type VerificationCodeRepository interface {
	Create(ctx context.Context, code *model.VerificationCode) error
	// GetLatestByPhone 取该手机号最近一条验证码记录（不判断是否过期/已用，由服务层判定）
	GetLatestByPhone(ctx context.Context, phone string) (*model.VerificationCode, error)
	Update(ctx context.Context, code *model.VerificationCode) error
}

// verificationCodeRepo VerificationCodeRepository 的 GORM 实现
type verificationCodeRepo struct {
	db *gorm.DB
}

// NewVerificationCodeRepo 创建 VerificationCodeRepository 实例
func NewVerificationCodeRepo(db *gorm.DB) VerificationCodeRepository {
	return &verificationCodeRepo{db: db}
}

func (r *verificationCodeRepo) Create(ctx context.Context, code *model.VerificationCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

func (r *verificationCodeRepo) GetLatestByPhone(ctx context.Context, phone string) (*model.VerificationCode, error) {
	var code model.VerificationCode
	err := r.db.WithContext(ctx).
		Where("phone_number = ?", phone).
		Order("created_at DESC").
		First(&code).Error
	if err != nil {
		return nil, err
	}
	return &code, nil
}

func (r *verificationCodeRepo) Update(ctx context.Context, code *model.VerificationCode) error {
	return r.db.WithContext(ctx).Save(code).Error
}
