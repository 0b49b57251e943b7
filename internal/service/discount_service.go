package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mohamamdsajadi/shift/internal/dto"
	"github.com/mohamamdsajadi/shift/internal/model"
	"github.com/mohamamdsajadi/shift/internal/repository"
	"github.com/mohamamdsajadi/shift/pkg/jalali"
)

// ── 折扣申报模块业务错误 ──

var (
	ErrAlreadyDeclared  = errors.New("本月已申报过折扣")
	ErrDiscountNotFound = errors.New("本月尚无折扣申报")
)

// DiscountService 折扣申报业务接口
// 每人每个 Jalali 月至多一条申报，创建后不可修改或删除
type DiscountService interface {
	// Declare 为当前 Jalali 月申报折扣百分比
	Declare(ctx context.Context, userID string, req *dto.DeclareDiscountRequest) (*dto.DiscountResponse, error)
	// GetCurrent 查询当前 Jalali 月的申报记录
	GetCurrent(ctx context.Context, userID string) (*dto.DiscountResponse, error)
}

type discountService struct {
	repo   *repository.Repository
	clock  Clock
	logger *zap.Logger
}

// NewDiscountService 创建 DiscountService 实例
func NewDiscountService(repo *repository.Repository, clock Clock, logger *zap.Logger) DiscountService {
	return &discountService{repo: repo, clock: clock, logger: logger}
}

func (s *discountService) Declare(ctx context.Context, userID string, req *dto.DeclareDiscountRequest) (*dto.DiscountResponse, error) {
	today := jalali.FromTime(s.clock())

	// 1. 本月已有申报记录则拒绝（记录永久不可变）
	if _, err := s.repo.Discount.GetByUserMonth(ctx, userID, today.Year, today.Month); err == nil {
		return nil, ErrAlreadyDeclared
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询折扣申报失败", zap.Error(err))
		return nil, err
	}

	// 2. 创建申报；并发重复提交由唯一索引拦截
	discount := &model.Discount{
		UserID:     userID,
		Year:       today.Year,
		Month:      today.Month,
		Percent:    req.Percent,
		SubmitDate: today.String(),
	}
	if err := s.repo.Discount.Create(ctx, discount); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyDeclared
		}
		s.logger.Error("创建折扣申报失败", zap.Error(err))
		return nil, err
	}

	return toDiscountResponse(discount), nil
}

func (s *discountService) GetCurrent(ctx context.Context, userID string) (*dto.DiscountResponse, error) {
	today := jalali.FromTime(s.clock())

	discount, err := s.repo.Discount.GetByUserMonth(ctx, userID, today.Year, today.Month)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDiscountNotFound
		}
		s.logger.Error("查询折扣申报失败", zap.Error(err))
		return nil, err
	}

	return toDiscountResponse(discount), nil
}

func toDiscountResponse(d *model.Discount) *dto.DiscountResponse {
	return &dto.DiscountResponse{
		ID:         d.DiscountID,
		Year:       d.Year,
		Month:      d.Month,
		Percent:    d.Percent,
		SubmitDate: d.SubmitDate,
	}
}
