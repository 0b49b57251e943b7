package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mohamamdsajadi/shift/config"
	"github.com/mohamamdsajadi/shift/internal/dto"
	"github.com/mohamamdsajadi/shift/internal/model"
	"github.com/mohamamdsajadi/shift/internal/repository"
	"github.com/mohamamdsajadi/shift/pkg/jalali"
)

// ── 改班申请模块业务错误 ──

var (
	ErrEditRequestNotFound = errors.New("改班申请不存在")
	ErrQuotaExceeded       = errors.New("本月改班申请次数已用尽")
	ErrQuotaConflict       = errors.New("改班配额记录创建冲突")
)

// EditRequestService 改班申请业务接口
// 编辑窗口关闭后对单日班次的变更走申请-审批流程，每人每月有配额上限
type EditRequestService interface {
	// File 提交改班申请：申请创建与配额计数 +1 在同一事务内完成
	File(ctx context.Context, userID string, req *dto.FileEditRequest) (*dto.EditRequestResponse, error)
	// Approve 管理员批准：单向置位 is_approved 并将申请的标记回写到对应日记录；
	// 已批准的申请重复调用为幂等空操作
	Approve(ctx context.Context, requestID, adminID string) (*dto.EditRequestResponse, error)
	// ListMine 查询本人全部申请（新提交在前）
	ListMine(ctx context.Context, userID string) ([]dto.EditRequestResponse, error)
	// ListPending 分页查询待审批申请（管理员）
	ListPending(ctx context.Context, page, pageSize int) ([]dto.EditRequestResponse, int64, error)
	// Quota 查询某月配额使用情况；尚无配额记录时计数为 0
	Quota(ctx context.Context, userID string, year, month int) (*dto.QuotaResponse, error)
}

type editRequestService struct {
	cfg    *config.Config
	repo   *repository.Repository
	clock  Clock
	logger *zap.Logger
}

// NewEditRequestService 创建 EditRequestService 实例
func NewEditRequestService(cfg *config.Config, repo *repository.Repository, clock Clock, logger *zap.Logger) EditRequestService {
	return &editRequestService{cfg: cfg, repo: repo, clock: clock, logger: logger}
}

// ────────────────────── File ──────────────────────

func (s *editRequestService) File(ctx context.Context, userID string, req *dto.FileEditRequest) (*dto.EditRequestResponse, error) {
	// 1. 解析日期
	jd, err := jalali.Parse(req.Date)
	if err != nil {
		return nil, err
	}

	// 2. 目标日记录必须已存在（月份须先经 EnsureMonth 初始化）
	if _, err := s.repo.ShiftDay.GetByUserAndDate(ctx, userID, jd.String()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftDayNotFound
		}
		s.logger.Error("查询排班日记录失败", zap.Error(err))
		return nil, err
	}

	// 3. 事务：行锁读取配额 → 校验 → 创建申请 + 计数 +1
	var editReq *model.EditRequest
	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		control, err := txRepo.MonthControl.GetByUserMonthForUpdate(ctx, userID, jd.Year, jd.Month)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				s.logger.Error("查询改班配额失败", zap.Error(err))
				return err
			}
			// 懒创建配额记录；并发重复创建由唯一索引拦截
			control = &model.MonthEditControl{
				UserID:      userID,
				Year:        jd.Year,
				Month:       jd.Month,
				ChangeLimit: s.cfg.Scheduling.EditRequestLimit,
			}
			if err := txRepo.MonthControl.Create(ctx, control); err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return ErrQuotaConflict
				}
				s.logger.Error("创建改班配额失败", zap.Error(err))
				return err
			}
		}

		if control.Exhausted() {
			return ErrQuotaExceeded
		}

		editReq = &model.EditRequest{
			UserID:     userID,
			Date:       jd.Time(),
			StringDate: jd.String(),
			Proposed: model.ShiftFlags{
				Morning:   req.Morning,
				Afternoon: req.Afternoon,
				Night:     req.Night,
			},
			RequestedAt: s.clock(),
		}
		if err := txRepo.EditRequest.Create(ctx, editReq); err != nil {
			s.logger.Error("创建改班申请失败", zap.Error(err))
			return err
		}

		control.ChangeCount++
		if err := txRepo.MonthControl.Update(ctx, control); err != nil {
			s.logger.Error("更新改班配额失败", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toEditRequestResponse(editReq), nil
}

// ────────────────────── Approve ──────────────────────

func (s *editRequestService) Approve(ctx context.Context, requestID, adminID string) (*dto.EditRequestResponse, error) {
	editReq, err := s.repo.EditRequest.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEditRequestNotFound
		}
		s.logger.Error("查询改班申请失败", zap.Error(err))
		return nil, err
	}

	// 幂等：已批准的申请不再重复回写
	if editReq.IsApproved {
		return toEditRequestResponse(editReq), nil
	}

	jd, err := jalali.Parse(editReq.StringDate)
	if err != nil {
		return nil, err
	}

	// 事务：标记回写 + 批准状态置位，两者同进退
	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		day, err := txRepo.ShiftDay.GetByUserAndDate(ctx, editReq.UserID, editReq.StringDate)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				s.logger.Error("查询排班日记录失败", zap.Error(err))
				return err
			}
			// 单日记录缺失：月份从未初始化则拒绝，否则补建该日
			siblings, lerr := txRepo.ShiftDay.ListByUserMonth(ctx, editReq.UserID, jd.Year, jd.Month)
			if lerr != nil {
				return lerr
			}
			if len(siblings) == 0 {
				return ErrShiftDayNotFound
			}
			day = &model.ShiftDay{
				UserID:     editReq.UserID,
				Date:       jd.Time(),
				StringDate: editReq.StringDate,
				Year:       jd.Year,
				Month:      jd.Month,
				Day:        jd.Day,
			}
			if cerr := txRepo.ShiftDay.BatchCreate(ctx, []*model.ShiftDay{day}); cerr != nil {
				return cerr
			}
		}

		day.ShiftFlags = editReq.Proposed
		if err := txRepo.ShiftDay.Update(ctx, day); err != nil {
			s.logger.Error("回写排班标记失败", zap.Error(err))
			return err
		}

		now := s.clock()
		editReq.IsApproved = true
		editReq.ApprovedAt = &now
		editReq.ApprovedBy = &adminID
		if err := txRepo.EditRequest.Update(ctx, editReq); err != nil {
			s.logger.Error("更新改班申请失败", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toEditRequestResponse(editReq), nil
}

// ────────────────────── 查询 ──────────────────────

func (s *editRequestService) ListMine(ctx context.Context, userID string) ([]dto.EditRequestResponse, error) {
	reqs, err := s.repo.EditRequest.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询改班申请列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.EditRequestResponse, 0, len(reqs))
	for i := range reqs {
		result = append(result, *toEditRequestResponse(&reqs[i]))
	}
	return result, nil
}

func (s *editRequestService) ListPending(ctx context.Context, page, pageSize int) ([]dto.EditRequestResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	reqs, total, err := s.repo.EditRequest.ListPending(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		s.logger.Error("查询待审批申请失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.EditRequestResponse, 0, len(reqs))
	for i := range reqs {
		result = append(result, *toEditRequestResponse(&reqs[i]))
	}
	return result, total, nil
}

func (s *editRequestService) Quota(ctx context.Context, userID string, year, month int) (*dto.QuotaResponse, error) {
	if _, err := jalali.New(year, month, 1); err != nil {
		return nil, err
	}

	control, err := s.repo.MonthControl.GetByUserMonth(ctx, userID, year, month)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.QuotaResponse{
				Year:        year,
				Month:       month,
				ChangeCount: 0,
				ChangeLimit: s.cfg.Scheduling.EditRequestLimit,
			}, nil
		}
		s.logger.Error("查询改班配额失败", zap.Error(err))
		return nil, err
	}

	return &dto.QuotaResponse{
		Year:        control.Year,
		Month:       control.Month,
		ChangeCount: control.ChangeCount,
		ChangeLimit: control.ChangeLimit,
	}, nil
}

func toEditRequestResponse(req *model.EditRequest) *dto.EditRequestResponse {
	resp := &dto.EditRequestResponse{
		ID:          req.EditRequestID,
		UserID:      req.UserID,
		StringDate:  req.StringDate,
		Morning:     req.Proposed.Morning,
		Afternoon:   req.Proposed.Afternoon,
		Night:       req.Proposed.Night,
		IsApproved:  req.IsApproved,
		RequestedAt: req.RequestedAt.Format("2006-01-02 15:04:05"),
	}
	if req.User != nil {
		resp.UserName = req.User.FullName()
	}
	return resp
}
