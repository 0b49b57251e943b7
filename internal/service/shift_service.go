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

// ── 排班模块业务错误 ──

var (
	ErrShiftDayNotFound = errors.New("排班日记录不存在")
	ErrMonthClosed      = errors.New("该月编辑窗口已关闭")
	ErrInvalidSlot      = errors.New("班次时段无效")
	ErrMonthConflict    = errors.New("该月记录创建冲突")
)

// ShiftService 排班业务接口
type ShiftService interface {
	// EnsureMonth 确保 (user, year, month) 的整月日记录存在（缺失时事务化批量创建），
	// 返回该月是否仍处于开放编辑窗口（全部标记为空）及按日升序的记录
	EnsureMonth(ctx context.Context, userID string, year, month int) (bool, []model.ShiftDay, error)
	// SetFlag 开放窗口内置位某日某时段；重复置位同一已选时段为幂等空操作
	SetFlag(ctx context.Context, userID string, req *dto.SetFlagRequest) (*dto.ShiftDayResponse, error)
	// CurrentMonth 当月只读视图：从今天到月末懒创建缺失日记录，视图不可直接编辑
	CurrentMonth(ctx context.Context, userID string) (*dto.MonthViewResponse, error)
	// NextMonth 下月视图：整月 EnsureMonth + 提交窗口开放标记
	NextMonth(ctx context.Context, userID string) (*dto.MonthViewResponse, error)
}

type shiftService struct {
	cfg    *config.Config
	repo   *repository.Repository
	clock  Clock
	logger *zap.Logger
}

// NewShiftService 创建 ShiftService 实例
func NewShiftService(cfg *config.Config, repo *repository.Repository, clock Clock, logger *zap.Logger) ShiftService {
	return &shiftService{cfg: cfg, repo: repo, clock: clock, logger: logger}
}

// ────────────────────── EnsureMonth ──────────────────────

func (s *shiftService) EnsureMonth(ctx context.Context, userID string, year, month int) (bool, []model.ShiftDay, error) {
	// 1. 校验年月合法性
	if _, err := jalali.New(year, month, 1); err != nil {
		return false, nil, err
	}

	// 2. 查询已有记录
	days, err := s.repo.ShiftDay.ListByUserMonth(ctx, userID, year, month)
	if err != nil {
		s.logger.Error("查询月度排班记录失败", zap.Error(err))
		return false, nil, err
	}

	// 3. 无记录时整月批量创建（事务保证整月原子写入）
	if len(days) == 0 {
		if err := s.createMonth(ctx, userID, year, month); err != nil {
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				s.logger.Error("创建月度排班记录失败", zap.Error(err))
				return false, nil, err
			}
			// 并发请求已创建同月记录，唯一索引拦截 → 读取既有记录即可
		}

		days, err = s.repo.ShiftDay.ListByUserMonth(ctx, userID, year, month)
		if err != nil {
			return false, nil, err
		}
		if len(days) == 0 {
			return false, nil, ErrMonthConflict
		}
	}

	// 4. 计算开放编辑窗口：整月无任何已选时段即开放
	editable := true
	for i := range days {
		if days[i].Any() {
			editable = false
			break
		}
	}

	return editable, days, nil
}

// createMonth 在单个事务内创建整月日记录（1 日至月末，全部标记为空）
func (s *shiftService) createMonth(ctx context.Context, userID string, year, month int) error {
	total := jalali.DaysInMonth(year, month)
	records := make([]*model.ShiftDay, 0, total)
	for d := 1; d <= total; d++ {
		jd, err := jalali.New(year, month, d)
		if err != nil {
			return err
		}
		records = append(records, &model.ShiftDay{
			UserID:     userID,
			Date:       jd.Time(),
			StringDate: jd.String(),
			Year:       year,
			Month:      month,
			Day:        d,
		})
	}

	return s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		return txRepo.ShiftDay.BatchCreate(ctx, records)
	})
}

// ────────────────────── SetFlag ──────────────────────

func (s *shiftService) SetFlag(ctx context.Context, userID string, req *dto.SetFlagRequest) (*dto.ShiftDayResponse, error) {
	// 1. 解析日期
	jd, err := jalali.Parse(req.Date)
	if err != nil {
		return nil, err
	}

	// 2. 查找目标日记录（须先经 EnsureMonth 创建）
	day, err := s.repo.ShiftDay.GetByUserAndDate(ctx, userID, jd.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftDayNotFound
		}
		s.logger.Error("查询排班日记录失败", zap.Error(err))
		return nil, err
	}

	// 3. 幂等：目标时段已置位则直接返回
	already := false
	switch req.Slot {
	case model.SlotMorning:
		already = day.Morning
	case model.SlotAfternoon:
		already = day.Afternoon
	case model.SlotNight:
		already = day.Night
	default:
		return nil, ErrInvalidSlot
	}
	if already {
		return toShiftDayResponse(day), nil
	}

	// 4. 开放窗口校验：该月已有任一已选时段即关闭，只能走改班申请
	assigned, err := s.repo.ShiftDay.CountAssigned(ctx, userID, jd.Year, jd.Month)
	if err != nil {
		s.logger.Error("统计月度已选班次失败", zap.Error(err))
		return nil, err
	}
	if assigned > 0 {
		return nil, ErrMonthClosed
	}

	// 5. 仅置位目标时段，不影响其他时段与其他日
	day.Set(req.Slot)
	if err := s.repo.ShiftDay.Update(ctx, day); err != nil {
		s.logger.Error("更新排班日记录失败", zap.Error(err))
		return nil, err
	}

	return toShiftDayResponse(day), nil
}

// ────────────────────── CurrentMonth ──────────────────────

func (s *shiftService) CurrentMonth(ctx context.Context, userID string) (*dto.MonthViewResponse, error) {
	today := jalali.FromTime(s.clock())

	// 1. 懒创建从今天到月末缺失的日记录
	if err := s.fillFromToday(ctx, userID, today); err != nil {
		return nil, err
	}

	// 2. 读取该月全部记录
	days, err := s.repo.ShiftDay.ListByUserMonth(ctx, userID, today.Year, today.Month)
	if err != nil {
		s.logger.Error("查询月度排班记录失败", zap.Error(err))
		return nil, err
	}

	resp := s.buildMonthView(today.Year, today.Month, days)
	// 当月视图只读：不允许直接编辑，折扣可在无申报记录时补报
	resp.Editable = false
	s.attachDiscountState(ctx, resp, userID, today)
	return resp, nil
}

// fillFromToday 为当月 [今天, 月末] 区间补齐缺失的日记录
func (s *shiftService) fillFromToday(ctx context.Context, userID string, today jalali.Date) error {
	existing, err := s.repo.ShiftDay.ListByUserMonth(ctx, userID, today.Year, today.Month)
	if err != nil {
		return err
	}
	seen := make(map[int]bool, len(existing))
	for i := range existing {
		seen[existing[i].Day] = true
	}

	total := jalali.DaysInMonth(today.Year, today.Month)
	var missing []*model.ShiftDay
	for d := today.Day; d <= total; d++ {
		if seen[d] {
			continue
		}
		jd, err := jalali.New(today.Year, today.Month, d)
		if err != nil {
			return err
		}
		missing = append(missing, &model.ShiftDay{
			UserID:     userID,
			Date:       jd.Time(),
			StringDate: jd.String(),
			Year:       today.Year,
			Month:      today.Month,
			Day:        d,
		})
	}
	if len(missing) == 0 {
		return nil
	}

	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		return txRepo.ShiftDay.BatchCreate(ctx, missing)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// 并发补齐，已有记录覆盖同日 → 安全忽略
			return nil
		}
		s.logger.Error("补齐当月排班记录失败", zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── NextMonth ──────────────────────

func (s *shiftService) NextMonth(ctx context.Context, userID string) (*dto.MonthViewResponse, error) {
	today := jalali.FromTime(s.clock())
	year, month := today.NextMonth()

	editable, days, err := s.EnsureMonth(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}

	resp := s.buildMonthView(year, month, days)
	resp.Editable = editable
	resp.RequestWindowOpen = today.Day >= s.cfg.Scheduling.RequestOpenDay
	s.attachDiscountState(ctx, resp, userID, today)
	return resp, nil
}

// ────────────────────── 视图构造 ──────────────────────

func (s *shiftService) buildMonthView(year, month int, days []model.ShiftDay) *dto.MonthViewResponse {
	resp := &dto.MonthViewResponse{
		Year:      year,
		Month:     month,
		MonthName: jalali.MonthName(month),
		Days:      make([]dto.ShiftDayResponse, 0, len(days)),
	}
	for i := range days {
		resp.Days = append(resp.Days, *toShiftDayResponse(&days[i]))
	}
	return resp
}

// attachDiscountState 将折扣申报状态挂到月视图上。
// 折扣申报始终针对当前月，当月与下月视图展示的均为本月的申报状态；
// 无记录属正常情况（尚可补报），查询失败仅记日志不阻断视图。
func (s *shiftService) attachDiscountState(ctx context.Context, resp *dto.MonthViewResponse, userID string, today jalali.Date) {
	discount, err := s.repo.Discount.GetByUserMonth(ctx, userID, today.Year, today.Month)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询折扣申报失败", zap.Error(err))
	}
	if discount != nil {
		resp.Discount = toDiscountResponse(discount)
	}
	resp.DiscountEditable = resp.Discount == nil
}

func toShiftDayResponse(day *model.ShiftDay) *dto.ShiftDayResponse {
	return &dto.ShiftDayResponse{
		ID:         day.ShiftDayID,
		StringDate: day.StringDate,
		Year:       day.Year,
		Month:      day.Month,
		Day:        day.Day,
		Morning:    day.Morning,
		Afternoon:  day.Afternoon,
		Night:      day.Night,
	}
}
