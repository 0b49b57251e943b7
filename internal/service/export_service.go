package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/mohamamdsajadi/shift/internal/model"
	"github.com/mohamamdsajadi/shift/internal/repository"
	"github.com/mohamamdsajadi/shift/pkg/jalali"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoRecords    = errors.New("该月暂无排班记录")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 管理员按月导出全员排班 Excel (.xlsx)
//   - 用户导出本人已选班次为 iCalendar (.ics)，从今天起所有已选日
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// RosterXLSX 导出某 Jalali 月的全员排班表
	RosterXLSX(ctx context.Context, year, month int) (*bytes.Buffer, string, error)
	// ShiftsICS 导出本人自今天起的已选班次日历
	ShiftsICS(ctx context.Context, userID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	clock  Clock
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, clock Clock, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, clock: clock, logger: logger}
}

// ════════════════════════════════════════════════════════════
// RosterXLSX — 按月导出全员排班 Excel
// ════════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单 Sheet，行 = (用户, 日期)，仅含至少选择一个时段的记录
//   - 列：姓名 | 手机号 | 日期 (Jalali) | 早班 | 午班 | 夜班

func (s *exportService) RosterXLSX(ctx context.Context, year, month int) (*bytes.Buffer, string, error) {
	if _, err := jalali.New(year, month, 1); err != nil {
		return nil, "", err
	}

	// 1. 查询该月全员记录（含用户关联）
	days, err := s.repo.ShiftDay.ListByMonth(ctx, year, month)
	if err != nil {
		s.logger.Error("查询月度排班失败", zap.Error(err))
		return nil, "", err
	}

	// 2. 过滤出已选班次的记录
	var assigned []model.ShiftDay
	for i := range days {
		if days[i].Any() {
			assigned = append(assigned, days[i])
		}
	}
	if len(assigned) == 0 {
		return nil, "", ErrExportNoRecords
	}

	// 3. 该月折扣申报，按用户索引
	discounts, err := s.repo.Discount.ListByMonth(ctx, year, month)
	if err != nil {
		s.logger.Error("查询月度折扣申报失败", zap.Error(err))
		return nil, "", err
	}
	discountByUser := make(map[string]float64, len(discounts))
	for i := range discounts {
		discountByUser[discounts[i].UserID] = discounts[i].Percent
	}

	// 4. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "排班表"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 18)
	f.SetColWidth(sheetName, "B", "B", 14)
	f.SetColWidth(sheetName, "C", "C", 12)
	f.SetColWidth(sheetName, "D", "F", 8)
	f.SetColWidth(sheetName, "G", "G", 10)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s %d — 排班表", jalali.MonthName(month), year))
	f.MergeCell(sheetName, "A1", "G1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	headers := []string{"姓名", "手机号", "日期", "早班", "午班", "夜班", "折扣 (%)"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheetName, fmt.Sprintf("%s2", col), h)
	}

	// 数据行
	row := 3
	for i := range assigned {
		day := &assigned[i]
		name, phone := "-", "-"
		if day.User != nil {
			name = day.User.FullName()
			phone = day.User.PhoneNumber
		}
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), name)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), phone)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), day.StringDate)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), slotMark(day.Morning))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), slotMark(day.Afternoon))
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), slotMark(day.Night))
		if percent, ok := discountByUser[day.UserID]; ok {
			f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), percent)
		} else {
			f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), "-")
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("roster_%d_%02d.xlsx", year, month)
	return buf, filename, nil
}

func slotMark(on bool) string {
	if on {
		return "✓"
	}
	return "-"
}

// ════════════════════════════════════════════════════════════
// ShiftsICS — 导出本人已选班次为 iCalendar
// ════════════════════════════════════════════════════════════

// 各时段在公历日内的起止小时（夜班跨日）
var slotHours = []struct {
	slot  string
	name  string
	start int
	end   int
}{
	{model.SlotMorning, "早班", 8, 14},
	{model.SlotAfternoon, "午班", 14, 20},
	{model.SlotNight, "夜班", 20, 32},
}

func (s *exportService) ShiftsICS(ctx context.Context, userID string) (*bytes.Buffer, string, error) {
	today := jalali.FromTime(s.clock())

	days, err := s.repo.ShiftDay.ListAssignedByUserRange(ctx, userID, today.String())
	if err != nil {
		s.logger.Error("查询已选班次失败", zap.Error(err))
		return nil, "", err
	}
	if len(days) == 0 {
		return nil, "", ErrExportNoRecords
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//shift-portal//roster//FA")

	now := s.clock()
	for i := range days {
		day := &days[i]
		for _, sh := range slotHours {
			on := false
			switch sh.slot {
			case model.SlotMorning:
				on = day.Morning
			case model.SlotAfternoon:
				on = day.Afternoon
			case model.SlotNight:
				on = day.Night
			}
			if !on {
				continue
			}

			event := cal.AddEvent(fmt.Sprintf("%s-%s@shift-portal", day.ShiftDayID, sh.slot))
			event.SetCreatedTime(now)
			event.SetDtStampTime(now)
			event.SetStartAt(day.Date.Add(time.Duration(sh.start) * time.Hour))
			event.SetEndAt(day.Date.Add(time.Duration(sh.end) * time.Hour))
			event.SetSummary(fmt.Sprintf("%s (%s)", sh.name, day.StringDate))
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("shifts_%s.ics", today.String())
	return buf, filename, nil
}
