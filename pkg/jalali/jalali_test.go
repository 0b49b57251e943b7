package jalali

import (
	"errors"
	"testing"
	"time"
)

// ── 闰年规则 ──

func TestIsLeap(t *testing.T) {
	cases := []struct {
		year int
		want bool
	}{
		{1395, true},
		{1399, true},
		{1403, true},
		{1400, false},
		{1402, false},
		{1404, false},
	}
	for _, c := range cases {
		if got := IsLeap(c.year); got != c.want {
			t.Errorf("IsLeap(%d) 期望 %v，实际 %v", c.year, c.want, got)
		}
	}
}

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		year, month, want int
	}{
		{1403, 1, 31},
		{1403, 6, 31},
		{1403, 7, 30},
		{1403, 11, 30},
		{1403, 12, 30}, // 闰年
		{1402, 12, 29}, // 平年
		{1403, 0, 0},
		{1403, 13, 0},
	}
	for _, c := range cases {
		if got := DaysInMonth(c.year, c.month); got != c.want {
			t.Errorf("DaysInMonth(%d, %d) 期望 %d，实际 %d", c.year, c.month, c.want, got)
		}
	}
}

// ── 公历换算 ──

func TestFromTime_KnownDates(t *testing.T) {
	cases := []struct {
		gregorian time.Time
		want      Date
	}{
		// 诺鲁孜节（波斯新年）
		{time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), Date{1403, 1, 1}},
		{time.Date(2025, 3, 21, 0, 0, 0, 0, time.UTC), Date{1404, 1, 1}},
		// 闰年 12 月 30 日
		{time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC), Date{1403, 12, 30}},
		{time.Date(1979, 2, 11, 0, 0, 0, 0, time.UTC), Date{1357, 11, 22}},
	}
	for _, c := range cases {
		if got := FromTime(c.gregorian); got != c.want {
			t.Errorf("FromTime(%s) 期望 %v，实际 %v", c.gregorian.Format("2006-01-02"), c.want, got)
		}
	}
}

func TestTime_RoundTrip(t *testing.T) {
	// 从 1398-01-01 起逐日推进四年，换算应可逆
	d := Date{1398, 1, 1}
	for i := 0; i < 4*366; i++ {
		back := FromTime(d.Time())
		if back != d {
			t.Fatalf("往返换算不一致: %v → %s → %v", d, d.Time().Format("2006-01-02"), back)
		}
		d = d.AddDays(1)
	}
}

// ── 日期运算 ──

func TestAddDays_AcrossMonthAndYear(t *testing.T) {
	cases := []struct {
		start Date
		n     int
		want  Date
	}{
		{Date{1403, 1, 31}, 1, Date{1403, 2, 1}},
		{Date{1403, 6, 31}, 1, Date{1403, 7, 1}},
		{Date{1403, 12, 30}, 1, Date{1404, 1, 1}},
		{Date{1402, 12, 29}, 1, Date{1403, 1, 1}},
		{Date{1403, 1, 1}, -1, Date{1402, 12, 29}},
		{Date{1403, 1, 1}, 365, Date{1403, 12, 30}},
	}
	for _, c := range cases {
		if got := c.start.AddDays(c.n); got != c.want {
			t.Errorf("%v.AddDays(%d) 期望 %v，实际 %v", c.start, c.n, c.want, got)
		}
	}
}

func TestNextMonth(t *testing.T) {
	if y, m := (Date{1403, 7, 15}).NextMonth(); y != 1403 || m != 8 {
		t.Errorf("期望 1403-08，实际 %d-%d", y, m)
	}
	if y, m := (Date{1403, 12, 1}).NextMonth(); y != 1404 || m != 1 {
		t.Errorf("期望 1404-01，实际 %d-%d", y, m)
	}
}

// ── 构造与解析 ──

func TestNew_InvalidDate(t *testing.T) {
	cases := []struct{ y, m, d int }{
		{1403, 0, 1},
		{1403, 13, 1},
		{1403, 1, 0},
		{1403, 1, 32},
		{1403, 7, 31},
		{1402, 12, 30}, // 平年没有 12/30
	}
	for _, c := range cases {
		if _, err := New(c.y, c.m, c.d); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("New(%d, %d, %d) 期望 ErrInvalidDate，实际 %v", c.y, c.m, c.d, err)
		}
	}
}

func TestParse(t *testing.T) {
	d, err := Parse("1403-05-02")
	if err != nil {
		t.Fatalf("Parse 应成功: %v", err)
	}
	if d != (Date{1403, 5, 2}) {
		t.Errorf("期望 1403-05-02，实际 %v", d)
	}
	if d.String() != "1403-05-02" {
		t.Errorf("String() 期望 1403-05-02，实际 %s", d.String())
	}

	if _, err := Parse("not-a-date"); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("期望 ErrInvalidDate，实际 %v", err)
	}
	if _, err := Parse("1403-13-01"); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("期望 ErrInvalidDate，实际 %v", err)
	}
}

func TestMonthName(t *testing.T) {
	if MonthName(1) == "" || MonthName(12) == "" {
		t.Error("合法月份名称不应为空")
	}
	if MonthName(0) != "" || MonthName(13) != "" {
		t.Error("非法月份应返回空串")
	}
}
