// Package jalali 实现波斯太阳历（Jalali 历）与公历之间的转换。
// 排班核心的所有日期均以 Jalali 历表示，算法采用经典的 33 年周期法
// （Roozbeh Pournader / Mohammad Toossi 的 jalali.c 算法），
// 与原始数据中的 "YYYY-MM-DD" 字符串日期保持一致。
package jalali

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate 非法日期（月份或日号超出范围）
var ErrInvalidDate = errors.New("非法的 Jalali 日期")

// 每月天数（非闰年）：1~6 月 31 天，7~11 月 30 天，12 月 29 天（闰年 30 天）
var jDaysInMonth = [12]int{31, 31, 31, 31, 31, 31, 30, 30, 30, 30, 30, 29}

var gDaysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// monthNames 波斯月份名称（用于导出表头等展示场景）
var monthNames = [12]string{
	"فروردین", "اردیبهشت", "خرداد", "تیر", "مرداد", "شهریور",
	"مهر", "آبان", "آذر", "دی", "بهمن", "اسفند",
}

// Date Jalali 历日期（年/月/日）
type Date struct {
	Year  int
	Month int
	Day   int
}

// New 构造并校验一个 Jalali 日期
func New(year, month, day int) (Date, error) {
	d := Date{Year: year, Month: month, Day: day}
	if err := d.Validate(); err != nil {
		return Date{}, err
	}
	return d, nil
}

// Validate 校验日期合法性
func (d Date) Validate() error {
	if d.Month < 1 || d.Month > 12 {
		return fmt.Errorf("%w: 月份 %d", ErrInvalidDate, d.Month)
	}
	if d.Day < 1 || d.Day > DaysInMonth(d.Year, d.Month) {
		return fmt.Errorf("%w: %d 年 %d 月没有第 %d 天", ErrInvalidDate, d.Year, d.Month, d.Day)
	}
	return nil
}

// String 格式化为 "YYYY-MM-DD"（与数据库 string_date 列一致）
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Parse 解析 "YYYY-MM-DD" 形式的 Jalali 日期字符串
func Parse(s string) (Date, error) {
	var y, m, day int
	if _, err := fmt.Sscanf(s, "%d-%d-%d", &y, &m, &day); err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return New(y, m, day)
}

// IsLeap 判断 Jalali 闰年（12 月有 30 天的年份）
func IsLeap(year int) bool {
	return dayNumber(Date{year + 1, 1, 1})-dayNumber(Date{year, 1, 1}) == 366
}

// DaysInMonth 返回指定年月的天数
func DaysInMonth(year, month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	if month == 12 && IsLeap(year) {
		return 30
	}
	return jDaysInMonth[month-1]
}

// MonthName 返回波斯月份名称；月份非法时返回空串
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month-1]
}

// FromTime 将公历时间换算为 Jalali 日期（取 t 所在时区的日历日）
func FromTime(t time.Time) Date {
	gy, gm, gd := t.Date()
	return fromDayNumber(gregorianDayNumber(gy, int(gm), gd) - 79)
}

// Time 换算为公历时间（UTC 零点）
func (d Date) Time() time.Time {
	gy, gm, gd := toGregorian(dayNumber(d) + 79)
	return time.Date(gy, time.Month(gm), gd, 0, 0, 0, 0, time.UTC)
}

// AddDays 返回 d 之后（n 为负时之前）第 n 天的日期
func (d Date) AddDays(n int) Date {
	return fromDayNumber(dayNumber(d) + n)
}

// NextMonth 返回下一个月的 (年, 月)，12 月翻到下一年
func (d Date) NextMonth() (int, int) {
	if d.Month >= 12 {
		return d.Year + 1, 1
	}
	return d.Year, d.Month + 1
}

// Before 判断 d 是否早于 other
func (d Date) Before(other Date) bool {
	return dayNumber(d) < dayNumber(other)
}

// ── 内部换算 ──
// 纪元：Jalali 第 0 天 = 979-01-01（对应公历 1600-03-21），
// 12053 = 33 年周期总天数，1461 = 4 年小周期总天数。

func dayNumber(d Date) int {
	jy := d.Year - 979
	n := 365*jy + (jy/33)*8 + (jy%33+3)/4
	for i := 0; i < d.Month-1; i++ {
		n += jDaysInMonth[i]
	}
	return n + d.Day - 1
}

func fromDayNumber(n int) Date {
	year := 979 + 33*(n/12053)
	n %= 12053
	year += 4 * (n / 1461)
	n %= 1461
	if n >= 366 {
		year += (n - 1) / 365
		n = (n - 1) % 365
	}
	month := 1
	for i := 0; i < 11 && n >= jDaysInMonth[i]; i++ {
		n -= jDaysInMonth[i]
		month++
	}
	return Date{Year: year, Month: month, Day: n + 1}
}

func isGregorianLeap(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// gregorianDayNumber 公历日期距 1600-01-01 的天数
func gregorianDayNumber(gy, gm, gd int) int {
	y := gy - 1600
	n := 365*y + (y+3)/4 - (y+99)/100 + (y+399)/400
	for i := 0; i < gm-1; i++ {
		n += gDaysInMonth[i]
	}
	if gm > 2 && isGregorianLeap(gy) {
		n++
	}
	return n + gd - 1
}

func toGregorian(n int) (int, int, int) {
	gy := 1600 + 400*(n/146097)
	n %= 146097
	leap := true
	if n >= 36525 {
		n--
		gy += 100 * (n / 36524)
		n %= 36524
		if n >= 365 {
			n++
		} else {
			leap = false
		}
	}
	gy += 4 * (n / 1461)
	n %= 1461
	if n >= 366 {
		leap = false
		n--
		gy += n / 365
		n %= 365
	}
	month := 1
	for i := 0; i < 11; i++ {
		days := gDaysInMonth[i]
		if i == 1 && leap {
			days++
		}
		if n < days {
			break
		}
		n -= days
		month++
	}
	return gy, month, n + 1
}
