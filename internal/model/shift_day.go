package model

import "time"

// 班次时段
const (
	SlotMorning   = "morning"
	SlotAfternoon = "afternoon"
	SlotNight     = "night"
)

// ShiftFlags 一天内三个独立班次的标记
// 以嵌入结构表示，便于整体判断"全空/任一已选"
type ShiftFlags struct {
	Morning   bool `gorm:"not null;default:false" json:"morning"`
	Afternoon bool `gorm:"not null;default:false" json:"afternoon"`
	Night     bool `gorm:"not null;default:false" json:"night"`
}

// None 三个时段均未选择
func (f ShiftFlags) None() bool { return !f.Morning && !f.Afternoon && !f.Night }

// Any 至少选择了一个时段
func (f ShiftFlags) Any() bool { return !f.None() }

// Set 置位指定时段；时段名非法时返回 false
func (f *ShiftFlags) Set(slot string) bool {
	switch slot {
	case SlotMorning:
		f.Morning = true
	case SlotAfternoon:
		f.Afternoon = true
	case SlotNight:
		f.Night = true
	default:
		return false
	}
	return true
}

// ShiftDay 排班日记录表 — 对应 shift_days
// 每人每个日历日一条记录；date 为对应的公历日期（仅用于排序与导出），
// string_date 为 Jalali 历 "YYYY-MM-DD"，year/month/day 为 Jalali 历分量
type ShiftDay struct {
	ShiftDayID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"shift_day_id"`
	UserID     string    `gorm:"type:uuid;not null;uniqueIndex:uq_shift_days_user_date;index:idx_shift_days_user_month,priority:1" json:"user_id"`
	Date       time.Time `gorm:"type:date;not null"                             json:"date"`
	StringDate string    `gorm:"type:varchar(10);not null;uniqueIndex:uq_shift_days_user_date" json:"string_date"`
	Year       int       `gorm:"type:smallint;not null;index:idx_shift_days_user_month,priority:2" json:"year"`
	Month      int       `gorm:"type:smallint;not null;index:idx_shift_days_user_month,priority:3" json:"month"`
	Day        int       `gorm:"type:smallint;not null"                         json:"day"`
	ShiftFlags `gorm:"embedded"`
	BaseModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (ShiftDay) TableName() string { return "shift_days" }
