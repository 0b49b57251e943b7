package model

// DefaultEditLimit 每人每月默认可提交的改班申请数
const DefaultEditLimit = 3

// MonthEditControl 月度改班配额表 — 对应 month_edit_controls
// 每人每个 Jalali 月一条，懒创建；每提交一次改班申请计数 +1，
// 达到 change_limit 后拒绝新申请
type MonthEditControl struct {
	ControlID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"control_id"`
	UserID      string `gorm:"type:uuid;not null;uniqueIndex:uq_month_controls_user_month" json:"user_id"`
	Year        int    `gorm:"type:smallint;not null;uniqueIndex:uq_month_controls_user_month" json:"year"`
	Month       int    `gorm:"type:smallint;not null;uniqueIndex:uq_month_controls_user_month" json:"month"`
	ChangeCount int    `gorm:"not null;default:0" json:"change_count"`
	ChangeLimit int    `gorm:"not null;default:3" json:"change_limit"`
	BaseModel
}

// TableName 指定表名
func (MonthEditControl) TableName() string { return "month_edit_controls" }

// Exhausted 配额是否已用尽
func (c *MonthEditControl) Exhausted() bool {
	return c.ChangeCount >= c.ChangeLimit
}
