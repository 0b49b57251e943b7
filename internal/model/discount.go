package model

import "time"

// Discount 折扣申报表 — 对应 discounts
// 每人每个 Jalali 月最多一条，创建后不可修改或删除
type Discount struct {
	DiscountID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"discount_id"`
	UserID     string    `gorm:"type:uuid;not null;uniqueIndex:uq_discounts_user_month" json:"user_id"`
	Year       int       `gorm:"type:smallint;not null;uniqueIndex:uq_discounts_user_month" json:"year"`
	Month      int       `gorm:"type:smallint;not null;uniqueIndex:uq_discounts_user_month" json:"month"`
	Percent    float64   `gorm:"not null"                                       json:"percent"`
	SubmitDate string    `gorm:"type:varchar(10);not null"                      json:"submit_date"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (Discount) TableName() string { return "discounts" }
