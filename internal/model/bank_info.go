package model

import "time"

// BankInfo 银行账户信息表 — 对应 bank_infos
type BankInfo struct {
	BankInfoID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"bank_info_id"`
	UserID     string    `gorm:"type:uuid;not null"                             json:"user_id"`
	Sheba      string    `gorm:"type:varchar(100);not null"                     json:"sheba"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (BankInfo) TableName() string { return "bank_infos" }
