package model

import "time"

// VerificationCode 验证码表 — 对应 verification_codes
// 4 位数字验证码，10 分钟过期、一次性使用（used_at 非空即已消费）
type VerificationCode struct {
	CodeID      string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"code_id"`
	PhoneNumber string     `gorm:"type:varchar(11);not null;index:idx_verification_codes_phone" json:"phone_number"`
	Code        string     `gorm:"type:char(4);not null"                          json:"-"`
	ExpiresAt   time.Time  `gorm:"not null"                                       json:"expires_at"`
	UsedAt      *time.Time `json:"used_at,omitempty"`
	CreatedAt   time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (VerificationCode) TableName() string { return "verification_codes" }

// Usable 验证码是否仍可使用
func (v *VerificationCode) Usable(now time.Time) bool {
	return v.UsedAt == nil && now.Before(v.ExpiresAt)
}
