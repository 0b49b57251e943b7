package model

import "time"

// EditRequest 改班申请表 — 对应 edit_requests
// 封闭编辑窗口后对某一天班次的变更申请；
// is_approved 只允许 false→true，批准时将 Proposed 标记回写到对应 ShiftDay
type EditRequest struct {
	EditRequestID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"edit_request_id"`
	UserID        string     `gorm:"type:uuid;not null;index:idx_edit_requests_user" json:"user_id"`
	Date          time.Time  `gorm:"type:date;not null"                             json:"date"`
	StringDate    string     `gorm:"type:varchar(10);not null"                      json:"string_date"`
	Proposed      ShiftFlags `gorm:"embedded;embeddedPrefix:new_"                   json:"proposed"`
	IsApproved    bool       `gorm:"not null;default:false"                         json:"is_approved"`
	ApprovedAt    *time.Time `json:"approved_at,omitempty"`
	ApprovedBy    *string    `gorm:"type:uuid"                                      json:"approved_by,omitempty"`
	RequestedAt   time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"requested_at"`
	BaseModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (EditRequest) TableName() string { return "edit_requests" }
