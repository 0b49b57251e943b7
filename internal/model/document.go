package model

import "time"

// Document 上传文件记录表 — 对应 documents
// 仅保存文件路径与上传时间，文件本体由外部存储负责
type Document struct {
	DocumentID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"document_id"`
	UserID     string    `gorm:"type:uuid;not null;index:idx_documents_user"    json:"user_id"`
	FilePath   string    `gorm:"type:varchar(255);not null"                     json:"file_path"`
	UploadedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"uploaded_at"`
}

// TableName 指定表名
func (Document) TableName() string { return "documents" }
