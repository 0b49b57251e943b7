package dto

// ── 用户模块 DTO ──

// UpdateProfileRequest 更新个人资料请求（字段均可选）
type UpdateProfileRequest struct {
	FirstName    *string `json:"first_name"    binding:"omitempty,max=50"`
	LastName     *string `json:"last_name"     binding:"omitempty,max=50"`
	Address      *string `json:"address"       binding:"omitempty,max=500"`
	ProfileImage *string `json:"profile_image" binding:"omitempty,max=255"`
}

// UserResponse 用户信息响应（脱敏）
type UserResponse struct {
	ID          string `json:"id"`
	PhoneNumber string `json:"phone_number"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Address     string `json:"address,omitempty"`
	Role        string `json:"role"`
	IsConfirmed bool   `json:"is_confirmed"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// BankInfoRequest 提交银行账户请求
type BankInfoRequest struct {
	Sheba string `json:"sheba" binding:"required,max=100"`
}

// BankInfoResponse 银行账户响应
type BankInfoResponse struct {
	ID        string `json:"id"`
	Sheba     string `json:"sheba"`
	CreatedAt string `json:"created_at"`
}

// DocumentRequest 登记上传文件请求
type DocumentRequest struct {
	FilePath string `json:"file_path" binding:"required,max=255"`
}

// DocumentResponse 上传文件响应
type DocumentResponse struct {
	ID         string `json:"id"`
	FilePath   string `json:"file_path"`
	UploadedAt string `json:"uploaded_at"`
}
