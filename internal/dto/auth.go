package dto

// ── 认证模块 DTO ──

// SendCodeRequest 发送验证码请求
type SendCodeRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required,len=11,numeric"`
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required,len=11,numeric"`
	Code        string `json:"code"         binding:"required,len=4,numeric"`
	FirstName   string `json:"first_name"   binding:"required,max=50"`
	LastName    string `json:"last_name"    binding:"required,max=50"`
	Address     string `json:"address"      binding:"omitempty,max=500"`
	Password    string `json:"password"     binding:"required,min=8,max=64"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	Password    string `json:"password"     binding:"required"`
}

// RefreshTokenRequest 刷新 Token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=64"`
}
