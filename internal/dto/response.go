package dto

// ── 认证模块响应 ──

// TokenResponse Token 对响应
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"` // Access Token 有效期（秒）
	User         UserResponse `json:"user"`
}

// RegisterResponse 注册成功响应
// 注册后账号处于待确认状态，不直接发放 Token
type RegisterResponse struct {
	ID          string `json:"id"`
	PhoneNumber string `json:"phone_number"`
	IsConfirmed bool   `json:"is_confirmed"`
}

// SendCodeResponse 发送验证码响应
type SendCodeResponse struct {
	PhoneNumber string `json:"phone_number"`
	ExpiresIn   int    `json:"expires_in"` // 秒
}
