package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mohamamdsajadi/shift/internal/dto"
	"github.com/mohamamdsajadi/shift/internal/model"
	"github.com/mohamamdsajadi/shift/internal/repository"
	"github.com/mohamamdsajadi/shift/pkg/jwt"
)

// ── 测试辅助 ──

func setupTestAuthService(clock Clock) (AuthService, *repository.Repository) {
	cfg := testConfig()
	repo := newMockRepository()
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := NewAuthService(cfg, repo, jwtMgr, nil, clock, zap.NewNop())
	return svc, repo
}

func seedUser(t *testing.T, repo *repository.Repository, phone, password string, confirmed bool) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("生成密码哈希失败: %v", err)
	}
	user := &model.User{
		PhoneNumber:  phone,
		FirstName:    "测试",
		LastName:     "用户",
		PasswordHash: string(hash),
		Role:         model.RoleMember,
		IsConfirmed:  confirmed,
	}
	if err := repo.User.Create(context.Background(), user); err != nil {
		t.Fatalf("预置用户失败: %v", err)
	}
	return user
}

// ── SendCode 测试 ──

func TestAuthService_SendCode_PersistsCode(t *testing.T) {
	svc, repo := setupTestAuthService(fixedClock(1403, 5, 10))

	resp, err := svc.SendCode(context.Background(), &dto.SendCodeRequest{PhoneNumber: "09120000000"})
	if err != nil {
		t.Fatalf("SendCode 应成功: %v", err)
	}
	if resp.ExpiresIn != 600 {
		t.Errorf("期望有效期 600 秒，实际=%d", resp.ExpiresIn)
	}

	record, err := repo.Code.GetLatestByPhone(context.Background(), "09120000000")
	if err != nil {
		t.Fatalf("验证码应已落库: %v", err)
	}
	if len(record.Code) != 4 {
		t.Errorf("期望 4 位验证码，实际=%q", record.Code)
	}
	if record.UsedAt != nil {
		t.Error("新验证码不应处于已用状态")
	}
}

// ── Register 测试 ──

func sendAndFetchCode(t *testing.T, svc AuthService, repo *repository.Repository, phone string) string {
	t.Helper()
	if _, err := svc.SendCode(context.Background(), &dto.SendCodeRequest{PhoneNumber: phone}); err != nil {
		t.Fatalf("SendCode 应成功: %v", err)
	}
	record, err := repo.Code.GetLatestByPhone(context.Background(), phone)
	if err != nil {
		t.Fatalf("读取验证码失败: %v", err)
	}
	return record.Code
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, repo := setupTestAuthService(fixedClock(1403, 5, 10))
	ctx := context.Background()
	code := sendAndFetchCode(t, svc, repo, "09120000000")

	resp, err := svc.Register(ctx, &dto.RegisterRequest{
		PhoneNumber: "09120000000",
		Code:        code,
		FirstName:   "سارا",
		LastName:    "محمدی",
		Password:    "password123",
	})
	if err != nil {
		t.Fatalf("Register 应成功: %v", err)
	}
	if resp.IsConfirmed {
		t.Error("新注册账号应处于待确认状态")
	}

	// 验证码应已消费
	record, _ := repo.Code.GetLatestByPhone(ctx, "09120000000")
	if record.UsedAt == nil {
		t.Error("注册成功后验证码应标记为已用")
	}

	// 未确认账号不可登录
	_, err = svc.Login(ctx, &dto.LoginRequest{PhoneNumber: "09120000000", Password: "password123"})
	if !errors.Is(err, ErrNotConfirmed) {
		t.Errorf("期望 ErrNotConfirmed，实际: %v", err)
	}
}

func TestAuthService_Register_WrongCode(t *testing.T) {
	svc, repo := setupTestAuthService(fixedClock(1403, 5, 10))
	code := sendAndFetchCode(t, svc, repo, "09120000000")

	wrong := "0000"
	if wrong == code {
		wrong = "1111"
	}
	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		PhoneNumber: "09120000000",
		Code:        wrong,
		FirstName:   "سارا",
		LastName:    "محمدی",
		Password:    "password123",
	})
	if !errors.Is(err, ErrCodeInvalid) {
		t.Errorf("期望 ErrCodeInvalid，实际: %v", err)
	}
}

func TestAuthService_Register_ExpiredCode(t *testing.T) {
	cfg := testConfig()
	repo := newMockRepository()
	jwtMgr := jwt.NewManager(&cfg.Auth)

	base := fixedClock(1403, 5, 10)()
	now := base
	svc := NewAuthService(cfg, repo, jwtMgr, nil, func() time.Time { return now }, zap.NewNop())

	code := sendAndFetchCode(t, svc, repo, "09120000000")

	// 11 分钟后验证码过期
	now = base.Add(11 * time.Minute)
	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		PhoneNumber: "09120000000",
		Code:        code,
		FirstName:   "سارا",
		LastName:    "محمدی",
		Password:    "password123",
	})
	if !errors.Is(err, ErrCodeInvalid) {
		t.Errorf("期望 ErrCodeInvalid，实际: %v", err)
	}
}

func TestAuthService_Register_CodeSingleUse(t *testing.T) {
	svc, repo := setupTestAuthService(fixedClock(1403, 5, 10))
	ctx := context.Background()
	code := sendAndFetchCode(t, svc, repo, "09120000000")

	req := &dto.RegisterRequest{
		PhoneNumber: "09120000000",
		Code:        code,
		FirstName:   "سارا",
		LastName:    "محمدی",
		Password:    "password123",
	}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("首次 Register 应成功: %v", err)
	}

	// 同一验证码不可二次使用
	_, err := svc.Register(ctx, req)
	if !errors.Is(err, ErrCodeInvalid) {
		t.Errorf("期望 ErrCodeInvalid，实际: %v", err)
	}
}

func TestAuthService_Register_PhoneExists(t *testing.T) {
	svc, repo := setupTestAuthService(fixedClock(1403, 5, 10))
	seedUser(t, repo, "09120000000", "password123", true)
	code := sendAndFetchCode(t, svc, repo, "09120000000")

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		PhoneNumber: "09120000000",
		Code:        code,
		FirstName:   "سارا",
		LastName:    "محمدی",
		Password:    "password123",
	})
	if !errors.Is(err, ErrPhoneExists) {
		t.Errorf("期望 ErrPhoneExists，实际: %v", err)
	}
}

// ── Login 测试 ──

func TestAuthService_Login_Success(t *testing.T) {
	svc, repo := setupTestAuthService(fixedClock(1403, 5, 10))
	seedUser(t, repo, "09120000000", "password123", true)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		PhoneNumber: "09120000000",
		Password:    "password123",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("应签发 Access/Refresh Token 对")
	}
	if resp.User.PhoneNumber != "09120000000" {
		t.Errorf("响应用户手机号不符，实际=%s", resp.User.PhoneNumber)
	}
}

func TestAuthService_Login_NotConfirmed(t *testing.T) {
	svc, repo := setupTestAuthService(fixedClock(1403, 5, 10))
	seedUser(t, repo, "09120000000", "password123", false)

	// 凭据正确但账号未确认
	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		PhoneNumber: "09120000000",
		Password:    "password123",
	})
	if !errors.Is(err, ErrNotConfirmed) {
		t.Errorf("期望 ErrNotConfirmed，实际: %v", err)
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc, repo := setupTestAuthService(fixedClock(1403, 5, 10))
	seedUser(t, repo, "09120000000", "password123", true)

	cases := []struct {
		name string
		req  dto.LoginRequest
	}{
		{"错误密码", dto.LoginRequest{PhoneNumber: "09120000000", Password: "wrong"}},
		{"未注册手机号", dto.LoginRequest{PhoneNumber: "09129999999", Password: "password123"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), &tc.req)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
			}
		})
	}
}

// ── RefreshToken 测试 ──

func TestAuthService_RefreshToken(t *testing.T) {
	svc, repo := setupTestAuthService(fixedClock(1403, 5, 10))
	seedUser(t, repo, "09120000000", "password123", true)
	ctx := context.Background()

	login, err := svc.Login(ctx, &dto.LoginRequest{PhoneNumber: "09120000000", Password: "password123"})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}

	resp, err := svc.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	if err != nil {
		t.Fatalf("RefreshToken 应成功: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("应签发新 Token 对")
	}

	// Access Token 不可用于换票
	_, err = svc.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: login.AccessToken})
	if !errors.Is(err, jwt.ErrTokenInvalid) {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}

// ── ChangePassword 测试 ──

func TestAuthService_ChangePassword(t *testing.T) {
	svc, repo := setupTestAuthService(fixedClock(1403, 5, 10))
	user := seedUser(t, repo, "09120000000", "password123", true)
	ctx := context.Background()

	err := svc.ChangePassword(ctx, user.UserID, &dto.ChangePasswordRequest{
		OldPassword: "wrong",
		NewPassword: "newpassword1",
	})
	if !errors.Is(err, ErrWrongPassword) {
		t.Errorf("期望 ErrWrongPassword，实际: %v", err)
	}

	if err := svc.ChangePassword(ctx, user.UserID, &dto.ChangePasswordRequest{
		OldPassword: "password123",
		NewPassword: "newpassword1",
	}); err != nil {
		t.Fatalf("ChangePassword 应成功: %v", err)
	}

	// 新密码可登录
	if _, err := svc.Login(ctx, &dto.LoginRequest{PhoneNumber: "09120000000", Password: "newpassword1"}); err != nil {
		t.Errorf("新密码登录应成功: %v", err)
	}
}
