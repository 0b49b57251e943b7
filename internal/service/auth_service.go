package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mohamamdsajadi/shift/config"
	"github.com/mohamamdsajadi/shift/internal/dto"
	"github.com/mohamamdsajadi/shift/internal/model"
	"github.com/mohamamdsajadi/shift/internal/repository"
	"github.com/mohamamdsajadi/shift/pkg/jwt"
	"github.com/mohamamdsajadi/shift/pkg/redis"
)

// ── 认证模块业务错误 ──

var (
	ErrInvalidCredentials = errors.New("手机号或密码错误")
	ErrNotConfirmed       = errors.New("账号尚未经管理员确认")
	ErrPhoneExists        = errors.New("手机号已注册")
	ErrCodeInvalid        = errors.New("验证码无效或已过期")
	ErrCodeRateLimited    = errors.New("验证码发送过于频繁")
	ErrWrongPassword      = errors.New("原密码错误")
)

// AuthService 认证业务接口
type AuthService interface {
	// SendCode 为手机号生成 4 位验证码（限流、10 分钟有效、一次性使用）
	SendCode(ctx context.Context, req *dto.SendCodeRequest) (*dto.SendCodeResponse, error)
	// Register 凭验证码注册；新账号处于待确认状态，不发放 Token
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	// Login 登录；未确认账号以 ErrNotConfirmed 拒绝
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	// RefreshToken 用 Refresh Token 换取新 Token 对，旧 Refresh Token 进入黑名单
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	// Logout 将当前 Access Token 加入黑名单
	Logout(ctx context.Context, claims *jwt.Claims) error
	// ChangePassword 修改密码（校验原密码）
	ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	clock  Clock
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
// rdb 为 nil 时跳过限流与黑名单（开发环境降级）
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	clock Clock,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		clock:  clock,
		logger: logger,
	}
}

// ────────────────────── SendCode ──────────────────────

func (s *authService) SendCode(ctx context.Context, req *dto.SendCodeRequest) (*dto.SendCodeResponse, error) {
	// 1. 按手机号限流
	if s.rdb != nil {
		allowed, err := s.rdb.CheckRateLimit(ctx,
			"code:send:"+req.PhoneNumber,
			s.cfg.Auth.SendCodeLimit,
			s.cfg.Auth.SendCodeWindow,
		)
		if err != nil {
			s.logger.Error("验证码限流检查失败", zap.Error(err))
			return nil, err
		}
		if !allowed {
			return nil, ErrCodeRateLimited
		}
	}

	// 2. 生成 4 位随机验证码
	code, err := generateCode()
	if err != nil {
		s.logger.Error("生成验证码失败", zap.Error(err))
		return nil, err
	}

	now := s.clock()
	record := &model.VerificationCode{
		PhoneNumber: req.PhoneNumber,
		Code:        code,
		ExpiresAt:   now.Add(s.cfg.Auth.VerificationCodeTTL),
	}
	if err := s.repo.Code.Create(ctx, record); err != nil {
		s.logger.Error("保存验证码失败", zap.Error(err))
		return nil, err
	}

	// 3. 下发短信；网关未接入时仅记录日志
	if s.cfg.SMS.Enabled {
		s.logger.Info("验证码已提交短信网关",
			zap.String("phone", req.PhoneNumber),
			zap.String("gateway", s.cfg.SMS.Gateway))
	} else {
		s.logger.Debug("短信网关未启用，验证码仅落库",
			zap.String("phone", req.PhoneNumber),
			zap.String("code", code))
	}

	return &dto.SendCodeResponse{
		PhoneNumber: req.PhoneNumber,
		ExpiresIn:   int(s.cfg.Auth.VerificationCodeTTL.Seconds()),
	}, nil
}

// generateCode 生成 4 位数字验证码（crypto/rand）
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}

// ────────────────────── Register ──────────────────────

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	now := s.clock()

	// 1. 校验验证码：取最近一条，须未过期、未使用且匹配
	record, err := s.repo.Code.GetLatestByPhone(ctx, req.PhoneNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCodeInvalid
		}
		s.logger.Error("查询验证码失败", zap.Error(err))
		return nil, err
	}
	if !record.Usable(now) || record.Code != req.Code {
		return nil, ErrCodeInvalid
	}

	// 2. 标记验证码已消费（一次性使用）
	record.UsedAt = &now
	if err := s.repo.Code.Update(ctx, record); err != nil {
		s.logger.Error("标记验证码已用失败", zap.Error(err))
		return nil, err
	}

	// 3. 手机号唯一性
	if _, err := s.repo.User.GetByPhone(ctx, req.PhoneNumber); err == nil {
		return nil, ErrPhoneExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 4. 创建待确认账号
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		PhoneNumber:  req.PhoneNumber,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Address:      req.Address,
		PasswordHash: string(hash),
		Role:         model.RoleMember,
		IsConfirmed:  false,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		// 并发注册同号码由唯一索引拦截
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrPhoneExists
		}
		s.logger.Error("创建用户失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("新用户注册，等待管理员确认",
		zap.String("user_id", user.UserID),
		zap.String("phone", user.PhoneNumber))

	return &dto.RegisterResponse{
		ID:          user.UserID,
		PhoneNumber: user.PhoneNumber,
		IsConfirmed: user.IsConfirmed,
	}, nil
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// 1. 查询用户
	user, err := s.repo.User.GetByPhone(ctx, req.PhoneNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	// 2. 验证密码 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 3. 凭据正确但账号未确认 → 拒绝并区分原因
	if !user.IsConfirmed {
		return nil, ErrNotConfirmed
	}

	return s.issueTokens(user)
}

// ────────────────────── RefreshToken ──────────────────────

func (s *authService) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(req.RefreshToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != "refresh" {
		return nil, jwt.ErrTokenInvalid
	}

	// 已登出的 Refresh Token 不得再换票
	if s.rdb != nil {
		blacklisted, err := s.rdb.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Error("黑名单查询失败", zap.Error(err))
			return nil, err
		}
		if blacklisted {
			return nil, jwt.ErrTokenInvalid
		}
	}

	user, err := s.repo.User.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, jwt.ErrTokenInvalid
		}
		return nil, err
	}
	if !user.IsConfirmed {
		return nil, ErrNotConfirmed
	}

	// 旧 Refresh Token 作废（轮换）
	if s.rdb != nil && claims.ExpiresAt != nil {
		ttl := claims.ExpiresAt.Sub(s.clock())
		if err := s.rdb.BlacklistToken(ctx, claims.ID, ttl); err != nil {
			s.logger.Error("旧 Refresh Token 拉黑失败", zap.Error(err))
		}
	}

	return s.issueTokens(user)
}

// ────────────────────── Logout ──────────────────────

func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.rdb == nil || claims.ExpiresAt == nil {
		return nil
	}
	ttl := claims.ExpiresAt.Sub(s.clock())
	if err := s.rdb.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("Access Token 拉黑失败", zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── ChangePassword ──────────────────────

func (s *authService) ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return err
	}

	user.PasswordHash = string(hash)
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新密码失败", zap.Error(err))
		return err
	}
	return nil
}

// issueTokens 签发 Access/Refresh Token 对
func (s *authService) issueTokens(user *model.User) (*dto.TokenResponse, error) {
	accessToken, err := s.jwtMgr.GenerateAccessToken(user.UserID, user.Role)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}

	refreshToken, err := s.jwtMgr.GenerateRefreshToken(user.UserID, user.Role)
	if err != nil {
		s.logger.Error("生成 RefreshToken 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		User:         *toUserResponse(user),
	}, nil
}
