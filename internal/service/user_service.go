package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mohamamdsajadi/shift/internal/dto"
	"github.com/mohamamdsajadi/shift/internal/model"
	"github.com/mohamamdsajadi/shift/internal/repository"
)

// ── 用户模块业务错误 ──

var ErrUserNotFound = errors.New("用户不存在")

// UserService 用户业务接口
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	// List 分页查询全部用户（管理员）
	List(ctx context.Context, page, pageSize int) ([]dto.UserResponse, int64, error)
	// Confirm 管理员确认账号；重复确认为幂等空操作
	Confirm(ctx context.Context, userID string) (*dto.UserResponse, error)
	AddBankInfo(ctx context.Context, userID string, req *dto.BankInfoRequest) (*dto.BankInfoResponse, error)
	ListBankInfo(ctx context.Context, userID string) ([]dto.BankInfoResponse, error)
	AddDocument(ctx context.Context, userID string, req *dto.DocumentRequest) (*dto.DocumentResponse, error)
	ListDocuments(ctx context.Context, userID string) ([]dto.DocumentResponse, error)
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

// ────────────────────── 个人资料 ──────────────────────

func (s *userService) GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if req.ProfileImage != nil {
		user.ProfileImage = *req.ProfileImage
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新用户资料失败", zap.Error(err))
		return nil, err
	}
	return toUserResponse(user), nil
}

// ────────────────────── 管理员 ──────────────────────

func (s *userService) List(ctx context.Context, page, pageSize int) ([]dto.UserResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	users, total, err := s.repo.User.List(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		s.logger.Error("查询用户列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, *toUserResponse(&users[i]))
	}
	return result, total, nil
}

func (s *userService) Confirm(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 幂等：已确认账号直接返回
	if user.IsConfirmed {
		return toUserResponse(user), nil
	}

	user.IsConfirmed = true
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("确认用户失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("用户账号已确认",
		zap.String("user_id", user.UserID),
		zap.String("phone", user.PhoneNumber))

	return toUserResponse(user), nil
}

// ────────────────────── 银行账户 ──────────────────────

func (s *userService) AddBankInfo(ctx context.Context, userID string, req *dto.BankInfoRequest) (*dto.BankInfoResponse, error) {
	info := &model.BankInfo{
		UserID: userID,
		Sheba:  req.Sheba,
	}
	if err := s.repo.BankInfo.Create(ctx, info); err != nil {
		s.logger.Error("创建银行账户失败", zap.Error(err))
		return nil, err
	}
	return toBankInfoResponse(info), nil
}

func (s *userService) ListBankInfo(ctx context.Context, userID string) ([]dto.BankInfoResponse, error) {
	infos, err := s.repo.BankInfo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询银行账户失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.BankInfoResponse, 0, len(infos))
	for i := range infos {
		result = append(result, *toBankInfoResponse(&infos[i]))
	}
	return result, nil
}

// ────────────────────── 上传文件记录 ──────────────────────

func (s *userService) AddDocument(ctx context.Context, userID string, req *dto.DocumentRequest) (*dto.DocumentResponse, error) {
	doc := &model.Document{
		UserID:   userID,
		FilePath: req.FilePath,
	}
	if err := s.repo.Document.Create(ctx, doc); err != nil {
		s.logger.Error("登记上传文件失败", zap.Error(err))
		return nil, err
	}
	return toDocumentResponse(doc), nil
}

func (s *userService) ListDocuments(ctx context.Context, userID string) ([]dto.DocumentResponse, error) {
	docs, err := s.repo.Document.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询上传文件失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.DocumentResponse, 0, len(docs))
	for i := range docs {
		result = append(result, *toDocumentResponse(&docs[i]))
	}
	return result, nil
}

// ────────────────────── 辅助 ──────────────────────

func (s *userService) getUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func toUserResponse(user *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:          user.UserID,
		PhoneNumber: user.PhoneNumber,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Address:     user.Address,
		Role:        user.Role,
		IsConfirmed: user.IsConfirmed,
		CreatedAt:   user.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func toBankInfoResponse(info *model.BankInfo) *dto.BankInfoResponse {
	return &dto.BankInfoResponse{
		ID:        info.BankInfoID,
		Sheba:     info.Sheba,
		CreatedAt: info.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func toDocumentResponse(doc *model.Document) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		ID:         doc.DocumentID,
		FilePath:   doc.FilePath,
		UploadedAt: doc.UploadedAt.Format("2006-01-02 15:04:05"),
	}
}
