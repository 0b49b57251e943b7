package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/mohamamdsajadi/shift/internal/dto"
	"github.com/mohamamdsajadi/shift/internal/model"
	"github.com/mohamamdsajadi/shift/internal/repository"
)

// ── 测试辅助 ──

func setupTestUserService() (UserService, *repository.Repository) {
	repo := newMockRepository()
	svc := NewUserService(repo, zap.NewNop())
	return svc, repo
}

func seedMember(t *testing.T, repo *repository.Repository, phone string, confirmed bool) *model.User {
	t.Helper()
	user := &model.User{
		PhoneNumber:  phone,
		FirstName:    "علی",
		LastName:     "رضایی",
		PasswordHash: "hash",
		Role:         model.RoleMember,
		IsConfirmed:  confirmed,
	}
	if err := repo.User.Create(context.Background(), user); err != nil {
		t.Fatalf("预置用户失败: %v", err)
	}
	return user
}

// ── 个人资料测试 ──

func TestUserService_GetProfile_NotFound(t *testing.T) {
	svc, _ := setupTestUserService()

	_, err := svc.GetProfile(context.Background(), "u-missing")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}

func TestUserService_UpdateProfile_PartialFields(t *testing.T) {
	svc, repo := setupTestUserService()
	user := seedMember(t, repo, "09120000000", true)

	newAddress := "تهران، خیابان ولیعصر"
	resp, err := svc.UpdateProfile(context.Background(), user.UserID, &dto.UpdateProfileRequest{
		Address: &newAddress,
	})
	if err != nil {
		t.Fatalf("UpdateProfile 应成功: %v", err)
	}
	if resp.Address != newAddress {
		t.Errorf("期望地址已更新，实际=%s", resp.Address)
	}
	// 未提交的字段保持不变
	if resp.FirstName != "علی" || resp.LastName != "رضایی" {
		t.Errorf("未提交字段不应被改动，实际=%s %s", resp.FirstName, resp.LastName)
	}
}

// ── 管理员测试 ──

func TestUserService_Confirm(t *testing.T) {
	svc, repo := setupTestUserService()
	user := seedMember(t, repo, "09120000000", false)

	resp, err := svc.Confirm(context.Background(), user.UserID)
	if err != nil {
		t.Fatalf("Confirm 应成功: %v", err)
	}
	if !resp.IsConfirmed {
		t.Error("账号应处于已确认状态")
	}

	// 重复确认为幂等空操作
	again, err := svc.Confirm(context.Background(), user.UserID)
	if err != nil {
		t.Fatalf("重复 Confirm 应幂等成功: %v", err)
	}
	if !again.IsConfirmed {
		t.Error("重复确认后账号仍应处于已确认状态")
	}
}

func TestUserService_Confirm_NotFound(t *testing.T) {
	svc, _ := setupTestUserService()

	_, err := svc.Confirm(context.Background(), "u-missing")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}

func TestUserService_List_Pagination(t *testing.T) {
	svc, repo := setupTestUserService()
	for _, phone := range []string{"09120000001", "09120000002", "09120000003"} {
		seedMember(t, repo, phone, true)
	}

	users, total, err := svc.List(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if total != 3 {
		t.Errorf("期望 total=3，实际=%d", total)
	}
	if len(users) != 2 {
		t.Errorf("期望第一页 2 条，实际=%d", len(users))
	}

	second, _, err := svc.List(context.Background(), 2, 2)
	if err != nil {
		t.Fatalf("List 第二页应成功: %v", err)
	}
	if len(second) != 1 {
		t.Errorf("期望第二页 1 条，实际=%d", len(second))
	}
}

// ── 银行账户与上传文件测试 ──

func TestUserService_BankInfo(t *testing.T) {
	svc, repo := setupTestUserService()
	user := seedMember(t, repo, "09120000000", true)
	ctx := context.Background()

	if _, err := svc.AddBankInfo(ctx, user.UserID, &dto.BankInfoRequest{Sheba: "IR820540102680020817909002"}); err != nil {
		t.Fatalf("AddBankInfo 应成功: %v", err)
	}

	infos, err := svc.ListBankInfo(ctx, user.UserID)
	if err != nil {
		t.Fatalf("ListBankInfo 应成功: %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("期望 1 条银行账户，实际=%d", len(infos))
	}
	if infos[0].Sheba != "IR820540102680020817909002" {
		t.Errorf("SHEBA 不符，实际=%s", infos[0].Sheba)
	}

	// 其他用户查询不到
	other, err := svc.ListBankInfo(ctx, "u-other")
	if err != nil {
		t.Fatalf("ListBankInfo 应成功: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("其他用户不应看到记录，实际=%d", len(other))
	}
}

func TestUserService_Documents(t *testing.T) {
	svc, repo := setupTestUserService()
	user := seedMember(t, repo, "09120000000", true)
	ctx := context.Background()

	if _, err := svc.AddDocument(ctx, user.UserID, &dto.DocumentRequest{FilePath: "uploads/id-card.jpg"}); err != nil {
		t.Fatalf("AddDocument 应成功: %v", err)
	}

	docs, err := svc.ListDocuments(ctx, user.UserID)
	if err != nil {
		t.Fatalf("ListDocuments 应成功: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("期望 1 条文件记录，实际=%d", len(docs))
	}
	if docs[0].FilePath != "uploads/id-card.jpg" {
		t.Errorf("文件路径不符，实际=%s", docs[0].FilePath)
	}
}
