package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/mohamamdsajadi/shift/internal/dto"
)

// ── 测试辅助 ──

func setupTestDiscountService(clock Clock) (DiscountService, *mockDiscountRepo) {
	repo := newMockRepository()
	svc := NewDiscountService(repo, clock, zap.NewNop())
	return svc, repo.Discount.(*mockDiscountRepo)
}

// ── Declare 测试 ──

func TestDiscountService_Declare_Success(t *testing.T) {
	svc, discountRepo := setupTestDiscountService(fixedClock(1403, 5, 10))

	resp, err := svc.Declare(context.Background(), "u-1", &dto.DeclareDiscountRequest{Percent: 15})
	if err != nil {
		t.Fatalf("Declare 应成功: %v", err)
	}
	if resp.Year != 1403 || resp.Month != 5 {
		t.Errorf("申报应归属当前月 1403-05，实际=%d-%d", resp.Year, resp.Month)
	}
	if resp.Percent != 15 {
		t.Errorf("期望 Percent=15，实际=%v", resp.Percent)
	}
	if resp.SubmitDate != "1403-05-10" {
		t.Errorf("期望 SubmitDate=1403-05-10，实际=%s", resp.SubmitDate)
	}
	if len(discountRepo.discounts) != 1 {
		t.Errorf("存储中期望 1 条申报，实际=%d", len(discountRepo.discounts))
	}
}

func TestDiscountService_Declare_AlreadyDeclared(t *testing.T) {
	svc, discountRepo := setupTestDiscountService(fixedClock(1403, 5, 10))
	ctx := context.Background()

	if _, err := svc.Declare(ctx, "u-1", &dto.DeclareDiscountRequest{Percent: 15}); err != nil {
		t.Fatalf("首次 Declare 应成功: %v", err)
	}

	// 同月重复申报被拒，原值不变
	_, err := svc.Declare(ctx, "u-1", &dto.DeclareDiscountRequest{Percent: 50})
	if !errors.Is(err, ErrAlreadyDeclared) {
		t.Errorf("期望 ErrAlreadyDeclared，实际: %v", err)
	}
	stored := discountRepo.discounts[controlKey("u-1", 1403, 5)]
	if stored.Percent != 15 {
		t.Errorf("重复申报不应覆盖原值，期望 15，实际=%v", stored.Percent)
	}
}

func TestDiscountService_Declare_IndependentPerUser(t *testing.T) {
	svc, _ := setupTestDiscountService(fixedClock(1403, 5, 10))
	ctx := context.Background()

	if _, err := svc.Declare(ctx, "u-1", &dto.DeclareDiscountRequest{Percent: 15}); err != nil {
		t.Fatalf("Declare 应成功: %v", err)
	}
	if _, err := svc.Declare(ctx, "u-2", &dto.DeclareDiscountRequest{Percent: 30}); err != nil {
		t.Errorf("其他用户同月申报不应被拒: %v", err)
	}
}

// ── GetCurrent 测试 ──

func TestDiscountService_GetCurrent(t *testing.T) {
	svc, _ := setupTestDiscountService(fixedClock(1403, 5, 10))
	ctx := context.Background()

	if _, err := svc.GetCurrent(ctx, "u-1"); !errors.Is(err, ErrDiscountNotFound) {
		t.Errorf("无申报时期望 ErrDiscountNotFound，实际: %v", err)
	}

	if _, err := svc.Declare(ctx, "u-1", &dto.DeclareDiscountRequest{Percent: 15}); err != nil {
		t.Fatalf("Declare 应成功: %v", err)
	}
	resp, err := svc.GetCurrent(ctx, "u-1")
	if err != nil {
		t.Fatalf("GetCurrent 应成功: %v", err)
	}
	if resp.Percent != 15 {
		t.Errorf("期望 Percent=15，实际=%v", resp.Percent)
	}
}
