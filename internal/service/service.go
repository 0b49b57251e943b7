package service

import (
	"go.uber.org/zap"

	"github.com/mohamamdsajadi/shift/config"
	"github.com/mohamamdsajadi/shift/internal/repository"
	"github.com/mohamamdsajadi/shift/pkg/jwt"
	"github.com/mohamamdsajadi/shift/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth        AuthService
	User        UserService
	Shift       ShiftService
	EditRequest EditRequestService
	Discount    DiscountService
	Export      ExportService
}

// NewService 创建 Service 聚合
// rdb 允许为 nil（未配置 Redis 时降级：跳过黑名单与限流）
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	clock Clock,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:        NewAuthService(cfg, repo, jwtMgr, rdb, clock, logger),
		User:        NewUserService(repo, logger),
		Shift:       NewShiftService(cfg, repo, clock, logger),
		EditRequest: NewEditRequestService(cfg, repo, clock, logger),
		Discount:    NewDiscountService(repo, clock, logger),
		Export:      NewExportService(repo, clock, logger),
	}
}
