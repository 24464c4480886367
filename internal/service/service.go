package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/koshanqari/gl-app-checkin/config"
	"github.com/koshanqari/gl-app-checkin/internal/dto"
	"github.com/koshanqari/gl-app-checkin/internal/panel"
	"github.com/koshanqari/gl-app-checkin/internal/repository"
	"github.com/koshanqari/gl-app-checkin/pkg/jwt"
	"github.com/koshanqari/gl-app-checkin/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	CheckIn        CheckInService
	UserPreference UserPreferenceService
	Auth           AuthService
	Panel          PanelService
	Export         ExportService

	// AutoSaver 偏好去抖保存器，进程退出前需 Flush + Stop
	AutoSaver *panel.AutoSaver
}

// NewService 创建 Service 聚合
// rdb 为 nil 时偏好不走缓存，登出不写黑名单
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	var (
		cache     PreferenceCache
		blacklist TokenBlacklist
	)
	if rdb != nil {
		cache = rdb
		blacklist = rdb
	}

	prefs := NewUserPreferenceService(repo, cache, cfg.Redis.PrefsCacheTTL, logger)
	saver := panel.NewAutoSaver(cfg.Panel.AutosaveDelay, SavePreferencesFunc(prefs), logger)
	sorter := panel.NewSorter(panel.DefaultCatalog(), cfg.Panel.Locale)
	panelSvc := NewPanelService(repo, prefs, saver, sorter, logger)

	return &Service{
		CheckIn:        NewCheckInService(repo, logger),
		UserPreference: prefs,
		Auth:           NewAuthService(&cfg.Auth, jwtMgr, blacklist, logger),
		Panel:          panelSvc,
		Export:         NewExportService(panelSvc, logger),
		AutoSaver:      saver,
	}
}

// SavePreferencesFunc 将 UserPreferenceService.Save 适配为 AutoSaver 的保存函数
func SavePreferencesFunc(prefs UserPreferenceService) panel.SaveFunc {
	return func(ctx context.Context, username string, p dto.UserPreferencesResponse) error {
		_, err := prefs.Save(ctx, &dto.SaveUserPreferencesRequest{
			Username:         username,
			VisibleColumns:   p.VisibleColumns,
			SelectedClient:   p.SelectedClient,
			SelectedProject:  p.SelectedProject,
			SelectedActivity: p.SelectedActivity,
		})
		return err
	}
}
