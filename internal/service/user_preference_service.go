package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/koshanqari/gl-app-checkin/internal/dto"
	"github.com/koshanqari/gl-app-checkin/internal/model"
	"github.com/koshanqari/gl-app-checkin/internal/repository"
	apperrors "github.com/koshanqari/gl-app-checkin/pkg/errors"
	"github.com/koshanqari/gl-app-checkin/pkg/redis"
)

// ── 用户偏好模块业务错误 ──

var (
	ErrUsernameRequired = apperrors.Validation("Username is required")
)

const prefsCachePrefix = "prefs:"

// PreferenceCache 偏好读缓存，由 pkg/redis.Client 实现
type PreferenceCache interface {
	GetJSON(ctx context.Context, key string, target interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// UserPreferenceService 用户偏好业务接口
type UserPreferenceService interface {
	Load(ctx context.Context, username string) (*dto.UserPreferencesResponse, error)
	Save(ctx context.Context, req *dto.SaveUserPreferencesRequest) (*dto.UserPreferencesResponse, error)
}

type userPreferenceService struct {
	repo     *repository.Repository
	cache    PreferenceCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewUserPreferenceService 创建 UserPreferenceService 实例
// cache 为 nil 时直接读库
func NewUserPreferenceService(repo *repository.Repository, cache PreferenceCache, cacheTTL time.Duration, logger *zap.Logger) UserPreferenceService {
	return &userPreferenceService{repo: repo, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// ────────────────────── Load ──────────────────────

// Load 读取偏好；用户名为空或无记录时返回默认值，不会创建记录
func (s *userPreferenceService) Load(ctx context.Context, username string) (*dto.UserPreferencesResponse, error) {
	if username == "" {
		return dto.DefaultUserPreferences(), nil
	}

	if s.cache != nil {
		var cached dto.UserPreferencesResponse
		err := s.cache.GetJSON(ctx, prefsCachePrefix+username, &cached)
		switch {
		case err == nil:
			if cached.VisibleColumns == nil {
				cached.VisibleColumns = []string{}
			}
			return &cached, nil
		case !errors.Is(err, redis.ErrCacheMiss):
			s.logger.Warn("读取偏好缓存失败", zap.String("username", username), zap.Error(err))
		}
	}

	pref, err := s.repo.UserPreference.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.DefaultUserPreferences(), nil
		}
		s.logger.Error("查询用户偏好失败", zap.String("username", username), zap.Error(err))
		return nil, apperrors.Store("Failed to fetch user preferences", err)
	}

	resp := &dto.UserPreferencesResponse{
		VisibleColumns:   s.decodeColumns(username, pref.VisibleColumns),
		SelectedClient:   pref.SelectedClient,
		SelectedProject:  pref.SelectedProject,
		SelectedActivity: pref.SelectedActivity,
	}
	_ = s.fillCache(ctx, username, resp)
	return resp, nil
}

// ────────────────────── Save ──────────────────────

// Save 按用户名插入或更新；空筛选值存为 NULL，VisibleColumns 为 nil 时存为 []
func (s *userPreferenceService) Save(ctx context.Context, req *dto.SaveUserPreferencesRequest) (*dto.UserPreferencesResponse, error) {
	if req.Username == "" {
		return nil, ErrUsernameRequired
	}

	columns := req.VisibleColumns
	if columns == nil {
		columns = []string{}
	}
	raw, err := json.Marshal(columns)
	if err != nil {
		return nil, apperrors.Store("Failed to save user preferences", err)
	}

	pref := &model.UserPreference{
		Username:         req.Username,
		VisibleColumns:   datatypes.JSON(raw),
		SelectedClient:   nonEmpty(req.SelectedClient),
		SelectedProject:  nonEmpty(req.SelectedProject),
		SelectedActivity: nonEmpty(req.SelectedActivity),
	}
	if err := s.repo.UserPreference.Upsert(ctx, pref); err != nil {
		s.logger.Error("保存用户偏好失败", zap.String("username", req.Username), zap.Error(err))
		return nil, apperrors.Store("Failed to save user preferences", err)
	}

	resp := &dto.UserPreferencesResponse{
		VisibleColumns:   columns,
		SelectedClient:   pref.SelectedClient,
		SelectedProject:  pref.SelectedProject,
		SelectedActivity: pref.SelectedActivity,
	}
	if err := s.fillCache(ctx, req.Username, resp); err != nil {
		// 写缓存失败时删除旧值，避免读到保存前的偏好
		if delErr := s.cache.Delete(ctx, prefsCachePrefix+req.Username); delErr != nil {
			s.logger.Warn("删除偏好缓存失败", zap.String("username", req.Username), zap.Error(delErr))
		}
	}
	return resp, nil
}

// ── 内部辅助 ──

// decodeColumns 存储值无法解析为字符串数组时返回空列表
func (s *userPreferenceService) decodeColumns(username string, raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var columns []string
	if err := json.Unmarshal(raw, &columns); err != nil {
		s.logger.Warn("visible_columns 解析失败，使用空列表", zap.String("username", username), zap.Error(err))
		return []string{}
	}
	if columns == nil {
		return []string{}
	}
	return columns
}

func (s *userPreferenceService) fillCache(ctx context.Context, username string, resp *dto.UserPreferencesResponse) error {
	if s.cache == nil {
		return nil
	}
	err := s.cache.SetJSON(ctx, prefsCachePrefix+username, resp, s.cacheTTL)
	if err != nil {
		s.logger.Warn("写入偏好缓存失败", zap.String("username", username), zap.Error(err))
	}
	return err
}

func nonEmpty(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	return p
}
