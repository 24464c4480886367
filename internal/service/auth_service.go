package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/koshanqari/gl-app-checkin/config"
	"github.com/koshanqari/gl-app-checkin/internal/dto"
	"github.com/koshanqari/gl-app-checkin/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("Invalid username or password")
)

// TokenBlacklist Token 黑名单，由 pkg/redis.Client 实现
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
}

// AuthService 管理面板认证业务接口
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
}

type authService struct {
	username     string
	passwordHash []byte
	jwtMgr       *jwt.Manager
	blacklist    TokenBlacklist
	logger       *zap.Logger
}

// NewAuthService 创建 AuthService 实例
// 未配置 bcrypt hash 时对明文密码做一次哈希；blacklist 为 nil 时登出只是丢弃 Token
func NewAuthService(
	cfg *config.AuthConfig,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) AuthService {
	hash := []byte(cfg.AdminPasswordHash)
	if len(hash) == 0 && cfg.AdminPassword != "" {
		generated, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("管理员密码哈希失败", zap.Error(err))
		}
		hash = generated
	}

	return &authService{
		username:     cfg.AdminUsername,
		passwordHash: hash,
		jwtMgr:       jwtMgr,
		blacklist:    blacklist,
		logger:       logger,
	}
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	// 1. 校验用户名（常量时间比较）
	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.username)) == 1

	// 2. 校验密码；用户名不匹配时同样执行 bcrypt，避免时间差泄露
	passErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password))
	if !userOK || passErr != nil {
		s.logger.Warn("管理面板登录失败", zap.String("username", req.Username))
		return nil, ErrInvalidCredentials
	}

	// 3. 签发 Token
	token, err := s.jwtMgr.GenerateAccessToken(s.username)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("管理面板登录成功", zap.String("username", s.username))
	return &dto.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int(s.jwtMgr.TTL().Seconds()),
		Username:    s.username,
	}, nil
}

// ────────────────────── Logout ──────────────────────

// Logout 将 Token 的 JTI 加入黑名单直至过期
func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.blacklist == nil || jti == "" {
		return nil
	}
	if err := s.blacklist.BlacklistToken(ctx, jti, time.Until(expiresAt)); err != nil {
		s.logger.Error("Token 加入黑名单失败", zap.Error(err))
		return err
	}
	return nil
}
