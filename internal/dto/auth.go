package dto

// ── 认证模块 DTO ──

// LoginRequest 管理面板登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required,max=128"`
}

// LoginResponse 登录成功响应
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int    `json:"expiresIn"` // 秒
	Username    string `json:"username"`
}

// SessionResponse 当前会话信息
type SessionResponse struct {
	Username  string `json:"username"`
	ExpiresAt string `json:"expiresAt"`
}
