package dto

// ── 用户偏好模块 DTO ──

// UserPreferencesQuery 读取偏好查询参数
type UserPreferencesQuery struct {
	Username string `form:"username"`
}

// SaveUserPreferencesRequest 保存偏好请求
type SaveUserPreferencesRequest struct {
	Username         string   `json:"username"`
	VisibleColumns   []string `json:"visibleColumns"`
	SelectedClient   *string  `json:"selectedClient"`
	SelectedProject  *string  `json:"selectedProject"`
	SelectedActivity *string  `json:"selectedActivity"`
}

// UserPreferencesResponse 偏好响应；VisibleColumns 为空表示显示全部列
type UserPreferencesResponse struct {
	VisibleColumns   []string `json:"visibleColumns"`
	SelectedClient   *string  `json:"selectedClient"`
	SelectedProject  *string  `json:"selectedProject"`
	SelectedActivity *string  `json:"selectedActivity"`
}

// DefaultUserPreferences 无存储记录时的默认偏好
func DefaultUserPreferences() *UserPreferencesResponse {
	return &UserPreferencesResponse{VisibleColumns: []string{}}
}
