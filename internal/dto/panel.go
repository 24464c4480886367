package dto

// ── 管理面板 DTO ──

// PanelViewRequest 面板视图查询参数
// Client/Project/Activity 为 nil 表示未传，使用用户默认筛选；传空串表示不筛选
type PanelViewRequest struct {
	Search    string  `form:"search"    binding:"omitempty,max=100"`
	Client    *string `form:"client"`
	Project   *string `form:"project"`
	Activity  *string `form:"activity"`
	SortField string  `form:"sortField"`
	SortOrder string  `form:"sortOrder"`
	Toggle    string  `form:"toggle"` // 点击列头：同列翻转方向，新列重置为 asc
}

// PanelColumn 表头列
type PanelColumn struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Sortable bool   `json:"sortable"`
}

// PanelRow 表格行，Cells 按列 key 给出格式化后的文本
type PanelRow struct {
	ID    uint              `json:"id"`
	Cells map[string]string `json:"cells"`
}

// PanelStats 仪表盘统计（基于筛选后的数据）
type PanelStats struct {
	TotalEntries           int `json:"totalEntries"`
	TotalMembersAbove3Feet int `json:"totalMembersAbove3Feet"`
	TotalKidsBelow3Feet    int `json:"totalKidsBelow3Feet"`
	TotalAdditionalMembers int `json:"totalAdditionalMembers"`
	PresentCount           int `json:"presentCount"`
}

// PanelFilterOptions 下拉筛选候选值（基于全量数据）
type PanelFilterOptions struct {
	Clients    []string `json:"clients"`
	Projects   []string `json:"projects"`
	Activities []string `json:"activities"`
}

// PanelSort 当前排序状态
type PanelSort struct {
	Field string `json:"field"`
	Order string `json:"order"`
}

// PanelFilters 当前生效的筛选条件
type PanelFilters struct {
	Search   string  `json:"search"`
	Client   *string `json:"client"`
	Project  *string `json:"project"`
	Activity *string `json:"activity"`
}

// PanelViewResponse 面板视图响应
type PanelViewResponse struct {
	Columns        []PanelColumn      `json:"columns"`
	VisibleColumns []string           `json:"visibleColumns"`
	Rows           []PanelRow         `json:"rows"`
	Stats          PanelStats         `json:"stats"`
	Options        PanelFilterOptions `json:"options"`
	Sort           PanelSort          `json:"sort"`
	Filters        PanelFilters       `json:"filters"`
}

// UpdatePanelPreferencesRequest 面板偏好增量修改
// VisibleColumns 为 nil 表示不修改；筛选字段出现 null 表示清空
type UpdatePanelPreferencesRequest struct {
	VisibleColumns   *[]string      `json:"visibleColumns"`
	SelectedClient   OptionalString `json:"selectedClient"`
	SelectedProject  OptionalString `json:"selectedProject"`
	SelectedActivity OptionalString `json:"selectedActivity"`
}
