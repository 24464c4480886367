package model

import "gorm.io/datatypes"

// UserPreference 管理面板用户偏好 — 对应 user_preferences
// VisibleColumns 以 JSON 数组序列化存储，读取时由 Service 层反序列化
type UserPreference struct {
	Username         string         `gorm:"type:varchar(100);primaryKey" json:"username"`
	VisibleColumns   datatypes.JSON `gorm:"type:jsonb;not null"          json:"visibleColumns"`
	SelectedClient   *string        `gorm:"type:varchar(100)"            json:"selectedClient"`
	SelectedProject  *string        `gorm:"type:varchar(100)"            json:"selectedProject"`
	SelectedActivity *string        `gorm:"type:varchar(100)"            json:"selectedActivity"`
	Timestamps
}

// TableName 指定表名
func (UserPreference) TableName() string { return "user_preferences" }
