package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	CheckIn        CheckInRepository
	UserPreference UserPreferenceRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		CheckIn:        NewCheckInRepo(db),
		UserPreference: NewUserPreferenceRepo(db),
	}
}
