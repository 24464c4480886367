package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/koshanqari/gl-app-checkin/internal/model"
)

// UserPreferenceRepository 用户偏好数据访问接口
type UserPreferenceRepository interface {
	GetByUsername(ctx context.Context, username string) (*model.UserPreference, error)
	Upsert(ctx context.Context, pref *model.UserPreference) error
}

type userPreferenceRepo struct {
	db *gorm.DB
}

// NewUserPreferenceRepo 创建 UserPreferenceRepository 实例
func NewUserPreferenceRepo(db *gorm.DB) UserPreferenceRepository {
	return &userPreferenceRepo{db: db}
}

func (r *userPreferenceRepo) GetByUsername(ctx context.Context, username string) (*model.UserPreference, error) {
	var pref model.UserPreference
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&pref).Error
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

// Upsert 按 username 插入或更新
func (r *userPreferenceRepo) Upsert(ctx context.Context, pref *model.UserPreference) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "username"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"visible_columns",
				"selected_client",
				"selected_project",
				"selected_activity",
				"updated_at",
			}),
		}).
		Create(pref).Error
	return translateError(err)
}
