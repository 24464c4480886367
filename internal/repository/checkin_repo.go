package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/koshanqari/gl-app-checkin/internal/model"
)

// CheckInListFilter 列表查询条件
// SortColumn 必须是已校验的数据库列名
type CheckInListFilter struct {
	Search     string
	SortColumn string
	Desc       bool
}

// CheckInRepository 签到数据访问接口
type CheckInRepository interface {
	Create(ctx context.Context, checkIn *model.CheckIn) error
	GetByID(ctx context.Context, id uint) (*model.CheckIn, error)
	List(ctx context.Context, filter CheckInListFilter) ([]model.CheckIn, error)
	Update(ctx context.Context, checkIn *model.CheckIn) error
	Delete(ctx context.Context, id uint) error
}

type checkInRepo struct {
	db *gorm.DB
}

// NewCheckInRepo 创建 CheckInRepository 实例
func NewCheckInRepo(db *gorm.DB) CheckInRepository {
	return &checkInRepo{db: db}
}

func (r *checkInRepo) Create(ctx context.Context, checkIn *model.CheckIn) error {
	return translateError(r.db.WithContext(ctx).Create(checkIn).Error)
}

func (r *checkInRepo) GetByID(ctx context.Context, id uint) (*model.CheckIn, error) {
	var checkIn model.CheckIn
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&checkIn).Error
	if err != nil {
		return nil, err
	}
	return &checkIn, nil
}

func (r *checkInRepo) List(ctx context.Context, filter CheckInListFilter) ([]model.CheckIn, error) {
	var checkIns []model.CheckIn
	db := r.db.WithContext(ctx)

	if filter.Search != "" {
		pattern := "%" + escapeLike(filter.Search) + "%"
		db = db.Where(
			"emp_id ILIKE ? OR emp_name ILIKE ? OR emp_mobile_no ILIKE ? OR department ILIKE ? OR location ILIKE ?",
			pattern, pattern, pattern, pattern, pattern,
		)
	}

	column := filter.SortColumn
	if column == "" {
		column = "created_at"
	}
	err := db.Order(clause.OrderByColumn{
		Column: clause.Column{Name: column},
		Desc:   filter.Desc,
	}).Find(&checkIns).Error
	return checkIns, err
}

func (r *checkInRepo) Update(ctx context.Context, checkIn *model.CheckIn) error {
	return translateError(r.db.WithContext(ctx).Save(checkIn).Error)
}

// Delete 硬删除；记录不存在时返回 gorm.ErrRecordNotFound
func (r *checkInRepo) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.CheckIn{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
