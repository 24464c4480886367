package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/koshanqari/gl-app-checkin/internal/dto"
	"github.com/koshanqari/gl-app-checkin/internal/model"
	"github.com/koshanqari/gl-app-checkin/internal/repository"
	apperrors "github.com/koshanqari/gl-app-checkin/pkg/errors"
	"github.com/koshanqari/gl-app-checkin/pkg/validator"
)

// ── 签到模块业务错误 ──

var (
	ErrCheckInNotFound      = apperrors.New(apperrors.KindNotFound, "Check-in not found")
	ErrCheckInExists        = apperrors.New(apperrors.KindConflict, "A check-in with this ID already exists.")
	ErrInvalidMobile        = apperrors.Validation("Mobile Number must be exactly 10 digits")
	ErrInvalidMaritalStatus = apperrors.Validation("Marital status must be either single or married")
	ErrNegativeCount        = apperrors.Validation("Member counts cannot be negative")
)

// 响应中的时间格式（UTC，毫秒精度）
const responseTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// checkInSortColumns 可排序字段白名单：API 字段名 → 数据库列名
var checkInSortColumns = map[string]string{
	"id":                "id",
	"empId":             "emp_id",
	"empName":           "emp_name",
	"empMobileNo":       "emp_mobile_no",
	"department":        "department",
	"location":          "location",
	"maritalStatus":     "marital_status",
	"kidsBelow3Feet":    "kids_below3_feet",
	"membersAbove3Feet": "members_above3_feet",
	"additionalMembers": "additional_members",
	"clientName":        "client_name",
	"projectName":       "project_name",
	"activityName":      "activity_name",
	"present":           "present",
	"createdAt":         "created_at",
	"updatedAt":         "updated_at",
}

// CheckInService 签到业务接口
type CheckInService interface {
	List(ctx context.Context, req *dto.CheckInListRequest) ([]dto.CheckInResponse, error)
	Create(ctx context.Context, req *dto.CreateCheckInRequest) (*dto.CheckInResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.CheckInResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateCheckInRequest) (*dto.CheckInResponse, error)
	Delete(ctx context.Context, id uint) error
	SetPresent(ctx context.Context, id uint, present bool) (*dto.CheckInResponse, error)
}

type checkInService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCheckInService 创建 CheckInService 实例
func NewCheckInService(repo *repository.Repository, logger *zap.Logger) CheckInService {
	return &checkInService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *checkInService) List(ctx context.Context, req *dto.CheckInListRequest) ([]dto.CheckInResponse, error) {
	column, ok := checkInSortColumns[req.SortField]
	if !ok {
		column = "created_at"
	}

	checkIns, err := s.repo.CheckIn.List(ctx, repository.CheckInListFilter{
		Search:     req.Search,
		SortColumn: column,
		Desc:       req.SortOrder != "asc",
	})
	if err != nil {
		s.logger.Error("列出签到失败", zap.Error(err))
		return nil, apperrors.Store("Failed to fetch check-ins", err)
	}

	result := make([]dto.CheckInResponse, 0, len(checkIns))
	for i := range checkIns {
		result = append(result, *toCheckInResponse(&checkIns[i]))
	}
	return result, nil
}

// ────────────────────── Create ──────────────────────

func (s *checkInService) Create(ctx context.Context, req *dto.CreateCheckInRequest) (*dto.CheckInResponse, error) {
	if err := validateCheckInFields(req.EmpMobileNo, req.MaritalStatus,
		req.KidsBelow3Feet, req.MembersAbove3Feet, req.AdditionalMembers); err != nil {
		return nil, err
	}

	maritalStatus := req.MaritalStatus
	if maritalStatus == "" {
		maritalStatus = model.MaritalStatusSingle
	}

	checkIn := &model.CheckIn{
		EmpID:             req.EmpID,
		EmpName:           req.EmpName,
		EmpMobileNo:       req.EmpMobileNo,
		Department:        req.Department,
		Location:          req.Location,
		MaritalStatus:     maritalStatus,
		KidsBelow3Feet:    req.KidsBelow3Feet,
		MembersAbove3Feet: req.MembersAbove3Feet,
		AdditionalMembers: req.AdditionalMembers,
		ClientName:        req.ClientName,
		ProjectName:       req.ProjectName,
		ActivityName:      req.ActivityName,
		Present:           req.Present,
	}

	if err := s.repo.CheckIn.Create(ctx, checkIn); err != nil {
		return nil, s.translateWriteError(err, "Failed to create check-in. Please try again.", "创建签到失败")
	}

	s.logger.Info("签到已创建", zap.Uint("id", checkIn.ID), zap.String("emp_id", checkIn.EmpID))
	return toCheckInResponse(checkIn), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *checkInService) GetByID(ctx context.Context, id uint) (*dto.CheckInResponse, error) {
	checkIn, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCheckInResponse(checkIn), nil
}

// ────────────────────── Update ──────────────────────

func (s *checkInService) Update(ctx context.Context, id uint, req *dto.UpdateCheckInRequest) (*dto.CheckInResponse, error) {
	// 仅校验本次提交的字段，历史数据中的其他字段原样保留
	if err := validateUpdateFields(req); err != nil {
		return nil, err
	}

	checkIn, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.EmpID != nil {
		checkIn.EmpID = *req.EmpID
	}
	if req.EmpName != nil {
		checkIn.EmpName = *req.EmpName
	}
	if req.EmpMobileNo != nil {
		checkIn.EmpMobileNo = *req.EmpMobileNo
	}
	if req.Department != nil {
		checkIn.Department = *req.Department
	}
	if req.Location != nil {
		checkIn.Location = *req.Location
	}
	if req.MaritalStatus != nil {
		checkIn.MaritalStatus = *req.MaritalStatus
	}
	if req.KidsBelow3Feet != nil {
		checkIn.KidsBelow3Feet = *req.KidsBelow3Feet
	}
	if req.MembersAbove3Feet != nil {
		checkIn.MembersAbove3Feet = *req.MembersAbove3Feet
	}
	if req.AdditionalMembers != nil {
		checkIn.AdditionalMembers = *req.AdditionalMembers
	}
	if req.ClientName.Set {
		checkIn.ClientName = req.ClientName.Value
	}
	if req.ProjectName.Set {
		checkIn.ProjectName = req.ProjectName.Value
	}
	if req.ActivityName.Set {
		checkIn.ActivityName = req.ActivityName.Value
	}
	if req.Present != nil {
		checkIn.Present = *req.Present
	}

	if err := s.repo.CheckIn.Update(ctx, checkIn); err != nil {
		return nil, s.translateWriteError(err, "Failed to update check-in", "更新签到失败")
	}

	return toCheckInResponse(checkIn), nil
}

// ────────────────────── SetPresent ──────────────────────

func (s *checkInService) SetPresent(ctx context.Context, id uint, present bool) (*dto.CheckInResponse, error) {
	return s.Update(ctx, id, &dto.UpdateCheckInRequest{Present: &present})
}

// ────────────────────── Delete ──────────────────────

// Delete 硬删除；记录不存在同样按存储错误返回
func (s *checkInService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.CheckIn.Delete(ctx, id); err != nil {
		s.logger.Error("删除签到失败", zap.Uint("id", id), zap.Error(err))
		return apperrors.Store("Failed to delete check-in", err)
	}
	s.logger.Info("签到已删除", zap.Uint("id", id))
	return nil
}

// ── 内部辅助 ──

func (s *checkInService) get(ctx context.Context, id uint) (*model.CheckIn, error) {
	checkIn, err := s.repo.CheckIn.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCheckInNotFound
		}
		s.logger.Error("查询签到失败", zap.Uint("id", id), zap.Error(err))
		return nil, apperrors.Store("Failed to fetch check-in", err)
	}
	return checkIn, nil
}

// translateWriteError 将写入错误映射为业务错误
func (s *checkInService) translateWriteError(err error, message, logMsg string) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrCheckInExists
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		detail := err.Error()
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			detail = pgErr.Message
		}
		return apperrors.Wrap(apperrors.KindValidation, "Validation error: "+detail, err)
	default:
		s.logger.Error(logMsg, zap.Error(err))
		return apperrors.Store(message, err)
	}
}

// validateCheckInFields 手机号（非空时）必须为 10 位数字，婚姻状况取值合法，计数非负
func validateCheckInFields(mobile, maritalStatus string, counts ...int) error {
	if mobile != "" && !validator.IsMobile(mobile) {
		return ErrInvalidMobile
	}
	switch maritalStatus {
	case "", model.MaritalStatusSingle, model.MaritalStatusMarried:
	default:
		return ErrInvalidMaritalStatus
	}
	for _, n := range counts {
		if n < 0 {
			return ErrNegativeCount
		}
	}
	return nil
}

// validateUpdateFields 部分更新的校验；婚姻状况不允许置空
func validateUpdateFields(req *dto.UpdateCheckInRequest) error {
	if req.EmpMobileNo != nil && *req.EmpMobileNo != "" && !validator.IsMobile(*req.EmpMobileNo) {
		return ErrInvalidMobile
	}
	if req.MaritalStatus != nil {
		switch *req.MaritalStatus {
		case model.MaritalStatusSingle, model.MaritalStatusMarried:
		default:
			return ErrInvalidMaritalStatus
		}
	}
	for _, n := range []*int{req.KidsBelow3Feet, req.MembersAbove3Feet, req.AdditionalMembers} {
		if n != nil && *n < 0 {
			return ErrNegativeCount
		}
	}
	return nil
}

func toCheckInResponse(c *model.CheckIn) *dto.CheckInResponse {
	return &dto.CheckInResponse{
		ID:                c.ID,
		EmpID:             c.EmpID,
		EmpName:           c.EmpName,
		EmpMobileNo:       c.EmpMobileNo,
		Department:        c.Department,
		Location:          c.Location,
		MaritalStatus:     c.MaritalStatus,
		KidsBelow3Feet:    c.KidsBelow3Feet,
		MembersAbove3Feet: c.MembersAbove3Feet,
		AdditionalMembers: c.AdditionalMembers,
		ClientName:        c.ClientName,
		ProjectName:       c.ProjectName,
		ActivityName:      c.ActivityName,
		Present:           c.Present,
		CreatedAt:         formatTime(c.CreatedAt),
		UpdatedAt:         formatTime(c.UpdatedAt),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(responseTimeLayout)
}
