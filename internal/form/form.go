package form

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/koshanqari/gl-app-checkin/internal/dto"
	"github.com/koshanqari/gl-app-checkin/internal/model"
	pkgvalidator "github.com/koshanqari/gl-app-checkin/pkg/validator"
)

// 表单提示文案
const (
	SuccessMessage    = "Check-in submitted successfully!"
	FallbackMessage   = "Failed to submit check-in. Please try again."
	InvalidMessage    = "Please correct the highlighted fields."
	MobileInvalidText = "Mobile Number must be exactly 10 digits"
)

// 计数器字段
const (
	CounterKids       = "kidsBelow3Feet"
	CounterMembers    = "membersAbove3Feet"
	CounterAdditional = "additionalMembers"
)

var ErrUnknownCounter = errors.New("unknown counter")

var validate = pkgvalidator.New()

// 字段显示名，用于拼接校验提示
var fieldLabels = map[string]string{
	"empId":           "Employee ID",
	"empName":         "Employee Name",
	"empMobileNo":     "Mobile Number",
	"department":      "Department",
	"location":        "Location",
	"maritalStatus":   "Marital Status",
	CounterKids:       "Kids below 3 feet",
	CounterMembers:    "Members above 3 feet",
	CounterAdditional: "Additional members",
	"clientName":      "Client",
	"projectName":     "Project",
	"activityName":    "Activity",
}

// New 创建空白表单，携带活动上下文
func New(client, project, activity string) *dto.PublicCheckInForm {
	return &dto.PublicCheckInForm{
		MaritalStatus: model.MaritalStatusSingle,
		ClientName:    client,
		ProjectName:   project,
		ActivityName:  activity,
	}
}

// Reset 提交成功后清空表单，仅保留活动上下文
func Reset(f *dto.PublicCheckInForm) *dto.PublicCheckInForm {
	return New(f.ClientName, f.ProjectName, f.ActivityName)
}

// ApplyContext 用查询参数补齐表单中为空的上下文字段
func ApplyContext(f *dto.PublicCheckInForm, client, project, activity string) {
	if f.ClientName == "" {
		f.ClientName = client
	}
	if f.ProjectName == "" {
		f.ProjectName = project
	}
	if f.ActivityName == "" {
		f.ActivityName = activity
	}
}

// SanitizeMobile 仅保留数字并截断到 10 位
func SanitizeMobile(s string) string {
	var b strings.Builder
	for i := 0; i < len(s) && b.Len() < pkgvalidator.MobileLength; i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// Normalize 去除首尾空白、清洗手机号、填充婚姻状况默认值
func Normalize(f *dto.PublicCheckInForm) {
	f.EmpID = strings.TrimSpace(f.EmpID)
	f.EmpName = strings.TrimSpace(f.EmpName)
	f.EmpMobileNo = SanitizeMobile(f.EmpMobileNo)
	f.Department = strings.TrimSpace(f.Department)
	f.Location = strings.TrimSpace(f.Location)
	if f.MaritalStatus == "" {
		f.MaritalStatus = model.MaritalStatusSingle
	}
}

// Validate 返回字段 → 提示文案；通过时返回 nil
func Validate(f *dto.PublicCheckInForm) map[string]string {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"form": err.Error()}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	label := fieldLabels[fe.Field()]
	if label == "" {
		label = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "mobile":
		return MobileInvalidText
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		return label + " cannot be negative"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	default:
		return label + " is invalid"
	}
}

// ────────────────────── 计数器 ──────────────────────

// Increment 计数器加一
func Increment(f *dto.PublicCheckInForm, counter string) error {
	p, err := counterField(f, counter)
	if err != nil {
		return err
	}
	*p++
	return nil
}

// Decrement 计数器减一，不低于 0
func Decrement(f *dto.PublicCheckInForm, counter string) error {
	p, err := counterField(f, counter)
	if err != nil {
		return err
	}
	if *p > 0 {
		*p--
	}
	return nil
}

func counterField(f *dto.PublicCheckInForm, counter string) (*int, error) {
	switch counter {
	case CounterKids:
		return &f.KidsBelow3Feet, nil
	case CounterMembers:
		return &f.MembersAbove3Feet, nil
	case CounterAdditional:
		return &f.AdditionalMembers, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCounter, counter)
	}
}

// ToCreateRequest 转换为创建请求；空上下文字段存为 NULL
func ToCreateRequest(f *dto.PublicCheckInForm) *dto.CreateCheckInRequest {
	return &dto.CreateCheckInRequest{
		EmpID:             f.EmpID,
		EmpName:           f.EmpName,
		EmpMobileNo:       f.EmpMobileNo,
		Department:        f.Department,
		Location:          f.Location,
		MaritalStatus:     f.MaritalStatus,
		KidsBelow3Feet:    f.KidsBelow3Feet,
		MembersAbove3Feet: f.MembersAbove3Feet,
		AdditionalMembers: f.AdditionalMembers,
		ClientName:        optional(f.ClientName),
		ProjectName:       optional(f.ProjectName),
		ActivityName:      optional(f.ActivityName),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
