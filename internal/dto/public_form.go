package dto

// ── 公开签到表单 DTO ──

// PublicCheckInForm 公开签到表单字段
type PublicCheckInForm struct {
	EmpID             string `json:"empId"             validate:"required,max=50"`
	EmpName           string `json:"empName"           validate:"required,max=100"`
	EmpMobileNo       string `json:"empMobileNo"       validate:"required,mobile"`
	Department        string `json:"department"        validate:"required,max=100"`
	Location          string `json:"location"          validate:"required,max=100"`
	MaritalStatus     string `json:"maritalStatus"     validate:"omitempty,oneof=single married"`
	KidsBelow3Feet    int    `json:"kidsBelow3Feet"    validate:"min=0"`
	MembersAbove3Feet int    `json:"membersAbove3Feet" validate:"min=0"`
	AdditionalMembers int    `json:"additionalMembers" validate:"min=0"`
	ClientName        string `json:"clientName"        validate:"max=100"`
	ProjectName       string `json:"projectName"       validate:"max=100"`
	ActivityName      string `json:"activityName"      validate:"max=100"`
}

// PublicCheckInResponse 公开表单提交结果
// 成功时 Form 为清空后的新表单（保留活动上下文）；失败时回显提交内容
type PublicCheckInResponse struct {
	Message     string            `json:"message"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
	Record      *CheckInResponse  `json:"record,omitempty"`
	Form        PublicCheckInForm `json:"form"`
}
