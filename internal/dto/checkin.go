package dto

// ── 签到模块 DTO ──

// CheckInListRequest 签到列表查询参数
type CheckInListRequest struct {
	Search    string `form:"search"    binding:"omitempty,max=100"`
	SortField string `form:"sortField"`
	SortOrder string `form:"sortOrder"`
}

// CreateCheckInRequest 创建签到请求
// 缺省字段由 Service 层填充默认值
type CreateCheckInRequest struct {
	EmpID             string  `json:"empId"             binding:"required,max=50"`
	EmpName           string  `json:"empName"           binding:"required,max=100"`
	EmpMobileNo       string  `json:"empMobileNo"       binding:"omitempty,mobile"`
	Department        string  `json:"department"        binding:"omitempty,max=100"`
	Location          string  `json:"location"          binding:"omitempty,max=100"`
	MaritalStatus     string  `json:"maritalStatus"`
	KidsBelow3Feet    int     `json:"kidsBelow3Feet"`
	MembersAbove3Feet int     `json:"membersAbove3Feet"`
	AdditionalMembers int     `json:"additionalMembers"`
	ClientName        *string `json:"clientName"        binding:"omitempty,max=100"`
	ProjectName       *string `json:"projectName"       binding:"omitempty,max=100"`
	ActivityName      *string `json:"activityName"      binding:"omitempty,max=100"`
	Present           bool    `json:"present"`
}

// UpdateCheckInRequest 部分更新签到请求，仅应用出现的字段
type UpdateCheckInRequest struct {
	EmpID             *string        `json:"empId"             binding:"omitempty,max=50"`
	EmpName           *string        `json:"empName"           binding:"omitempty,max=100"`
	EmpMobileNo       *string        `json:"empMobileNo"       binding:"omitempty,mobile"`
	Department        *string        `json:"department"        binding:"omitempty,max=100"`
	Location          *string        `json:"location"          binding:"omitempty,max=100"`
	MaritalStatus     *string        `json:"maritalStatus"`
	KidsBelow3Feet    *int           `json:"kidsBelow3Feet"`
	MembersAbove3Feet *int           `json:"membersAbove3Feet"`
	AdditionalMembers *int           `json:"additionalMembers"`
	ClientName        OptionalString `json:"clientName"`
	ProjectName       OptionalString `json:"projectName"`
	ActivityName      OptionalString `json:"activityName"`
	Present           *bool          `json:"present"`
}

// SetPresentRequest 切换到场状态请求
type SetPresentRequest struct {
	Present *bool `json:"present" binding:"required"`
}

// CheckInResponse 签到记录响应
type CheckInResponse struct {
	ID                uint    `json:"id"`
	EmpID             string  `json:"empId"`
	EmpName           string  `json:"empName"`
	EmpMobileNo       string  `json:"empMobileNo"`
	Department        string  `json:"department"`
	Location          string  `json:"location"`
	MaritalStatus     string  `json:"maritalStatus"`
	KidsBelow3Feet    int     `json:"kidsBelow3Feet"`
	MembersAbove3Feet int     `json:"membersAbove3Feet"`
	AdditionalMembers int     `json:"additionalMembers"`
	ClientName        *string `json:"clientName"`
	ProjectName       *string `json:"projectName"`
	ActivityName      *string `json:"activityName"`
	Present           bool    `json:"present"`
	CreatedAt         string  `json:"createdAt"`
	UpdatedAt         string  `json:"updatedAt"`
}
