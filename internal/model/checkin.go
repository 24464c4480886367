package model

// 婚姻状况枚举
const (
	MaritalStatusSingle  = "single"
	MaritalStatusMarried = "married"
)

// CheckIn 活动签到记录 — 对应 check_ins
type CheckIn struct {
	ID                uint    `gorm:"primaryKey;autoIncrement"                      json:"id"`
	EmpID             string  `gorm:"type:varchar(50);not null"                     json:"empId"`
	EmpName           string  `gorm:"type:varchar(100);not null"                    json:"empName"`
	EmpMobileNo       string  `gorm:"type:varchar(10);not null"                     json:"empMobileNo"`
	Department        string  `gorm:"type:varchar(100);not null"                    json:"department"`
	Location          string  `gorm:"type:varchar(100);not null"                    json:"location"`
	MaritalStatus     string  `gorm:"type:varchar(10);not null"                     json:"maritalStatus"`
	KidsBelow3Feet    int     `gorm:"column:kids_below3_feet;not null"              json:"kidsBelow3Feet"`
	MembersAbove3Feet int     `gorm:"column:members_above3_feet;not null"           json:"membersAbove3Feet"`
	AdditionalMembers int     `gorm:"column:additional_members;not null"            json:"additionalMembers"`
	ClientName        *string `gorm:"type:varchar(100)"                             json:"clientName"`
	ProjectName       *string `gorm:"type:varchar(100)"                             json:"projectName"`
	ActivityName      *string `gorm:"type:varchar(100)"                             json:"activityName"`
	Present           bool    `gorm:"not null"                                      json:"present"`
	Timestamps
}

// TableName 指定表名
func (CheckIn) TableName() string { return "check_ins" }
