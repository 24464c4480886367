package panel

import (
	"time"

	"github.com/koshanqari/gl-app-checkin/internal/model"
)

// ── 测试辅助 ──

func strPtr(s string) *string { return &s }

var baseTime = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func sampleRecords() []model.CheckIn {
	return []model.CheckIn{
		{
			ID: 1, EmpID: "E001", EmpName: "Asha Rao", EmpMobileNo: "9876543210",
			Department: "Finance", Location: "Mumbai", MaritalStatus: "married",
			KidsBelow3Feet: 1, MembersAbove3Feet: 2, AdditionalMembers: 0,
			ClientName: strPtr("Acme"), ProjectName: strPtr("Diwali"), ActivityName: strPtr("Dinner"),
			Present:    true,
			Timestamps: model.Timestamps{CreatedAt: baseTime},
		},
		{
			ID: 2, EmpID: "E002", EmpName: "bharat Singh", EmpMobileNo: "9123456789",
			Department: "IT", Location: "Pune", MaritalStatus: "single",
			MembersAbove3Feet: 1, AdditionalMembers: 3,
			ClientName: strPtr("Globex"), ProjectName: strPtr("Holi"),
			Timestamps: model.Timestamps{CreatedAt: baseTime.Add(time.Hour)},
		},
		{
			ID: 3, EmpID: "E003", EmpName: "Chitra Iyer", EmpMobileNo: "9000000001",
			Department: "HR", Location: "Delhi", MaritalStatus: "single",
			KidsBelow3Feet: 2,
			ClientName: strPtr("Acme"), ProjectName: strPtr("Holi"), ActivityName: strPtr("Games"),
			Present:    true,
			Timestamps: model.Timestamps{CreatedAt: baseTime.Add(2 * time.Hour)},
		},
	}
}

func ids(records []model.CheckIn) []uint {
	out := make([]uint, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}
