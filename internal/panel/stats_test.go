package panel

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/koshanqari/gl-app-checkin/internal/dto"
)

func TestStats(t *testing.T) {
	got := Stats(sampleRecords())
	assert.Equal(t, dto.PanelStats{
		TotalEntries:           3,
		TotalMembersAbove3Feet: 3,
		TotalKidsBelow3Feet:    3,
		TotalAdditionalMembers: 3,
		PresentCount:           2,
	}, got)

	assert.Equal(t, dto.PanelStats{}, Stats(nil))
}

func TestOptions(t *testing.T) {
	records := sampleRecords()
	records[2].ActivityName = strPtr("")

	got := Options(records)
	assert.Equal(t, []string{"Acme", "Globex"}, got.Clients)
	assert.Equal(t, []string{"Diwali", "Holi"}, got.Projects)
	assert.Equal(t, []string{"Dinner"}, got.Activities)
}
