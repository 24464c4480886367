package panel

import (
	"sort"

	"github.com/koshanqari/gl-app-checkin/internal/dto"
	"github.com/koshanqari/gl-app-checkin/internal/model"
)

// Stats 统计筛选后视图的汇总数据
func Stats(records []model.CheckIn) dto.PanelStats {
	stats := dto.PanelStats{TotalEntries: len(records)}
	for i := range records {
		r := &records[i]
		stats.TotalMembersAbove3Feet += r.MembersAbove3Feet
		stats.TotalKidsBelow3Feet += r.KidsBelow3Feet
		stats.TotalAdditionalMembers += r.AdditionalMembers
		if r.Present {
			stats.PresentCount++
		}
	}
	return stats
}

// Options 基于全量数据计算下拉筛选候选值（去重、去空、排序）
func Options(records []model.CheckIn) dto.PanelFilterOptions {
	clients := make(map[string]struct{})
	projects := make(map[string]struct{})
	activities := make(map[string]struct{})
	for i := range records {
		r := &records[i]
		addOption(clients, r.ClientName)
		addOption(projects, r.ProjectName)
		addOption(activities, r.ActivityName)
	}
	return dto.PanelFilterOptions{
		Clients:    sortedKeys(clients),
		Projects:   sortedKeys(projects),
		Activities: sortedKeys(activities),
	}
}

func addOption(set map[string]struct{}, v *string) {
	if v != nil && *v != "" {
		set[*v] = struct{}{}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
