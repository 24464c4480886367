package panel

import (
	"github.com/koshanqari/gl-app-checkin/internal/dto"
)

// ResetPreferences 恢复全部列可见并清空三个上下文筛选
func ResetPreferences(c *Catalog) dto.UserPreferencesResponse {
	return dto.UserPreferencesResponse{VisibleColumns: c.Keys()}
}

// ApplyPatch 将增量修改应用到偏好，返回新值，不修改入参
func ApplyPatch(c *Catalog, prefs dto.UserPreferencesResponse, patch *dto.UpdatePanelPreferencesRequest) dto.UserPreferencesResponse {
	next := ClonePreferences(prefs)
	if patch == nil {
		return next
	}
	if patch.VisibleColumns != nil {
		next.VisibleColumns = c.Sanitize(*patch.VisibleColumns)
	}
	if patch.SelectedClient.Set {
		next.SelectedClient = blankToNil(patch.SelectedClient.Value)
	}
	if patch.SelectedProject.Set {
		next.SelectedProject = blankToNil(patch.SelectedProject.Value)
	}
	if patch.SelectedActivity.Set {
		next.SelectedActivity = blankToNil(patch.SelectedActivity.Value)
	}
	return next
}

// ClonePreferences 深拷贝偏好
func ClonePreferences(p dto.UserPreferencesResponse) dto.UserPreferencesResponse {
	out := dto.UserPreferencesResponse{VisibleColumns: make([]string, len(p.VisibleColumns))}
	copy(out.VisibleColumns, p.VisibleColumns)
	out.SelectedClient = cloneString(p.SelectedClient)
	out.SelectedProject = cloneString(p.SelectedProject)
	out.SelectedActivity = cloneString(p.SelectedActivity)
	return out
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func blankToNil(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	return cloneString(p)
}
