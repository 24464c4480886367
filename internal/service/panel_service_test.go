package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/koshanqari/gl-app-checkin/internal/dto"
	"github.com/koshanqari/gl-app-checkin/internal/model"
	"github.com/koshanqari/gl-app-checkin/internal/panel"
)

// ── 测试辅助 ──

type mockScheduler struct {
	mu      sync.Mutex
	pending map[string]dto.UserPreferencesResponse
	calls   int
}

func newMockScheduler() *mockScheduler {
	return &mockScheduler{pending: make(map[string]dto.UserPreferencesResponse)}
}

func (m *mockScheduler) Schedule(username string, prefs dto.UserPreferencesResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.pending[username] = prefs
}

func (m *mockScheduler) Pending(username string) (dto.UserPreferencesResponse, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.pending[username]
	return p, ok
}

type panelFixture struct {
	svc       PanelService
	checkIns  *mockCheckInRepo
	prefRepo  *mockUserPreferenceRepo
	scheduler *mockScheduler
}

func setupTestPanelService(withScheduler bool) *panelFixture {
	repo, checkInRepo, prefRepo := newTestRepository()
	logger := zap.NewNop()
	prefs := NewUserPreferenceService(repo, nil, 0, logger)
	sorter := panel.NewSorter(panel.DefaultCatalog(), "en")

	f := &panelFixture{checkIns: checkInRepo, prefRepo: prefRepo}
	var scheduler PreferenceScheduler
	if withScheduler {
		f.scheduler = newMockScheduler()
		scheduler = f.scheduler
	}
	f.svc = NewPanelService(repo, prefs, scheduler, sorter, logger)
	return f
}

func seedCheckIns(t *testing.T, repo *mockCheckInRepo) {
	t.Helper()
	records := []model.CheckIn{
		{EmpID: "E001", EmpName: "Asha", EmpMobileNo: "9876543210", MaritalStatus: "married",
			MembersAbove3Feet: 2, KidsBelow3Feet: 1, Present: true,
			ClientName: dto.StringPtr("Acme"), ProjectName: dto.StringPtr("Diwali")},
		{EmpID: "E002", EmpName: "Bharat", EmpMobileNo: "9123456789", MaritalStatus: "single",
			MembersAbove3Feet: 1, AdditionalMembers: 2,
			ClientName: dto.StringPtr("Globex")},
		{EmpID: "E003", EmpName: "Chitra", EmpMobileNo: "9000000001", MaritalStatus: "single",
			ClientName: dto.StringPtr("Acme"), ActivityName: dto.StringPtr("Games")},
	}
	for i := range records {
		if err := repo.Create(context.Background(), &records[i]); err != nil {
			t.Fatalf("seed 失败: %v", err)
		}
	}
}

func rowIDs(rows []dto.PanelRow) []uint {
	out := make([]uint, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func equalIDs(a, b []uint) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ── View 测试 ──

func TestPanelService_View_Defaults(t *testing.T) {
	f := setupTestPanelService(true)
	seedCheckIns(t, f.checkIns)

	view, err := f.svc.View(context.Background(), "goldenlotus", &dto.PanelViewRequest{})
	if err != nil {
		t.Fatalf("View 应成功: %v", err)
	}
	if len(view.Columns) != 16 {
		t.Errorf("期望 16 列，实际 %d", len(view.Columns))
	}
	if view.Sort.Field != "createdAt" || view.Sort.Order != "desc" {
		t.Errorf("期望默认排序 createdAt desc，实际 %+v", view.Sort)
	}
	if !equalIDs(rowIDs(view.Rows), []uint{3, 2, 1}) {
		t.Errorf("期望按创建时间倒序，实际 %v", rowIDs(view.Rows))
	}
	if view.Rows[0].Cells["srNo"] != "1" || view.Rows[0].Cells["activityName"] != "Games" {
		t.Errorf("单元格格式不符: %v", view.Rows[0].Cells)
	}
	if view.Stats.TotalEntries != 3 || view.Stats.PresentCount != 1 || view.Stats.TotalMembersAbove3Feet != 3 {
		t.Errorf("统计不符: %+v", view.Stats)
	}
	if len(view.Options.Clients) != 2 || view.Options.Clients[0] != "Acme" {
		t.Errorf("筛选候选不符: %+v", view.Options)
	}
}

func TestPanelService_View_FiltersAndToggle(t *testing.T) {
	f := setupTestPanelService(true)
	seedCheckIns(t, f.checkIns)

	view, err := f.svc.View(context.Background(), "goldenlotus", &dto.PanelViewRequest{
		Client:    dto.StringPtr("Acme"),
		SortField: "empName",
		SortOrder: "asc",
		Toggle:    "empName",
	})
	if err != nil {
		t.Fatalf("View 应成功: %v", err)
	}
	if view.Sort.Field != "empName" || view.Sort.Order != "desc" {
		t.Errorf("同列点击应翻转方向，实际 %+v", view.Sort)
	}
	if !equalIDs(rowIDs(view.Rows), []uint{3, 1}) {
		t.Errorf("期望 Acme 记录按姓名倒序，实际 %v", rowIDs(view.Rows))
	}
	// 统计基于筛选后数据，候选值基于全量数据
	if view.Stats.TotalEntries != 2 {
		t.Errorf("期望统计 2 条，实际 %d", view.Stats.TotalEntries)
	}
	if len(view.Options.Clients) != 2 {
		t.Errorf("候选值应来自全量数据，实际 %v", view.Options.Clients)
	}
}

func TestPanelService_View_SearchMobile(t *testing.T) {
	f := setupTestPanelService(true)
	seedCheckIns(t, f.checkIns)

	view, _ := f.svc.View(context.Background(), "goldenlotus", &dto.PanelViewRequest{Search: "9876543210"})
	if !equalIDs(rowIDs(view.Rows), []uint{1}) {
		t.Errorf("期望仅返回记录 1，实际 %v", rowIDs(view.Rows))
	}
}

func TestPanelService_View_UsesDefaultFilters(t *testing.T) {
	f := setupTestPanelService(true)
	seedCheckIns(t, f.checkIns)
	ctx := context.Background()

	_, _ = f.svc.UpdatePreferences(ctx, "goldenlotus", &dto.UpdatePanelPreferencesRequest{
		VisibleColumns: &[]string{"empId", "clientName"},
		SelectedClient: dto.Some("Globex"),
	})

	view, _ := f.svc.View(ctx, "goldenlotus", &dto.PanelViewRequest{})
	if !equalIDs(rowIDs(view.Rows), []uint{2}) {
		t.Errorf("期望默认筛选 Globex，实际 %v", rowIDs(view.Rows))
	}
	if len(view.Columns) != 2 || view.VisibleColumns[0] != "empId" {
		t.Errorf("期望 2 个可见列，实际 %v", view.VisibleColumns)
	}

	// 显式传空串表示不筛选
	view, _ = f.svc.View(ctx, "goldenlotus", &dto.PanelViewRequest{Client: dto.StringPtr("")})
	if len(view.Rows) != 3 {
		t.Errorf("期望全部记录，实际 %d", len(view.Rows))
	}
}

func TestPanelService_View_PreferenceFailureDegrades(t *testing.T) {
	f := setupTestPanelService(false)
	seedCheckIns(t, f.checkIns)
	f.prefRepo.getErr = errDBDown

	view, err := f.svc.View(context.Background(), "goldenlotus", &dto.PanelViewRequest{})
	if err != nil {
		t.Fatalf("偏好读取失败不应影响视图: %v", err)
	}
	if len(view.Columns) != 16 || len(view.Rows) != 3 {
		t.Errorf("期望默认视图，实际 cols=%d rows=%d", len(view.Columns), len(view.Rows))
	}
}

func TestPanelService_View_StoreError(t *testing.T) {
	f := setupTestPanelService(true)
	f.checkIns.listErr = errDBDown

	if _, err := f.svc.View(context.Background(), "goldenlotus", &dto.PanelViewRequest{}); err == nil {
		t.Error("记录读取失败应返回错误")
	}
}

// ── 偏好操作测试 ──

func TestPanelService_ToggleColumn(t *testing.T) {
	f := setupTestPanelService(true)
	ctx := context.Background()

	prefs, err := f.svc.ToggleColumn(ctx, "goldenlotus", "actions")
	if err != nil {
		t.Fatalf("ToggleColumn 应成功: %v", err)
	}
	if len(prefs.VisibleColumns) != 15 {
		t.Errorf("期望 15 列，实际 %d", len(prefs.VisibleColumns))
	}

	// 未落库的状态对后续读取可见
	prefs, _ = f.svc.ToggleColumn(ctx, "goldenlotus", "actions")
	if len(prefs.VisibleColumns) != 16 {
		t.Errorf("再次切换应恢复 16 列，实际 %d", len(prefs.VisibleColumns))
	}
	if f.scheduler.calls != 2 {
		t.Errorf("期望调度 2 次，实际 %d", f.scheduler.calls)
	}
	if len(f.prefRepo.prefs) != 0 {
		t.Error("去抖期间不应直接写库")
	}

	_, err = f.svc.ToggleColumn(ctx, "goldenlotus", "bogus")
	if !errors.Is(err, ErrUnknownColumn) {
		t.Errorf("期望 ErrUnknownColumn，实际: %v", err)
	}
}

func TestPanelService_Reset(t *testing.T) {
	f := setupTestPanelService(true)
	ctx := context.Background()

	_, _ = f.svc.UpdatePreferences(ctx, "goldenlotus", &dto.UpdatePanelPreferencesRequest{
		VisibleColumns:   &[]string{"empId"},
		SelectedClient:   dto.Some("Acme"),
		SelectedActivity: dto.Some("Games"),
	})

	prefs, err := f.svc.Reset(ctx, "goldenlotus")
	if err != nil {
		t.Fatalf("Reset 应成功: %v", err)
	}
	if len(prefs.VisibleColumns) != 16 {
		t.Errorf("期望恢复全部列，实际 %d", len(prefs.VisibleColumns))
	}
	if prefs.SelectedClient != nil || prefs.SelectedProject != nil || prefs.SelectedActivity != nil {
		t.Error("期望清空全部筛选")
	}
}

func TestPanelService_WithoutSchedulerSavesImmediately(t *testing.T) {
	f := setupTestPanelService(false)

	_, err := f.svc.UpdatePreferences(context.Background(), "goldenlotus", &dto.UpdatePanelPreferencesRequest{
		SelectedProject: dto.Some("Diwali"),
	})
	if err != nil {
		t.Fatalf("UpdatePreferences 应成功: %v", err)
	}
	stored, ok := f.prefRepo.prefs["goldenlotus"]
	if !ok || stored.SelectedProject == nil || *stored.SelectedProject != "Diwali" {
		t.Error("期望同步写库")
	}
}
