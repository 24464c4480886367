package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/koshanqari/gl-app-checkin/internal/dto"
	"github.com/koshanqari/gl-app-checkin/internal/model"
	"github.com/koshanqari/gl-app-checkin/internal/panel"
	"github.com/koshanqari/gl-app-checkin/internal/repository"
	apperrors "github.com/koshanqari/gl-app-checkin/pkg/errors"
)

// ── 管理面板模块业务错误 ──

var (
	ErrUnknownColumn = apperrors.Validation("Unknown column")
)

// PreferenceScheduler 偏好去抖保存，由 panel.AutoSaver 实现
type PreferenceScheduler interface {
	Schedule(username string, prefs dto.UserPreferencesResponse)
	Pending(username string) (dto.UserPreferencesResponse, bool)
}

// PanelResult 派生视图，供视图渲染与导出共用
type PanelResult struct {
	Columns []panel.Column
	Rows    []model.CheckIn
	All     []model.CheckIn
	Query   panel.Query
	Prefs   dto.UserPreferencesResponse
}

// PanelService 管理面板业务接口
type PanelService interface {
	Derive(ctx context.Context, username string, req *dto.PanelViewRequest) (*PanelResult, error)
	View(ctx context.Context, username string, req *dto.PanelViewRequest) (*dto.PanelViewResponse, error)
	Preferences(ctx context.Context, username string) dto.UserPreferencesResponse
	UpdatePreferences(ctx context.Context, username string, req *dto.UpdatePanelPreferencesRequest) (*dto.UserPreferencesResponse, error)
	ToggleColumn(ctx context.Context, username, key string) (*dto.UserPreferencesResponse, error)
	Reset(ctx context.Context, username string) (*dto.UserPreferencesResponse, error)
}

type panelService struct {
	repo      *repository.Repository
	prefs     UserPreferenceService
	scheduler PreferenceScheduler
	sorter    *panel.Sorter
	logger    *zap.Logger
}

// NewPanelService 创建 PanelService 实例
func NewPanelService(
	repo *repository.Repository,
	prefs UserPreferenceService,
	scheduler PreferenceScheduler,
	sorter *panel.Sorter,
	logger *zap.Logger,
) PanelService {
	return &panelService{
		repo:      repo,
		prefs:     prefs,
		scheduler: scheduler,
		sorter:    sorter,
		logger:    logger,
	}
}

// ────────────────────── Derive ──────────────────────

func (s *panelService) Derive(ctx context.Context, username string, req *dto.PanelViewRequest) (*PanelResult, error) {
	// 1. 全量记录（按创建时间倒序）
	records, err := s.repo.CheckIn.List(ctx, repository.CheckInListFilter{SortColumn: "created_at", Desc: true})
	if err != nil {
		s.logger.Error("面板加载签到失败", zap.Error(err))
		return nil, apperrors.Store("Failed to fetch check-ins", err)
	}

	// 2. 用户偏好；未传的筛选条件使用默认筛选
	prefs := s.Preferences(ctx, username)
	query := panel.Query{
		Search:   req.Search,
		Client:   pick(req.Client, prefs.SelectedClient),
		Project:  pick(req.Project, prefs.SelectedProject),
		Activity: pick(req.Activity, prefs.SelectedActivity),
		Sort:     s.resolveSort(req),
	}

	// 3. 派生
	return &PanelResult{
		Columns: s.sorter.Catalog().Visible(prefs.VisibleColumns),
		Rows:    s.sorter.Derive(records, query),
		All:     records,
		Query:   query,
		Prefs:   prefs,
	}, nil
}

// ────────────────────── View ──────────────────────

func (s *panelService) View(ctx context.Context, username string, req *dto.PanelViewRequest) (*dto.PanelViewResponse, error) {
	result, err := s.Derive(ctx, username, req)
	if err != nil {
		return nil, err
	}

	columns := make([]dto.PanelColumn, 0, len(result.Columns))
	visible := make([]string, 0, len(result.Columns))
	for _, col := range result.Columns {
		columns = append(columns, dto.PanelColumn{Key: col.Key, Label: col.Label, Sortable: col.Sortable})
		visible = append(visible, col.Key)
	}

	rows := make([]dto.PanelRow, 0, len(result.Rows))
	for i := range result.Rows {
		r := &result.Rows[i]
		cells := make(map[string]string, len(result.Columns))
		for _, col := range result.Columns {
			cells[col.Key] = col.Cell(i+1, r)
		}
		rows = append(rows, dto.PanelRow{ID: r.ID, Cells: cells})
	}

	return &dto.PanelViewResponse{
		Columns:        columns,
		VisibleColumns: visible,
		Rows:           rows,
		Stats:          panel.Stats(result.Rows),
		Options:        panel.Options(result.All),
		Sort:           dto.PanelSort{Field: result.Query.Sort.Field, Order: result.Query.Sort.Order},
		Filters: dto.PanelFilters{
			Search:   result.Query.Search,
			Client:   result.Query.Client,
			Project:  result.Query.Project,
			Activity: result.Query.Activity,
		},
	}, nil
}

// ────────────────────── Preferences ──────────────────────

// Preferences 当前偏好：优先取未落库的状态，读取失败时降级为默认值
func (s *panelService) Preferences(ctx context.Context, username string) dto.UserPreferencesResponse {
	if s.scheduler != nil {
		if pending, ok := s.scheduler.Pending(username); ok {
			return pending
		}
	}

	prefs, err := s.prefs.Load(ctx, username)
	if err != nil {
		s.logger.Warn("加载用户偏好失败，使用默认值", zap.String("username", username), zap.Error(err))
		return *dto.DefaultUserPreferences()
	}
	return *prefs
}

// ────────────────────── UpdatePreferences ──────────────────────

func (s *panelService) UpdatePreferences(ctx context.Context, username string, req *dto.UpdatePanelPreferencesRequest) (*dto.UserPreferencesResponse, error) {
	next := panel.ApplyPatch(s.sorter.Catalog(), s.Preferences(ctx, username), req)
	return s.commit(ctx, username, next)
}

// ────────────────────── ToggleColumn ──────────────────────

func (s *panelService) ToggleColumn(ctx context.Context, username, key string) (*dto.UserPreferencesResponse, error) {
	current := s.Preferences(ctx, username)
	columns, err := s.sorter.Catalog().Toggle(current.VisibleColumns, key)
	if err != nil {
		if errors.Is(err, panel.ErrUnknownColumn) {
			return nil, ErrUnknownColumn
		}
		return nil, err
	}

	next := panel.ClonePreferences(current)
	next.VisibleColumns = columns
	return s.commit(ctx, username, next)
}

// ────────────────────── Reset ──────────────────────

func (s *panelService) Reset(ctx context.Context, username string) (*dto.UserPreferencesResponse, error) {
	return s.commit(ctx, username, panel.ResetPreferences(s.sorter.Catalog()))
}

// ── 内部辅助 ──

// commit 交给去抖保存并立即返回新状态；无调度器时同步保存
func (s *panelService) commit(ctx context.Context, username string, next dto.UserPreferencesResponse) (*dto.UserPreferencesResponse, error) {
	if s.scheduler != nil {
		s.scheduler.Schedule(username, next)
		return &next, nil
	}
	if err := SavePreferencesFunc(s.prefs)(ctx, username, next); err != nil {
		return nil, err
	}
	return &next, nil
}

// resolveSort 校验排序参数并应用列头点击
func (s *panelService) resolveSort(req *dto.PanelViewRequest) panel.SortState {
	catalog := s.sorter.Catalog()

	state := panel.DefaultSort()
	if catalog.IsSortable(req.SortField) {
		state = panel.SortState{Field: req.SortField, Order: panel.NormalizeOrder(req.SortOrder)}
	}
	if req.Toggle != "" && catalog.IsSortable(req.Toggle) {
		state = state.Toggle(req.Toggle)
	}
	return state
}

// pick 请求中出现的筛选条件优先（空串表示不筛选），否则用默认筛选
func pick(requested, fallback *string) *string {
	if requested != nil {
		if *requested == "" {
			return nil
		}
		return requested
	}
	return fallback
}
