package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/koshanqari/gl-app-checkin/internal/model"
	"github.com/koshanqari/gl-app-checkin/internal/repository"
	"github.com/koshanqari/gl-app-checkin/pkg/redis"
)

// ── Mock CheckInRepository ──

type mockCheckInRepo struct {
	checkIns map[uint]*model.CheckIn
	nextID   uint
	clock    time.Time

	// 注入错误
	createErr error
	listErr   error
	updateErr error
}

func newMockCheckInRepo() *mockCheckInRepo {
	return &mockCheckInRepo{
		checkIns: make(map[uint]*model.CheckIn),
		nextID:   1,
		clock:    time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (m *mockCheckInRepo) tick() time.Time {
	m.clock = m.clock.Add(time.Minute)
	return m.clock
}

func (m *mockCheckInRepo) Create(_ context.Context, checkIn *model.CheckIn) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, c := range m.checkIns {
		if c.EmpID == checkIn.EmpID &&
			equalPtr(c.ClientName, checkIn.ClientName) &&
			equalPtr(c.ProjectName, checkIn.ProjectName) &&
			equalPtr(c.ActivityName, checkIn.ActivityName) {
			return gorm.ErrDuplicatedKey
		}
	}
	checkIn.ID = m.nextID
	m.nextID++
	now := m.tick()
	checkIn.CreatedAt = now
	checkIn.UpdatedAt = now
	stored := *checkIn
	m.checkIns[checkIn.ID] = &stored
	return nil
}

func (m *mockCheckInRepo) GetByID(_ context.Context, id uint) (*model.CheckIn, error) {
	if c, ok := m.checkIns[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCheckInRepo) List(_ context.Context, filter repository.CheckInListFilter) ([]model.CheckIn, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	term := strings.ToLower(filter.Search)
	var result []model.CheckIn
	for _, c := range m.checkIns {
		if term != "" &&
			!strings.Contains(strings.ToLower(c.EmpID), term) &&
			!strings.Contains(strings.ToLower(c.EmpName), term) &&
			!strings.Contains(strings.ToLower(c.EmpMobileNo), term) &&
			!strings.Contains(strings.ToLower(c.Department), term) &&
			!strings.Contains(strings.ToLower(c.Location), term) {
			continue
		}
		result = append(result, *c)
	}
	// 仅模拟 created_at 与 id 排序
	sort.Slice(result, func(i, j int) bool {
		less := result[i].CreatedAt.Before(result[j].CreatedAt)
		if filter.SortColumn == "id" {
			less = result[i].ID < result[j].ID
		}
		if filter.Desc {
			return !less
		}
		return less
	})
	return result, nil
}

func (m *mockCheckInRepo) Update(_ context.Context, checkIn *model.CheckIn) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.checkIns[checkIn.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	checkIn.UpdatedAt = m.tick()
	stored := *checkIn
	m.checkIns[checkIn.ID] = &stored
	return nil
}

func (m *mockCheckInRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.checkIns[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.checkIns, id)
	return nil
}

func equalPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// ── Mock UserPreferenceRepository ──

type mockUserPreferenceRepo struct {
	prefs   map[string]*model.UserPreference
	getErr  error
	saveErr error
	gets    int
}

func newMockUserPreferenceRepo() *mockUserPreferenceRepo {
	return &mockUserPreferenceRepo{prefs: make(map[string]*model.UserPreference)}
}

func (m *mockUserPreferenceRepo) GetByUsername(_ context.Context, username string) (*model.UserPreference, error) {
	m.gets++
	if m.getErr != nil {
		return nil, m.getErr
	}
	if p, ok := m.prefs[username]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserPreferenceRepo) Upsert(_ context.Context, pref *model.UserPreference) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	stored := *pref
	m.prefs[pref.Username] = &stored
	return nil
}

// ── Mock 缓存与黑名单 ──

type mockCache struct {
	mu     sync.Mutex
	values  map[string][]byte
	getErr  error
	setErr  error
	deleted []string
}

func newMockCache() *mockCache {
	return &mockCache{values: make(map[string][]byte)}
}

func (m *mockCache) GetJSON(_ context.Context, key string, target interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return m.getErr
	}
	v, ok := m.values[key]
	if !ok {
		return redis.ErrCacheMiss
	}
	return json.Unmarshal(v, target)
}

func (m *mockCache) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.values[key] = raw
	return nil
}

func (m *mockCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.values, k)
		m.deleted = append(m.deleted, k)
	}
	return nil
}

type mockBlacklist struct {
	tokens map[string]time.Duration
	err    error
}

func newMockBlacklist() *mockBlacklist {
	return &mockBlacklist{tokens: make(map[string]time.Duration)}
}

func (m *mockBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	if m.err != nil {
		return m.err
	}
	m.tokens[jti] = ttl
	return nil
}

// ── 测试辅助 ──

func newTestRepository() (*repository.Repository, *mockCheckInRepo, *mockUserPreferenceRepo) {
	checkInRepo := newMockCheckInRepo()
	prefRepo := newMockUserPreferenceRepo()
	return &repository.Repository{
		CheckIn:        checkInRepo,
		UserPreference: prefRepo,
	}, checkInRepo, prefRepo
}

var errDBDown = errors.New("connection refused")
