package panel

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/koshanqari/gl-app-checkin/internal/model"
)

// 排序方向
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// DefaultSortField 默认排序列
const DefaultSortField = "createdAt"

// SortState 面板排序状态
type SortState struct {
	Field string
	Order string
}

// DefaultSort 默认按创建时间倒序
func DefaultSort() SortState {
	return SortState{Field: DefaultSortField, Order: OrderDesc}
}

// Toggle 点击列头：同列翻转方向，新列重置为升序
func (s SortState) Toggle(field string) SortState {
	if s.Field == field {
		if s.Order == OrderAsc {
			return SortState{Field: field, Order: OrderDesc}
		}
		return SortState{Field: field, Order: OrderAsc}
	}
	return SortState{Field: field, Order: OrderAsc}
}

// NormalizeOrder 非 asc 一律视为 desc
func NormalizeOrder(order string) string {
	if order == OrderAsc {
		return OrderAsc
	}
	return OrderDesc
}

// Query 派生视图的输入条件
// Client/Project/Activity 为 nil 或空串表示不筛选
type Query struct {
	Search   string
	Client   *string
	Project  *string
	Activity *string
	Sort     SortState
}

// Sorter 按列目录与区域设置排序
type Sorter struct {
	catalog *Catalog
	tag     language.Tag
}

// NewSorter 创建 Sorter；locale 无法解析时使用英文
func NewSorter(catalog *Catalog, locale string) *Sorter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Sorter{catalog: catalog, tag: tag}
}

// Catalog 返回所用列目录
func (s *Sorter) Catalog() *Catalog { return s.catalog }

// Derive 计算派生视图：搜索 → 上下文筛选 → 排序
// 返回新切片，不修改入参
func (s *Sorter) Derive(records []model.CheckIn, q Query) []model.CheckIn {
	out := make([]model.CheckIn, 0, len(records))
	term := strings.ToLower(q.Search)
	for i := range records {
		r := &records[i]
		if term != "" && !matchesSearch(r, q.Search, term) {
			continue
		}
		if !matchesFilter(r.ClientName, q.Client) ||
			!matchesFilter(r.ProjectName, q.Project) ||
			!matchesFilter(r.ActivityName, q.Activity) {
			continue
		}
		out = append(out, *r)
	}

	s.Sort(out, q.Sort)
	return out
}

// Sort 按列稳定排序；空值始终排在最后
// 列不存在或不可排序时保持原顺序
func (s *Sorter) Sort(records []model.CheckIn, state SortState) {
	col, ok := s.catalog.Lookup(state.Field)
	if !ok || col.Value == nil {
		return
	}
	desc := NormalizeOrder(state.Order) == OrderDesc

	// collate.Collator 非并发安全，每次排序单独创建
	coll := collate.New(s.tag)
	sort.SliceStable(records, func(i, j int) bool {
		a, b := col.Value(&records[i]), col.Value(&records[j])
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		}
		c := compareValues(coll, a, b)
		if desc {
			c = -c
		}
		return c < 0
	})
}

// compareValues 同类型比较；类型不同或不可比较时视为相等
func compareValues(coll *collate.Collator, a, b any) int {
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return coll.CompareString(av, bv)
		}
	case int:
		if bv, ok := b.(int); ok {
			return compareInt(av, bv)
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	}
	return 0
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// 手机号按原文子串匹配，其余字段忽略大小写
func matchesSearch(r *model.CheckIn, raw, lower string) bool {
	return strings.Contains(strings.ToLower(r.EmpID), lower) ||
		strings.Contains(strings.ToLower(r.EmpName), lower) ||
		strings.Contains(r.EmpMobileNo, raw) ||
		strings.Contains(strings.ToLower(r.Department), lower) ||
		strings.Contains(strings.ToLower(r.Location), lower) ||
		strings.Contains(strings.ToLower(r.MaritalStatus), lower)
}

func matchesFilter(value, want *string) bool {
	if want == nil || *want == "" {
		return true
	}
	return value != nil && *value == *want
}
