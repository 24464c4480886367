package panel

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/koshanqari/gl-app-checkin/internal/model"
)

var (
	ErrUnknownColumn   = errors.New("unknown column")
	ErrDuplicateColumn = errors.New("duplicate column")
)

// 时间列显示格式
const timeDisplayLayout = "2006-01-02 15:04"

// Column 面板列定义
//
//   - Value 返回排序用的原始值；空值必须返回无类型 nil
//   - Cell 返回表格单元格文本，row 为 1 起始的行号
//   - Export 返回导出文本，为 nil 时沿用 Cell
//   - Quote 为 true 时 CSV 导出加引号（字符串列）
type Column struct {
	Key      string
	Label    string
	Sortable bool
	Value    func(r *model.CheckIn) any
	Cell     func(row int, r *model.CheckIn) string
	Export   func(row int, r *model.CheckIn) string
	Quote    bool
	NoExport bool
}

// ExportText 导出单元格文本
func (c Column) ExportText(row int, r *model.CheckIn) string {
	if c.Export != nil {
		return c.Export(row, r)
	}
	return c.Cell(row, r)
}

// Catalog 有序列目录，按注册顺序展示
type Catalog struct {
	columns []Column
	index   map[string]int
}

// NewCatalog 创建空目录
func NewCatalog() *Catalog {
	return &Catalog{index: make(map[string]int)}
}

// Register 追加一列；key 重复时返回 ErrDuplicateColumn
func (c *Catalog) Register(col Column) error {
	if _, ok := c.index[col.Key]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateColumn, col.Key)
	}
	if col.Cell == nil {
		return fmt.Errorf("column %s: Cell formatter is required", col.Key)
	}
	c.index[col.Key] = len(c.columns)
	c.columns = append(c.columns, col)
	return nil
}

func (c *Catalog) mustRegister(cols ...Column) {
	for _, col := range cols {
		if err := c.Register(col); err != nil {
			panic(err)
		}
	}
}

// Columns 全部列（目录顺序）
func (c *Catalog) Columns() []Column {
	out := make([]Column, len(c.columns))
	copy(out, c.columns)
	return out
}

// Keys 全部列 key（目录顺序）
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.columns))
	for i, col := range c.columns {
		keys[i] = col.Key
	}
	return keys
}

// Lookup 按 key 查找列
func (c *Catalog) Lookup(key string) (Column, bool) {
	i, ok := c.index[key]
	if !ok {
		return Column{}, false
	}
	return c.columns[i], true
}

// IsSortable 列存在且可排序
func (c *Catalog) IsSortable(key string) bool {
	col, ok := c.Lookup(key)
	return ok && col.Sortable && col.Value != nil
}

// Visible 按偏好返回可见列：目录 ∩ 偏好，保持目录顺序
// 偏好为空（或全部为未知 key）时返回全部列
func (c *Catalog) Visible(prefs []string) []Column {
	if len(prefs) == 0 {
		return c.Columns()
	}
	wanted := make(map[string]struct{}, len(prefs))
	for _, k := range prefs {
		wanted[k] = struct{}{}
	}
	out := make([]Column, 0, len(prefs))
	for _, col := range c.columns {
		if _, ok := wanted[col.Key]; ok {
			out = append(out, col)
		}
	}
	if len(out) == 0 {
		return c.Columns()
	}
	return out
}

// VisibleKeys Visible 的 key 列表
func (c *Catalog) VisibleKeys(prefs []string) []string {
	cols := c.Visible(prefs)
	keys := make([]string, len(cols))
	for i, col := range cols {
		keys[i] = col.Key
	}
	return keys
}

// Toggle 切换某列的可见性，返回新的可见列 key 列表（目录顺序）
// 不允许隐藏最后一个可见列，此时原样返回
func (c *Catalog) Toggle(prefs []string, key string) ([]string, error) {
	if _, ok := c.index[key]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, key)
	}

	current := c.VisibleKeys(prefs)
	next := make([]string, 0, len(current)+1)
	removed := false
	for _, k := range current {
		if k == key {
			removed = true
			continue
		}
		next = append(next, k)
	}
	if removed {
		if len(next) == 0 {
			return current, nil
		}
		return next, nil
	}
	return c.VisibleKeys(append(current, key)), nil
}

// Sanitize 去掉未知 key 与重复项，保持目录顺序；nil 视为空列表
func (c *Catalog) Sanitize(prefs []string) []string {
	if len(prefs) == 0 {
		return []string{}
	}
	wanted := make(map[string]struct{}, len(prefs))
	for _, k := range prefs {
		wanted[k] = struct{}{}
	}
	out := make([]string, 0, len(prefs))
	for _, col := range c.columns {
		if _, ok := wanted[col.Key]; ok {
			out = append(out, col.Key)
		}
	}
	return out
}

// ────────────────────── 默认目录 ──────────────────────

// DefaultCatalog 签到面板的标准列目录
func DefaultCatalog() *Catalog {
	c := NewCatalog()
	c.mustRegister(
		Column{
			Key: "srNo", Label: "Sr. No.", Sortable: true,
			Value: func(r *model.CheckIn) any { return int(r.ID) },
			Cell:  func(row int, _ *model.CheckIn) string { return strconv.Itoa(row) },
		},
		stringColumn("empId", "Emp ID", func(r *model.CheckIn) string { return r.EmpID }),
		stringColumn("empName", "Emp Name", func(r *model.CheckIn) string { return r.EmpName }),
		stringColumn("empMobileNo", "Mobile No", func(r *model.CheckIn) string { return r.EmpMobileNo }),
		stringColumn("department", "Department", func(r *model.CheckIn) string { return r.Department }),
		stringColumn("location", "Location", func(r *model.CheckIn) string { return r.Location }),
		Column{
			Key: "maritalStatus", Label: "Marital Status", Sortable: true, Quote: true,
			Value: func(r *model.CheckIn) any { return r.MaritalStatus },
			Cell:  func(_ int, r *model.CheckIn) string { return maritalLabel(r.MaritalStatus) },
		},
		intColumn("kidsBelow3Feet", "Kids < 3 ft", func(r *model.CheckIn) int { return r.KidsBelow3Feet }),
		intColumn("membersAbove3Feet", "Members > 3 ft", func(r *model.CheckIn) int { return r.MembersAbove3Feet }),
		intColumn("additionalMembers", "Additional Members", func(r *model.CheckIn) int { return r.AdditionalMembers }),
		nullableColumn("clientName", "Client", func(r *model.CheckIn) *string { return r.ClientName }),
		nullableColumn("projectName", "Project", func(r *model.CheckIn) *string { return r.ProjectName }),
		nullableColumn("activityName", "Activity", func(r *model.CheckIn) *string { return r.ActivityName }),
		Column{
			Key: "present", Label: "Present", Sortable: true,
			Value: func(r *model.CheckIn) any { return r.Present },
			Cell: func(_ int, r *model.CheckIn) string {
				if r.Present {
					return "Yes"
				}
				return "No"
			},
			Export: func(_ int, r *model.CheckIn) string { return strconv.FormatBool(r.Present) },
		},
		Column{
			Key: "createdAt", Label: "Created At", Sortable: true, Quote: true,
			Value: func(r *model.CheckIn) any {
				if r.CreatedAt.IsZero() {
					return nil
				}
				return r.CreatedAt
			},
			Cell: func(_ int, r *model.CheckIn) string {
				if r.CreatedAt.IsZero() {
					return "-"
				}
				return r.CreatedAt.Format(timeDisplayLayout)
			},
			Export: func(_ int, r *model.CheckIn) string {
				if r.CreatedAt.IsZero() {
					return ""
				}
				return r.CreatedAt.Format(time.RFC3339)
			},
		},
		Column{
			Key: "actions", Label: "Actions",
			Cell:     func(_ int, _ *model.CheckIn) string { return "" },
			NoExport: true,
		},
	)
	return c
}

func stringColumn(key, label string, get func(r *model.CheckIn) string) Column {
	return Column{
		Key: key, Label: label, Sortable: true, Quote: true,
		Value: func(r *model.CheckIn) any { return get(r) },
		Cell:  func(_ int, r *model.CheckIn) string { return get(r) },
	}
}

func intColumn(key, label string, get func(r *model.CheckIn) int) Column {
	return Column{
		Key: key, Label: label, Sortable: true,
		Value: func(r *model.CheckIn) any { return get(r) },
		Cell:  func(_ int, r *model.CheckIn) string { return strconv.Itoa(get(r)) },
	}
}

// 可空列：表格显示 "-"，导出为空串
func nullableColumn(key, label string, get func(r *model.CheckIn) *string) Column {
	return Column{
		Key: key, Label: label, Sortable: true, Quote: true,
		Value: func(r *model.CheckIn) any {
			if p := get(r); p != nil {
				return *p
			}
			return nil
		},
		Cell: func(_ int, r *model.CheckIn) string {
			if p := get(r); p != nil && *p != "" {
				return *p
			}
			return "-"
		},
		Export: func(_ int, r *model.CheckIn) string {
			if p := get(r); p != nil {
				return *p
			}
			return ""
		},
	}
}

func maritalLabel(status string) string {
	switch status {
	case model.MaritalStatusSingle:
		return "Single"
	case model.MaritalStatusMarried:
		return "Married"
	default:
		return status
	}
}
