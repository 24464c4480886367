package service

import (
	"bytes"
	"context"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/koshanqari/gl-app-checkin/internal/dto"
	"github.com/koshanqari/gl-app-checkin/internal/panel"
	apperrors "github.com/koshanqari/gl-app-checkin/pkg/errors"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = apperrors.New(apperrors.KindStore, "Failed to generate export file")
)

const exportSheetName = "Check-Ins"

// ExportService 导出业务接口
//
// 导出内容与面板当前视图一致：同样的筛选、排序与可见列（操作列除外）
// 以 bytes.Buffer 返回，由 Handler 层设置下载响应头
type ExportService interface {
	ExportCSV(ctx context.Context, username string, req *dto.PanelViewRequest) (*bytes.Buffer, string, error)
	ExportXLSX(ctx context.Context, username string, req *dto.PanelViewRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	panel  PanelService
	now    func() time.Time
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(panelSvc PanelService, logger *zap.Logger) ExportService {
	return &exportService{panel: panelSvc, now: time.Now, logger: logger}
}

// ────────────────────── CSV ──────────────────────

func (s *exportService) ExportCSV(ctx context.Context, username string, req *dto.PanelViewRequest) (*bytes.Buffer, string, error) {
	result, err := s.panel.Derive(ctx, username, req)
	if err != nil {
		return nil, "", err
	}

	buf := new(bytes.Buffer)
	if err := panel.WriteCSV(buf, result.Columns, result.Rows); err != nil {
		s.logger.Error("写入 CSV 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	return buf, panel.ExportFilename(s.now(), "csv"), nil
}

// ────────────────────── XLSX ──────────────────────

func (s *exportService) ExportXLSX(ctx context.Context, username string, req *dto.PanelViewRequest) (*bytes.Buffer, string, error) {
	result, err := s.panel.Derive(ctx, username, req)
	if err != nil {
		return nil, "", err
	}

	buf, err := s.writeWorkbook(result)
	if err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	return buf, panel.ExportFilename(s.now(), "xlsx"), nil
}

func (s *exportService) writeWorkbook(result *PanelResult) (*bytes.Buffer, error) {
	cols := panel.ExportColumns(result.Columns)

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(exportSheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	// 删除默认 Sheet1
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	// 表头
	for i, col := range cols {
		name := colName(i)
		if err := f.SetColWidth(exportSheetName, name, name, 18); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(exportSheetName, cell(name, 1), col.Label); err != nil {
			return nil, err
		}
	}
	if len(cols) > 0 {
		if err := f.SetCellStyle(exportSheetName, "A1", cell(colName(len(cols)-1), 1), headerStyle); err != nil {
			return nil, err
		}
	}

	// 数据行：数值列写数字，其余写导出文本
	for i := range result.Rows {
		r := &result.Rows[i]
		row := i + 2
		for j, col := range cols {
			var value any = col.ExportText(i+1, r)
			switch {
			case col.Key == "srNo":
				value = i + 1
			case col.Value != nil && !col.Quote:
				if n, ok := col.Value(r).(int); ok {
					value = n
				}
			}
			if err := f.SetCellValue(exportSheetName, cell(colName(j), row), value); err != nil {
				return nil, err
			}
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	name, err := excelize.JoinCellName(col, row)
	if err != nil {
		return col
	}
	return name
}

