package panel

import (
	"bufio"
	"io"
	"strings"
	"time"

	"github.com/koshanqari/gl-app-checkin/internal/model"
)

// ExportColumns 过滤掉不参与导出的列（如操作列）
func ExportColumns(cols []Column) []Column {
	out := make([]Column, 0, len(cols))
	for _, col := range cols {
		if !col.NoExport {
			out = append(out, col)
		}
	}
	return out
}

// ExportFilename 导出文件名，如 checkins_2024-05-01.csv
func ExportFilename(now time.Time, ext string) string {
	return "checkins_" + now.Format("2006-01-02") + "." + ext
}

// WriteCSV 输出表头与数据行
// 字符串列加双引号并将内部引号写两次，数值与布尔列原样输出
func WriteCSV(w io.Writer, cols []Column, records []model.CheckIn) error {
	cols = ExportColumns(cols)
	bw := bufio.NewWriter(w)

	for i, col := range cols {
		if i > 0 {
			bw.WriteByte(',')
		}
		bw.WriteString(col.Label)
	}
	bw.WriteByte('\n')

	for i := range records {
		for j, col := range cols {
			if j > 0 {
				bw.WriteByte(',')
			}
			text := col.ExportText(i+1, &records[i])
			if col.Quote {
				bw.WriteByte('"')
				bw.WriteString(strings.ReplaceAll(text, `"`, `""`))
				bw.WriteByte('"')
			} else {
				bw.WriteString(text)
			}
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}
