package export

import (
	"fmt"
	"strings"

	"formdash/internal/features/dashboard"
	"formdash/internal/features/widget"
	"formdash/pkg/utils"

	"github.com/xuri/excelize/v2"
)

// BuildWorkbook renders a dashboard into an XLSX file: an overview sheet with
// the scalar widgets, then one sheet per table and per chart.
func BuildWorkbook(d *dashboard.Dashboard) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	if err := writeOverviewSheet(f, d, headerStyle); err != nil {
		return nil, "", err
	}

	sheetNames := map[string]int{}
	for _, w := range d.Widgets {
		switch w.Type {
		case widget.TypeTable:
			if err := writeTableSheet(f, w, headerStyle, sheetNames); err != nil {
				return nil, "", err
			}
		case widget.TypeChart:
			if err := writeChartSheet(f, w, headerStyle, sheetNames); err != nil {
				return nil, "", err
			}
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := utils.Slugify(d.Name)
	if filename == "" {
		filename = "dashboard"
	}
	return buffer.Bytes(), filename + ".xlsx", nil
}

func writeOverviewSheet(f *excelize.File, d *dashboard.Dashboard, headerStyle int) error {
	const sheet = "Overview"
	// The default sheet is renamed rather than left dangling.
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	for i, col := range []string{"Widget", "Type", "Value"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, col)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	row := 2
	for _, w := range d.Widgets {
		var value interface{}
		switch w.Type {
		case widget.TypeStatsCard:
			value = w.StatsData().Value
		case widget.TypeMetric:
			value = w.MetricData().Value
		case widget.TypeGauge:
			value = w.GaugeData().Value
		default:
			continue
		}

		titleCell, _ := excelize.CoordinatesToCellName(1, row)
		typeCell, _ := excelize.CoordinatesToCellName(2, row)
		valueCell, _ := excelize.CoordinatesToCellName(3, row)
		f.SetCellValue(sheet, titleCell, w.Title)
		f.SetCellValue(sheet, typeCell, string(w.Type))
		f.SetCellValue(sheet, valueCell, value)
		row++
	}

	for i := 1; i <= 3; i++ {
		col, _ := excelize.ColumnNumberToName(i)
		f.SetColWidth(sheet, col, col, 20)
	}
	return nil
}

func writeTableSheet(f *excelize.File, w widget.Widget, headerStyle int, names map[string]int) error {
	sheet := uniqueSheetName(w.Title, "Table", names)
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	d := w.TableData()
	for i, col := range d.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, col.Label)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}
	for rowIdx, row := range d.Rows {
		for colIdx, col := range d.Columns {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheet, cell, row.Cell(col, colIdx))
		}
	}

	for i := range d.Columns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, 15)
	}
	return nil
}

func writeChartSheet(f *excelize.File, w widget.Widget, headerStyle int, names map[string]int) error {
	sheet := uniqueSheetName(w.Title, "Chart", names)
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	for i, col := range []string{"Label", "Value"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, col)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	d := w.ChartData()
	for i, value := range d.Values {
		labelCell, _ := excelize.CoordinatesToCellName(1, i+2)
		valueCell, _ := excelize.CoordinatesToCellName(2, i+2)
		if i < len(d.Labels) {
			f.SetCellValue(sheet, labelCell, d.Labels[i])
		}
		f.SetCellValue(sheet, valueCell, value)
	}
	return nil
}

// uniqueSheetName fits a widget title into Excel's 31-char sheet name limit
// and deduplicates clashes.
func uniqueSheetName(title, fallback string, names map[string]int) string {
	name := sanitizeSheetName(title)
	if name == "" {
		name = fallback
	}
	if len(name) > 28 {
		name = name[:28]
	}
	names[name]++
	if n := names[name]; n > 1 {
		name = fmt.Sprintf("%s %d", name, n)
	}
	return name
}

func sanitizeSheetName(s string) string {
	replacer := strings.NewReplacer("/", "-", "\\", "-", "?", "", "*", "", "[", "(", "]", ")", ":", "-")
	return strings.TrimSpace(replacer.Replace(s))
}
