package render

import (
	"strconv"
	"strings"

	"formdash/internal/features/widget"
)

func tableFragment(w widget.Widget) string {
	d := w.TableData()

	var sb strings.Builder
	sb.WriteString(`<div class="widget widget-table">`)
	header(&sb, w)
	if len(d.Columns) == 0 {
		sb.WriteString(emptyState("No data available"))
		sb.WriteString(`</div>`)
		return sb.String()
	}

	sb.WriteString(`<table class="data-table"><thead><tr>`)
	for _, col := range d.Columns {
		sb.WriteString(`<th>` + esc(col.Label) + `</th>`)
	}
	sb.WriteString(`</tr></thead><tbody>`)

	if len(d.Rows) == 0 {
		sb.WriteString(`<tr><td colspan="` + strconv.Itoa(len(d.Columns)) +
			`" class="table-empty">No data available</td></tr>`)
	} else {
		for _, row := range d.Rows {
			sb.WriteString(`<tr>`)
			for i, col := range d.Columns {
				sb.WriteString(`<td>` + esc(row.Cell(col, i)) + `</td>`)
			}
			sb.WriteString(`</tr>`)
		}
	}
	sb.WriteString(`</tbody></table></div>`)
	return sb.String()
}
