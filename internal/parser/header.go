package parser

import (
	"strings"

	"github.com/MindweaveTech/restaurantdaily/internal/grid"
)

// FindHeaderRow 自上而下扫描表头行
// 将每行非空单元格的小写文本拼接后做子串匹配，命中任一模式即返回行号；
// 都未命中返回 0（默认数据从首行开始，静默兜底而非错误）
func FindHeaderRow(g *grid.Grid, patterns []string) int {
	for i := 0; i < g.RowCount(); i++ {
		rowStr := rowText(g, i)
		for _, p := range patterns {
			if strings.Contains(rowStr, strings.ToLower(p)) {
				return i
			}
		}
	}
	return 0
}

// rowText 一行非空单元格的小写文本拼接
func rowText(g *grid.Grid, row int) string {
	var parts []string
	for _, c := range g.Row(row) {
		if !c.IsEmpty() {
			parts = append(parts, strings.ToLower(c.Text))
		}
	}
	return strings.Join(parts, " ")
}
