package parser

import (
	"strings"

	"github.com/MindweaveTech/restaurantdaily/internal/grid"
)

// PCVParser 零用金凭证（Petty Cash Voucher）解析器
type PCVParser struct {
	ctx PeriodContext
}

// ExpenseCategories 费用品类关键词表，按描述文本首个命中分类
var ExpenseCategories = []categoryRule{
	{"staff", []string{"staff", "employee", "salary", "wages", "bonus"}},
	{"repair", []string{"repair", "maintenance", "fix", "service"}},
	{"cleaning", []string{"cleaning", "housekeeping", "sanitation"}},
	{"transport", []string{"transport", "travel", "cab", "auto", "fuel", "petrol"}},
	{"utilities", []string{"electricity", "water", "gas", "utility"}},
	{"supplies", []string{"supplies", "stationery", "office"}},
	{"kitchen", []string{"kitchen", "utensil", "equipment"}},
	{"packaging", []string{"packaging", "packing"}},
	{"misc", []string{"miscellaneous", "misc", "other"}},
}

// 汇总行哨兵
var pcvSentinels = []string{"total", "grand total", "sum"}

// NewPCVParser 创建零用金解析器
func NewPCVParser(ctx PeriodContext) *PCVParser {
	return &PCVParser{ctx: ctx}
}

// Parse 解析零用金表
func (p *PCVParser) Parse(g *grid.Grid) *ParseResult {
	result := newResult(p.ctx, SheetTypePCV)

	headerRow := FindHeaderRow(g, []string{"expense", "pcv", "voucher"})
	cols := p.identifyColumns(g, headerRow)

	totalExpense := 0.0

	for i := headerRow + 1; i < g.RowCount(); i++ {
		if g.RowIsEmpty(i) {
			continue
		}

		desc := CleanString(g.Cell(i, cols["description"]))
		amountCell := g.Cell(i, cols["amount"])
		if desc == nil && amountCell.IsEmpty() {
			continue
		}

		if desc != nil && ContainsAny(strings.ToLower(*desc), pcvSentinels) {
			result.warnf("第 %d 行为汇总行（%s），已跳过", i+1, *desc)
			continue
		}

		amount := CleanNumber(amountCell)
		if amount != nil {
			totalExpense += *amount
		}

		result.Data = append(result.Data, Record{
			"date":        parseDateValue(cellAt(g, i, cols, "date")),
			"pcv_number":  CleanString(cellAt(g, i, cols, "pcv_no")),
			"description": desc,
			"amount":      amount,
			"category":    classifyExpense(desc),
			"store":       p.ctx.Store,
			"year":        p.ctx.Year,
			"month":       p.ctx.Month,
		})
	}

	result.Metadata["record_count"] = len(result.Data)
	result.Metadata["total_expense"] = totalExpense
	return result
}

// identifyColumns 在表头行及其下一行中扫描列标签定位各字段列号
// description 与 amount 找不到时退回固定列位（第 3、5 列）
func (p *PCVParser) identifyColumns(g *grid.Grid, headerRow int) map[string]int {
	cols := make(map[string]int)

	for _, row := range []int{headerRow, headerRow + 1} {
		if row >= g.RowCount() {
			continue
		}
		for idx, c := range g.Row(row) {
			if c.IsEmpty() {
				continue
			}
			text := strings.ToLower(c.Text)

			if _, ok := cols["date"]; !ok && strings.Contains(text, "date") {
				cols["date"] = idx
				continue
			}
			if _, ok := cols["pcv_no"]; !ok && ContainsAny(text, []string{"pcv", "voucher", "no"}) {
				cols["pcv_no"] = idx
				continue
			}
			if _, ok := cols["description"]; !ok && ContainsAny(text, []string{"description", "particular", "detail"}) {
				cols["description"] = idx
				continue
			}
			if _, ok := cols["amount"]; !ok && ContainsAny(text, []string{"amount", "value", "rs"}) {
				cols["amount"] = idx
			}
		}
	}

	if _, ok := cols["description"]; !ok {
		cols["description"] = 2
	}
	if _, ok := cols["amount"]; !ok {
		cols["amount"] = 4
	}
	return cols
}

// cellAt 按发现的列位取单元格，字段缺席返回空单元格
func cellAt(g *grid.Grid, row int, cols map[string]int, field string) grid.Cell {
	idx, ok := cols[field]
	if !ok {
		return grid.Empty()
	}
	return g.Cell(row, idx)
}

// classifyExpense 按描述关键词分类，默认 uncategorized
func classifyExpense(desc *string) string {
	if desc == nil {
		return "uncategorized"
	}
	lower := strings.ToLower(*desc)
	for _, rule := range ExpenseCategories {
		if ContainsAny(lower, rule.Keywords) {
			return rule.Category
		}
	}
	return "uncategorized"
}
