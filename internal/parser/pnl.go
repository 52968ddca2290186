package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/MindweaveTech/restaurantdaily/internal/grid"
)

// PnLParser 损益表解析器
// 没有固定表头：逐行独立取科目标签与金额
type PnLParser struct {
	ctx PeriodContext
}

// lineItemMapping 科目名归一化，按表顺序首个命中生效
type lineItemMapping struct {
	Pattern  string
	Standard string
}

// PnLLineItems 损益科目表
var PnLLineItems = []lineItemMapping{
	{"net sales", "revenue_net_sales"},
	{"gross sales", "revenue_gross_sales"},
	{"sales", "revenue_sales"},
	{"other income", "revenue_other"},
	{"total revenue", "revenue_total"},
	{"food cost", "cost_food"},
	{"raw material", "cost_raw_material"},
	{"packaging", "cost_packaging"},
	{"labor", "cost_labor"},
	{"labour", "cost_labor"},
	{"salary", "cost_salary"},
	{"wages", "cost_wages"},
	{"rent", "cost_rent"},
	{"electricity", "cost_electricity"},
	{"utilities", "cost_utilities"},
	{"marketing", "cost_marketing"},
	{"royalty", "cost_royalty"},
	{"aggregator", "cost_aggregator"},
	{"commission", "cost_commission"},
	{"depreciation", "cost_depreciation"},
	{"other expense", "cost_other"},
	{"total cost", "cost_total"},
	{"total expense", "cost_total"},
	{"gross profit", "profit_gross"},
	{"operating profit", "profit_operating"},
	{"ebitda", "profit_ebitda"},
	{"net profit", "profit_net"},
	{"profit before tax", "profit_before_tax"},
}

// NewPnLParser 创建损益解析器
func NewPnLParser(ctx PeriodContext) *PnLParser {
	return &PnLParser{ctx: ctx}
}

// Parse 解析损益表
// 标签取前三列中首个非纯数字单元格；金额取其后各列中首个可解析数值
func (p *PnLParser) Parse(g *grid.Grid) *ParseResult {
	result := newResult(p.ctx, SheetTypePnL)
	summary := make(map[string]float64)

	for i := 0; i < g.RowCount(); i++ {
		if g.RowIsEmpty(i) {
			continue
		}

		lineItem, labelIdx := p.findLabel(g, i)
		if lineItem == "" {
			continue
		}
		value := p.findValue(g, i, labelIdx)

		standard := mapLineItem(lineItem)
		record := Record{
			"line_item": lineItem,
			"value":     value,
			"store":     p.ctx.Store,
			"year":      p.ctx.Year,
			"month":     p.ctx.Month,
		}
		if standard != "" {
			record["standard_name"] = standard
			if value != nil {
				summary[standard] = *value
			}
		} else {
			record["standard_name"] = nil
		}
		result.Data = append(result.Data, record)
	}

	result.Metadata["record_count"] = len(result.Data)
	result.Metadata["pnl_summary"] = summary

	if net, okNet := summary["revenue_net_sales"]; okNet && net != 0 {
		if food, okFood := summary["cost_food"]; okFood {
			pct := food / net * 100
			result.Metadata["food_cost_percentage"] = math.Round(pct*100) / 100
		}
	}
	return result
}

// findLabel 前三列中首个非纯数字单元格为科目标签
func (p *PnLParser) findLabel(g *grid.Grid, row int) (string, int) {
	limit := g.Width()
	if limit > 3 {
		limit = 3
	}
	for c := 0; c < limit; c++ {
		cell := g.Cell(row, c)
		if cell.IsEmpty() {
			continue
		}
		s := strings.TrimSpace(cell.Text)
		if s != "" && !purelyNumeric(s) {
			return s, c
		}
	}
	return "", -1
}

// findValue 标签之后（按列序）首个可解析为数值的单元格
// 解析前剥去千分位与货币符号
func (p *PnLParser) findValue(g *grid.Grid, row, labelIdx int) *float64 {
	limit := g.Width()
	if limit > 4 {
		limit = 4
	}
	for c := 0; c < limit; c++ {
		if c == labelIdx {
			continue
		}
		cell := g.Cell(row, c)
		if cell.IsEmpty() {
			continue
		}
		if cell.Kind == grid.KindNumber {
			v := cell.Number
			return &v
		}
		s := strings.TrimSpace(cell.Text)
		s = strings.ReplaceAll(s, ",", "")
		s = strings.ReplaceAll(s, "₹", "")
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return &f
		}
	}
	return nil
}

// purelyNumeric 剥去小数点与负号后是否全为数字
func purelyNumeric(s string) bool {
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, "-", "")
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// mapLineItem 科目名归一化，未命中返回空串
func mapLineItem(lineItem string) string {
	lower := strings.ToLower(strings.TrimSpace(lineItem))
	for _, m := range PnLLineItems {
		if strings.Contains(lower, m.Pattern) {
			return m.Standard
		}
	}
	return ""
}
