package parser

import (
	"strings"

	"github.com/MindweaveTech/restaurantdaily/internal/grid"
)

// RateListParser Rate-List 表解析器（原料/商品单价）
type RateListParser struct {
	ctx PeriodContext
}

// uomMap 常见计量单位归一化
var uomMap = map[string]string{
	"pc":       "piece",
	"kg":       "kg",
	"lt":       "liter",
	"ltr":      "liter",
	"can(5lt)": "can_5l",
	"can":      "can",
}

// categoryRule 品类关键词，按表顺序首个命中生效
type categoryRule struct {
	Category string
	Keywords []string
}

// RateListCategories 商品品类关键词表
var RateListCategories = []categoryRule{
	{"beverage", []string{"coke", "sprite", "coffee", "tea", "water", "shikanji", "soda"}},
	{"patty", []string{"patty", "burger"}},
	{"sauce", []string{"sauce", "mayo", "ketchup", "mustard", "dip"}},
	{"packaging", []string{"box", "wrapper", "pouch", "bag", "cup", "tray", "napkin"}},
	{"cleaning", []string{"chemical", "cleaner", "wipe", "duster", "sanitizer", "baccide"}},
	{"label", []string{"label"}},
	{"ingredient", []string{"masala", "lettuce", "onion", "oil", "honey"}},
	{"frozen", []string{"frozen", "fries", "ice cream", "icecream"}},
}

// NewRateListParser 创建 Rate-List 解析器
func NewRateListParser(ctx PeriodContext) *RateListParser {
	return &RateListParser{ctx: ctx}
}

// Parse 解析单价表
// 列为固定位置：序号、品名、单位、单价
func (p *RateListParser) Parse(g *grid.Grid) *ParseResult {
	result := newResult(p.ctx, SheetTypeRateList)

	// 定位数据起始行：首列为序号数字或字面 "sno"
	start := 0
	for i := 0; i < g.RowCount(); i++ {
		first := g.Cell(i, 0)
		if strings.Contains(strings.ToLower(first.Text), "sno") || isSerialCell(first) {
			start = i
			break
		}
	}

	for i := start; i < g.RowCount(); i++ {
		if g.Cell(i, 0).IsEmpty() && g.Cell(i, 1).IsEmpty() {
			continue
		}

		sno := CleanInt(g.Cell(i, 0))
		product := CleanString(g.Cell(i, 1))
		uomRaw := CleanString(g.Cell(i, 2))
		rate := CleanNumber(g.Cell(i, 3))

		// 残留表头行
		if product != nil && strings.EqualFold(*product, "product") {
			continue
		}
		if product == nil {
			result.warnf("第 %d 行缺少品名，已跳过", i+1)
			continue
		}

		result.Data = append(result.Data, Record{
			"sno":            sno,
			"product_name":   *product,
			"uom":            normalizeUOM(uomRaw),
			"uom_raw":        uomRaw,
			"rate":           rate,
			"category":       classifyProduct(*product),
			"year":           p.ctx.Year,
			"month":          p.ctx.Month,
			"store":          p.ctx.Store,
			"effective_date": p.ctx.ReportDate().Format("2006-01-02"),
		})
	}

	result.Metadata["record_count"] = len(result.Data)
	return result
}

// isSerialCell 是否形如序号：数值单元格或纯数字文本
func isSerialCell(c grid.Cell) bool {
	if c.Kind == grid.KindNumber {
		return true
	}
	s := strings.TrimSpace(c.Text)
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

// normalizeUOM 归一化计量单位，查不到则取小写原文，空值记为 unit
func normalizeUOM(raw *string) string {
	if raw == nil {
		return "unit"
	}
	lower := strings.ToLower(strings.TrimSpace(*raw))
	if std, ok := uomMap[lower]; ok {
		return std
	}
	return lower
}

// classifyProduct 按品名关键词分类，默认 other
func classifyProduct(name string) string {
	lower := strings.ToLower(name)
	for _, rule := range RateListCategories {
		if ContainsAny(lower, rule.Keywords) {
			return rule.Category
		}
	}
	return "other"
}
