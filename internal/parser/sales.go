package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/MindweaveTech/restaurantdaily/internal/grid"
)

// SalesParser 销售报表解析器
// 同一份逻辑数据在不同月份会以三种版式出现，解析前先做版式探测：
//  1. daily_rows      每行一个自然日（DATE/DAY 列）
//  2. channel_columns 列为渠道或按品项展开（Description/Total/渠道列）
//  3. generic         兜底：逐格抽取，永不报错
type SalesParser struct {
	ctx PeriodContext
}

// FormatType 销售表版式
type FormatType string

const (
	FormatDailyRows      FormatType = "daily_rows"
	FormatChannelColumns FormatType = "channel_columns"
	FormatGeneric        FormatType = "generic"
)

// channelMapping 渠道名归一化表，按表顺序首个命中生效
type channelMapping struct {
	Pattern  string
	Standard string
}

// ChannelMap 外卖/堂食渠道表
var ChannelMap = []channelMapping{
	{"zomato", "zomato"},
	{"swiggy", "swiggy"},
	{"swiggy regular", "swiggy"},
	{"swiggy minis", "swiggy_minis"},
	{"dotpe", "dotpe"},
	{"dinein", "dine_in"},
	{"dine in", "dine_in"},
	{"dine-in", "dine_in"},
	{"takeaway", "takeaway"},
	{"takeway", "takeaway"},
	{"t/a", "takeaway"},
	{"magicpin", "magicpin"},
	{"delivery", "delivery"},
	{"bs blitz", "zomato_campaign"},
	{"campaign", "campaign"},
}

// salesDailyColumns daily_rows 版式的指标列规则表
var salesDailyColumns = []ColumnRule{
	{"date", []string{`^date$`}},
	{"day", []string{`^day$`}},
	{"net_sales", []string{"net sale", "net_sale"}},
	{"gross_sales", []string{"gross sale"}},
	{"delivery_sales", []string{`delivery.*sale`}},
	{"delivery_orders", []string{`delivery.*order`}},
	{"dine_in_sales", []string{`dine.*sale`}},
	{"dine_in_orders", []string{`dine.*order`}},
	{"takeaway_sales", []string{`t/a.*sale`, `takeaway.*sale`}},
	{"takeaway_orders", []string{`t/a.*order`, `takeaway.*order`}},
	{"total_orders", []string{"total order"}},
	{"basket_per_order", []string{"bpo"}},
}

// NewSalesParser 创建销售解析器
func NewSalesParser(ctx PeriodContext) *SalesParser {
	return &SalesParser{ctx: ctx}
}

// Parse 解析销售表
func (p *SalesParser) Parse(g *grid.Grid) *ParseResult {
	result := newResult(p.ctx, SheetTypeSales)

	format := p.detectFormat(g)
	result.Metadata["format_type"] = string(format)

	switch format {
	case FormatDailyRows:
		p.parseDailyRows(g, result)
	case FormatChannelColumns:
		p.parseChannelColumns(g, result)
	default:
		p.parseGeneric(g, result)
	}

	result.Metadata["record_count"] = len(result.Data)
	result.Metadata["total_sales"] = p.totalSales(result.Data, format)
	return result
}

// detectFormat 版式探测：只看首行（表头）
func (p *SalesParser) detectFormat(g *grid.Grid) FormatType {
	header := g.HeaderTexts(0)
	columnsStr := strings.ToLower(strings.Join(header, " "))
	firstCol := ""
	if len(header) > 0 {
		firstCol = strings.ToLower(header[0])
	}

	if strings.Contains(firstCol, "date") && strings.Contains(columnsStr, "day") {
		return FormatDailyRows
	}
	if strings.Contains(columnsStr, "total") &&
		(strings.Contains(columnsStr, "zomato") || strings.Contains(columnsStr, "swiggy")) {
		return FormatChannelColumns
	}
	if strings.Contains(firstCol, "description") {
		return FormatChannelColumns
	}
	return FormatGeneric
}

// parseDailyRows 每行一天的版式
func (p *SalesParser) parseDailyRows(g *grid.Grid, result *ParseResult) {
	cols := MapColumns(g.HeaderTexts(0), salesDailyColumns)

	for i := 1; i < g.RowCount(); i++ {
		dateCell := cols.Cell(g, i, "date")
		if dateCell.IsEmpty() {
			continue
		}
		// 表头/汇总行：文本首字符非数字
		if dateCell.Kind == grid.KindText && !startsWithDigit(dateCell.Text) {
			continue
		}
		saleDate := parseDateValue(dateCell)
		if saleDate == nil {
			result.warnf("第 %d 行日期无法解析（%s），已跳过", i+1, dateCell.Text)
			continue
		}

		record := Record{
			"date":     *saleDate,
			"day_name": CleanString(cols.Cell(g, i, "day")),
			"store":    p.ctx.Store,
			"year":     p.ctx.Year,
			"month":    p.ctx.Month,
		}
		for _, metric := range []string{
			"net_sales", "gross_sales",
			"delivery_sales", "delivery_orders",
			"dine_in_sales", "dine_in_orders",
			"takeaway_sales", "takeaway_orders",
			"total_orders", "basket_per_order",
		} {
			if _, ok := cols[metric]; ok {
				record[metric] = CleanNumber(cols.Cell(g, i, metric))
			}
		}
		result.Data = append(result.Data, record)
	}
}

// parseChannelColumns 列为渠道的版式
func (p *SalesParser) parseChannelColumns(g *grid.Grid, result *ParseResult) {
	// 表头行：首列含 description/item
	headerRow := 0
	for i := 0; i < g.RowCount(); i++ {
		first := strings.ToLower(g.Cell(i, 0).Text)
		if strings.Contains(first, "description") || strings.Contains(first, "item") {
			headerRow = i
			break
		}
	}

	header := g.Row(headerRow)
	totalCol := -1
	channelCols := make(map[string]int)
	var channelOrder []string

	for idx := 1; idx < len(header); idx++ {
		text := strings.ToLower(strings.TrimSpace(header[idx].Text))
		if text == "" {
			continue
		}
		if text == "total" {
			totalCol = idx
			continue
		}
		channel := mapChannel(text)
		if _, seen := channelCols[channel]; !seen {
			channelOrder = append(channelOrder, channel)
		}
		channelCols[channel] = idx
	}

	for i := headerRow + 1; i < g.RowCount(); i++ {
		desc := CleanString(g.Cell(i, 0))
		if desc == nil {
			continue
		}
		descLower := strings.ToLower(*desc)
		if descLower == "description" || descLower == "item" || descLower == "category" {
			continue
		}

		record := Record{
			"item":        *desc,
			"store":       p.ctx.Store,
			"year":        p.ctx.Year,
			"month":       p.ctx.Month,
			"record_type": "item_sales",
		}
		if totalCol >= 0 {
			record["total"] = CleanNumber(g.Cell(i, totalCol))
		} else {
			record["total"] = nil
		}
		for _, channel := range channelOrder {
			record["channel_"+channel] = CleanNumber(g.Cell(i, channelCols[channel]))
		}
		result.Data = append(result.Data, record)
	}
}

// parseGeneric 兜底版式：非空单元格逐格落为 col_<列号>
func (p *SalesParser) parseGeneric(g *grid.Grid, result *ParseResult) {
	for i := 0; i < g.RowCount(); i++ {
		if g.RowIsEmpty(i) {
			continue
		}
		record := Record{
			"row_index":   i,
			"store":       p.ctx.Store,
			"year":        p.ctx.Year,
			"month":       p.ctx.Month,
			"record_type": "raw",
		}
		cellCount := 0
		for idx, c := range g.Row(i) {
			if c.IsEmpty() {
				continue
			}
			record["col_"+strconv.Itoa(idx)] = truncate(c.Text, 100)
			cellCount++
		}
		// 除固定元数据外至少要有一个真实取值
		if cellCount > 0 {
			result.Data = append(result.Data, record)
		}
	}
}

// totalSales 按版式汇总金额字段
func (p *SalesParser) totalSales(records []Record, format FormatType) float64 {
	amountKey := ""
	switch format {
	case FormatDailyRows:
		amountKey = "net_sales"
	case FormatChannelColumns:
		amountKey = "total"
	default:
		return 0
	}
	total := 0.0
	for _, r := range records {
		if v, ok := r.Float(amountKey); ok {
			total += v
		}
	}
	return total
}

// mapChannel 渠道名归一化
// 查不到时退化为去空格截断 30 字符的原文
func mapChannel(channel string) string {
	lower := strings.ToLower(channel)
	for _, m := range ChannelMap {
		if strings.Contains(lower, m.Pattern) {
			return m.Standard
		}
	}
	return truncate(strings.ReplaceAll(channel, " ", "_"), 30)
}

// parseDateValue 取单元格的日期：日期格取日历日，文本尝试常见格式
func parseDateValue(c grid.Cell) *string {
	if c.Kind == grid.KindDate {
		s := c.Date.Format("2006-01-02")
		return &s
	}
	raw := strings.TrimSpace(c.Text)
	for _, layout := range []string{
		"2006-01-02", "02/01/2006", "2/1/2006", "02-01-2006", "2 Jan 2006", "Jan 2, 2006",
	} {
		if t, err := time.Parse(layout, raw); err == nil {
			s := t.Format("2006-01-02")
			return &s
		}
	}
	return nil
}

func startsWithDigit(s string) bool {
	return len(s) > 0 && s[0] >= '0' && s[0] <= '9'
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

