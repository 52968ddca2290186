package parser

import (
	"strings"

	"github.com/MindweaveTech/restaurantdaily/internal/grid"
)

// InventoryParser 库存进销存表（Balance with Activity and Costs）解析器
type InventoryParser struct {
	ctx PeriodContext
}

// inventoryColumns 库存列映射规则表
var inventoryColumns = []ColumnRule{
	{"category", []string{"category", "cat"}},
	{"sub_category", []string{"sub category", "subcategory", "sub_category"}},
	{"name", []string{"name", "item", "product", "description"}},
	{"uom", []string{"measuring unit", "uom", "unit"}},
	{"opening_qty", []string{"opening balance", "opening qty", "open bal"}},
	{"opening_cost", []string{"opening cost", "open cost"}},
	{"purchase_qty", []string{"purchase", "inward", "received"}},
	{"purchase_cost", []string{"purchase cost"}},
	{"transfer_in", []string{"transfer in", "transfer_in"}},
	{"transfer_out", []string{"transfer out", "transfer_out"}},
	{"wastage", []string{"wastage", "waste", "damage"}},
	{"closing_qty", []string{"closing balance", "closing qty", "close bal"}},
	{"closing_cost", []string{"closing cost", "close cost"}},
	{"consumption", []string{"consumption", "consumed", "used"}},
}

// 品名列残留的表头字面量
var inventoryHeaderTokens = map[string]bool{
	"name":        true,
	"item":        true,
	"product":     true,
	"description": true,
}

// NewInventoryParser 创建库存解析器
func NewInventoryParser(ctx PeriodContext) *InventoryParser {
	return &InventoryParser{ctx: ctx}
}

// Parse 解析库存表
func (p *InventoryParser) Parse(g *grid.Grid) *ParseResult {
	result := newResult(p.ctx, SheetTypeInventory)

	headerRow := p.findHeaderRow(g)
	cols := MapColumns(g.HeaderTexts(headerRow), inventoryColumns)

	totalOpening := 0.0
	totalClosing := 0.0

	for i := headerRow + 1; i < g.RowCount(); i++ {
		if g.RowIsEmpty(i) {
			continue
		}

		name := CleanString(cols.Cell(g, i, "name"))
		if name == nil {
			continue
		}
		if inventoryHeaderTokens[strings.ToLower(*name)] {
			continue
		}

		record := Record{
			"name":          *name,
			"category":      CleanString(cols.Cell(g, i, "category")),
			"sub_category":  CleanString(cols.Cell(g, i, "sub_category")),
			"uom":           CleanString(cols.Cell(g, i, "uom")),
			"opening_qty":   CleanNumber(cols.Cell(g, i, "opening_qty")),
			"opening_cost":  CleanNumber(cols.Cell(g, i, "opening_cost")),
			"purchase_qty":  CleanNumber(cols.Cell(g, i, "purchase_qty")),
			"purchase_cost": CleanNumber(cols.Cell(g, i, "purchase_cost")),
			"transfer_in":   CleanNumber(cols.Cell(g, i, "transfer_in")),
			"transfer_out":  CleanNumber(cols.Cell(g, i, "transfer_out")),
			"wastage":       CleanNumber(cols.Cell(g, i, "wastage")),
			"closing_qty":   CleanNumber(cols.Cell(g, i, "closing_qty")),
			"closing_cost":  CleanNumber(cols.Cell(g, i, "closing_cost")),
			"consumption":   CleanNumber(cols.Cell(g, i, "consumption")),
			"store":         p.ctx.Store,
			"year":          p.ctx.Year,
			"month":         p.ctx.Month,
		}
		if v, ok := record.Float("opening_cost"); ok {
			totalOpening += v
		}
		if v, ok := record.Float("closing_cost"); ok {
			totalClosing += v
		}
		result.Data = append(result.Data, record)
	}

	result.Metadata["record_count"] = len(result.Data)
	result.Metadata["total_opening_value"] = totalOpening
	result.Metadata["total_closing_value"] = totalClosing
	return result
}

// findHeaderRow 库存表头行：同时出现品名列与结余/成本列，
// 或同时出现 category 与 measuring；找不到退回首行
func (p *InventoryParser) findHeaderRow(g *grid.Grid) int {
	for i := 0; i < g.RowCount(); i++ {
		rowStr := rowText(g, i)
		if (strings.Contains(rowStr, "name") || strings.Contains(rowStr, "item")) &&
			(strings.Contains(rowStr, "balance") || strings.Contains(rowStr, "cost")) {
			return i
		}
		if strings.Contains(rowStr, "category") && strings.Contains(rowStr, "measuring") {
			return i
		}
	}
	return 0
}
