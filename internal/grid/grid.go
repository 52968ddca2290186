package grid

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// CellKind 单元格值类型
type CellKind int

const (
	KindEmpty  CellKind = iota // 空单元格
	KindText                   // 文本
	KindNumber                 // 数值
	KindDate                   // 日期
)

// Cell 单元格
// 始终保留原始文本，类型化的值按 Kind 取用
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
	Date   time.Time
}

// IsEmpty 是否为空单元格
func (c Cell) IsEmpty() bool {
	return c.Kind == KindEmpty
}

// Empty 构造空单元格
func Empty() Cell {
	return Cell{Kind: KindEmpty}
}

// Text 构造文本单元格
func Text(s string) Cell {
	return Cell{Kind: KindText, Text: s}
}

// Number 构造数值单元格
func Number(f float64) Cell {
	return Cell{Kind: KindNumber, Text: strconv.FormatFloat(f, 'f', -1, 64), Number: f}
}

// Date 构造日期单元格
func Date(t time.Time) Cell {
	return Cell{Kind: KindDate, Text: t.Format("2006-01-02"), Date: t}
}

// 单元格文本可能的日期格式（日/月顺序按报表来源习惯为 DD/MM）
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006",
	"2/1/2006",
	"02/01/06",
	"2/1/06",
	"02-01-2006",
}

// FromValue 从原始字符串推断单元格
// 空白 → Empty；可解析日期 → Date；可解析数值 → Number；否则 Text
func FromValue(raw string) Cell {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Cell{Kind: KindEmpty}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Cell{Kind: KindDate, Text: s, Date: t}
		}
	}
	// strconv.ParseFloat 接受 "NaN"/"Inf"，这类标记保留为文本
	if f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return Cell{Kind: KindNumber, Text: s, Number: f}
	}
	return Cell{Kind: KindText, Text: s}
}

// Grid 矩形表格，读入后不再修改
// 行宽不一时按最大宽度以空单元格补齐
type Grid struct {
	rows  [][]Cell
	width int
}

// New 由单元格行构造 Grid
func New(rows [][]Cell) *Grid {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	padded := make([][]Cell, len(rows))
	for i, row := range rows {
		padded[i] = make([]Cell, width)
		copy(padded[i], row)
	}
	return &Grid{rows: padded, width: width}
}

// FromStrings 由原始字符串行构造 Grid（如 excelize GetRows 的输出）
func FromStrings(raw [][]string) *Grid {
	rows := make([][]Cell, len(raw))
	for i, r := range raw {
		cells := make([]Cell, len(r))
		for j, v := range r {
			cells[j] = FromValue(v)
		}
		rows[i] = cells
	}
	return New(rows)
}

// RowCount 行数
func (g *Grid) RowCount() int {
	return len(g.rows)
}

// Width 列数
func (g *Grid) Width() int {
	return g.width
}

// Cell 取单元格，越界返回空单元格
func (g *Grid) Cell(row, col int) Cell {
	if row < 0 || row >= len(g.rows) || col < 0 || col >= g.width {
		return Cell{Kind: KindEmpty}
	}
	return g.rows[row][col]
}

// Row 取整行，越界返回 nil
func (g *Grid) Row(row int) []Cell {
	if row < 0 || row >= len(g.rows) {
		return nil
	}
	return g.rows[row]
}

// RowIsEmpty 整行是否全为空
func (g *Grid) RowIsEmpty(row int) bool {
	for _, c := range g.Row(row) {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}

// HeaderTexts 取某行各单元格文本（供列映射使用）
func (g *Grid) HeaderTexts(row int) []string {
	cells := g.Row(row)
	texts := make([]string, len(cells))
	for i, c := range cells {
		texts[i] = c.Text
	}
	return texts
}
