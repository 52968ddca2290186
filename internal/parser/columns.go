package parser

import (
	"regexp"
	"strings"

	"github.com/MindweaveTech/restaurantdaily/internal/grid"
)

// ColumnRule 规范字段与其列名匹配模式
// 模式为不区分大小写的正则（多数是普通子串），按规则表顺序求值
type ColumnRule struct {
	Field    string
	Patterns []string
}

// ColumnMap 规范字段 → 列号；未映射字段缺席
type ColumnMap map[string]int

// MapColumns 将表头各列绑定到规范字段
// 按规则表顺序逐字段扫描列（自左向右），首个命中的未占用列被绑定；
// 字段一经绑定不再改绑，一列最多服务一个字段
func MapColumns(headers []string, rules []ColumnRule) ColumnMap {
	bound := ColumnMap{}
	claimed := make(map[int]bool)
	for _, rule := range rules {
		for idx, h := range headers {
			if claimed[idx] {
				continue
			}
			text := strings.ToLower(strings.TrimSpace(h))
			if text == "" {
				continue
			}
			if MatchAnyPattern(text, rule.Patterns) {
				bound[rule.Field] = idx
				claimed[idx] = true
				break
			}
		}
	}
	return bound
}

// Cell 按规范字段取单元格；字段未映射时返回空单元格
func (m ColumnMap) Cell(g *grid.Grid, row int, field string) grid.Cell {
	idx, ok := m[field]
	if !ok {
		return grid.Empty()
	}
	return g.Cell(row, idx)
}

// MatchPattern 正则匹配，模式非法视为不命中
func MatchPattern(text, pattern string) bool {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(text)
}

// MatchAnyPattern 命中任一模式
func MatchAnyPattern(text string, patterns []string) bool {
	for _, p := range patterns {
		if MatchPattern(text, p) {
			return true
		}
	}
	return false
}

// ContainsAny 包含任一关键词
func ContainsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
