package parser

import (
	"fmt"
	"time"

	"github.com/MindweaveTech/restaurantdaily/internal/grid"
)

// SheetType Sheet 类型
type SheetType string

const (
	SheetTypeRateList   SheetType = "rate_list"
	SheetTypeAttendance SheetType = "attendance"
	SheetTypeSales      SheetType = "sales"
	SheetTypePCV        SheetType = "pcv"
	SheetTypePnL        SheetType = "pnl"
	SheetTypeInventory  SheetType = "inventory"
	SheetTypeUnknown    SheetType = "unknown"
)

// PeriodContext 解析周期上下文
// 一次 parse 调用产出的所有记录都打上同一份年月与门店
type PeriodContext struct {
	Year  int
	Month int
	Store string
}

// ReportDate 报表月份的第一天
func (p PeriodContext) ReportDate() time.Time {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
}

// Record 一条解析记录：字段名 → 可空标量
type Record map[string]any

// Str 取字符串字段，缺失或为空返回 false
func (r Record) Str(key string) (string, bool) {
	switch v := r[key].(type) {
	case string:
		return v, true
	case *string:
		if v != nil {
			return *v, true
		}
	}
	return "", false
}

// Float 取数值字段，缺失或为空返回 false
func (r Record) Float(key string) (float64, bool) {
	switch v := r[key].(type) {
	case float64:
		return v, true
	case *float64:
		if v != nil {
			return *v, true
		}
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case *int64:
		if v != nil {
			return float64(*v), true
		}
	}
	return 0, false
}

// Int 取整数字段，缺失或为空返回 false
func (r Record) Int(key string) (int64, bool) {
	switch v := r[key].(type) {
	case int64:
		return v, true
	case *int64:
		if v != nil {
			return *v, true
		}
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	case *float64:
		if v != nil {
			return int64(*v), true
		}
	}
	return 0, false
}

// ParseResult 单个 Sheet 的解析结果
type ParseResult struct {
	Success  bool           `json:"success"`
	Data     []Record       `json:"data"`
	Errors   []string       `json:"errors"`
	Warnings []string       `json:"warnings"`
	Metadata map[string]any `json:"metadata"`
}

// newResult 创建带基础元数据的结果
func newResult(ctx PeriodContext, sheetType SheetType) *ParseResult {
	return &ParseResult{
		Success: true,
		Metadata: map[string]any{
			"year":       ctx.Year,
			"month":      ctx.Month,
			"sheet_type": string(sheetType),
			"store":      ctx.Store,
		},
	}
}

// warnf 追加一条警告
func (r *ParseResult) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// errorf 追加一条错误
func (r *ParseResult) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// SheetParser 统一解析接口
// 解析器实例只服务于一个 Sheet 与一个周期，parse 之间不携带状态
type SheetParser interface {
	Parse(g *grid.Grid) *ParseResult
}
