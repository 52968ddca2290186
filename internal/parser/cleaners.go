package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/MindweaveTech/restaurantdaily/internal/grid"
)

// CleanString 清洗文本值
// 空单元格或去空白后为空 → nil
func CleanString(c grid.Cell) *string {
	if c.IsEmpty() {
		return nil
	}
	s := strings.TrimSpace(c.Text)
	if s == "" {
		return nil
	}
	return &s
}

// CleanNumber 清洗数值
// 去除千分位、货币符号和百分号后解析；解析失败返回 nil，从不报错
func CleanNumber(c grid.Cell) *float64 {
	switch c.Kind {
	case grid.KindEmpty, grid.KindDate:
		return nil
	case grid.KindNumber:
		if math.IsNaN(c.Number) || math.IsInf(c.Number, 0) {
			return nil
		}
		v := c.Number
		return &v
	}
	s := strings.TrimSpace(c.Text)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "₹", "")
	s = strings.ReplaceAll(s, "%", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// CleanInt 清洗整数：数值向零截断，nil 透传
func CleanInt(c grid.Cell) *int64 {
	f := CleanNumber(c)
	if f == nil {
		return nil
	}
	i := int64(math.Trunc(*f))
	return &i
}

// CleanDate 清洗日期为 ISO 格式 YYYY-MM-DD
// 日期单元格直接取日历日；文本按 DD/MM/YYYY 解析（两位年份补为 20YY）；
// 都不成立时原样返回文本（兜底，不视为失败）
func CleanDate(c grid.Cell) *string {
	if c.IsEmpty() {
		return nil
	}
	if c.Kind == grid.KindDate {
		s := c.Date.Format("2006-01-02")
		return &s
	}
	raw := strings.TrimSpace(c.Text)
	if raw == "" {
		return nil
	}
	if strings.Contains(raw, "/") {
		parts := strings.Split(raw, "/")
		if len(parts) == 3 {
			d, errD := strconv.Atoi(strings.TrimSpace(parts[0]))
			m, errM := strconv.Atoi(strings.TrimSpace(parts[1]))
			y, errY := strconv.Atoi(strings.TrimSpace(parts[2]))
			if errD == nil && errM == nil && errY == nil {
				if y < 100 {
					y += 2000
				}
				if isoDate, ok := makeDate(y, m, d); ok {
					return &isoDate
				}
			}
		}
	}
	return &raw
}

// makeDate 校验并格式化日历日期
func makeDate(year, month, day int) (string, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date 会自动进位（如 6 月 31 日），进位说明日期非法
	if t.Day() != day || int(t.Month()) != month {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}
