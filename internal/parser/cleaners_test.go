package parser

import (
	"math"
	"testing"
	"time"

	"github.com/MindweaveTech/restaurantdaily/internal/grid"
)

func TestCleanNumber_CurrencyAndSeparators(t *testing.T) {
	t.Parallel()

	if v := CleanNumber(grid.Text("")); v != nil {
		t.Fatalf("empty want nil got %v", *v)
	}
	if v := CleanNumber(grid.Text("12.5")); v == nil || *v != 12.5 {
		t.Fatalf("12.5 want 12.5 got %v", v)
	}
	if v := CleanNumber(grid.Text("1,250.00")); v == nil || *v != 1250.0 {
		t.Fatalf("1,250.00 want 1250 got %v", v)
	}
	if v := CleanNumber(grid.Text("₹450")); v == nil || *v != 450 {
		t.Fatalf("₹450 want 450 got %v", v)
	}
	if v := CleanNumber(grid.Text("12%")); v == nil || *v != 12 {
		t.Fatalf("12%% want 12 got %v", v)
	}
	if v := CleanNumber(grid.Text("NaN")); v != nil {
		t.Fatalf("NaN want nil got %v", *v)
	}
	if v := CleanNumber(grid.Text("abc")); v != nil {
		t.Fatalf("abc want nil got %v", *v)
	}
}

func TestCleanNumber_NonFiniteNeverLeaks(t *testing.T) {
	t.Parallel()

	// 真实读取路径：原始字符串经 FromValue 推断后再清洗
	for _, raw := range []string{"NaN", "nan", "inf", "Inf", "-Inf"} {
		if v := CleanNumber(grid.FromValue(raw)); v != nil {
			t.Fatalf("%q want nil got %v", raw, *v)
		}
	}
	// 直接构造的数值单元格同样不放行
	if v := CleanNumber(grid.Number(math.NaN())); v != nil {
		t.Fatalf("NaN number cell want nil got %v", *v)
	}
	if v := CleanNumber(grid.Number(math.Inf(1))); v != nil {
		t.Fatalf("+Inf number cell want nil got %v", *v)
	}
	if v := CleanNumber(grid.FromValue("1,250.50")); v == nil || *v != 1250.50 {
		t.Fatalf("1,250.50 via FromValue want 1250.50 got %v", v)
	}
}

func TestCleanInt_TruncatesTowardZero(t *testing.T) {
	t.Parallel()

	if v := CleanInt(grid.Text("12.7")); v == nil || *v != 12 {
		t.Fatalf("12.7 want 12 got %v", v)
	}
	if v := CleanInt(grid.Text("-3.9")); v == nil || *v != -3 {
		t.Fatalf("-3.9 want -3 got %v", v)
	}
	if v := CleanInt(grid.Empty()); v != nil {
		t.Fatalf("empty want nil got %v", *v)
	}
}

func TestCleanString_TrimAndNil(t *testing.T) {
	t.Parallel()

	if v := CleanString(grid.Text("  Coke  ")); v == nil || *v != "Coke" {
		t.Fatalf("want Coke got %v", v)
	}
	if v := CleanString(grid.Text("   ")); v != nil {
		t.Fatalf("blank want nil got %q", *v)
	}
}

func TestCleanDate_Formats(t *testing.T) {
	t.Parallel()

	d := grid.Date(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))
	if v := CleanDate(d); v == nil || *v != "2025-06-15" {
		t.Fatalf("date cell want 2025-06-15 got %v", v)
	}
	if v := CleanDate(grid.Text("15/06/2025")); v == nil || *v != "2025-06-15" {
		t.Fatalf("15/06/2025 want 2025-06-15 got %v", v)
	}
	// 两位年份补为 20YY
	if v := CleanDate(grid.Text("01/02/24")); v == nil || *v != "2024-02-01" {
		t.Fatalf("01/02/24 want 2024-02-01 got %v", v)
	}
	// 无法解析时原样透传
	if v := CleanDate(grid.Text("mid June")); v == nil || *v != "mid June" {
		t.Fatalf("fallback want raw text got %v", v)
	}
	// 非法日历日不透传为 ISO
	if v := CleanDate(grid.Text("31/06/2025")); v == nil || *v != "31/06/2025" {
		t.Fatalf("31/06/2025 want raw text got %v", v)
	}
}
