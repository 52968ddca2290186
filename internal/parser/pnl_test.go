package parser

import (
	"testing"

	"github.com/MindweaveTech/restaurantdaily/internal/grid"
)

func TestPnLParser_SummaryAndFoodCost(t *testing.T) {
	t.Parallel()

	g := grid.FromStrings([][]string{
		{"Net Sales", "10,00,000"},
		{"Food Cost", "123456"},
		{"Rent", "80000"},
		{"Misc Line", "500"},
		{"", ""},
		{"EBITDA", "200000"},
	})

	ctx := PeriodContext{Year: 2025, Month: 6, Store: "GR-01"}
	result := NewPnLParser(ctx).Parse(g)

	if len(result.Data) != 5 {
		t.Fatalf("record count want 5 got %d", len(result.Data))
	}

	first := result.Data[0]
	if item, _ := first.Str("line_item"); item != "Net Sales" {
		t.Fatalf("line item mismatch: %s", item)
	}
	if std, _ := first.Str("standard_name"); std != "revenue_net_sales" {
		t.Fatalf("standard name want revenue_net_sales got %s", std)
	}
	if v, _ := first.Float("value"); v != 1000000 {
		t.Fatalf("net sales value want 1000000 got %v", v)
	}

	// 未命中科目表的行保留原标签，standard_name 为空
	if _, ok := result.Data[3].Str("standard_name"); ok {
		t.Fatalf("unmapped line should have nil standard_name")
	}

	summary, ok := result.Metadata["pnl_summary"].(map[string]float64)
	if !ok {
		t.Fatalf("pnl_summary missing")
	}
	if summary["cost_food"] != 123456 {
		t.Fatalf("cost_food want 123456 got %v", summary["cost_food"])
	}
	if summary["profit_ebitda"] != 200000 {
		t.Fatalf("profit_ebitda want 200000 got %v", summary["profit_ebitda"])
	}

	pct, ok := result.Metadata["food_cost_percentage"].(float64)
	if !ok {
		t.Fatalf("food_cost_percentage missing")
	}
	if pct < 12.34 || pct > 12.36 {
		t.Fatalf("food cost pct want ~12.35 got %v", pct)
	}
}

func TestPnLParser_LabelAndValuePositions(t *testing.T) {
	t.Parallel()

	// 标签不在首列、金额带货币符号与千分位
	g := grid.FromStrings([][]string{
		{"", "Gross Profit", "₹1,50,000"},
	})
	ctx := PeriodContext{Year: 2025, Month: 6, Store: "GR-01"}
	result := NewPnLParser(ctx).Parse(g)

	if len(result.Data) != 1 {
		t.Fatalf("record count want 1 got %d", len(result.Data))
	}
	rec := result.Data[0]
	if std, _ := rec.Str("standard_name"); std != "profit_gross" {
		t.Fatalf("want profit_gross got %s", std)
	}
	if v, _ := rec.Float("value"); v != 150000 {
		t.Fatalf("value want 150000 got %v", v)
	}
}

func TestPnLParser_RowWithoutLabelSkipped(t *testing.T) {
	t.Parallel()

	g := grid.FromStrings([][]string{
		{"100", "200"},
		{"Net Profit", "50000"},
	})
	ctx := PeriodContext{Year: 2025, Month: 6, Store: "GR-01"}
	result := NewPnLParser(ctx).Parse(g)

	if len(result.Data) != 1 {
		t.Fatalf("pure numeric row must be skipped, got %d records", len(result.Data))
	}
	if std, _ := result.Data[0].Str("standard_name"); std != "profit_net" {
		t.Fatalf("want profit_net got %s", std)
	}
}
