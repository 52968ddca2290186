package parser

import (
	"reflect"
	"testing"

	"github.com/MindweaveTech/restaurantdaily/internal/grid"
)

func rateListContext() PeriodContext {
	return PeriodContext{Year: 2025, Month: 6, Store: "GR-01"}
}

func TestRateListParser_CategoriesAndUOM(t *testing.T) {
	t.Parallel()

	g := grid.FromStrings([][]string{
		{"RATE LIST"},
		{"SNo", "Product", "UOM", "Rate"},
		{"1", "Cheese Slice", "kg", "250.0"},
		{"2", "Coke", "pc", "40.0"},
	})

	result := NewRateListParser(rateListContext()).Parse(g)
	if !result.Success {
		t.Fatalf("parse failed: %v", result.Errors)
	}
	if len(result.Data) != 2 {
		t.Fatalf("record count want 2 got %d", len(result.Data))
	}

	first := result.Data[0]
	if cat, _ := first.Str("category"); cat != "other" {
		t.Fatalf("cheese slice category want other got %s", cat)
	}
	if uom, _ := first.Str("uom"); uom != "kg" {
		t.Fatalf("cheese slice uom want kg got %s", uom)
	}

	second := result.Data[1]
	if cat, _ := second.Str("category"); cat != "beverage" {
		t.Fatalf("coke category want beverage got %s", cat)
	}
	if uom, _ := second.Str("uom"); uom != "piece" {
		t.Fatalf("coke uom want piece got %s", uom)
	}
	if rate, _ := second.Float("rate"); rate != 40.0 {
		t.Fatalf("coke rate want 40 got %v", rate)
	}
	if eff, _ := second.Str("effective_date"); eff != "2025-06-01" {
		t.Fatalf("effective_date want 2025-06-01 got %s", eff)
	}
}

func TestRateListParser_SkipsMissingProduct(t *testing.T) {
	t.Parallel()

	g := grid.FromStrings([][]string{
		{"SNo", "Product", "UOM", "Rate"},
		{"1", "", "kg", "250.0"},
		{"2", "Mayo Sauce", "kg", "120"},
	})

	result := NewRateListParser(rateListContext()).Parse(g)
	if len(result.Data) != 1 {
		t.Fatalf("record count want 1 got %d", len(result.Data))
	}
	if len(result.Warnings) == 0 {
		t.Fatalf("skipped row should leave a warning")
	}
	if cat, _ := result.Data[0].Str("category"); cat != "sauce" {
		t.Fatalf("mayo category want sauce got %s", cat)
	}
}

func TestRateListParser_Idempotent(t *testing.T) {
	t.Parallel()

	g := grid.FromStrings([][]string{
		{"SNo", "Product", "UOM", "Rate"},
		{"1", "Coke", "pc", "40"},
		{"2", "Honey", "kg", "300"},
	})

	p := NewRateListParser(rateListContext())
	a := p.Parse(g)
	b := p.Parse(g)
	if !reflect.DeepEqual(a.Data, b.Data) {
		t.Fatalf("parse is not idempotent")
	}
}
