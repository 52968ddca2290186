package importer

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/MindweaveTech/restaurantdaily/internal/store"
)

func writeTestWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Rate-List"); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	rateRows := [][]interface{}{
		{"SNo", "Product", "UOM", "Rate"},
		{1, "Coke", "PC", 40.0},
		{2, "Mayo Sauce", "KG", 120.0},
	}
	for i, row := range rateRows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Rate-List", cell, &row); err != nil {
			t.Fatalf("write rate row: %v", err)
		}
	}

	if _, err := f.NewSheet("Sale Report"); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	saleRows := [][]interface{}{
		{"DATE", "DAY", "Net Sale", "Total Orders"},
		{"01/06/2025", "Sunday", 45000.0, 320},
	}
	for i, row := range saleRows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sale Report", cell, &row); err != nil {
			t.Fatalf("write sale row: %v", err)
		}
	}

	if _, err := f.NewSheet("Cover"); err != nil {
		t.Fatalf("new sheet: %v", err)
	}

	path := filepath.Join(t.TempDir(), "GR Kitchens June 2025.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCoordinator_ImportWorkbook(t *testing.T) {
	t.Parallel()

	path := writeTestWorkbook(t)
	s := newTestStore(t)
	c := NewCoordinator(s)

	report, err := c.ImportSync(ImportOptions{FilePath: path, Store: "GR-01"})
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	// 年月从文件名推断
	if report.Year != 2025 || report.Month != 6 {
		t.Fatalf("period want 2025-06 got %d-%02d", report.Year, report.Month)
	}
	if report.TotalSheets != 3 {
		t.Fatalf("total sheets want 3 got %d", report.TotalSheets)
	}
	if report.ImportedSheets != 2 {
		t.Fatalf("imported sheets want 2 got %d", report.ImportedSheets)
	}
	if report.SkippedSheets != 1 {
		t.Fatalf("skipped sheets want 1 got %d", report.SkippedSheets)
	}
	if report.ImportID == "" {
		t.Fatalf("import id must be set")
	}

	prices, err := s.GetIngredientPrices(2025, 6, "GR-01")
	if err != nil {
		t.Fatalf("get prices: %v", err)
	}
	if len(prices) != 2 {
		t.Fatalf("ingredient prices want 2 got %d", len(prices))
	}

	sales, err := s.GetDailySales(2025, 6, "GR-01")
	if err != nil {
		t.Fatalf("get daily sales: %v", err)
	}
	if len(sales) != 1 {
		t.Fatalf("daily sales want 1 got %d", len(sales))
	}
	if sales[0].NetSales == nil || *sales[0].NetSales != 45000 {
		t.Fatalf("net sales want 45000 got %+v", sales[0])
	}

	logs, err := s.ListImportLogs(10)
	if err != nil {
		t.Fatalf("list logs: %v", err)
	}
	if len(logs) != 1 || logs[0].Status != "completed" {
		t.Fatalf("unexpected import log: %+v", logs)
	}
}

func TestCoordinator_DryRunDoesNotPersist(t *testing.T) {
	t.Parallel()

	path := writeTestWorkbook(t)
	s := newTestStore(t)
	c := NewCoordinator(s)

	report, err := c.ImportSync(ImportOptions{FilePath: path, Store: "GR-01", DryRun: true})
	if err != nil {
		t.Fatalf("dry run import: %v", err)
	}
	if report.ImportedSheets != 2 {
		t.Fatalf("dry run should still parse sheets, got %d", report.ImportedSheets)
	}
	if len(report.Data["rate_list"]) != 2 {
		t.Fatalf("dry run data want 2 rate list records got %d", len(report.Data["rate_list"]))
	}

	prices, err := s.GetIngredientPrices(2025, 6, "GR-01")
	if err != nil {
		t.Fatalf("get prices: %v", err)
	}
	if len(prices) != 0 {
		t.Fatalf("dry run must not persist, got %d prices", len(prices))
	}
	logs, err := s.ListImportLogs(10)
	if err != nil {
		t.Fatalf("list logs: %v", err)
	}
	if len(logs) != 0 {
		t.Fatalf("dry run must not write import log, got %d", len(logs))
	}
}

func TestCoordinator_MissingPeriodFails(t *testing.T) {
	t.Parallel()

	f := excelize.NewFile()
	defer f.Close()
	path := filepath.Join(t.TempDir(), "data.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}

	c := NewCoordinator(newTestStore(t))
	if _, err := c.ImportSync(ImportOptions{FilePath: path, Store: "GR-01"}); err == nil {
		t.Fatalf("import without a resolvable period must fail")
	}
}

func TestCoordinator_ProfileWorkbook(t *testing.T) {
	t.Parallel()

	path := writeTestWorkbook(t)
	c := NewCoordinator(newTestStore(t))

	profile, err := c.ProfileWorkbook(path)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if len(profile.Sheets) != 3 {
		t.Fatalf("sheet count want 3 got %d", len(profile.Sheets))
	}
	byName := make(map[string]SheetProfile)
	for _, sp := range profile.Sheets {
		byName[sp.SheetName] = sp
	}
	if !byName["Rate-List"].Recognized || byName["Rate-List"].SheetType != "rate_list" {
		t.Fatalf("rate list should be recognized: %+v", byName["Rate-List"])
	}
	if byName["Cover"].Recognized {
		t.Fatalf("cover sheet should not be recognized")
	}
	if byName["Rate-List"].RowCount != 3 {
		t.Fatalf("rate list rows want 3 got %d", byName["Rate-List"].RowCount)
	}
}
