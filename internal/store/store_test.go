package store

import (
	"path/filepath"
	"testing"

	"github.com/MindweaveTech/restaurantdaily/internal/parser"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func fptr(f float64) *float64 { return &f }

func TestSaveRateList_UpsertByNaturalKey(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	records := []parser.Record{
		{"product_name": "Coke", "category": "beverage", "uom": "piece", "rate": fptr(40.0), "store": "GR-01", "year": 2025, "month": 6},
		{"product_name": "Mayo", "category": "sauce", "uom": "kg", "rate": fptr(120.0), "store": "GR-01", "year": 2025, "month": 6},
	}
	if n, err := s.SaveRateList(records); err != nil || n != 2 {
		t.Fatalf("save rate list: n=%d err=%v", n, err)
	}

	// 同名同期重复导入只覆盖，不新增
	records[0]["rate"] = fptr(45.0)
	if _, err := s.SaveRateList(records[:1]); err != nil {
		t.Fatalf("re-save rate list: %v", err)
	}

	prices, err := s.GetIngredientPrices(2025, 6, "GR-01")
	if err != nil {
		t.Fatalf("get prices: %v", err)
	}
	if len(prices) != 2 {
		t.Fatalf("price count want 2 got %d", len(prices))
	}
	if prices[0].Name != "Coke" || prices[0].Rate == nil || *prices[0].Rate != 45.0 {
		t.Fatalf("coke rate should be updated to 45, got %+v", prices[0])
	}
}

func TestSaveAttendance_EmployeeDedupAndDaily(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	employees := []parser.Record{
		{"name": "Ramesh Kumar", "store": "GR-01", "role_title": "Team Member", "year": 2025, "month": 6, "present_days": fptr(26)},
	}
	daily := []parser.Record{
		{"employee_name": "Ramesh Kumar", "date": "2025-06-01", "day": 1, "status": "present", "status_raw": "P", "store": "GR-01"},
		{"employee_name": "Ramesh Kumar", "date": "2025-06-01", "day": 1, "status": "present", "status_raw": "P", "store": "GR-01"},
	}
	if _, err := s.SaveAttendance(employees, daily); err != nil {
		t.Fatalf("save attendance: %v", err)
	}
	// 第二次导入同一员工不得新建
	if _, err := s.SaveAttendance(employees, nil); err != nil {
		t.Fatalf("re-save attendance: %v", err)
	}

	var employeeCount, dailyCount int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM employees`).Scan(&employeeCount); err != nil {
		t.Fatalf("count employees: %v", err)
	}
	if employeeCount != 1 {
		t.Fatalf("employee count want 1 got %d", employeeCount)
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM daily_attendance`).Scan(&dailyCount); err != nil {
		t.Fatalf("count daily: %v", err)
	}
	if dailyCount != 1 {
		t.Fatalf("duplicate daily rows must be ignored, got %d", dailyCount)
	}

	att, err := s.GetAttendance(2025, 6, "GR-01")
	if err != nil {
		t.Fatalf("get attendance: %v", err)
	}
	if len(att) != 1 || att[0].Name != "Ramesh Kumar" {
		t.Fatalf("unexpected attendance result: %+v", att)
	}
}

func TestSaveSales_DailyRowsUpsert(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	records := []parser.Record{
		{"date": "2025-06-01", "store": "GR-01", "day_name": "Sunday", "net_sales": fptr(45000.0), "year": 2025, "month": 6},
		{"date": "2025-06-02", "store": "GR-01", "day_name": "Monday", "net_sales": fptr(32000.0), "year": 2025, "month": 6},
	}
	if n, err := s.SaveSales(records, "daily_rows", 2025, 6, "GR-01"); err != nil || n != 2 {
		t.Fatalf("save daily sales: n=%d err=%v", n, err)
	}
	// 同一天重复导入覆盖
	records[0]["net_sales"] = fptr(46000.0)
	if _, err := s.SaveSales(records[:1], "daily_rows", 2025, 6, "GR-01"); err != nil {
		t.Fatalf("re-save daily sales: %v", err)
	}

	sales, err := s.GetDailySales(2025, 6, "GR-01")
	if err != nil {
		t.Fatalf("get daily sales: %v", err)
	}
	if len(sales) != 2 {
		t.Fatalf("daily sales count want 2 got %d", len(sales))
	}
	if sales[0].NetSales == nil || *sales[0].NetSales != 46000 {
		t.Fatalf("net sales should be updated to 46000, got %+v", sales[0])
	}
}

func TestSaveSales_GenericNotPersisted(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	records := []parser.Record{{"row_index": 0, "col_0": "free text"}}
	n, err := s.SaveSales(records, "generic", 2025, 6, "GR-01")
	if err != nil {
		t.Fatalf("save generic: %v", err)
	}
	if n != 0 {
		t.Fatalf("generic records must not persist, got %d", n)
	}
}

func TestSaveExpensesAndSummary(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	records := []parser.Record{
		{"description": "Electricity Bill", "amount": fptr(1250.0), "category": "utilities", "store": "GR-01", "year": 2025, "month": 6},
		{"description": "Auto fare", "amount": fptr(150.0), "category": "transport", "store": "GR-01", "year": 2025, "month": 6},
	}
	if n, err := s.SaveExpenses(records, 2025, 6, "GR-01"); err != nil || n != 2 {
		t.Fatalf("save expenses: n=%d err=%v", n, err)
	}
	// 重复导入同一期整体替换
	if n, err := s.SaveExpenses(records, 2025, 6, "GR-01"); err != nil || n != 2 {
		t.Fatalf("re-save expenses: n=%d err=%v", n, err)
	}

	expenses, err := s.GetExpenses(2025, 6, "GR-01")
	if err != nil {
		t.Fatalf("get expenses: %v", err)
	}
	if len(expenses) != 2 {
		t.Fatalf("expense count want 2 got %d", len(expenses))
	}

	sum, err := s.GetMonthSummary(2025, 6, "GR-01")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.ExpenseCount != 2 {
		t.Fatalf("summary expense count want 2 got %d", sum.ExpenseCount)
	}
	if sum.TotalExpense == nil || *sum.TotalExpense != 1400 {
		t.Fatalf("summary total expense want 1400 got %v", sum.TotalExpense)
	}
}

func TestSavePnLAndInventory(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	pnl := []parser.Record{
		{"line_item": "Net Sales", "standard_name": "revenue_net_sales", "value": fptr(1000000.0), "store": "GR-01", "year": 2025, "month": 6},
	}
	if n, err := s.SavePnL(pnl); err != nil || n != 1 {
		t.Fatalf("save pnl: n=%d err=%v", n, err)
	}
	lines, err := s.GetPnL(2025, 6, "GR-01")
	if err != nil || len(lines) != 1 {
		t.Fatalf("get pnl: n=%d err=%v", len(lines), err)
	}
	if lines[0].StandardName == nil || *lines[0].StandardName != "revenue_net_sales" {
		t.Fatalf("unexpected pnl line: %+v", lines[0])
	}

	inv := []parser.Record{
		{"name": "Veg Patty", "category": "Frozen", "opening_cost": fptr(100.0), "closing_cost": fptr(150.0), "store": "GR-01", "year": 2025, "month": 6},
	}
	if n, err := s.SaveInventory(inv); err != nil || n != 1 {
		t.Fatalf("save inventory: n=%d err=%v", n, err)
	}
	items, err := s.GetInventory(2025, 6, "GR-01")
	if err != nil || len(items) != 1 {
		t.Fatalf("get inventory: n=%d err=%v", len(items), err)
	}
	if items[0].Name != "Veg Patty" || items[0].OpeningCost == nil || *items[0].OpeningCost != 100 {
		t.Fatalf("unexpected inventory item: %+v", items[0])
	}
}

func TestImportLogLifecycle(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	id, err := s.CreateImportLog("abc-123", "june.xlsx", "/tmp/june.xlsx", 1024, 2025, 6, "GR-01")
	if err != nil {
		t.Fatalf("create import log: %v", err)
	}
	if err := s.FinishImportLog(id, 6, 5, 1, 240, "completed", ""); err != nil {
		t.Fatalf("finish import log: %v", err)
	}

	logs, err := s.ListImportLogs(10)
	if err != nil {
		t.Fatalf("list import logs: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("log count want 1 got %d", len(logs))
	}
	if logs[0].Status != "completed" || logs[0].ImportedSheets != 5 {
		t.Fatalf("unexpected log: %+v", logs[0])
	}
	if logs[0].CompletedAt == nil {
		t.Fatalf("completed_at should be set")
	}
}
