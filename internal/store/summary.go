package store

import "fmt"

// MonthSummary 某年月各类数据的汇总视图
type MonthSummary struct {
	Year            int      `json:"year"`
	Month           int      `json:"month"`
	Store           string   `json:"store,omitempty"`
	IngredientCount int      `json:"ingredient_count"`
	EmployeeCount   int      `json:"employee_count"`
	DailySalesDays  int      `json:"daily_sales_days"`
	ExpenseCount    int      `json:"expense_count"`
	PnLLineCount    int      `json:"pnl_line_count"`
	InventoryCount  int      `json:"inventory_count"`
	TotalNetSales   *float64 `json:"total_net_sales"`
	TotalExpense    *float64 `json:"total_expense"`
}

// GetMonthSummary 汇总某年月的入库情况
func (s *Store) GetMonthSummary(year, month int, storeName string) (*MonthSummary, error) {
	sum := &MonthSummary{Year: year, Month: month, Store: storeName}

	counts := []struct {
		query       string
		storeClause string
		dst         *int
	}{
		{`SELECT COUNT(*) FROM ingredient_prices WHERE year = ? AND month = ?`, " AND store = ?", &sum.IngredientCount},
		{`SELECT COUNT(*) FROM attendance a JOIN employees e ON e.id = a.employee_id WHERE a.year = ? AND a.month = ?`, " AND e.store = ?", &sum.EmployeeCount},
		{`SELECT COUNT(*) FROM daily_sales WHERE year = ? AND month = ?`, " AND store = ?", &sum.DailySalesDays},
		{`SELECT COUNT(*) FROM expenses WHERE year = ? AND month = ?`, " AND store = ?", &sum.ExpenseCount},
		{`SELECT COUNT(*) FROM pnl_lines WHERE year = ? AND month = ?`, " AND store = ?", &sum.PnLLineCount},
		{`SELECT COUNT(*) FROM inventory_items WHERE year = ? AND month = ?`, " AND store = ?", &sum.InventoryCount},
	}
	for _, c := range counts {
		query, args := c.query, []interface{}{year, month}
		if storeName != "" {
			query += c.storeClause
			args = append(args, storeName)
		}
		if err := s.db.QueryRow(query, args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("failed to count: %w", err)
		}
	}

	netQuery := `SELECT SUM(net_sales) FROM daily_sales WHERE year = ? AND month = ?`
	expQuery := `SELECT SUM(amount) FROM expenses WHERE year = ? AND month = ?`
	netArgs := []interface{}{year, month}
	expArgs := []interface{}{year, month}
	if storeName != "" {
		netQuery += " AND store = ?"
		expQuery += " AND store = ?"
		netArgs = append(netArgs, storeName)
		expArgs = append(expArgs, storeName)
	}
	if err := s.db.QueryRow(netQuery, netArgs...).Scan(&sum.TotalNetSales); err != nil {
		return nil, fmt.Errorf("failed to sum net sales: %w", err)
	}
	if err := s.db.QueryRow(expQuery, expArgs...).Scan(&sum.TotalExpense); err != nil {
		return nil, fmt.Errorf("failed to sum expenses: %w", err)
	}
	return sum, nil
}
