package store

import (
	"fmt"

	"github.com/MindweaveTech/restaurantdaily/internal/parser"
)

// SaveExpenses 批量落库零用金支出
// PCV 没有可靠的自然键（凭证号常缺失），重复导入同一期时整体替换
func (s *Store) SaveExpenses(records []parser.Record, year, month int, storeName string) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM expenses WHERE year = ? AND month = ? AND store = ?`,
		year, month, storeName); err != nil {
		return 0, fmt.Errorf("failed to clear expenses: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO expenses (date, pcv_number, description, amount, category, store, year, month)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare expense insert: %w", err)
	}
	defer stmt.Close()

	saved := 0
	for _, r := range records {
		if _, err := stmt.Exec(
			ns(r, "date"), ns(r, "pcv_number"), ns(r, "description"),
			nf(r, "amount"), ns(r, "category"), ns(r, "store"),
			ni(r, "year"), ni(r, "month"),
		); err != nil {
			return saved, fmt.Errorf("failed to insert expense: %w", err)
		}
		saved++
	}

	if err := tx.Commit(); err != nil {
		return saved, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return saved, nil
}

// Expense 支出查询结果
type Expense struct {
	Date        *string  `json:"date"`
	PCVNumber   *string  `json:"pcv_number"`
	Description *string  `json:"description"`
	Amount      *float64 `json:"amount"`
	Category    *string  `json:"category"`
	Store       *string  `json:"store"`
	Year        int      `json:"year"`
	Month       int      `json:"month"`
}

// GetExpenses 查询某年月的支出记录
func (s *Store) GetExpenses(year, month int, storeName string) ([]*Expense, error) {
	query := `
		SELECT date, pcv_number, description, amount, category, store, year, month
		FROM expenses WHERE year = ? AND month = ?
	`
	args := []interface{}{year, month}
	if storeName != "" {
		query += " AND store = ?"
		args = append(args, storeName)
	}
	query += " ORDER BY id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var out []*Expense
	for rows.Next() {
		e := &Expense{}
		if err := rows.Scan(&e.Date, &e.PCVNumber, &e.Description, &e.Amount, &e.Category, &e.Store, &e.Year, &e.Month); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
