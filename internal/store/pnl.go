package store

import (
	"fmt"

	"github.com/MindweaveTech/restaurantdaily/internal/parser"
)

// SavePnL 批量落库损益科目行，按（门店, 年月, 科目）覆盖
func (s *Store) SavePnL(records []parser.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO pnl_lines (store, year, month, line_item, standard_name, value)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(store, year, month, line_item) DO UPDATE SET
			standard_name = excluded.standard_name,
			value = excluded.value
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare pnl upsert: %w", err)
	}
	defer stmt.Close()

	saved := 0
	for _, r := range records {
		item, ok := r.Str("line_item")
		if !ok {
			continue
		}
		if _, err := stmt.Exec(
			ns(r, "store"), ni(r, "year"), ni(r, "month"),
			item, ns(r, "standard_name"), nf(r, "value"),
		); err != nil {
			return saved, fmt.Errorf("failed to upsert pnl line %s: %w", item, err)
		}
		saved++
	}

	if err := tx.Commit(); err != nil {
		return saved, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return saved, nil
}

// PnLLine 损益科目查询结果
type PnLLine struct {
	Store        *string  `json:"store"`
	Year         int      `json:"year"`
	Month        int      `json:"month"`
	LineItem     string   `json:"line_item"`
	StandardName *string  `json:"standard_name"`
	Value        *float64 `json:"value"`
}

// GetPnL 查询某年月的损益科目行
func (s *Store) GetPnL(year, month int, storeName string) ([]*PnLLine, error) {
	query := `
		SELECT store, year, month, line_item, standard_name, value
		FROM pnl_lines WHERE year = ? AND month = ?
	`
	args := []interface{}{year, month}
	if storeName != "" {
		query += " AND store = ?"
		args = append(args, storeName)
	}
	query += " ORDER BY id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query pnl lines: %w", err)
	}
	defer rows.Close()

	var out []*PnLLine
	for rows.Next() {
		p := &PnLLine{}
		if err := rows.Scan(&p.Store, &p.Year, &p.Month, &p.LineItem, &p.StandardName, &p.Value); err != nil {
			return nil, fmt.Errorf("failed to scan pnl line: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
