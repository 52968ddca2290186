package store

import (
	"fmt"

	"github.com/MindweaveTech/restaurantdaily/internal/parser"
)

// SaveRateList 批量落库单价表记录
// 食材按品名去重，单价按（食材, 门店, 年月）覆盖
func (s *Store) SaveRateList(records []parser.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	upsertIngredient, err := tx.Prepare(`
		INSERT INTO ingredients (name, category, uom) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET category = excluded.category, uom = excluded.uom
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare ingredient upsert: %w", err)
	}
	defer upsertIngredient.Close()

	upsertPrice, err := tx.Prepare(`
		INSERT INTO ingredient_prices (ingredient_id, store, year, month, rate, uom_raw, effective_date)
		VALUES ((SELECT id FROM ingredients WHERE name = ?), ?, ?, ?, ?, ?, ?)
		ON CONFLICT(ingredient_id, store, year, month) DO UPDATE SET
			rate = excluded.rate,
			uom_raw = excluded.uom_raw,
			effective_date = excluded.effective_date
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare price upsert: %w", err)
	}
	defer upsertPrice.Close()

	saved := 0
	for _, r := range records {
		name, ok := r.Str("product_name")
		if !ok {
			continue
		}
		if _, err := upsertIngredient.Exec(name, ns(r, "category"), ns(r, "uom")); err != nil {
			return saved, fmt.Errorf("failed to upsert ingredient %s: %w", name, err)
		}
		if _, err := upsertPrice.Exec(
			name, ns(r, "store"), ni(r, "year"), ni(r, "month"),
			nf(r, "rate"), ns(r, "uom_raw"), ns(r, "effective_date"),
		); err != nil {
			return saved, fmt.Errorf("failed to upsert price for %s: %w", name, err)
		}
		saved++
	}

	if err := tx.Commit(); err != nil {
		return saved, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return saved, nil
}

// IngredientPrice 食材单价查询结果
type IngredientPrice struct {
	Name          string   `json:"name"`
	Category      *string  `json:"category"`
	UOM           *string  `json:"uom"`
	Store         *string  `json:"store"`
	Year          int      `json:"year"`
	Month         int      `json:"month"`
	Rate          *float64 `json:"rate"`
	EffectiveDate *string  `json:"effective_date"`
}

// GetIngredientPrices 查询某年月的食材单价
func (s *Store) GetIngredientPrices(year, month int, storeName string) ([]*IngredientPrice, error) {
	query := `
		SELECT i.name, i.category, i.uom, p.store, p.year, p.month, p.rate, p.effective_date
		FROM ingredient_prices p JOIN ingredients i ON i.id = p.ingredient_id
		WHERE p.year = ? AND p.month = ?
	`
	args := []interface{}{year, month}
	if storeName != "" {
		query += " AND p.store = ?"
		args = append(args, storeName)
	}
	query += " ORDER BY i.name"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ingredient prices: %w", err)
	}
	defer rows.Close()

	var out []*IngredientPrice
	for rows.Next() {
		p := &IngredientPrice{}
		if err := rows.Scan(&p.Name, &p.Category, &p.UOM, &p.Store, &p.Year, &p.Month, &p.Rate, &p.EffectiveDate); err != nil {
			return nil, fmt.Errorf("failed to scan ingredient price: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
