package store

import (
	"fmt"

	"github.com/MindweaveTech/restaurantdaily/internal/parser"
)

// SaveInventory 批量落库库存进销存记录，按（门店, 年月, 品名）覆盖
func (s *Store) SaveInventory(records []parser.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO inventory_items (store, year, month, name, category, sub_category, uom,
			opening_qty, opening_cost, purchase_qty, purchase_cost,
			transfer_in, transfer_out, wastage, closing_qty, closing_cost, consumption)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(store, year, month, name) DO UPDATE SET
			category = excluded.category,
			sub_category = excluded.sub_category,
			uom = excluded.uom,
			opening_qty = excluded.opening_qty,
			opening_cost = excluded.opening_cost,
			purchase_qty = excluded.purchase_qty,
			purchase_cost = excluded.purchase_cost,
			transfer_in = excluded.transfer_in,
			transfer_out = excluded.transfer_out,
			wastage = excluded.wastage,
			closing_qty = excluded.closing_qty,
			closing_cost = excluded.closing_cost,
			consumption = excluded.consumption
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare inventory upsert: %w", err)
	}
	defer stmt.Close()

	saved := 0
	for _, r := range records {
		name, ok := r.Str("name")
		if !ok {
			continue
		}
		if _, err := stmt.Exec(
			ns(r, "store"), ni(r, "year"), ni(r, "month"), name,
			ns(r, "category"), ns(r, "sub_category"), ns(r, "uom"),
			nf(r, "opening_qty"), nf(r, "opening_cost"),
			nf(r, "purchase_qty"), nf(r, "purchase_cost"),
			nf(r, "transfer_in"), nf(r, "transfer_out"), nf(r, "wastage"),
			nf(r, "closing_qty"), nf(r, "closing_cost"), nf(r, "consumption"),
		); err != nil {
			return saved, fmt.Errorf("failed to upsert inventory item %s: %w", name, err)
		}
		saved++
	}

	if err := tx.Commit(); err != nil {
		return saved, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return saved, nil
}

// InventoryItem 库存查询结果
type InventoryItem struct {
	Store       *string  `json:"store"`
	Year        int      `json:"year"`
	Month       int      `json:"month"`
	Name        string   `json:"name"`
	Category    *string  `json:"category"`
	SubCategory *string  `json:"sub_category"`
	UOM         *string  `json:"uom"`
	OpeningQty  *float64 `json:"opening_qty"`
	OpeningCost *float64 `json:"opening_cost"`
	PurchaseQty *float64 `json:"purchase_qty"`
	ClosingQty  *float64 `json:"closing_qty"`
	ClosingCost *float64 `json:"closing_cost"`
	Consumption *float64 `json:"consumption"`
}

// GetInventory 查询某年月的库存记录
func (s *Store) GetInventory(year, month int, storeName string) ([]*InventoryItem, error) {
	query := `
		SELECT store, year, month, name, category, sub_category, uom,
			opening_qty, opening_cost, purchase_qty, closing_qty, closing_cost, consumption
		FROM inventory_items WHERE year = ? AND month = ?
	`
	args := []interface{}{year, month}
	if storeName != "" {
		query += " AND store = ?"
		args = append(args, storeName)
	}
	query += " ORDER BY name"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer rows.Close()

	var out []*InventoryItem
	for rows.Next() {
		it := &InventoryItem{}
		if err := rows.Scan(&it.Store, &it.Year, &it.Month, &it.Name, &it.Category, &it.SubCategory, &it.UOM,
			&it.OpeningQty, &it.OpeningCost, &it.PurchaseQty, &it.ClosingQty, &it.ClosingCost, &it.Consumption); err != nil {
			return nil, fmt.Errorf("failed to scan inventory item: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
