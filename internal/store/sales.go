package store

import (
	"fmt"
	"strings"

	"github.com/MindweaveTech/restaurantdaily/internal/parser"
)

// SaveSales 批量落库销售记录
// daily_rows 版式按（门店, 日期）覆盖；channel_columns 版式先清空当期品项再插入；
// generic 版式不落库，记录数返回 0 由调用方计为跳过
func (s *Store) SaveSales(records []parser.Record, format string, year, month int, storeName string) (int, error) {
	switch format {
	case "daily_rows":
		return s.saveDailySales(records)
	case "channel_columns":
		return s.saveItemSales(records, year, month, storeName)
	}
	return 0, nil
}

func (s *Store) saveDailySales(records []parser.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO daily_sales (store, date, day_name, net_sales, gross_sales,
			delivery_sales, delivery_orders, dine_in_sales, dine_in_orders,
			takeaway_sales, takeaway_orders, total_orders, basket_per_order, year, month)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(store, date) DO UPDATE SET
			day_name = excluded.day_name,
			net_sales = excluded.net_sales,
			gross_sales = excluded.gross_sales,
			delivery_sales = excluded.delivery_sales,
			delivery_orders = excluded.delivery_orders,
			dine_in_sales = excluded.dine_in_sales,
			dine_in_orders = excluded.dine_in_orders,
			takeaway_sales = excluded.takeaway_sales,
			takeaway_orders = excluded.takeaway_orders,
			total_orders = excluded.total_orders,
			basket_per_order = excluded.basket_per_order
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare daily sales upsert: %w", err)
	}
	defer stmt.Close()

	saved := 0
	for _, r := range records {
		date, ok := r.Str("date")
		if !ok {
			continue
		}
		if _, err := stmt.Exec(
			ns(r, "store"), date, ns(r, "day_name"),
			nf(r, "net_sales"), nf(r, "gross_sales"),
			nf(r, "delivery_sales"), nf(r, "delivery_orders"),
			nf(r, "dine_in_sales"), nf(r, "dine_in_orders"),
			nf(r, "takeaway_sales"), nf(r, "takeaway_orders"),
			nf(r, "total_orders"), nf(r, "basket_per_order"),
			ni(r, "year"), ni(r, "month"),
		); err != nil {
			return saved, fmt.Errorf("failed to upsert daily sales %s: %w", date, err)
		}
		saved++
	}

	if err := tx.Commit(); err != nil {
		return saved, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return saved, nil
}

func (s *Store) saveItemSales(records []parser.Record, year, month int, storeName string) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// 重复导入同一期时整体替换
	if _, err := tx.Exec(`
		DELETE FROM item_sales_channels WHERE item_sale_id IN
			(SELECT id FROM item_sales WHERE year = ? AND month = ? AND store = ?)
	`, year, month, storeName); err != nil {
		return 0, fmt.Errorf("failed to clear item sale channels: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM item_sales WHERE year = ? AND month = ? AND store = ?`,
		year, month, storeName); err != nil {
		return 0, fmt.Errorf("failed to clear item sales: %w", err)
	}

	insertItem, err := tx.Prepare(`
		INSERT INTO item_sales (store, year, month, item, total) VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare item insert: %w", err)
	}
	defer insertItem.Close()

	insertChannel, err := tx.Prepare(`
		INSERT INTO item_sales_channels (item_sale_id, channel, amount) VALUES (?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare channel insert: %w", err)
	}
	defer insertChannel.Close()

	saved := 0
	for _, r := range records {
		item, ok := r.Str("item")
		if !ok {
			continue
		}
		res, err := insertItem.Exec(ns(r, "store"), ni(r, "year"), ni(r, "month"), item, nf(r, "total"))
		if err != nil {
			return saved, fmt.Errorf("failed to insert item sales %s: %w", item, err)
		}
		itemID, err := res.LastInsertId()
		if err != nil {
			return saved, fmt.Errorf("failed to get item sales id: %w", err)
		}
		for key := range r {
			if !strings.HasPrefix(key, "channel_") {
				continue
			}
			if amount, ok := r.Float(key); ok {
				channel := strings.TrimPrefix(key, "channel_")
				if _, err := insertChannel.Exec(itemID, channel, amount); err != nil {
					return saved, fmt.Errorf("failed to insert channel %s for %s: %w", channel, item, err)
				}
			}
		}
		saved++
	}

	if err := tx.Commit(); err != nil {
		return saved, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return saved, nil
}

// DailySale 日销售查询结果
type DailySale struct {
	Store          *string  `json:"store"`
	Date           string   `json:"date"`
	DayName        *string  `json:"day_name"`
	NetSales       *float64 `json:"net_sales"`
	GrossSales     *float64 `json:"gross_sales"`
	DeliverySales  *float64 `json:"delivery_sales"`
	DineInSales    *float64 `json:"dine_in_sales"`
	TakeawaySales  *float64 `json:"takeaway_sales"`
	TotalOrders    *float64 `json:"total_orders"`
	BasketPerOrder *float64 `json:"basket_per_order"`
}

// GetDailySales 查询某年月的日销售记录
func (s *Store) GetDailySales(year, month int, storeName string) ([]*DailySale, error) {
	query := `
		SELECT store, date, day_name, net_sales, gross_sales,
			delivery_sales, dine_in_sales, takeaway_sales, total_orders, basket_per_order
		FROM daily_sales WHERE year = ? AND month = ?
	`
	args := []interface{}{year, month}
	if storeName != "" {
		query += " AND store = ?"
		args = append(args, storeName)
	}
	query += " ORDER BY date"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily sales: %w", err)
	}
	defer rows.Close()

	var out []*DailySale
	for rows.Next() {
		d := &DailySale{}
		if err := rows.Scan(&d.Store, &d.Date, &d.DayName, &d.NetSales, &d.GrossSales,
			&d.DeliverySales, &d.DineInSales, &d.TakeawaySales, &d.TotalOrders, &d.BasketPerOrder); err != nil {
			return nil, fmt.Errorf("failed to scan daily sales: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
