package exporter

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/MindweaveTech/restaurantdaily/internal/parser"
)

func sampleData() map[string][]parser.Record {
	rate := 40.0
	return map[string][]parser.Record{
		"rate_list": {
			{"product_name": "Coke", "category": "beverage", "rate": &rate, "year": 2025, "month": 6},
			{"product_name": "Mayo", "category": "sauce", "rate": nil, "year": 2025, "month": 6},
		},
		"pnl": {},
	}
}

func TestSaveJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	paths, err := SaveJSON(dir, sampleData())
	if err != nil {
		t.Fatalf("save json: %v", err)
	}
	// 空类型不产出文件
	if len(paths) != 1 {
		t.Fatalf("path count want 1 got %d", len(paths))
	}

	buf, err := os.ReadFile(filepath.Join(dir, "rate_list.json"))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var records []map[string]interface{}
	if err := json.Unmarshal(buf, &records); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("record count want 2 got %d", len(records))
	}
	if records[0]["product_name"] != "Coke" {
		t.Fatalf("unexpected first record: %+v", records[0])
	}
}

func TestSaveCSV(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	paths, err := SaveCSV(dir, sampleData())
	if err != nil {
		t.Fatalf("save csv: %v", err)
	}
	if len(paths) != 1 {
		t.Fatalf("path count want 1 got %d", len(paths))
	}

	f, err := os.Open(filepath.Join(dir, "rate_list.csv"))
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	// 表头 + 两条记录
	if len(rows) != 3 {
		t.Fatalf("row count want 3 got %d", len(rows))
	}
	header := rows[0]
	idx := -1
	for i, h := range header {
		if h == "product_name" {
			idx = i
		}
	}
	if idx < 0 {
		t.Fatalf("product_name column missing: %v", header)
	}
	if rows[1][idx] != "Coke" && rows[2][idx] != "Coke" {
		t.Fatalf("coke row missing: %v", rows)
	}
}
