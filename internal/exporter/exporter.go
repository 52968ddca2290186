package exporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/MindweaveTech/restaurantdaily/internal/parser"
)

// SaveJSON 将解析数据按类型写为 <type>.json
// 返回写出的文件路径列表
func SaveJSON(dir string, data map[string][]parser.Record) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	var paths []string
	for _, sheetType := range sortedKeys(data) {
		records := data[sheetType]
		if len(records) == 0 {
			continue
		}
		path := filepath.Join(dir, sheetType+".json")
		buf, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return paths, fmt.Errorf("failed to marshal %s: %w", sheetType, err)
		}
		if err := os.WriteFile(path, buf, 0644); err != nil {
			return paths, fmt.Errorf("failed to write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// SaveCSV 将解析数据按类型写为 <type>.csv
// 列序取首条记录的字段序（字段名排序后固定），缺失字段留空
func SaveCSV(dir string, data map[string][]parser.Record) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	var paths []string
	for _, sheetType := range sortedKeys(data) {
		records := data[sheetType]
		if len(records) == 0 {
			continue
		}
		path := filepath.Join(dir, sheetType+".csv")
		if err := writeCSV(path, records); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeCSV(path string, records []parser.Record) error {
	// 汇总所有记录的字段名，排序保证列序稳定
	fieldSet := make(map[string]bool)
	for _, r := range records {
		for k := range r {
			fieldSet[k] = true
		}
	}
	fields := make([]string, 0, len(fieldSet))
	for k := range fieldSet {
		fields = append(fields, k)
	}
	sort.Strings(fields)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(fields); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, r := range records {
		row := make([]string, len(fields))
		for i, field := range fields {
			row[i] = cellString(r[field])
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func cellString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case *string:
		if t == nil {
			return ""
		}
		return *t
	case *float64:
		if t == nil {
			return ""
		}
		return fmt.Sprintf("%v", *t)
	case *int64:
		if t == nil {
			return ""
		}
		return fmt.Sprintf("%d", *t)
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}

func sortedKeys(data map[string][]parser.Record) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
