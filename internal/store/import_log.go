package store

import (
	"fmt"
	"time"
)

// CreateImportLog 创建导入日志，返回自增 id
func (s *Store) CreateImportLog(importID, filename, filePath string, fileSize int64, year, month int, storeName string) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO import_logs (import_id, filename, file_path, file_size, year, month, store, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, 'processing')
	`, importID, filename, filePath, fileSize, year, month, storeName)
	if err != nil {
		return 0, fmt.Errorf("failed to create import log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get import log id: %w", err)
	}
	return id, nil
}

// FinishImportLog 完成导入日志更新
func (s *Store) FinishImportLog(id int64, totalSheets, importedSheets, skippedSheets, totalRecords int, status, errorMessage string) error {
	_, err := s.db.Exec(`
		UPDATE import_logs SET
			total_sheets = ?,
			imported_sheets = ?,
			skipped_sheets = ?,
			total_records = ?,
			status = ?,
			error_message = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, totalSheets, importedSheets, skippedSheets, totalRecords, status, errorMessage, id)
	if err != nil {
		return fmt.Errorf("failed to update import log: %w", err)
	}
	return nil
}

// ImportLog 导入日志查询结果
type ImportLog struct {
	ID             int64      `json:"id"`
	ImportID       *string    `json:"import_id"`
	Filename       string     `json:"filename"`
	Year           *int       `json:"year"`
	Month          *int       `json:"month"`
	Store          *string    `json:"store"`
	TotalSheets    int        `json:"total_sheets"`
	ImportedSheets int        `json:"imported_sheets"`
	SkippedSheets  int        `json:"skipped_sheets"`
	TotalRecords   int        `json:"total_records"`
	Status         string     `json:"status"`
	ErrorMessage   *string    `json:"error_message"`
	CreatedAt      time.Time  `json:"created_at"`
	CompletedAt    *time.Time `json:"completed_at"`
}

// ListImportLogs 按时间倒序列出导入日志
func (s *Store) ListImportLogs(limit int) ([]*ImportLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, import_id, filename, year, month, store,
			total_sheets, imported_sheets, skipped_sheets, total_records,
			status, error_message, created_at, completed_at
		FROM import_logs ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query import logs: %w", err)
	}
	defer rows.Close()

	var out []*ImportLog
	for rows.Next() {
		l := &ImportLog{}
		if err := rows.Scan(&l.ID, &l.ImportID, &l.Filename, &l.Year, &l.Month, &l.Store,
			&l.TotalSheets, &l.ImportedSheets, &l.SkippedSheets, &l.TotalRecords,
			&l.Status, &l.ErrorMessage, &l.CreatedAt, &l.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan import log: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
