package importer

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/MindweaveTech/restaurantdaily/internal/parser"
)

// SheetProfile 单个 Sheet 的结构概览
type SheetProfile struct {
	SheetName  string           `json:"sheet_name"`
	SheetType  parser.SheetType `json:"sheet_type"`
	Recognized bool             `json:"recognized"`
	RowCount   int              `json:"row_count"`
	ColCount   int              `json:"col_count"`
	HeaderRow  []string         `json:"header_row,omitempty"`
}

// WorkbookProfile 工作簿结构概览，用于导入前的人工检查
type WorkbookProfile struct {
	Filename string         `json:"filename"`
	Sheets   []SheetProfile `json:"sheets"`
}

// ProfileWorkbook 不落库地探查工作簿结构：每个 Sheet 的尺寸与识别结果
func (c *Coordinator) ProfileWorkbook(filePath string) (*WorkbookProfile, error) {
	file, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer file.Close()

	profile := &WorkbookProfile{Filename: filePath}
	for _, sheetName := range file.GetSheetList() {
		sp := SheetProfile{SheetName: sheetName, SheetType: parser.SheetTypeUnknown}
		if d, ok := c.registry.Classify(sheetName); ok {
			sp.SheetType = d.Type
			sp.Recognized = true
		}

		rows, err := file.GetRows(sheetName)
		if err == nil {
			sp.RowCount = len(rows)
			for _, row := range rows {
				if len(row) > sp.ColCount {
					sp.ColCount = len(row)
				}
			}
			if len(rows) > 0 {
				sp.HeaderRow = rows[0]
			}
		}
		profile.Sheets = append(profile.Sheets, sp)
	}
	return profile, nil
}
