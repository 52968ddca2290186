package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/MindweaveTech/restaurantdaily/internal/grid"
	"github.com/MindweaveTech/restaurantdaily/internal/parser"
	"github.com/MindweaveTech/restaurantdaily/internal/store"
)

// Coordinator 导入协调器：逐 Sheet 分类、解析、落库
type Coordinator struct {
	store    *store.Store
	registry *parser.Registry
}

// NewCoordinator 创建导入协调器
func NewCoordinator(s *store.Store) *Coordinator {
	return &Coordinator{
		store:    s,
		registry: parser.NewRegistry(),
	}
}

// ImportOptions 导入选项
type ImportOptions struct {
	FilePath string
	Year     int    // 0 时从文件名推断
	Month    int    // 0 时从文件名推断
	Store    string // 门店标识
	DryRun   bool   // 只解析不落库
}

// ProgressEvent 进度事件
type ProgressEvent struct {
	Type      string      `json:"type"` // start/info/sheet_start/sheet_done/warning/error/done
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// SheetResult 单个 Sheet 的导入结果
type SheetResult struct {
	SheetName   string           `json:"sheet_name"`
	SheetType   parser.SheetType `json:"sheet_type"`
	Status      string           `json:"status"` // imported/skipped/error
	RecordCount int              `json:"record_count"`
	SavedCount  int              `json:"saved_count"`
	Warnings    []string         `json:"warnings,omitempty"`
	Errors      []string         `json:"errors,omitempty"`
	Duration    time.Duration    `json:"duration"`
}

// ImportReport 整个工作簿的导入报告
type ImportReport struct {
	ImportID       string                     `json:"import_id"`
	Filename       string                     `json:"filename"`
	Year           int                        `json:"year"`
	Month          int                        `json:"month"`
	Store          string                     `json:"store"`
	TotalSheets    int                        `json:"total_sheets"`
	ImportedSheets int                        `json:"imported_sheets"`
	SkippedSheets  int                        `json:"skipped_sheets"`
	TotalRecords   int                        `json:"total_records"`
	Sheets         []SheetResult              `json:"sheets"`
	Data           map[string][]parser.Record `json:"-"`
	Duration       time.Duration              `json:"duration"`
}

// Import 执行导入，返回进度通道；最后一个 done 事件携带 ImportReport
func (c *Coordinator) Import(opts ImportOptions) <-chan ProgressEvent {
	progressChan := make(chan ProgressEvent, 100)

	go func() {
		defer close(progressChan)
		c.doImport(opts, progressChan)
	}()

	return progressChan
}

// ImportSync 同步导入：排空进度通道，返回最终报告
func (c *Coordinator) ImportSync(opts ImportOptions) (*ImportReport, error) {
	var report *ImportReport
	var lastErr string
	for event := range c.Import(opts) {
		switch event.Type {
		case "done":
			if r, ok := event.Data.(*ImportReport); ok {
				report = r
			}
		case "error":
			lastErr = event.Message
		}
	}
	if report == nil {
		return nil, fmt.Errorf("import failed: %s", lastErr)
	}
	return report, nil
}

func (c *Coordinator) doImport(opts ImportOptions, progressChan chan ProgressEvent) {
	startTime := time.Now()

	year, month := opts.Year, opts.Month
	if year == 0 || month == 0 {
		fy, fm := ExtractReportPeriod(opts.FilePath)
		if year == 0 {
			year = fy
		}
		if month == 0 {
			month = fm
		}
	}

	c.sendProgress(progressChan, ProgressEvent{
		Type:    "start",
		Message: "开始导入月报文件",
		Data: map[string]interface{}{
			"filename": filepath.Base(opts.FilePath),
			"year":     year,
			"month":    month,
			"store":    opts.Store,
		},
		Timestamp: time.Now(),
	})

	if year == 0 || month == 0 {
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "error",
			Message:   "无法确定报表年月：文件名未包含年月，且未显式指定",
			Timestamp: time.Now(),
		})
		return
	}

	file, err := excelize.OpenFile(opts.FilePath)
	if err != nil {
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "error",
			Message:   fmt.Sprintf("打开文件失败: %v", err),
			Timestamp: time.Now(),
		})
		return
	}
	defer file.Close()

	report := &ImportReport{
		ImportID: uuid.NewString(),
		Filename: filepath.Base(opts.FilePath),
		Year:     year,
		Month:    month,
		Store:    opts.Store,
		Data:     map[string][]parser.Record{},
	}

	var logID int64
	if !opts.DryRun {
		logID, err = c.store.CreateImportLog(report.ImportID, report.Filename, opts.FilePath, fileSize(opts.FilePath), year, month, opts.Store)
		if err != nil {
			c.sendProgress(progressChan, ProgressEvent{
				Type:      "warning",
				Message:   fmt.Sprintf("写入导入日志失败: %v", err),
				Timestamp: time.Now(),
			})
		}
	}

	ctx := parser.PeriodContext{Year: year, Month: month, Store: opts.Store}
	sheetList := file.GetSheetList()
	report.TotalSheets = len(sheetList)

	c.sendProgress(progressChan, ProgressEvent{
		Type:      "info",
		Message:   fmt.Sprintf("发现 %d 个 Sheet", len(sheetList)),
		Data:      map[string]interface{}{"total_sheets": len(sheetList)},
		Timestamp: time.Now(),
	})

	for _, sheetName := range sheetList {
		result := c.processSheet(file, sheetName, ctx, opts, report, progressChan)
		report.Sheets = append(report.Sheets, result)
		switch result.Status {
		case "imported":
			report.ImportedSheets++
			report.TotalRecords += result.RecordCount
		case "skipped":
			report.SkippedSheets++
		}
	}

	report.Duration = time.Since(startTime)

	if !opts.DryRun && logID > 0 {
		status := "completed"
		if report.ImportedSheets == 0 {
			status = "empty"
		}
		if err := c.store.FinishImportLog(logID, report.TotalSheets, report.ImportedSheets, report.SkippedSheets, report.TotalRecords, status, ""); err != nil {
			c.sendProgress(progressChan, ProgressEvent{
				Type:      "warning",
				Message:   fmt.Sprintf("更新导入日志失败: %v", err),
				Timestamp: time.Now(),
			})
		}
	}

	c.sendProgress(progressChan, ProgressEvent{
		Type:      "done",
		Message:   "导入完成",
		Data:      report,
		Timestamp: time.Now(),
	})
}

// processSheet 处理单个 Sheet
// 单个 Sheet 解析崩溃只标记该 Sheet 为 error，不中断整个工作簿
func (c *Coordinator) processSheet(file *excelize.File, sheetName string, ctx parser.PeriodContext, opts ImportOptions, report *ImportReport, progressChan chan ProgressEvent) (result SheetResult) {
	sheetStart := time.Now()
	result = SheetResult{SheetName: sheetName, SheetType: parser.SheetTypeUnknown}

	defer func() {
		if r := recover(); r != nil {
			result.Status = "error"
			result.Errors = append(result.Errors, fmt.Sprintf("解析崩溃: %v", r))
			result.Duration = time.Since(sheetStart)
		}
	}()

	c.sendProgress(progressChan, ProgressEvent{
		Type:      "sheet_start",
		Message:   fmt.Sprintf("正在解析 Sheet: %s", sheetName),
		Data:      map[string]string{"sheet_name": sheetName},
		Timestamp: time.Now(),
	})

	descriptor, ok := c.registry.Classify(sheetName)
	if !ok {
		result.Status = "skipped"
		result.Duration = time.Since(sheetStart)
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "warning",
			Message:   fmt.Sprintf("无法识别 Sheet: %s，已跳过", sheetName),
			Timestamp: time.Now(),
		})
		return result
	}
	result.SheetType = descriptor.Type

	rows, err := file.GetRows(sheetName)
	if err != nil {
		result.Status = "error"
		result.Errors = append(result.Errors, fmt.Sprintf("读取 Sheet 失败: %v", err))
		result.Duration = time.Since(sheetStart)
		return result
	}

	parseResult := descriptor.New(ctx).Parse(grid.FromStrings(rows))
	result.RecordCount = len(parseResult.Data)
	result.Warnings = parseResult.Warnings
	result.Errors = parseResult.Errors

	report.Data[string(descriptor.Type)] = append(report.Data[string(descriptor.Type)], parseResult.Data...)

	if opts.DryRun {
		result.Status = "imported"
		result.Duration = time.Since(sheetStart)
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "sheet_done",
			Message:   fmt.Sprintf("Sheet \"%s\" 解析成功: %d 条记录（试运行，未落库）", sheetName, result.RecordCount),
			Timestamp: time.Now(),
		})
		return result
	}

	saved, err := c.persist(descriptor.Type, parseResult, ctx)
	if err != nil {
		result.Status = "error"
		result.Errors = append(result.Errors, fmt.Sprintf("落库失败: %v", err))
		result.Duration = time.Since(sheetStart)
		return result
	}
	result.SavedCount = saved
	result.Status = "imported"
	result.Duration = time.Since(sheetStart)

	c.sendProgress(progressChan, ProgressEvent{
		Type:    "sheet_done",
		Message: fmt.Sprintf("Sheet \"%s\" 导入成功: %d 条记录", sheetName, result.RecordCount),
		Data: map[string]interface{}{
			"sheet_name":   sheetName,
			"sheet_type":   descriptor.Type,
			"record_count": result.RecordCount,
		},
		Timestamp: time.Now(),
	})
	return result
}

// persist 按 Sheet 类型分发到对应的落库函数
func (c *Coordinator) persist(sheetType parser.SheetType, result *parser.ParseResult, ctx parser.PeriodContext) (int, error) {
	switch sheetType {
	case parser.SheetTypeRateList:
		return c.store.SaveRateList(result.Data)
	case parser.SheetTypeAttendance:
		daily, _ := result.Metadata["attendance_records"].([]parser.Record)
		return c.store.SaveAttendance(result.Data, daily)
	case parser.SheetTypeSales:
		format, _ := result.Metadata["format_type"].(string)
		return c.store.SaveSales(result.Data, format, ctx.Year, ctx.Month, ctx.Store)
	case parser.SheetTypePCV:
		return c.store.SaveExpenses(result.Data, ctx.Year, ctx.Month, ctx.Store)
	case parser.SheetTypePnL:
		return c.store.SavePnL(result.Data)
	case parser.SheetTypeInventory:
		return c.store.SaveInventory(result.Data)
	}
	return 0, nil
}

// sendProgress 发送进度事件，通道已满时丢弃
func (c *Coordinator) sendProgress(ch chan ProgressEvent, event ProgressEvent) {
	select {
	case ch <- event:
	default:
	}
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
