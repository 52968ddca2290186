package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/MindweaveTech/restaurantdaily/internal/config"
	"github.com/MindweaveTech/restaurantdaily/internal/exporter"
	"github.com/MindweaveTech/restaurantdaily/internal/importer"
	"github.com/MindweaveTech/restaurantdaily/internal/server"
	"github.com/MindweaveTech/restaurantdaily/internal/store"
	"github.com/MindweaveTech/restaurantdaily/internal/util"
)

var (
	port    = flag.Int("port", 0, "服务端口 (覆盖配置文件)")
	devMode = flag.Bool("dev", false, "开发模式")
	dataDir = flag.String("dataDir", "", "数据目录 (覆盖配置文件)")

	importFile = flag.String("file", "", "直接导入指定月报文件后退出（不启动服务）")
	year       = flag.Int("year", 0, "报表年份 (0 时从文件名推断)")
	month      = flag.Int("month", 0, "报表月份 (0 时从文件名推断)")
	storeName  = flag.String("store", "", "门店标识 (覆盖配置文件)")
	format     = flag.String("format", "", "导出格式 json/csv (覆盖配置文件)")
	export     = flag.Bool("export", false, "导入后导出解析数据")
	dryRun     = flag.Bool("dry-run", false, "只解析不落库")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  RestaurantDaily - 餐厅月报解析工具")
	fmt.Println("==========================================")

	// 加载配置
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("加载配置失败，使用默认配置: %v", err)
		cfg = config.DefaultConfig()
	}

	// 命令行参数覆盖配置
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}
	if *storeName != "" {
		cfg.Report.DefaultStore = *storeName
	}
	if *format != "" {
		cfg.Export.Format = *format
	}

	if *importFile != "" {
		if err := runImport(cfg, *importFile); err != nil {
			log.Fatalf("导入失败: %v", err)
		}
		return
	}

	runServer(cfg)
}

// runImport 命令行一次性导入：解析、落库、可选导出
func runImport(cfg *config.AppConfig, filePath string) error {
	resolvedDataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	sqliteStore, err := store.New(config.DBPath(cfg, resolvedDataDir))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer sqliteStore.Close()

	coordinator := importer.NewCoordinator(sqliteStore)

	var report *importer.ImportReport
	for event := range coordinator.Import(importer.ImportOptions{
		FilePath: filePath,
		Year:     *year,
		Month:    *month,
		Store:    cfg.Report.DefaultStore,
		DryRun:   *dryRun,
	}) {
		switch event.Type {
		case "done":
			if r, ok := event.Data.(*importer.ImportReport); ok {
				report = r
			}
			fmt.Printf("[%s] %s\n", event.Type, event.Message)
		case "error", "warning":
			fmt.Fprintf(os.Stderr, "[%s] %s\n", event.Type, event.Message)
		default:
			fmt.Printf("[%s] %s\n", event.Type, event.Message)
		}
	}
	if report == nil {
		return fmt.Errorf("no import report produced")
	}

	fmt.Printf("\n文件: %s  年月: %d-%02d\n", report.Filename, report.Year, report.Month)
	fmt.Printf("Sheet: 共 %d，导入 %d，跳过 %d，记录 %d 条，耗时 %s\n",
		report.TotalSheets, report.ImportedSheets, report.SkippedSheets, report.TotalRecords, report.Duration)
	for _, sheet := range report.Sheets {
		fmt.Printf("  - %-24s %-12s %-8s %d 条\n", sheet.SheetName, sheet.SheetType, sheet.Status, sheet.RecordCount)
	}
	if len(report.Data) > 0 {
		fmt.Println("\n按类型汇总:")
		types := make([]string, 0, len(report.Data))
		for t := range report.Data {
			types = append(types, t)
		}
		sort.Strings(types)
		for _, t := range types {
			fmt.Printf("  %-16s %d 条\n", t, len(report.Data[t]))
		}
	}

	if *export {
		exportDir := cfg.Export.Dir
		if !filepath.IsAbs(exportDir) {
			exportDir = filepath.Join(resolvedDataDir, "exports")
		}
		var files []string
		switch cfg.Export.Format {
		case "csv":
			files, err = exporter.SaveCSV(exportDir, report.Data)
		default:
			files, err = exporter.SaveJSON(exportDir, report.Data)
		}
		if err != nil {
			return fmt.Errorf("failed to export parsed data: %w", err)
		}
		fmt.Printf("\n已导出 %d 个文件:\n", len(files))
		for _, f := range files {
			fmt.Printf("  - %s\n", f)
		}
	}
	return nil
}

// runServer 启动 HTTP 服务
func runServer(cfg *config.AppConfig) {
	srv := server.NewServer(cfg)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	go func() {
		fmt.Printf("服务启动中，监听端口 %d ...\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	if !cfg.Server.DevMode {
		fmt.Printf("正在打开浏览器: %s\n", url)
		if err := util.OpenBrowserWithFallback(url); err != nil {
			fmt.Printf("无法自动打开浏览器，请手动访问: %s\n", url)
		}
	} else {
		fmt.Printf("开发模式: 请访问 %s\n", url)
	}

	fmt.Println("\n按 Ctrl+C 停止服务...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\n正在关闭服务...")
	if err := srv.Close(); err != nil {
		log.Printf("关闭存储失败: %v", err)
	}
}
