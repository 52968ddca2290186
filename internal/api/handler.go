package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MindweaveTech/restaurantdaily/internal/store"
)

// Handler REST API 处理器
type Handler struct {
	store        *store.Store
	uploadDir    string
	defaultStore string
}

// NewHandler 创建 API 处理器
func NewHandler(s *store.Store, uploadDir, defaultStore string) *Handler {
	return &Handler{
		store:        s,
		uploadDir:    uploadDir,
		defaultStore: defaultStore,
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 数据导入
	router.POST("/import", h.Import)
	router.POST("/profile", h.Profile)
	router.GET("/imports", h.ListImports)

	// 解析数据查询
	router.GET("/rates", h.GetRates)
	router.GET("/attendance", h.GetAttendance)
	router.GET("/sales/daily", h.GetDailySales)
	router.GET("/expenses", h.GetExpenses)
	router.GET("/pnl", h.GetPnL)
	router.GET("/inventory", h.GetInventory)
	router.GET("/summary", h.GetSummary)
}

// GetStatus 系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "restaurantdaily",
	})
}

// periodQuery 从查询参数取年月与门店；年月缺失或非法返回 false 并已写出 400
func (h *Handler) periodQuery(c *gin.Context) (year, month int, storeName string, ok bool) {
	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year 与 month 查询参数必填且需合法"})
		return 0, 0, "", false
	}
	storeName = c.Query("store")
	if storeName == "" {
		storeName = h.defaultStore
	}
	return year, month, storeName, true
}
