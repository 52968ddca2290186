package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetRates 某年月的食材单价
// GET /api/rates?year=&month=&store=
func (h *Handler) GetRates(c *gin.Context) {
	year, month, storeName, ok := h.periodQuery(c)
	if !ok {
		return
	}
	prices, err := h.store.GetIngredientPrices(year, month, storeName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rates": prices})
}

// GetAttendance 某年月的员工考勤汇总
// GET /api/attendance?year=&month=&store=
func (h *Handler) GetAttendance(c *gin.Context) {
	year, month, storeName, ok := h.periodQuery(c)
	if !ok {
		return
	}
	attendance, err := h.store.GetAttendance(year, month, storeName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"attendance": attendance})
}

// GetDailySales 某年月的日销售记录
// GET /api/sales/daily?year=&month=&store=
func (h *Handler) GetDailySales(c *gin.Context) {
	year, month, storeName, ok := h.periodQuery(c)
	if !ok {
		return
	}
	sales, err := h.store.GetDailySales(year, month, storeName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sales": sales})
}

// GetExpenses 某年月的零用金支出
// GET /api/expenses?year=&month=&store=
func (h *Handler) GetExpenses(c *gin.Context) {
	year, month, storeName, ok := h.periodQuery(c)
	if !ok {
		return
	}
	expenses, err := h.store.GetExpenses(year, month, storeName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"expenses": expenses})
}

// GetPnL 某年月的损益科目行
// GET /api/pnl?year=&month=&store=
func (h *Handler) GetPnL(c *gin.Context) {
	year, month, storeName, ok := h.periodQuery(c)
	if !ok {
		return
	}
	lines, err := h.store.GetPnL(year, month, storeName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pnl": lines})
}

// GetInventory 某年月的库存记录
// GET /api/inventory?year=&month=&store=
func (h *Handler) GetInventory(c *gin.Context) {
	year, month, storeName, ok := h.periodQuery(c)
	if !ok {
		return
	}
	items, err := h.store.GetInventory(year, month, storeName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"inventory": items})
}

// GetSummary 某年月的入库汇总
// GET /api/summary?year=&month=&store=
func (h *Handler) GetSummary(c *gin.Context) {
	year, month, storeName, ok := h.periodQuery(c)
	if !ok {
		return
	}
	summary, err := h.store.GetMonthSummary(year, month, storeName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}
