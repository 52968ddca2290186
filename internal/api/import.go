package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MindweaveTech/restaurantdaily/internal/importer"
)

// Import 导入月报工作簿 (SSE 流式响应)
// POST /api/import  multipart 字段: file, year, month, store, dry_run
func (h *Handler) Import(c *gin.Context) {
	tempFilePath, ok := h.saveUpload(c)
	if !ok {
		return
	}
	defer os.Remove(tempFilePath)

	year, _ := strconv.Atoi(c.PostForm("year"))
	month, _ := strconv.Atoi(c.PostForm("month"))
	storeName := c.PostForm("store")
	if storeName == "" {
		storeName = h.defaultStore
	}
	dryRun := c.PostForm("dry_run") == "true"

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "不支持流式响应"})
		return
	}

	coordinator := importer.NewCoordinator(h.store)
	progressChan := coordinator.Import(importer.ImportOptions{
		FilePath: tempFilePath,
		Year:     year,
		Month:    month,
		Store:    storeName,
		DryRun:   dryRun,
	})

	// SSE 格式: data: {json}\n\n
	for event := range progressChan {
		eventData, err := json.Marshal(event)
		if err != nil {
			continue
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", eventData)
		flusher.Flush()
	}
}

// Profile 探查工作簿结构，不落库
// POST /api/profile  multipart 字段: file
func (h *Handler) Profile(c *gin.Context) {
	tempFilePath, ok := h.saveUpload(c)
	if !ok {
		return
	}
	defer os.Remove(tempFilePath)

	coordinator := importer.NewCoordinator(h.store)
	profile, err := coordinator.ProfileWorkbook(tempFilePath)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// ListImports 导入历史
// GET /api/imports?limit=50
func (h *Handler) ListImports(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	logs, err := h.store.ListImportLogs(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"imports": logs})
}

// saveUpload 将上传文件落到临时目录，文件名用 uuid 防冲突
func (h *Handler) saveUpload(c *gin.Context) (string, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的表单数据"})
		return "", false
	}
	files := form.File["file"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未找到上传文件"})
		return "", false
	}
	uploaded := files[0]

	dir := h.uploadDir
	if dir == "" {
		dir = os.TempDir()
	}
	tempFilePath := filepath.Join(dir, fmt.Sprintf("upload_%s_%s", uuid.NewString(), filepath.Base(uploaded.Filename)))
	if err := c.SaveUploadedFile(uploaded, tempFilePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存文件失败"})
		return "", false
	}
	return tempFilePath, true
}
