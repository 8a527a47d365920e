package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shopscope/internal/analyzer"
	"shopscope/internal/report"
	"shopscope/internal/service/excel"
	"shopscope/internal/service/store"
)

// maxUploadSize 上传文件大小上限
const maxUploadSize = 10 * 1024 * 1024

// downloadTTL 导出文件下载链接有效期
const downloadTTL = time.Hour

// Handlers API处理器
type Handlers struct {
	files     *store.MemoryStore
	maxRows   int
	threshold float64
	startedAt time.Time

	downloads *exportDownloadStore
}

// NewHandlers 创建处理器
func NewHandlers(files *store.MemoryStore, maxRows int, growthThreshold float64) *Handlers {
	if maxRows <= 0 {
		maxRows = analyzer.DefaultMaxRows
	}
	if growthThreshold <= 0 {
		growthThreshold = analyzer.DefaultGrowthThreshold
	}
	return &Handlers{
		files:     files,
		maxRows:   maxRows,
		threshold: growthThreshold,
		startedAt: time.Now(),
		downloads: newExportDownloadStore(),
	}
}

// Response 通用响应
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func errorResponse(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
	})
}

// analyzeError 把分析错误映射为响应码
func analyzeError(c *gin.Context, err error) {
	var schemaErr *analyzer.SchemaError
	if errors.As(err, &schemaErr) {
		c.JSON(http.StatusOK, Response{
			Code:    3001,
			Message: schemaErr.Error(),
			Data:    gin.H{"unmatchedRoles": schemaErr.Unmatched},
		})
		return
	}

	var noDataErr *analyzer.NoUsableDataError
	if errors.As(err, &noDataErr) {
		c.JSON(http.StatusOK, Response{
			Code:    3002,
			Message: noDataErr.Error(),
			Data:    gin.H{"diagnostics": noDataErr.Diagnostics},
		})
		return
	}

	var tooLargeErr *analyzer.DatasetTooLargeError
	if errors.As(err, &tooLargeErr) {
		errorResponse(c, 3003, tooLargeErr.Error())
		return
	}

	errorResponse(c, 3000, "分析失败: "+err.Error())
}

// UploadFile 上传Excel文件
// POST /api/upload
func (h *Handlers) UploadFile(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		errorResponse(c, 1001, "请上传文件")
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		errorResponse(c, 1003, "文件过大，最大支持10MB")
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".xlsx" && ext != ".xls" {
		errorResponse(c, 1002, "仅支持 .xlsx 和 .xls 格式")
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		errorResponse(c, 1002, "读取文件失败")
		return
	}

	parser := excel.NewParser()
	if err := parser.LoadFile(bytes.NewReader(content)); err != nil {
		errorResponse(c, 1002, "文件解析失败: "+err.Error())
		return
	}

	sheets, err := parser.GetSheets()
	if err != nil {
		errorResponse(c, 1002, "获取工作表失败")
		return
	}

	fileID := parser.GetFileID()
	h.files.Put(fileID, header.Filename, parser)

	success(c, gin.H{
		"fileId":   fileID,
		"fileName": header.Filename,
		"fileSize": header.Size,
		"sheets":   sheets,
	})
}

// GetSheets 获取工作表列表
// GET /api/files/:fileId/sheets
func (h *Handlers) GetSheets(c *gin.Context) {
	entry, err := h.files.Get(c.Param("fileId"))
	if err != nil {
		errorResponse(c, 2001, "文件不存在或已过期")
		return
	}

	sheets, err := entry.Parser.GetSheets()
	if err != nil {
		errorResponse(c, 2002, "获取工作表失败")
		return
	}

	success(c, gin.H{
		"fileName": entry.FileName,
		"sheets":   sheets,
	})
}

// GetColumns 获取列信息与识别出的列角色
// GET /api/files/:fileId/columns?sheet=
func (h *Handlers) GetColumns(c *gin.Context) {
	entry, err := h.files.Get(c.Param("fileId"))
	if err != nil {
		errorResponse(c, 2001, "文件不存在或已过期")
		return
	}

	sheet := c.Query("sheet")
	if sheet == "" {
		sheet, err = entry.Parser.FirstSheet()
		if err != nil {
			errorResponse(c, 2002, "工作簿没有工作表")
			return
		}
	}

	columns, err := entry.Parser.GetColumns(sheet)
	if err != nil {
		errorResponse(c, 2002, "获取列信息失败")
		return
	}

	previewRows, _ := entry.Parser.GetPreviewRows(sheet, 5)

	// 列角色识别失败不阻塞列浏览，映射置空
	var mapping analyzer.ColumnMapping
	if m, err := analyzer.ResolveColumns(columns); err == nil {
		mapping = m
	}

	success(c, gin.H{
		"columns":     columns,
		"previewRows": previewRows,
		"mapping":     mapping,
	})
}

// Analyze 分析单个工作表
// POST /api/files/:fileId/analyze
func (h *Handlers) Analyze(c *gin.Context) {
	var req struct {
		Sheet string `json:"sheet"`
	}
	// 允许空 body，默认取第一个工作表
	_ = c.ShouldBindJSON(&req)

	result, err := h.analyzeSheet(c.Param("fileId"), req.Sheet)
	if err != nil {
		if errors.Is(err, store.ErrFileNotFound) {
			errorResponse(c, 2001, "文件不存在或已过期")
			return
		}
		analyzeError(c, err)
		return
	}

	success(c, result)
}

// Report 生成文本分析报告
// GET /api/files/:fileId/report?sheet=
func (h *Handlers) Report(c *gin.Context) {
	result, err := h.analyzeSheet(c.Param("fileId"), c.Query("sheet"))
	if err != nil {
		if errors.Is(err, store.ErrFileNotFound) {
			errorResponse(c, 2001, "文件不存在或已过期")
			return
		}
		analyzeError(c, err)
		return
	}

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.String(http.StatusOK, report.Render(result, time.Now()))
}

// Compare 对比两个数据集（通常是相邻两个月）
// POST /api/compare，format 为 text 时返回文本报告
func (h *Handlers) Compare(c *gin.Context) {
	var req struct {
		PriorFileID   string `json:"priorFileId"`
		CurrentFileID string `json:"currentFileId"`
		PriorSheet    string `json:"priorSheet"`
		CurrentSheet  string `json:"currentSheet"`
		Format        string `json:"format"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, 1001, "参数错误")
		return
	}
	if req.PriorFileID == "" || req.CurrentFileID == "" {
		errorResponse(c, 1001, "需要 priorFileId 和 currentFileId")
		return
	}

	prior, err := h.analyzeSheet(req.PriorFileID, req.PriorSheet)
	if err != nil {
		if errors.Is(err, store.ErrFileNotFound) {
			errorResponse(c, 2001, "上月文件不存在或已过期")
			return
		}
		analyzeError(c, err)
		return
	}

	current, err := h.analyzeSheet(req.CurrentFileID, req.CurrentSheet)
	if err != nil {
		if errors.Is(err, store.ErrFileNotFound) {
			errorResponse(c, 2001, "本月文件不存在或已过期")
			return
		}
		analyzeError(c, err)
		return
	}

	cmp := analyzer.Compare(prior, current, analyzer.CompareOptions{
		GrowthThreshold: h.threshold,
	})

	if req.Format == "text" {
		c.Header("Content-Type", "text/plain; charset=utf-8")
		c.String(http.StatusOK, report.RenderComparison(cmp, time.Now()))
		return
	}

	success(c, cmp)
}

// Export 导出分析结果为 Excel
// POST /api/export
func (h *Handlers) Export(c *gin.Context) {
	var req struct {
		FileID      string `json:"fileId"`
		Sheet       string `json:"sheet"`
		PriorFileID string `json:"priorFileId"`
		PriorSheet  string `json:"priorSheet"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, 1001, "参数错误")
		return
	}
	if req.FileID == "" {
		errorResponse(c, 1001, "需要 fileId")
		return
	}

	result, err := h.analyzeSheet(req.FileID, req.Sheet)
	if err != nil {
		if errors.Is(err, store.ErrFileNotFound) {
			errorResponse(c, 2001, "文件不存在或已过期")
			return
		}
		analyzeError(c, err)
		return
	}

	// 可选：带上月文件时附加对比 sheet
	var cmp *analyzer.Comparison
	if req.PriorFileID != "" {
		prior, err := h.analyzeSheet(req.PriorFileID, req.PriorSheet)
		if err != nil {
			if errors.Is(err, store.ErrFileNotFound) {
				errorResponse(c, 2001, "上月文件不存在或已过期")
				return
			}
			analyzeError(c, err)
			return
		}
		cmp = analyzer.Compare(prior, result, analyzer.CompareOptions{
			GrowthThreshold: h.threshold,
		})
	}

	wb, err := excel.WriteResult(result, cmp)
	if err != nil {
		errorResponse(c, 3004, "导出失败")
		return
	}
	defer wb.Close()

	exportID := uuid.New().String()
	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("shopscope_export_%s.xlsx", exportID))
	if err := wb.SaveAs(tmpPath); err != nil {
		errorResponse(c, 3004, "保存失败")
		return
	}

	fileName := fmt.Sprintf("业绩分析_%s.xlsx", time.Now().Format("20060102_150405"))
	token := h.downloads.put(tmpPath, fileName, downloadTTL)

	success(c, gin.H{
		"downloadUrl": "/api/export/download/" + token,
		"fileName":    fileName,
		"expiresAt":   time.Now().Add(downloadTTL).Format(time.RFC3339),
	})
}

// Download 下载导出文件
// GET /api/export/download/:token
func (h *Handlers) Download(c *gin.Context) {
	item, ok := h.downloads.get(c.Param("token"))
	if !ok {
		c.String(http.StatusNotFound, "文件不存在或已过期")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", item.fileName))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.File(item.filePath)
}

// DeleteFile 删除已上传的文件
// DELETE /api/files/:fileId
func (h *Handlers) DeleteFile(c *gin.Context) {
	h.files.Delete(c.Param("fileId"))
	success(c, gin.H{"deleted": true})
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handlers) GetStatus(c *gin.Context) {
	success(c, gin.H{
		"uploadedFiles":   h.files.Count(),
		"maxRows":         h.maxRows,
		"growthThreshold": h.threshold,
		"uptimeSeconds":   int(time.Since(h.startedAt).Seconds()),
	})
}

// RegisterRoutes 注册 API 路由
func (h *Handlers) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/status", h.GetStatus)

	router.POST("/upload", h.UploadFile)
	router.GET("/files/:fileId/sheets", h.GetSheets)
	router.GET("/files/:fileId/columns", h.GetColumns)
	router.POST("/files/:fileId/analyze", h.Analyze)
	router.GET("/files/:fileId/report", h.Report)
	router.DELETE("/files/:fileId", h.DeleteFile)

	router.POST("/compare", h.Compare)

	router.POST("/export", h.Export)
	router.GET("/export/download/:token", h.Download)
}

// analyzeSheet 取出已上传文件并分析指定工作表，sheet 为空时取第一个
func (h *Handlers) analyzeSheet(fileID, sheet string) (*analyzer.Result, error) {
	entry, err := h.files.Get(fileID)
	if err != nil {
		return nil, err
	}

	if sheet == "" {
		sheet, err = entry.Parser.FirstSheet()
		if err != nil {
			return nil, fmt.Errorf("读取工作表失败: %w", err)
		}
	}

	ds, err := entry.Parser.Dataset(sheet)
	if err != nil {
		return nil, fmt.Errorf("读取工作表失败: %w", err)
	}

	return analyzer.Analyze(ds, analyzer.Options{MaxRows: h.maxRows})
}
