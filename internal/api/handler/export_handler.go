package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/CoderRdm/Placement-Cell/internal/service"
	"github.com/CoderRdm/Placement-Cell/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出与日历订阅 HTTP 处理器
type ExportHandler struct {
	exportSvc   service.ExportService
	calendarSvc service.CalendarService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService, calendarSvc service.CalendarService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc, calendarSvc: calendarSvc}
}

// ExportPostings 导出岗位为 Excel
// GET /R/admin/{kind}-postings/export
func (h *ExportHandler) ExportPostings(c *gin.Context) {
	kind, ok := MustGetPostingKind(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportPostings(c.Request.Context(), kind)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// CalendarFeed 岗位开始日期的 iCalendar 订阅
// GET /R/{kind}-postings/calendar.ics
func (h *ExportHandler) CalendarFeed(c *gin.Context) {
	kind, ok := MustGetPostingKind(c)
	if !ok {
		return
	}

	feed, err := h.calendarSvc.PostingsFeed(c.Request.Context(), kind)
	if err != nil {
		response.InternalError(c, "Error generating calendar", err)
		return
	}

	c.Header("Content-Disposition", "inline; filename="+kind+"-postings.ics")
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c, "Error generating export", err)
	default:
		response.InternalError(c, "Error exporting postings", err)
	}
}
