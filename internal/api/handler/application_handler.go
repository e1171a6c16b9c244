package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/CoderRdm/Placement-Cell/internal/dto"
	"github.com/CoderRdm/Placement-Cell/internal/service"
	"github.com/CoderRdm/Placement-Cell/pkg/response"
	"github.com/CoderRdm/Placement-Cell/pkg/validation"
)

// ApplicationHandler 投递模块 HTTP 处理器
type ApplicationHandler struct {
	appSvc service.ApplicationService
}

// NewApplicationHandler 创建 ApplicationHandler
func NewApplicationHandler(appSvc service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{appSvc: appSvc}
}

// Apply 学生投递岗位
// POST /R/{kind}-posting/:id/applications
func (h *ApplicationHandler) Apply(c *gin.Context) {
	kind, ok := MustGetPostingKind(c)
	if !ok {
		return
	}

	var req dto.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validation.Messages(err))
		return
	}

	app, err := h.appSvc.Apply(c.Request.Context(), kind, c.Param("id"), &req)
	if err != nil {
		h.handleApplicationError(c, kind, err, "Error creating application")
		return
	}

	response.Created(c, "Application submitted successfully", app)
}

// ListByPosting 获取岗位的投递记录
// GET /R/{kind}-posting/:id/applications
func (h *ApplicationHandler) ListByPosting(c *gin.Context) {
	kind, ok := MustGetPostingKind(c)
	if !ok {
		return
	}

	apps, err := h.appSvc.ListByPosting(c.Request.Context(), kind, c.Param("id"))
	if err != nil {
		h.handleApplicationError(c, kind, err, "Error fetching applications")
		return
	}

	response.OKList(c, apps, len(apps))
}

// ListByStudent 获取学生的投递记录
// GET /Student/students/:student_id/applications
func (h *ApplicationHandler) ListByStudent(c *gin.Context) {
	apps, err := h.appSvc.ListByStudent(c.Request.Context(), c.Param("student_id"))
	if err != nil {
		h.handleApplicationError(c, "", err, "Error fetching applications")
		return
	}

	response.OKList(c, apps, len(apps))
}

// UpdateStatus 更新投递状态
// PUT /R/applications/:id/status
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validation.Messages(err))
		return
	}

	app, err := h.appSvc.UpdateStatus(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleApplicationError(c, "", err, "Error updating application status")
		return
	}

	response.OK(c, "Application status updated successfully", app)
}

func (h *ApplicationHandler) handleApplicationError(c *gin.Context, kind string, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrPostingNotFound):
		label := "Posting"
		if kind != "" {
			label = kindLabel(kind) + " posting"
		}
		response.NotFound(c, label+" not found")
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, "Student not found")
	case errors.Is(err, service.ErrApplicationNotFound):
		response.NotFound(c, "Application not found")
	case errors.Is(err, service.ErrPostingNotOpen):
		response.BadRequest(c, "Posting is not accepting applications")
	case errors.Is(err, service.ErrRecruiterMismatch):
		response.BadRequest(c, service.ErrRecruiterMismatch.Error())
	case errors.Is(err, service.ErrInvalidApplicationStatus):
		response.BadRequest(c, "Invalid status value")
	case errors.Is(err, service.ErrApplicationExists):
		response.Conflict(c, "Student has already applied to this posting")
	default:
		response.InternalError(c, fallback, err)
	}
}
