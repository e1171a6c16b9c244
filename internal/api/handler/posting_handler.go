package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/CoderRdm/Placement-Cell/internal/dto"
	"github.com/CoderRdm/Placement-Cell/internal/service"
	"github.com/CoderRdm/Placement-Cell/pkg/response"
	"github.com/CoderRdm/Placement-Cell/pkg/validation"
)

// PostingHandler 岗位模块 HTTP 处理器（internship / job 共用，类型由路由决定）
type PostingHandler struct {
	postingSvc service.PostingService
}

// NewPostingHandler 创建 PostingHandler
func NewPostingHandler(postingSvc service.PostingService) *PostingHandler {
	return &PostingHandler{postingSvc: postingSvc}
}

// Submit 招聘方提交岗位
// POST /R/recruiter/submit
func (h *PostingHandler) Submit(c *gin.Context) {
	var req dto.SubmitPostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validation.Messages(err))
		return
	}

	resp, err := h.postingSvc.Submit(c.Request.Context(), &req)
	if err != nil {
		h.handlePostingError(c, "", err, "Error creating posting")
		return
	}

	response.Created(c, kindLabel(resp.PostingType)+" posting created successfully", resp)
}

// ListPostings 获取某类型全部岗位
// GET /R/admin/{kind}-postings
func (h *PostingHandler) ListPostings(c *gin.Context) {
	kind, ok := MustGetPostingKind(c)
	if !ok {
		return
	}

	postings, err := h.postingSvc.ListByKind(c.Request.Context(), kind)
	if err != nil {
		response.InternalError(c, "Error fetching "+kind+" postings", err)
		return
	}

	response.OKList(c, postings, len(postings))
}

// ListRecruiters 获取全部招聘方
// GET /R/admin/recruiters
func (h *PostingHandler) ListRecruiters(c *gin.Context) {
	recruiters, err := h.postingSvc.ListRecruiters(c.Request.Context())
	if err != nil {
		response.InternalError(c, "Error fetching recruiters", err)
		return
	}

	response.OKList(c, recruiters, len(recruiters))
}

// ListByRecruiter 获取某招聘方的岗位
// GET /R/recruiter/:id/{kind}-postings
func (h *PostingHandler) ListByRecruiter(c *gin.Context) {
	kind, ok := MustGetPostingKind(c)
	if !ok {
		return
	}

	postings, err := h.postingSvc.ListByRecruiter(c.Request.Context(), kind, c.Param("id"))
	if err != nil {
		response.InternalError(c, "Error fetching recruiter "+kind+" postings", err)
		return
	}

	response.OKList(c, postings, len(postings))
}

// GetPosting 获取岗位详情
// GET /R/{kind}-posting/:id
func (h *PostingHandler) GetPosting(c *gin.Context) {
	kind, ok := MustGetPostingKind(c)
	if !ok {
		return
	}

	posting, err := h.postingSvc.GetByID(c.Request.Context(), kind, c.Param("id"))
	if err != nil {
		h.handlePostingError(c, kind, err, "Error fetching "+kind+" posting")
		return
	}

	response.OK(c, "", posting)
}

// UpdateStatus 更新岗位状态
// PUT /R/{kind}-posting/:id/status
func (h *PostingHandler) UpdateStatus(c *gin.Context) {
	kind, ok := MustGetPostingKind(c)
	if !ok {
		return
	}

	var req dto.UpdatePostingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid status value")
		return
	}

	posting, err := h.postingSvc.UpdateStatus(c.Request.Context(), kind, c.Param("id"), req.Status)
	if err != nil {
		h.handlePostingError(c, kind, err, "Error updating "+kind+" posting status")
		return
	}

	response.OK(c, kindLabel(kind)+" posting status updated successfully", posting)
}

// UpdatePosting 整体更新岗位内容
// PUT /R/{kind}-posting/:id
func (h *PostingHandler) UpdatePosting(c *gin.Context) {
	kind, ok := MustGetPostingKind(c)
	if !ok {
		return
	}

	var req dto.UpdatePostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validation.Messages(err))
		return
	}

	posting, err := h.postingSvc.Update(c.Request.Context(), kind, c.Param("id"), &req)
	if err != nil {
		h.handlePostingError(c, kind, err, "Error updating "+kind+" posting")
		return
	}

	response.OK(c, kindLabel(kind)+" posting updated successfully", posting)
}

// DeletePosting 删除岗位
// DELETE /R/{kind}-posting/:id
func (h *PostingHandler) DeletePosting(c *gin.Context) {
	kind, ok := MustGetPostingKind(c)
	if !ok {
		return
	}

	if err := h.postingSvc.Delete(c.Request.Context(), kind, c.Param("id")); err != nil {
		h.handlePostingError(c, kind, err, "Error deleting "+kind+" posting")
		return
	}

	response.OK(c, kindLabel(kind)+" posting deleted successfully", nil)
}

// SearchPostings 条件检索岗位
// GET /R/{kind}-postings/search
func (h *PostingHandler) SearchPostings(c *gin.Context) {
	kind, ok := MustGetPostingKind(c)
	if !ok {
		return
	}

	var req dto.SearchPostingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, validation.Messages(err))
		return
	}

	postings, total, err := h.postingSvc.Search(c.Request.Context(), kind, &req)
	if err != nil {
		response.InternalError(c, "Error searching "+kind+" postings", err)
		return
	}

	response.OKPage(c, postings, total, req.GetPage(), req.GetLimit())
}

// FormOptions 表单下拉选项
// GET /R/form-options
func (h *PostingHandler) FormOptions(c *gin.Context) {
	response.OK(c, "", dto.NewFormOptionsResponse())
}

func (h *PostingHandler) handlePostingError(c *gin.Context, kind string, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrPostingNotFound):
		label := "Posting"
		if kind != "" {
			label = kindLabel(kind) + " posting"
		}
		response.NotFound(c, label+" not found")
	case errors.Is(err, service.ErrInvalidPostingStatus):
		response.BadRequest(c, "Invalid status value")
	case errors.Is(err, service.ErrInvalidPostingKind):
		response.BadRequest(c, "Invalid posting type")
	case errors.Is(err, service.ErrConstraintViolation):
		response.ValidationError(c, service.ConstraintMessages(err))
	default:
		response.InternalError(c, fallback, err)
	}
}
