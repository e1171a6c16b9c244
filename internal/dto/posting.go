package dto

import "github.com/CoderRdm/Placement-Cell/internal/model"

// ── 岗位模块请求 ──

// PostingFields 岗位内容与任职要求（提交与整体更新共用）
type PostingFields struct {
	Title                  string     `json:"title"                   binding:"required,min=5,max=100"`
	Description            string     `json:"description"             binding:"required,min=50,max=2000"`
	Location               string     `json:"location"                binding:"required,min=2,max=100"`
	Duration               string     `json:"duration"                binding:"omitempty,duration"`
	Stipend                *Number    `json:"stipend"                 binding:"omitempty,gte=0"`
	StartDate              *Date      `json:"start_date"`
	MinCGPA                *Number    `json:"min_cgpa"                binding:"required,gte=0,lte=10"`
	AllowedBranches        StringList `json:"allowed_branches"        binding:"required,min=1,dive,branch"`
	AcademicYears          IntList    `json:"academic_years"          binding:"required,min=1,dive,min=1,max=4"`
	AllowedDegrees         StringList `json:"allowed_degrees"         binding:"omitempty,dive,degree"`
	AllowedSpecializations StringList `json:"allowed_specializations" binding:"omitempty,dive,min=1,max=100"`
	AdditionalRequirements string     `json:"additional_requirements" binding:"omitempty,max=500"`
}

// SubmitPostingRequest 招聘方提交岗位（招聘方 + 公司 + 岗位 + 任职要求）
type SubmitPostingRequest struct {
	PostingType string `json:"posting_type" binding:"omitempty,posting_kind"` // 缺省为 internship

	// 招聘方
	FirstName string `json:"first_name" binding:"required,max=50"`
	LastName  string `json:"last_name"  binding:"required,max=50"`
	Email     string `json:"email"      binding:"required,email,max=255"`
	Phone     string `json:"phone"      binding:"omitempty,min=10,max=15"`

	// 公司
	CompanyName        string `json:"company_name"        binding:"required,max=200"`
	CompanyAddress     string `json:"company_address"     binding:"omitempty,max=500"`
	CompanyWebsite     string `json:"company_website"     binding:"omitempty,http_url,max=500"`
	CompanyIndustry    string `json:"company_industry"    binding:"required,industry"`
	CompanyDescription string `json:"company_description" binding:"omitempty,max=1000"`

	PostingFields
}

// UpdatePostingRequest 整体替换岗位内容与任职要求
type UpdatePostingRequest struct {
	PostingFields
}

// UpdatePostingStatusRequest 更新岗位状态
type UpdatePostingStatusRequest struct {
	Status string `json:"status" binding:"required,posting_status"`
}

// SearchPostingsRequest 岗位检索参数，全部条件以 AND 组合
type SearchPostingsRequest struct {
	Status   string   `form:"status"   binding:"omitempty,posting_status"` // 缺省为 active
	Location string   `form:"location" binding:"omitempty,max=100"`
	MinCGPA  *float64 `form:"min_cgpa" binding:"omitempty,gte=0,lte=10"`
	Branch   string   `form:"branch"   binding:"omitempty,max=100"`
	Duration string   `form:"duration" binding:"omitempty,duration"`
	Industry string   `form:"industry" binding:"omitempty,industry"`
	Search   string   `form:"search"   binding:"omitempty,max=200"`
	PaginationRequest
}

// ── 岗位模块响应 ──

// SubmitPostingResponse 提交成功响应
type SubmitPostingResponse struct {
	RecruiterID string `json:"recruiter_id"`
	PostingID   string `json:"posting_id"`
	PostingType string `json:"posting_type"`
}

// FormOptionsResponse 前端下拉选项
type FormOptionsResponse struct {
	Industries          []string `json:"industries"`
	Branches            []string `json:"branches"`
	Degrees             []string `json:"degrees"`
	Durations           []string `json:"durations"`
	AcademicYears       []int    `json:"academic_years"`
	Statuses            []string `json:"statuses"`
	ApplicationStatuses []string `json:"application_statuses"`
	PostingTypes        []string `json:"posting_types"`
}

// NewFormOptionsResponse 由枚举定义构建表单选项
func NewFormOptionsResponse() FormOptionsResponse {
	return FormOptionsResponse{
		Industries:          model.Industries,
		Branches:            model.Branches,
		Degrees:             model.Degrees,
		Durations:           model.Durations,
		AcademicYears:       model.AcademicYears,
		Statuses:            model.PostingStatuses,
		ApplicationStatuses: model.ApplicationStatuses,
		PostingTypes:        model.PostingKinds,
	}
}
