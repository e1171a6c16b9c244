package model

import "slices"

// ── 枚举取值（表单选项、输入校验、数据库 CHECK 约束共用同一份定义） ──

// 岗位类型
const (
	PostingKindInternship = "internship"
	PostingKindJob        = "job"
)

// 岗位状态
const (
	PostingStatusDraft   = "draft"
	PostingStatusActive  = "active"
	PostingStatusPaused  = "paused"
	PostingStatusClosed  = "closed"
	PostingStatusExpired = "expired"
)

// 投递状态
const (
	ApplicationStatusPending     = "pending"
	ApplicationStatusUnderReview = "under_review"
	ApplicationStatusShortlisted = "shortlisted"
	ApplicationStatusAccepted    = "accepted"
	ApplicationStatusRejected    = "rejected"
	ApplicationStatusWithdrawn   = "withdrawn"
)

// 学位层次
const (
	DegreeTypeUG = "UG"
	DegreeTypePG = "PG"
)

var (
	PostingKinds = []string{PostingKindInternship, PostingKindJob}

	Industries = []string{
		"Technology", "Finance", "Healthcare", "Manufacturing",
		"Retail", "Education", "Consulting", "Media",
		"Government", "Non-profit", "Other",
	}

	Branches = []string{
		"Computer Science", "Information Technology", "Electronics",
		"Mechanical", "Civil", "Chemical", "Electrical", "Aerospace",
		"Biotechnology", "Mathematics", "Physics", "Other",
	}

	Degrees = []string{"BTech", "MTech", "BCA", "MCA", "BSc", "MSc", "PhD", "Diploma", "MBA"}

	Durations = []string{"1 month", "2 months", "3 months", "4 months", "6 months", "12 months", "Flexible"}

	AcademicYears = []int{1, 2, 3, 4}

	PostingStatuses = []string{
		PostingStatusDraft, PostingStatusActive, PostingStatusPaused,
		PostingStatusClosed, PostingStatusExpired,
	}

	ApplicationStatuses = []string{
		ApplicationStatusPending, ApplicationStatusUnderReview, ApplicationStatusShortlisted,
		ApplicationStatusAccepted, ApplicationStatusRejected, ApplicationStatusWithdrawn,
	}

	Genders = []string{"Male", "Female", "Other"}

	DegreeTypes = []string{DegreeTypeUG, DegreeTypePG}
)

// ValidationEnums 自定义校验标签 → 允许的取值
func ValidationEnums() map[string][]string {
	return map[string][]string{
		"posting_kind":       PostingKinds,
		"industry":           Industries,
		"branch":             Branches,
		"degree":             Degrees,
		"duration":           Durations,
		"posting_status":     PostingStatuses,
		"application_status": ApplicationStatuses,
		"gender":             Genders,
	}
}

// IsValidPostingStatus 校验岗位状态
func IsValidPostingStatus(s string) bool { return slices.Contains(PostingStatuses, s) }

// IsValidApplicationStatus 校验投递状态
func IsValidApplicationStatus(s string) bool { return slices.Contains(ApplicationStatuses, s) }

// IsValidPostingKind 校验岗位类型
func IsValidPostingKind(s string) bool { return slices.Contains(PostingKinds, s) }
