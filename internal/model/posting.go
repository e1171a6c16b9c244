package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Requirements 任职要求（内嵌于岗位）
type Requirements struct {
	MinCGPA                float64        `gorm:"column:min_cgpa;type:numeric(4,2);not null" json:"min_cgpa"`
	AllowedBranches        pq.StringArray `gorm:"type:text[];not null"                       json:"allowed_branches"`
	AcademicYears          pq.Int64Array  `gorm:"type:integer[];not null"                    json:"academic_years"`
	AllowedDegrees         pq.StringArray `gorm:"type:text[];not null;default:'{}'"          json:"allowed_degrees"`
	AllowedSpecializations pq.StringArray `gorm:"type:text[];not null;default:'{}'"          json:"allowed_specializations"`
	AdditionalRequirements string         `gorm:"type:varchar(500)"                          json:"additional_requirements,omitempty"`
}

// Posting 招聘岗位 — 对应 postings
// 实习与全职共用同一实体，以 kind 区分
type Posting struct {
	PostingID    string       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"posting_id"`
	Kind         string       `gorm:"type:varchar(20);not null"                      json:"kind"` // internship | job
	RecruiterID  string       `gorm:"type:uuid;not null;index"                       json:"recruiter_id"`
	Title        string       `gorm:"type:varchar(100);not null"                     json:"title"`
	Description  string       `gorm:"type:varchar(2000);not null"                    json:"description"`
	Location     string       `gorm:"type:varchar(100);not null"                     json:"location"`
	Duration     *string      `gorm:"type:varchar(20)"                               json:"duration,omitempty"`
	Stipend      *float64     `gorm:"type:numeric(12,2)"                             json:"stipend,omitempty"`
	StartDate    *time.Time   `gorm:"type:date"                                      json:"start_date,omitempty"`
	Status       string       `gorm:"type:varchar(20);not null"                      json:"status"` // draft | active | paused | closed | expired
	Requirements Requirements `gorm:"embedded"                                       json:"requirements"`
	BaseModel

	// 关联
	Recruiter *Recruiter `gorm:"foreignKey:RecruiterID;references:RecruiterID" json:"recruiter,omitempty"`
}

// TableName 指定表名
func (Posting) TableName() string { return "postings" }

// BeforeSave 将 nil 数组归一为空数组，避免写入 NULL
func (p *Posting) BeforeSave(_ *gorm.DB) error {
	p.Requirements.Normalize()
	return nil
}

// Normalize 将 nil 切片替换为空切片
func (r *Requirements) Normalize() {
	if r.AllowedBranches == nil {
		r.AllowedBranches = pq.StringArray{}
	}
	if r.AcademicYears == nil {
		r.AcademicYears = pq.Int64Array{}
	}
	if r.AllowedDegrees == nil {
		r.AllowedDegrees = pq.StringArray{}
	}
	if r.AllowedSpecializations == nil {
		r.AllowedSpecializations = pq.StringArray{}
	}
}

// YearsArray 将学年列表转换为 integer[] 列值
func YearsArray(years []int) pq.Int64Array {
	if years == nil {
		return nil
	}
	arr := make(pq.Int64Array, len(years))
	for i, y := range years {
		arr[i] = int64(y)
	}
	return arr
}
