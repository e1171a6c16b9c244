package service

import (
	"errors"
	"strings"

	"github.com/CoderRdm/Placement-Cell/internal/model"
	pkgerrors "github.com/CoderRdm/Placement-Cell/pkg/errors"
)

// constraintMessages 数据库 CHECK 约束 → 字段错误信息
var constraintMessages = map[string]string{
	"recruiters_phone_len":        "phone must be between 10 and 15 characters long",
	"recruiters_website_scheme":   "company_website must be a valid URL starting with http:// or https://",
	"recruiters_industry_enum":    "company_industry must be one of: " + strings.Join(model.Industries, ", "),
	"postings_kind_enum":          "posting_type must be one of: internship, job",
	"postings_title_len":          "title must be between 5 and 100 characters long",
	"postings_description_len":    "description must be between 50 and 2000 characters long",
	"postings_location_len":       "location must be between 2 and 100 characters long",
	"postings_duration_enum":      "duration must be one of: " + strings.Join(model.Durations, ", "),
	"postings_stipend_min":        "stipend must be at least 0",
	"postings_status_enum":        "status must be one of: " + strings.Join(model.PostingStatuses, ", "),
	"postings_min_cgpa_range":     "min_cgpa must be between 0 and 10",
	"postings_branches_not_empty": "allowed_branches must contain at least 1 item(s)",
	"postings_years_not_empty":    "academic_years must contain at least 1 item(s)",
	"postings_years_range":        "academic_years must only contain values between 1 and 4",
	"postings_additional_len":     "additional_requirements must be at most 500 characters long",
	"students_year_range":         "year must be between 1 and 5",
	"students_gender_enum":        "gender must be one of: " + strings.Join(model.Genders, ", "),
	"students_tenth_range":        "tenth_score must be between 0 and 100",
	"students_twelfth_range":      "twelfth_score must be between 0 and 100",
	"students_semester_range":     "current_semester must be between 1 and 10",
	"sgpa_records_semester_range": "sgpa_records.semester must be between 1 and 10",
	"sgpa_records_sgpa_range":     "sgpa_records.sgpa must be between 0 and 10",
	"applications_status_enum":    "status must be one of: " + strings.Join(model.ApplicationStatuses, ", "),
}

// ConstraintError 存储层约束冲突，Messages 逐条说明出错字段
type ConstraintError struct {
	Constraint string
	Messages   []string
}

func (e *ConstraintError) Error() string {
	return ErrConstraintViolation.Error() + ": " + strings.Join(e.Messages, "; ")
}

// Is 使 errors.Is(err, ErrConstraintViolation) 成立
func (e *ConstraintError) Is(target error) bool {
	return target == ErrConstraintViolation
}

// newConstraintError 按约束名或列名生成字段错误信息
func newConstraintError(err error) *ConstraintError {
	name := pkgerrors.ConstraintName(err)
	if msg, ok := constraintMessages[name]; ok {
		return &ConstraintError{Constraint: name, Messages: []string{msg}}
	}
	if col := pkgerrors.ColumnName(err); col != "" {
		return &ConstraintError{Constraint: name, Messages: []string{col + " is required"}}
	}
	if name != "" {
		return &ConstraintError{Constraint: name, Messages: []string{"value violates constraint " + name}}
	}
	return &ConstraintError{Messages: []string{"request contains an invalid value"}}
}

// ConstraintMessages 取出约束冲突的字段错误信息
func ConstraintMessages(err error) []string {
	var ce *ConstraintError
	if errors.As(err, &ce) {
		return ce.Messages
	}
	return []string{"request contains an invalid value"}
}
