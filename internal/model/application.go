package model

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	// ErrRecruiterMismatch 投递记录的招聘方与岗位的招聘方不一致
	ErrRecruiterMismatch = errors.New("Application recruiter_id must match posting recruiter_id")
	// ErrApplicationPostingMissing 投递的岗位不存在
	ErrApplicationPostingMissing = errors.New("posting not found")
)

// Application 投递记录 — 对应 applications
// (posting_id, student_id) 唯一；recruiter_id 必须等于岗位的 recruiter_id
type Application struct {
	ApplicationID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"application_id"`
	PostingID     string    `gorm:"type:uuid;not null"                             json:"posting_id"`
	StudentID     string    `gorm:"type:uuid;not null"                             json:"student_id"`
	RecruiterID   string    `gorm:"type:uuid;not null"                             json:"recruiter_id"`
	Status        string    `gorm:"type:varchar(20);not null"                      json:"status"` // pending | under_review | shortlisted | accepted | rejected | withdrawn
	AppliedDate   time.Time `gorm:"not null"                                       json:"applied_date"`
	Notes         string    `gorm:"type:varchar(1000)"                             json:"notes,omitempty"`
	BaseModel

	// 关联
	Posting   *Posting   `gorm:"foreignKey:PostingID;references:PostingID"     json:"posting,omitempty"`
	Student   *Student   `gorm:"foreignKey:StudentID;references:ID"            json:"student,omitempty"`
	Recruiter *Recruiter `gorm:"foreignKey:RecruiterID;references:RecruiterID" json:"recruiter,omitempty"`
}

// TableName 指定表名
func (Application) TableName() string { return "applications" }

// VerifyApplicationRecruiter 校验投递记录的招聘方与岗位一致
func VerifyApplicationRecruiter(app *Application, posting *Posting) error {
	if posting == nil {
		return ErrApplicationPostingMissing
	}
	if app.RecruiterID != posting.RecruiterID {
		return ErrRecruiterMismatch
	}
	return nil
}

// BeforeCreate 插入前在同一事务内读取岗位并校验招聘方一致性
// 仅在创建时执行，更新状态不会重新校验
func (a *Application) BeforeCreate(tx *gorm.DB) error {
	var posting Posting
	err := tx.Session(&gorm.Session{NewDB: true}).
		Select("posting_id", "recruiter_id").
		Where("posting_id = ?", a.PostingID).
		Take(&posting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrApplicationPostingMissing
	}
	if err != nil {
		return err
	}
	return VerifyApplicationRecruiter(a, &posting)
}
