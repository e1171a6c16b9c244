package model

// Company 公司信息（内嵌于招聘方，对应 recruiters.company_* 列）
type Company struct {
	Name        string  `gorm:"type:varchar(200);not null" json:"name"`
	Address     string  `gorm:"type:varchar(500)"          json:"address,omitempty"`
	Website     *string `gorm:"type:varchar(500)"          json:"website,omitempty"`
	Industry    string  `gorm:"type:varchar(30);not null"  json:"industry"`
	Description string  `gorm:"type:varchar(1000)"         json:"description,omitempty"`
}

// Recruiter 招聘方 — 对应 recruiters
// email 唯一，重复提交时按小写 email 复用已有记录
type Recruiter struct {
	RecruiterID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"recruiter_id"`
	FirstName   string  `gorm:"type:varchar(50);not null"                      json:"first_name"`
	LastName    string  `gorm:"type:varchar(50);not null"                      json:"last_name"`
	Email       string  `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	Phone       *string `gorm:"type:varchar(15)"                               json:"phone,omitempty"`
	Company     Company `gorm:"embedded;embeddedPrefix:company_"               json:"company"`
	BaseModel

	// 关联
	Postings []Posting `gorm:"foreignKey:RecruiterID;references:RecruiterID" json:"postings,omitempty"`
}

// TableName 指定表名
func (Recruiter) TableName() string { return "recruiters" }
