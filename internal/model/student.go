package model

import "time"

// Student 学生 — 对应 students
// student_id 为学号（唯一、注册后不可修改），id 为内部主键
type Student struct {
	ID              string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	StudentID       string     `gorm:"type:varchar(50);not null;uniqueIndex"          json:"student_id"`
	Name            string     `gorm:"type:varchar(100);not null"                     json:"name"`
	Year            int        `gorm:"not null"                                       json:"year"`
	Branch          string     `gorm:"type:varchar(100);not null"                     json:"branch"`
	Gender          *string    `gorm:"type:varchar(10)"                               json:"gender,omitempty"`
	TenthScore      *float64   `gorm:"type:numeric(5,2)"                              json:"tenth_score,omitempty"`
	TwelfthScore    *float64   `gorm:"type:numeric(5,2)"                              json:"twelfth_score,omitempty"`
	FatherName      *string    `gorm:"type:varchar(100)"                              json:"father_name,omitempty"`
	CurrentSemester *int       `json:"current_semester,omitempty"`
	DOB             *time.Time `gorm:"column:dob;type:date"                           json:"dob,omitempty"`
	CurrentStatus   bool       `gorm:"not null"                                       json:"current_status"`
	BaseModel

	// 关联
	Addresses      []Address       `gorm:"foreignKey:StudentID;references:ID"                                         json:"addresses"`
	Categories     []Category      `gorm:"many2many:student_categories;joinForeignKey:StudentID;joinReferences:CategoryID" json:"categories"`
	SGPARecords    []SGPARecord    `gorm:"foreignKey:StudentID;references:ID"                                         json:"sgpa_records"`
	CurrentProgram *CurrentProgram `gorm:"foreignKey:StudentID;references:ID"                                         json:"current_program,omitempty"`
}

// TableName 指定表名
func (Student) TableName() string { return "students" }

// Address 学生地址 — 对应 addresses
type Address struct {
	AddressID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"address_id"`
	StudentID string `gorm:"type:uuid;not null;index"                       json:"-"`
	City      string `gorm:"type:varchar(100);not null"                     json:"city"`
	State     string `gorm:"type:varchar(100);not null"                     json:"state"`
	Pincode   string `gorm:"type:varchar(10);not null"                      json:"pincode"`
	BaseModel
}

// TableName 指定表名
func (Address) TableName() string { return "addresses" }

// SGPARecord 学期绩点 — 对应 sgpa_records，(student_id, semester) 唯一
type SGPARecord struct {
	SGPAID      string    `gorm:"column:sgpa_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"sgpa_id"`
	StudentID   string    `gorm:"type:uuid;not null"                                            json:"-"`
	Semester    int       `gorm:"not null"                                                      json:"semester"`
	SGPA        float64   `gorm:"column:sgpa;type:numeric(4,2);not null"                        json:"sgpa"`
	LastUpdated time.Time `gorm:"not null"                                                      json:"last_updated"`
	BaseModel
}

// TableName 指定表名
func (SGPARecord) TableName() string { return "sgpa_records" }

// CurrentProgram 学生当前就读项目 — 对应 current_programs，每个学生至多一条
type CurrentProgram struct {
	CurrentProgramID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"current_program_id"`
	StudentID        string  `gorm:"type:uuid;not null;uniqueIndex"                 json:"-"`
	DegreeID         string  `gorm:"type:uuid;not null"                             json:"degree_id"`
	SpecializationID *string `gorm:"type:uuid"                                      json:"specialization_id,omitempty"`
	BaseModel

	// 关联
	Program        *Degree         `gorm:"foreignKey:DegreeID;references:DegreeID"                 json:"program,omitempty"`
	Specialization *Specialization `gorm:"foreignKey:SpecializationID;references:SpecializationID" json:"specialization,omitempty"`
}

// TableName 指定表名
func (CurrentProgram) TableName() string { return "current_programs" }
