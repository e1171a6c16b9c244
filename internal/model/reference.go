package model

// ── 参考数据（由种子数据初始化） ──

// Degree 学位 — 对应 degrees
type Degree struct {
	DegreeID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"degree_id"`
	Type        string `gorm:"type:varchar(2);not null"                       json:"type"` // UG | PG
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"         json:"name"`
	Description string `gorm:"type:varchar(500)"                              json:"description,omitempty"`
	BaseModel

	// 关联
	Specializations []Specialization `gorm:"foreignKey:DegreeID;references:DegreeID" json:"specializations,omitempty"`
}

// TableName 指定表名
func (Degree) TableName() string { return "degrees" }

// Specialization 专业方向 — 对应 specializations，code 唯一
type Specialization struct {
	SpecializationID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"specialization_id"`
	DegreeID         string `gorm:"type:uuid;not null;index"                       json:"degree_id"`
	Name             string `gorm:"type:varchar(100);not null"                     json:"name"`
	Code             string `gorm:"type:varchar(20);not null;uniqueIndex"          json:"code"`
	Description      string `gorm:"type:varchar(500)"                              json:"description,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Specialization) TableName() string { return "specializations" }

// Category 学生类别 — 对应 categories
type Category struct {
	CategoryID  string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"category_id"`
	Name        string `gorm:"type:varchar(50);not null;uniqueIndex"          json:"name"`
	Description string `gorm:"type:varchar(500)"                              json:"description,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Category) TableName() string { return "categories" }
