package dto

// ── 学生模块请求 ──

// RegisterStudentRequest 学生注册（含地址、类别、绩点、当前项目）
type RegisterStudentRequest struct {
	StudentID       string  `json:"student_id"       binding:"required,max=50"`
	Name            string  `json:"name"             binding:"required,max=100"`
	Year            Int     `json:"year"             binding:"required,min=1,max=5"`
	Branch          string  `json:"branch"           binding:"required,max=100"`
	Gender          string  `json:"gender"           binding:"omitempty,gender"`
	TenthScore      *Number `json:"tenth_score"      binding:"omitempty,gte=0,lte=100"`
	TwelfthScore    *Number `json:"twelfth_score"    binding:"omitempty,gte=0,lte=100"`
	FatherName      string  `json:"father_name"      binding:"omitempty,max=100"`
	CurrentSemester *Int    `json:"current_semester" binding:"omitempty,min=1,max=10"`
	DOB             *Date   `json:"dob"`
	CurrentStatus   *bool   `json:"current_status"` // 缺省为 true

	Addresses      []AddressInput       `json:"addresses"      binding:"omitempty,dive"`
	Categories     StringList           `json:"categories"     binding:"omitempty,dive,min=1,max=50"` // id 或名称
	SGPARecords    []SGPAInput          `json:"sgpa_records"   binding:"omitempty,dive"`
	CurrentProgram *CurrentProgramInput `json:"current_program"`
}

// AddressInput 地址
type AddressInput struct {
	City    string `json:"city"    binding:"required,max=100"`
	State   string `json:"state"   binding:"required,max=100"`
	Pincode string `json:"pincode" binding:"required,max=10"`
}

// SGPAInput 学期绩点
type SGPAInput struct {
	SGPA        *Number `json:"sgpa"         binding:"required,gte=0,lte=10"`
	Semester    Int     `json:"semester"     binding:"required,min=1,max=10"`
	LastUpdated *Date   `json:"last_updated"`
}

// CurrentProgramInput 当前项目：program 为学位 id 或名称，specialization 为专业 id、名称或代码
type CurrentProgramInput struct {
	Program        string `json:"program"        binding:"required,max=100"`
	Specialization string `json:"specialization" binding:"omitempty,max=100"`
}

// ── 种子数据响应 ──

// SeedResponse 重置参考数据结果
type SeedResponse struct {
	Categories      int            `json:"categories"`
	Degrees         int            `json:"degrees"`
	Specializations int            `json:"specializations"`
	SampleData      SeedSampleData `json:"sample_data"`
}

// SeedSampleData 种子数据摘要
type SeedSampleData struct {
	Categories      []SeedItem `json:"categories"`
	Degrees         []SeedItem `json:"degrees"`
	Specializations []SeedItem `json:"specializations"`
}

// SeedItem 单条种子数据摘要
type SeedItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
	Code string `json:"code,omitempty"`
}
