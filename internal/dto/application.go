package dto

// ── 投递模块请求 ──

// CreateApplicationRequest 学生投递岗位
// student_id 可为内部 id 或学号；recruiter_id 缺省时取岗位的招聘方
type CreateApplicationRequest struct {
	StudentID   string `json:"student_id"   binding:"required,max=50"`
	RecruiterID string `json:"recruiter_id" binding:"omitempty,uuid"`
	Notes       string `json:"notes"        binding:"omitempty,max=1000"`
}

// UpdateApplicationStatusRequest 更新投递状态
type UpdateApplicationStatusRequest struct {
	Status string  `json:"status" binding:"required,application_status"`
	Notes  *string `json:"notes"  binding:"omitempty,max=1000"`
}
