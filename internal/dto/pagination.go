package dto

import "math"

// ── 分页请求 ──

// MaxPage 页码上限，超出时按参数错误处理
const MaxPage = 1_000_000

// PaginationRequest 通用分页参数
type PaginationRequest struct {
	Page  int `form:"page"  binding:"omitempty,min=1,max=1000000"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// GetPage 获取页码（含默认值）
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetLimit 获取每页数量（含默认值）
func (p *PaginationRequest) GetLimit() int {
	if p.Limit <= 0 {
		return 10
	}
	return p.Limit
}

// GetOffset 计算偏移量；乘积溢出时取 math.MaxInt，查询结果为空页
func (p *PaginationRequest) GetOffset() int {
	page, limit := p.GetPage(), p.GetLimit()
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}
