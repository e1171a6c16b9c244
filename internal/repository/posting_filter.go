package repository

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// PostingFilter 岗位检索条件，非空字段以 AND 组合
type PostingFilter struct {
	Kind     string   // 岗位类型（由路由决定）
	Status   string   // 为空时按 active 处理
	Location string   // 大小写不敏感的子串匹配
	MinCGPA  *float64 // 岗位最低绩点 <= 给定值
	Branch   string   // 专业在 allowed_branches 中
	Duration string
	Industry string // 招聘方公司所属行业
	Search   string // 标题与描述全文检索
}

// likeEscaper 转义 LIKE 通配符，使用户输入按字面匹配
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Predicate 构建 WHERE 条件
func (f PostingFilter) Predicate() sq.Sqlizer {
	status := f.Status
	if status == "" {
		status = "active"
	}

	cond := sq.And{
		sq.Eq{"postings.status": status},
	}
	if f.Kind != "" {
		cond = append(cond, sq.Eq{"postings.kind": f.Kind})
	}
	if loc := strings.TrimSpace(f.Location); loc != "" {
		cond = append(cond, sq.ILike{"postings.location": "%" + likeEscaper.Replace(loc) + "%"})
	}
	if f.MinCGPA != nil {
		cond = append(cond, sq.LtOrEq{"postings.min_cgpa": *f.MinCGPA})
	}
	if f.Branch != "" {
		cond = append(cond, sq.Expr("? = ANY(postings.allowed_branches)", f.Branch))
	}
	if f.Duration != "" {
		cond = append(cond, sq.Eq{"postings.duration": f.Duration})
	}
	if f.Industry != "" {
		cond = append(cond, sq.Expr(
			"postings.recruiter_id IN (SELECT recruiters.recruiter_id FROM recruiters WHERE recruiters.company_industry = ?)",
			f.Industry,
		))
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		cond = append(cond, sq.Expr(
			"to_tsvector('english', postings.title || ' ' || postings.description) @@ plainto_tsquery('english', ?)",
			q,
		))
	}
	return cond
}

// ToSQL 生成可直接传给 gorm Where 的条件与参数
func (f PostingFilter) ToSQL() (string, []interface{}, error) {
	return f.Predicate().ToSql()
}
