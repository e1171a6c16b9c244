package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/CoderRdm/Placement-Cell/internal/model"
	"github.com/CoderRdm/Placement-Cell/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 按岗位类型导出全部岗位（含招聘方信息）为 Excel (.xlsx)
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	ExportPostings(ctx context.Context, kind string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger, now: time.Now}
}

// exportColumn 表头与列宽
type exportColumn struct {
	title string
	width float64
	value func(p *model.Posting) interface{}
}

var postingExportColumns = []exportColumn{
	{"Posting ID", 38, func(p *model.Posting) interface{} { return p.PostingID }},
	{"Title", 30, func(p *model.Posting) interface{} { return p.Title }},
	{"Status", 10, func(p *model.Posting) interface{} { return p.Status }},
	{"Location", 18, func(p *model.Posting) interface{} { return p.Location }},
	{"Duration", 12, func(p *model.Posting) interface{} { return derefString(p.Duration) }},
	{"Stipend", 12, func(p *model.Posting) interface{} {
		if p.Stipend == nil {
			return ""
		}
		return *p.Stipend
	}},
	{"Start Date", 12, func(p *model.Posting) interface{} {
		if p.StartDate == nil {
			return ""
		}
		return p.StartDate.Format(time.DateOnly)
	}},
	{"Min CGPA", 10, func(p *model.Posting) interface{} { return p.Requirements.MinCGPA }},
	{"Allowed Branches", 36, func(p *model.Posting) interface{} {
		return strings.Join(p.Requirements.AllowedBranches, ", ")
	}},
	{"Academic Years", 14, func(p *model.Posting) interface{} {
		years := make([]string, 0, len(p.Requirements.AcademicYears))
		for _, y := range p.Requirements.AcademicYears {
			years = append(years, fmt.Sprint(y))
		}
		return strings.Join(years, ", ")
	}},
	{"Company", 24, func(p *model.Posting) interface{} {
		if p.Recruiter == nil {
			return ""
		}
		return p.Recruiter.Company.Name
	}},
	{"Industry", 14, func(p *model.Posting) interface{} {
		if p.Recruiter == nil {
			return ""
		}
		return p.Recruiter.Company.Industry
	}},
	{"Recruiter", 22, func(p *model.Posting) interface{} {
		if p.Recruiter == nil {
			return ""
		}
		return strings.TrimSpace(p.Recruiter.FirstName + " " + p.Recruiter.LastName)
	}},
	{"Recruiter Email", 28, func(p *model.Posting) interface{} {
		if p.Recruiter == nil {
			return ""
		}
		return p.Recruiter.Email
	}},
	{"Created At", 20, func(p *model.Posting) interface{} { return p.CreatedAt.UTC().Format(time.DateTime) }},
}

// ═══════════════════════════════════════════════════════════
// ExportPostings — 导出岗位列表为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单个 Sheet，首行为合并标题，第二行为表头
//   - 数据行按创建时间倒序
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportPostings(ctx context.Context, kind string) (*bytes.Buffer, string, error) {
	postings, err := s.repo.Posting.ListByKind(ctx, kind)
	if err != nil {
		s.logger.Error("查询岗位失败", zap.String("kind", kind), zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := kindLabel(kind) + " Postings"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		s.logger.Error("创建 Sheet 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	for i, col := range postingExportColumns {
		name := colName(i)
		f.SetColWidth(sheetName, name, name, col.width)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	lastCol := colName(len(postingExportColumns) - 1)
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s Postings (%d)", kindLabel(kind), len(postings)))
	f.MergeCell(sheetName, "A1", cell(lastCol, 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	for i, col := range postingExportColumns {
		f.SetCellValue(sheetName, cell(colName(i), 2), col.title)
	}
	f.SetCellStyle(sheetName, "A2", cell(lastCol, 2), headerStyle)

	// 数据行
	row := 3
	for i := range postings {
		for j, col := range postingExportColumns {
			f.SetCellValue(sheetName, cell(colName(j), row), col.value(&postings[i]))
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("%s-postings_%s.xlsx", kind, s.now().UTC().Format("20060102"))
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// kindLabel internship → Internship
func kindLabel(kind string) string {
	if kind == "" {
		return ""
	}
	return strings.ToUpper(kind[:1]) + kind[1:]
}
