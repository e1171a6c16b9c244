package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/CoderRdm/Placement-Cell/internal/dto"
	"github.com/CoderRdm/Placement-Cell/internal/model"
	"github.com/CoderRdm/Placement-Cell/internal/repository"
	pkgerrors "github.com/CoderRdm/Placement-Cell/pkg/errors"
)

// ── 学生模块业务错误 ──

var (
	ErrStudentNotFound        = errors.New("学生不存在")
	ErrStudentExists          = errors.New("学号已存在")
	ErrDuplicateSemester      = errors.New("同一学期的绩点记录重复")
	ErrSpecializationMismatch = errors.New("专业方向不属于所选学位")
	ErrUnknownReference       = errors.New("引用的参考数据不存在")
)

// UnknownReferenceError 类别/学位/专业方向未找到，Error() 为可直接返回给客户端的英文消息
type UnknownReferenceError struct {
	Entity string // Category | Program | Specialization
	Value  string
}

func (e *UnknownReferenceError) Error() string {
	switch e.Entity {
	case "Category":
		return fmt.Sprintf("Category '%s' not found. Please provide valid category names or ids.", e.Value)
	case "Program":
		return fmt.Sprintf("Program '%s' not found. Please provide a valid degree name or id.", e.Value)
	default:
		return fmt.Sprintf("%s '%s' not found. Please provide a valid name, code or id.", e.Entity, e.Value)
	}
}

// Is 使 errors.Is(err, ErrUnknownReference) 成立
func (e *UnknownReferenceError) Is(target error) bool {
	return target == ErrUnknownReference
}

// StudentService 学生业务接口
type StudentService interface {
	Register(ctx context.Context, req *dto.RegisterStudentRequest) (*model.Student, error)
	List(ctx context.Context) ([]model.Student, error)
	GetByStudentID(ctx context.Context, studentID string) (*model.Student, error)
}

type studentService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewStudentService 创建 StudentService 实例
func NewStudentService(repo *repository.Repository, logger *zap.Logger) StudentService {
	return &studentService{repo: repo, logger: logger, now: time.Now}
}

// ────────────────────── Register ──────────────────────

func (s *studentService) Register(ctx context.Context, req *dto.RegisterStudentRequest) (*model.Student, error) {
	studentID := strings.TrimSpace(req.StudentID)

	exists, err := s.repo.Student.ExistsByStudentID(ctx, studentID)
	if err != nil {
		s.logger.Error("检查学号失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, ErrStudentExists
	}

	if err := checkSemestersUnique(req.SGPARecords); err != nil {
		return nil, err
	}

	var id string
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		categories, err := resolveCategories(ctx, tx, req.Categories)
		if err != nil {
			return err
		}

		program, err := s.resolveProgram(ctx, tx, req.CurrentProgram)
		if err != nil {
			return err
		}

		student := s.newStudent(req)
		student.StudentID = studentID
		student.Categories = categories
		student.CurrentProgram = program

		if err := tx.Student.Create(ctx, student); err != nil {
			return err
		}
		id = student.ID
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownReference), errors.Is(err, ErrSpecializationMismatch):
			return nil, err
		case pkgerrors.IsUniqueViolation(err):
			if pkgerrors.ConstraintName(err) == "sgpa_records_student_semester_key" {
				return nil, ErrDuplicateSemester
			}
			return nil, ErrStudentExists
		case pkgerrors.IsCheckViolation(err):
			return nil, newConstraintError(err)
		}
		s.logger.Error("注册学生失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}

	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("重新加载学生失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("学生注册成功", zap.String("id", id), zap.String("student_id", studentID))
	return student, nil
}

// ────────────────────── Query ──────────────────────

func (s *studentService) List(ctx context.Context) ([]model.Student, error) {
	students, err := s.repo.Student.List(ctx)
	if err != nil {
		s.logger.Error("列出学生失败", zap.Error(err))
		return nil, err
	}
	if students == nil {
		students = []model.Student{}
	}
	return students, nil
}

func (s *studentService) GetByStudentID(ctx context.Context, studentID string) (*model.Student, error) {
	student, err := s.repo.Student.GetByStudentID(ctx, strings.TrimSpace(studentID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}
	return student, nil
}

// ── 辅助函数 ──

func (s *studentService) newStudent(req *dto.RegisterStudentRequest) *model.Student {
	currentStatus := true
	if req.CurrentStatus != nil {
		currentStatus = *req.CurrentStatus
	}

	student := &model.Student{
		Name:          strings.TrimSpace(req.Name),
		Year:          int(req.Year),
		Branch:        strings.TrimSpace(req.Branch),
		Gender:        dto.StringPtr(req.Gender),
		TenthScore:    req.TenthScore.Float64Ptr(),
		TwelfthScore:  req.TwelfthScore.Float64Ptr(),
		FatherName:    dto.StringPtr(strings.TrimSpace(req.FatherName)),
		DOB:           req.DOB.TimePtr(),
		CurrentStatus: currentStatus,
	}
	if req.CurrentSemester != nil {
		sem := int(*req.CurrentSemester)
		student.CurrentSemester = &sem
	}

	for _, a := range req.Addresses {
		student.Addresses = append(student.Addresses, model.Address{
			City:    strings.TrimSpace(a.City),
			State:   strings.TrimSpace(a.State),
			Pincode: strings.TrimSpace(a.Pincode),
		})
	}

	now := s.now().UTC()
	for _, r := range req.SGPARecords {
		record := model.SGPARecord{
			Semester:    int(r.Semester),
			LastUpdated: now,
		}
		if r.SGPA != nil {
			record.SGPA = float64(*r.SGPA)
		}
		if t := r.LastUpdated.TimePtr(); t != nil {
			record.LastUpdated = *t
		}
		student.SGPARecords = append(student.SGPARecords, record)
	}
	return student
}

// resolveProgram program 按学位 id 或名称解析，specialization 按 id、代码或名称解析且必须属于该学位
func (s *studentService) resolveProgram(ctx context.Context, repo *repository.Repository, in *dto.CurrentProgramInput) (*model.CurrentProgram, error) {
	if in == nil {
		return nil, nil
	}

	ref := strings.TrimSpace(in.Program)
	var degree *model.Degree
	var err error
	if isUUID(ref) {
		degree, err = repo.Reference.GetDegreeByID(ctx, ref)
	} else {
		degree, err = repo.Reference.GetDegreeByName(ctx, ref)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &UnknownReferenceError{Entity: "Program", Value: ref}
		}
		return nil, err
	}

	program := &model.CurrentProgram{DegreeID: degree.DegreeID}

	specRef := strings.TrimSpace(in.Specialization)
	if specRef == "" {
		return program, nil
	}

	var specialization *model.Specialization
	if isUUID(specRef) {
		specialization, err = repo.Reference.GetSpecializationByID(ctx, specRef)
	} else {
		specialization, err = repo.Reference.GetSpecializationByNameOrCode(ctx, specRef)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &UnknownReferenceError{Entity: "Specialization", Value: specRef}
		}
		return nil, err
	}
	if specialization.DegreeID != degree.DegreeID {
		return nil, ErrSpecializationMismatch
	}

	program.SpecializationID = &specialization.SpecializationID
	return program, nil
}

// resolveCategories 按 id 或名称解析类别，重复引用只关联一次
func resolveCategories(ctx context.Context, repo *repository.Repository, refs []string) ([]model.Category, error) {
	if len(refs) == 0 {
		return nil, nil
	}

	seen := make(map[string]struct{}, len(refs))
	categories := make([]model.Category, 0, len(refs))
	for _, raw := range refs {
		ref := strings.TrimSpace(raw)
		if ref == "" {
			continue
		}

		var cat *model.Category
		var err error
		if isUUID(ref) {
			cat, err = repo.Reference.GetCategoryByID(ctx, ref)
		} else {
			cat, err = repo.Reference.GetCategoryByName(ctx, ref)
		}
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &UnknownReferenceError{Entity: "Category", Value: ref}
			}
			return nil, err
		}

		if _, dup := seen[cat.CategoryID]; dup {
			continue
		}
		seen[cat.CategoryID] = struct{}{}
		categories = append(categories, *cat)
	}
	return categories, nil
}

func checkSemestersUnique(records []dto.SGPAInput) error {
	seen := make(map[int]struct{}, len(records))
	for _, r := range records {
		if _, dup := seen[int(r.Semester)]; dup {
			return ErrDuplicateSemester
		}
		seen[int(r.Semester)] = struct{}{}
	}
	return nil
}
