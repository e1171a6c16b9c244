package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/CoderRdm/Placement-Cell/internal/dto"
	"github.com/CoderRdm/Placement-Cell/internal/model"
	"github.com/CoderRdm/Placement-Cell/internal/repository"
	pkgerrors "github.com/CoderRdm/Placement-Cell/pkg/errors"
)

// ── 投递模块业务错误 ──

var (
	ErrApplicationNotFound      = errors.New("投递记录不存在")
	ErrApplicationExists        = errors.New("该学生已投递此岗位")
	ErrPostingNotOpen           = errors.New("岗位未开放投递")
	ErrRecruiterMismatch        = model.ErrRecruiterMismatch
	ErrInvalidApplicationStatus = errors.New("投递状态不合法")
)

// ApplicationService 投递业务接口
type ApplicationService interface {
	// Apply 学生投递岗位；studentRef 可为学生内部 id 或学号
	Apply(ctx context.Context, kind, postingID string, req *dto.CreateApplicationRequest) (*model.Application, error)
	ListByPosting(ctx context.Context, kind, postingID string) ([]model.Application, error)
	ListByStudent(ctx context.Context, studentRef string) ([]model.Application, error)
	UpdateStatus(ctx context.Context, id string, req *dto.UpdateApplicationStatusRequest) (*model.Application, error)
}

type applicationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewApplicationService 创建 ApplicationService 实例
func NewApplicationService(repo *repository.Repository, logger *zap.Logger) ApplicationService {
	return &applicationService{repo: repo, logger: logger}
}

// ────────────────────── Apply ──────────────────────

func (s *applicationService) Apply(ctx context.Context, kind, postingID string, req *dto.CreateApplicationRequest) (*model.Application, error) {
	if !isUUID(postingID) {
		return nil, ErrPostingNotFound
	}

	var app *model.Application
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		posting, err := tx.Posting.GetByID(ctx, kind, postingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostingNotFound
			}
			return err
		}
		if posting.Status != model.PostingStatusActive {
			return ErrPostingNotOpen
		}

		student, err := resolveStudent(ctx, tx, req.StudentID)
		if err != nil {
			return err
		}

		recruiterID := strings.TrimSpace(req.RecruiterID)
		if recruiterID == "" {
			recruiterID = posting.RecruiterID
		}

		candidate := &model.Application{
			PostingID:   posting.PostingID,
			StudentID:   student.ID,
			RecruiterID: recruiterID,
			Status:      model.ApplicationStatusPending,
			AppliedDate: time.Now().UTC(),
			Notes:       strings.TrimSpace(req.Notes),
		}
		// 与 BeforeCreate 钩子相同的校验，提前拦截以免产生无效写入
		if err := model.VerifyApplicationRecruiter(candidate, posting); err != nil {
			return err
		}

		if err := tx.Application.Create(ctx, candidate); err != nil {
			return err
		}
		app = candidate
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrPostingNotFound),
			errors.Is(err, ErrPostingNotOpen),
			errors.Is(err, ErrStudentNotFound),
			errors.Is(err, ErrRecruiterMismatch):
			return nil, err
		case errors.Is(err, model.ErrApplicationPostingMissing), pkgerrors.IsForeignKeyViolation(err):
			return nil, ErrPostingNotFound
		case pkgerrors.IsUniqueViolation(err):
			return nil, ErrApplicationExists
		}
		s.logger.Error("创建投递记录失败", zap.String("posting_id", postingID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("投递成功",
		zap.String("application_id", app.ApplicationID),
		zap.String("posting_id", app.PostingID),
		zap.String("student_id", app.StudentID),
	)
	return app, nil
}

// ────────────────────── List ──────────────────────

func (s *applicationService) ListByPosting(ctx context.Context, kind, postingID string) ([]model.Application, error) {
	if !isUUID(postingID) {
		return nil, ErrPostingNotFound
	}
	if _, err := s.repo.Posting.GetByID(ctx, kind, postingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostingNotFound
		}
		s.logger.Error("查询岗位失败", zap.String("posting_id", postingID), zap.Error(err))
		return nil, err
	}

	apps, err := s.repo.Application.ListByPosting(ctx, postingID)
	if err != nil {
		s.logger.Error("列出岗位投递失败", zap.String("posting_id", postingID), zap.Error(err))
		return nil, err
	}
	return nonNilApplications(apps), nil
}

func (s *applicationService) ListByStudent(ctx context.Context, studentRef string) ([]model.Application, error) {
	student, err := resolveStudent(ctx, s.repo, studentRef)
	if err != nil {
		if !errors.Is(err, ErrStudentNotFound) {
			s.logger.Error("查询学生失败", zap.String("student", studentRef), zap.Error(err))
		}
		return nil, err
	}

	apps, err := s.repo.Application.ListByStudent(ctx, student.ID)
	if err != nil {
		s.logger.Error("列出学生投递失败", zap.String("student", studentRef), zap.Error(err))
		return nil, err
	}
	return nonNilApplications(apps), nil
}

// ────────────────────── UpdateStatus ──────────────────────

func (s *applicationService) UpdateStatus(ctx context.Context, id string, req *dto.UpdateApplicationStatusRequest) (*model.Application, error) {
	if !model.IsValidApplicationStatus(req.Status) {
		return nil, ErrInvalidApplicationStatus
	}
	if !isUUID(id) {
		return nil, ErrApplicationNotFound
	}

	if err := s.repo.Application.UpdateStatus(ctx, id, req.Status, req.Notes); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		s.logger.Error("更新投递状态失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	app, err := s.repo.Application.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		s.logger.Error("查询投递记录失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return app, nil
}

// ── 辅助函数 ──

// resolveStudent 先按内部 id、再按学号查找学生
func resolveStudent(ctx context.Context, repo *repository.Repository, ref string) (*model.Student, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrStudentNotFound
	}

	if isUUID(ref) {
		student, err := repo.Student.GetByID(ctx, ref)
		if err == nil {
			return student, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	student, err := repo.Student.GetByStudentID(ctx, ref)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return student, nil
}

func nonNilApplications(apps []model.Application) []model.Application {
	if apps == nil {
		return []model.Application{}
	}
	return apps
}
