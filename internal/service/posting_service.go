package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/CoderRdm/Placement-Cell/internal/dto"
	"github.com/CoderRdm/Placement-Cell/internal/model"
	"github.com/CoderRdm/Placement-Cell/internal/repository"
	pkgerrors "github.com/CoderRdm/Placement-Cell/pkg/errors"
)

// ── 岗位模块业务错误 ──

var (
	ErrPostingNotFound      = errors.New("岗位不存在")
	ErrInvalidPostingStatus = errors.New("岗位状态不合法")
	ErrInvalidPostingKind   = errors.New("岗位类型不合法")
	ErrConstraintViolation  = errors.New("数据不满足约束条件")
)

// PostingService 岗位业务接口
type PostingService interface {
	// Submit 按 email 创建或复用招聘方，并创建一条 active 岗位
	Submit(ctx context.Context, req *dto.SubmitPostingRequest) (*dto.SubmitPostingResponse, error)
	ListByKind(ctx context.Context, kind string) ([]model.Posting, error)
	ListRecruiters(ctx context.Context) ([]model.Recruiter, error)
	ListByRecruiter(ctx context.Context, kind, recruiterID string) ([]model.Posting, error)
	GetByID(ctx context.Context, kind, id string) (*model.Posting, error)
	UpdateStatus(ctx context.Context, kind, id, status string) (*model.Posting, error)
	Update(ctx context.Context, kind, id string, req *dto.UpdatePostingRequest) (*model.Posting, error)
	Delete(ctx context.Context, kind, id string) error
	// Search 条件检索 + 分页，返回当前页与总数
	Search(ctx context.Context, kind string, req *dto.SearchPostingsRequest) ([]model.Posting, int64, error)
}

type postingService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPostingService 创建 PostingService 实例
func NewPostingService(repo *repository.Repository, logger *zap.Logger) PostingService {
	return &postingService{repo: repo, logger: logger}
}

// ────────────────────── Submit ──────────────────────

func (s *postingService) Submit(ctx context.Context, req *dto.SubmitPostingRequest) (*dto.SubmitPostingResponse, error) {
	kind := req.PostingType
	if kind == "" {
		kind = model.PostingKindInternship
	}
	if !model.IsValidPostingKind(kind) {
		return nil, ErrInvalidPostingKind
	}

	var result dto.SubmitPostingResponse
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		candidate := &model.Recruiter{
			FirstName: strings.TrimSpace(req.FirstName),
			LastName:  strings.TrimSpace(req.LastName),
			Email:     normalizeEmail(req.Email),
			Phone:     dto.StringPtr(req.Phone),
			Company: model.Company{
				Name:        strings.TrimSpace(req.CompanyName),
				Address:     strings.TrimSpace(req.CompanyAddress),
				Website:     dto.StringPtr(req.CompanyWebsite),
				Industry:    req.CompanyIndustry,
				Description: strings.TrimSpace(req.CompanyDescription),
			},
		}

		recruiter, created, err := tx.Recruiter.FirstOrCreateByEmail(ctx, candidate)
		if err != nil {
			return err
		}
		if !created {
			s.logger.Debug("复用已有招聘方", zap.String("recruiter_id", recruiter.RecruiterID))
		}

		posting := newPostingFromFields(&req.PostingFields)
		posting.Kind = kind
		posting.RecruiterID = recruiter.RecruiterID
		posting.Status = model.PostingStatusActive

		if err := tx.Posting.Create(ctx, posting); err != nil {
			return err
		}

		result = dto.SubmitPostingResponse{
			RecruiterID: recruiter.RecruiterID,
			PostingID:   posting.PostingID,
			PostingType: kind,
		}
		return nil
	})
	if err != nil {
		if pkgerrors.IsCheckViolation(err) {
			return nil, newConstraintError(err)
		}
		s.logger.Error("提交岗位失败", zap.String("email", normalizeEmail(req.Email)), zap.Error(err))
		return nil, err
	}

	s.logger.Info("岗位已提交",
		zap.String("recruiter_id", result.RecruiterID),
		zap.String("posting_id", result.PostingID),
		zap.String("kind", kind),
	)
	return &result, nil
}

// ────────────────────── List ──────────────────────

func (s *postingService) ListByKind(ctx context.Context, kind string) ([]model.Posting, error) {
	postings, err := s.repo.Posting.ListByKind(ctx, kind)
	if err != nil {
		s.logger.Error("列出岗位失败", zap.String("kind", kind), zap.Error(err))
		return nil, err
	}
	return nonNilPostings(postings), nil
}

func (s *postingService) ListRecruiters(ctx context.Context) ([]model.Recruiter, error) {
	recruiters, err := s.repo.Recruiter.List(ctx)
	if err != nil {
		s.logger.Error("列出招聘方失败", zap.Error(err))
		return nil, err
	}
	if recruiters == nil {
		recruiters = []model.Recruiter{}
	}
	return recruiters, nil
}

// ListByRecruiter 非法的招聘方 id 不会匹配任何岗位，返回空列表
func (s *postingService) ListByRecruiter(ctx context.Context, kind, recruiterID string) ([]model.Posting, error) {
	if !isUUID(recruiterID) {
		return []model.Posting{}, nil
	}
	postings, err := s.repo.Posting.ListByRecruiter(ctx, kind, recruiterID)
	if err != nil {
		s.logger.Error("列出招聘方岗位失败", zap.String("recruiter_id", recruiterID), zap.Error(err))
		return nil, err
	}
	return nonNilPostings(postings), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *postingService) GetByID(ctx context.Context, kind, id string) (*model.Posting, error) {
	if !isUUID(id) {
		return nil, ErrPostingNotFound
	}
	posting, err := s.repo.Posting.GetByID(ctx, kind, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostingNotFound
		}
		s.logger.Error("查询岗位失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return posting, nil
}

// ────────────────────── Update ──────────────────────

func (s *postingService) UpdateStatus(ctx context.Context, kind, id, status string) (*model.Posting, error) {
	if !model.IsValidPostingStatus(status) {
		return nil, ErrInvalidPostingStatus
	}
	if !isUUID(id) {
		return nil, ErrPostingNotFound
	}

	if err := s.repo.Posting.UpdateStatus(ctx, kind, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostingNotFound
		}
		s.logger.Error("更新岗位状态失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.GetByID(ctx, kind, id)
}

func (s *postingService) Update(ctx context.Context, kind, id string, req *dto.UpdatePostingRequest) (*model.Posting, error) {
	if !isUUID(id) {
		return nil, ErrPostingNotFound
	}

	posting := newPostingFromFields(&req.PostingFields)
	posting.PostingID = id
	posting.Kind = kind

	if err := s.repo.Posting.Update(ctx, posting); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrPostingNotFound
		case pkgerrors.IsCheckViolation(err):
			return nil, newConstraintError(err)
		}
		s.logger.Error("更新岗位失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.GetByID(ctx, kind, id)
}

// ────────────────────── Delete ──────────────────────

func (s *postingService) Delete(ctx context.Context, kind, id string) error {
	if !isUUID(id) {
		return ErrPostingNotFound
	}
	if err := s.repo.Posting.Delete(ctx, kind, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostingNotFound
		}
		s.logger.Error("删除岗位失败", zap.String("id", id), zap.Error(err))
		return err
	}
	s.logger.Info("岗位已删除", zap.String("id", id), zap.String("kind", kind))
	return nil
}

// ────────────────────── Search ──────────────────────

func (s *postingService) Search(ctx context.Context, kind string, req *dto.SearchPostingsRequest) ([]model.Posting, int64, error) {
	filter := repository.PostingFilter{
		Kind:     kind,
		Status:   req.Status,
		Location: req.Location,
		MinCGPA:  req.MinCGPA,
		Branch:   strings.TrimSpace(req.Branch),
		Duration: req.Duration,
		Industry: req.Industry,
		Search:   req.Search,
	}
	if filter.Status == "" {
		filter.Status = model.PostingStatusActive
	}

	postings, total, err := s.repo.Posting.Search(ctx, filter, req.GetOffset(), req.GetLimit())
	if err != nil {
		s.logger.Error("检索岗位失败", zap.Error(err))
		return nil, 0, err
	}
	return nonNilPostings(postings), total, nil
}

// ── 辅助函数 ──

// newPostingFromFields 将请求字段转换为岗位实体（不含招聘方、类型、状态）
func newPostingFromFields(f *dto.PostingFields) *model.Posting {
	var minCGPA float64
	if f.MinCGPA != nil {
		minCGPA = float64(*f.MinCGPA)
	}

	posting := &model.Posting{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Location:    strings.TrimSpace(f.Location),
		Duration:    dto.StringPtr(f.Duration),
		Stipend:     f.Stipend.Float64Ptr(),
		StartDate:   f.StartDate.TimePtr(),
		Requirements: model.Requirements{
			MinCGPA:                minCGPA,
			AllowedBranches:        pq.StringArray(f.AllowedBranches),
			AcademicYears:          model.YearsArray(f.AcademicYears),
			AllowedDegrees:         pq.StringArray(f.AllowedDegrees),
			AllowedSpecializations: pq.StringArray(f.AllowedSpecializations),
			AdditionalRequirements: strings.TrimSpace(f.AdditionalRequirements),
		},
	}
	posting.Requirements.Normalize()
	return posting
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

func nonNilPostings(postings []model.Posting) []model.Posting {
	if postings == nil {
		return []model.Posting{}
	}
	return postings
}
