package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/CoderRdm/Placement-Cell/internal/model"
	"github.com/CoderRdm/Placement-Cell/internal/repository"
	pkgerrors "github.com/CoderRdm/Placement-Cell/pkg/errors"
)

// newMockRepository 组装一个基于内存 mock 的 Repository 聚合（db 为 nil，Transaction 直接执行）
func newMockRepository() (*repository.Repository, *mocks) {
	m := &mocks{
		recruiters: newMockRecruiterRepo(),
		postings:   newMockPostingRepo(),
		students:   newMockStudentRepo(),
		references: newMockReferenceRepo(),
	}
	m.postings.recruiters = m.recruiters
	m.applications = newMockApplicationRepo(m.postings)
	repo := &repository.Repository{
		Recruiter:   m.recruiters,
		Posting:     m.postings,
		Application: m.applications,
		Student:     m.students,
		Reference:   m.references,
	}
	return repo, m
}

type mocks struct {
	recruiters   *mockRecruiterRepo
	postings     *mockPostingRepo
	applications *mockApplicationRepo
	students     *mockStudentRepo
	references   *mockReferenceRepo
}

// mockClock 单调递增的时间，保证按创建时间排序稳定
var mockClock = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func nextMockTime() time.Time {
	mockClock = mockClock.Add(time.Second)
	return mockClock
}

// ── Mock RecruiterRepository ──

type mockRecruiterRepo struct {
	recruiters map[string]*model.Recruiter
}

func newMockRecruiterRepo() *mockRecruiterRepo {
	return &mockRecruiterRepo{recruiters: make(map[string]*model.Recruiter)}
}

func (m *mockRecruiterRepo) FirstOrCreateByEmail(_ context.Context, r *model.Recruiter) (*model.Recruiter, bool, error) {
	for _, existing := range m.recruiters {
		if existing.Email == r.Email {
			return existing, false, nil
		}
	}
	r.RecruiterID = uuid.NewString()
	r.CreatedAt = nextMockTime()
	m.recruiters[r.RecruiterID] = r
	return r, true, nil
}

func (m *mockRecruiterRepo) GetByID(_ context.Context, id string) (*model.Recruiter, error) {
	if r, ok := m.recruiters[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRecruiterRepo) GetByEmail(_ context.Context, email string) (*model.Recruiter, error) {
	for _, r := range m.recruiters {
		if r.Email == email {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRecruiterRepo) List(_ context.Context) ([]model.Recruiter, error) {
	var result []model.Recruiter
	for _, r := range m.recruiters {
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

// ── Mock PostingRepository ──

type mockPostingRepo struct {
	postings   map[string]*model.Posting
	recruiters *mockRecruiterRepo
	lastFilter repository.PostingFilter
	listErr    error
	createErr  error
}

func newMockPostingRepo() *mockPostingRepo {
	return &mockPostingRepo{postings: make(map[string]*model.Posting)}
}

func (m *mockPostingRepo) withRecruiter(p model.Posting) model.Posting {
	if m.recruiters != nil {
		if r, ok := m.recruiters.recruiters[p.RecruiterID]; ok {
			p.Recruiter = r
		}
	}
	return p
}

func (m *mockPostingRepo) sorted(keep func(p *model.Posting) bool) []model.Posting {
	var result []model.Posting
	for _, p := range m.postings {
		if keep(p) {
			result = append(result, m.withRecruiter(*p))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].PostingID > result[j].PostingID
	})
	return result
}

func (m *mockPostingRepo) Create(_ context.Context, p *model.Posting) error {
	if m.createErr != nil {
		return m.createErr
	}
	if p.PostingID == "" {
		p.PostingID = uuid.NewString()
	}
	p.CreatedAt = nextMockTime()
	p.Requirements.Normalize()
	stored := *p
	m.postings[p.PostingID] = &stored
	return nil
}

func (m *mockPostingRepo) GetByID(_ context.Context, kind, id string) (*model.Posting, error) {
	if p, ok := m.postings[id]; ok && p.Kind == kind {
		out := m.withRecruiter(*p)
		return &out, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPostingRepo) ListByKind(_ context.Context, kind string) ([]model.Posting, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.sorted(func(p *model.Posting) bool { return p.Kind == kind }), nil
}

func (m *mockPostingRepo) ListByRecruiter(_ context.Context, kind, recruiterID string) ([]model.Posting, error) {
	return m.sorted(func(p *model.Posting) bool { return p.Kind == kind && p.RecruiterID == recruiterID }), nil
}

// Search 仅模拟 kind / status / location 三个条件，完整的谓词由 posting_filter_test 覆盖
func (m *mockPostingRepo) Search(_ context.Context, f repository.PostingFilter, offset, limit int) ([]model.Posting, int64, error) {
	m.lastFilter = f
	all := m.sorted(func(p *model.Posting) bool {
		if f.Kind != "" && p.Kind != f.Kind {
			return false
		}
		if f.Status != "" && p.Status != f.Status {
			return false
		}
		if f.Location != "" && !strings.Contains(strings.ToLower(p.Location), strings.ToLower(f.Location)) {
			return false
		}
		return true
	})
	total := int64(len(all))
	if offset >= len(all) {
		return []model.Posting{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockPostingRepo) Update(_ context.Context, p *model.Posting) error {
	existing, ok := m.postings[p.PostingID]
	if !ok || existing.Kind != p.Kind {
		return gorm.ErrRecordNotFound
	}
	existing.Title = p.Title
	existing.Description = p.Description
	existing.Location = p.Location
	existing.Duration = p.Duration
	existing.Stipend = p.Stipend
	existing.StartDate = p.StartDate
	existing.Requirements = p.Requirements
	return nil
}

func (m *mockPostingRepo) UpdateStatus(_ context.Context, kind, id, status string) error {
	p, ok := m.postings[id]
	if !ok || p.Kind != kind {
		return gorm.ErrRecordNotFound
	}
	p.Status = status
	return nil
}

func (m *mockPostingRepo) Delete(_ context.Context, kind, id string) error {
	p, ok := m.postings[id]
	if !ok || p.Kind != kind {
		return gorm.ErrRecordNotFound
	}
	delete(m.postings, id)
	return nil
}

// ── Mock ApplicationRepository ──

type mockApplicationRepo struct {
	apps     map[string]*model.Application
	postings *mockPostingRepo
}

func newMockApplicationRepo(postings *mockPostingRepo) *mockApplicationRepo {
	return &mockApplicationRepo{apps: make(map[string]*model.Application), postings: postings}
}

// Create 模拟 BeforeCreate 钩子与 (posting_id, student_id) 唯一约束
func (m *mockApplicationRepo) Create(_ context.Context, app *model.Application) error {
	var posting *model.Posting
	if p, ok := m.postings.postings[app.PostingID]; ok {
		posting = p
	}
	if err := model.VerifyApplicationRecruiter(app, posting); err != nil {
		return err
	}
	for _, existing := range m.apps {
		if existing.PostingID == app.PostingID && existing.StudentID == app.StudentID {
			return pkgerrors.ErrDuplicateKey
		}
	}
	app.ApplicationID = uuid.NewString()
	app.CreatedAt = nextMockTime()
	stored := *app
	m.apps[app.ApplicationID] = &stored
	return nil
}

func (m *mockApplicationRepo) GetByID(_ context.Context, id string) (*model.Application, error) {
	if a, ok := m.apps[id]; ok {
		out := *a
		return &out, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockApplicationRepo) list(keep func(a *model.Application) bool) []model.Application {
	var result []model.Application
	for _, a := range m.apps {
		if keep(a) {
			result = append(result, *a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result
}

func (m *mockApplicationRepo) ListByPosting(_ context.Context, postingID string) ([]model.Application, error) {
	return m.list(func(a *model.Application) bool { return a.PostingID == postingID }), nil
}

func (m *mockApplicationRepo) ListByStudent(_ context.Context, studentID string) ([]model.Application, error) {
	return m.list(func(a *model.Application) bool { return a.StudentID == studentID }), nil
}

func (m *mockApplicationRepo) UpdateStatus(_ context.Context, id, status string, notes *string) error {
	a, ok := m.apps[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Status = status
	if notes != nil {
		a.Notes = *notes
	}
	return nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students map[string]*model.Student
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{students: make(map[string]*model.Student)}
}

func (m *mockStudentRepo) Create(_ context.Context, s *model.Student) error {
	for _, existing := range m.students {
		if existing.StudentID == s.StudentID {
			return pkgerrors.ErrDuplicateKey
		}
	}
	s.ID = uuid.NewString()
	s.CreatedAt = nextMockTime()
	for i := range s.Addresses {
		s.Addresses[i].AddressID = uuid.NewString()
		s.Addresses[i].StudentID = s.ID
	}
	for i := range s.SGPARecords {
		s.SGPARecords[i].SGPAID = uuid.NewString()
		s.SGPARecords[i].StudentID = s.ID
	}
	if s.CurrentProgram != nil {
		s.CurrentProgram.CurrentProgramID = uuid.NewString()
		s.CurrentProgram.StudentID = s.ID
	}
	stored := *s
	m.students[s.ID] = &stored
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id string) (*model.Student, error) {
	if s, ok := m.students[id]; ok {
		out := *s
		return &out, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) GetByStudentID(_ context.Context, studentID string) (*model.Student, error) {
	for _, s := range m.students {
		if s.StudentID == studentID {
			out := *s
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) ExistsByStudentID(ctx context.Context, studentID string) (bool, error) {
	_, err := m.GetByStudentID(ctx, studentID)
	return err == nil, nil
}

func (m *mockStudentRepo) List(_ context.Context) ([]model.Student, error) {
	var result []model.Student
	for _, s := range m.students {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

// ── Mock ReferenceRepository ──

type mockReferenceRepo struct {
	categories      map[string]*model.Category
	degrees         map[string]*model.Degree
	specializations map[string]*model.Specialization
	resets          int
}

func newMockReferenceRepo() *mockReferenceRepo {
	return &mockReferenceRepo{
		categories:      make(map[string]*model.Category),
		degrees:         make(map[string]*model.Degree),
		specializations: make(map[string]*model.Specialization),
	}
}

func (m *mockReferenceRepo) addCategory(name string) *model.Category {
	c := &model.Category{CategoryID: uuid.NewString(), Name: name}
	m.categories[c.CategoryID] = c
	return c
}

func (m *mockReferenceRepo) addDegree(typ, name string) *model.Degree {
	d := &model.Degree{DegreeID: uuid.NewString(), Type: typ, Name: name}
	m.degrees[d.DegreeID] = d
	return d
}

func (m *mockReferenceRepo) addSpecialization(degreeID, name, code string) *model.Specialization {
	s := &model.Specialization{SpecializationID: uuid.NewString(), DegreeID: degreeID, Name: name, Code: code}
	m.specializations[s.SpecializationID] = s
	return s
}

func (m *mockReferenceRepo) GetCategoryByID(_ context.Context, id string) (*model.Category, error) {
	if c, ok := m.categories[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReferenceRepo) GetCategoryByName(_ context.Context, name string) (*model.Category, error) {
	for _, c := range m.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReferenceRepo) GetDegreeByID(_ context.Context, id string) (*model.Degree, error) {
	if d, ok := m.degrees[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReferenceRepo) GetDegreeByName(_ context.Context, name string) (*model.Degree, error) {
	for _, d := range m.degrees {
		if d.Name == name {
			return d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReferenceRepo) GetSpecializationByID(_ context.Context, id string) (*model.Specialization, error) {
	if s, ok := m.specializations[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReferenceRepo) GetSpecializationByNameOrCode(_ context.Context, value string) (*model.Specialization, error) {
	for _, s := range m.specializations {
		if s.Code == value {
			return s, nil
		}
	}
	for _, s := range m.specializations {
		if s.Name == value {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReferenceRepo) Reset(_ context.Context) error {
	m.resets++
	m.categories = make(map[string]*model.Category)
	m.degrees = make(map[string]*model.Degree)
	m.specializations = make(map[string]*model.Specialization)
	return nil
}

func (m *mockReferenceRepo) CreateCategories(_ context.Context, categories []model.Category) error {
	for i := range categories {
		categories[i].CategoryID = uuid.NewString()
		c := categories[i]
		m.categories[c.CategoryID] = &c
	}
	return nil
}

func (m *mockReferenceRepo) CreateDegrees(_ context.Context, degrees []model.Degree) error {
	for i := range degrees {
		degrees[i].DegreeID = uuid.NewString()
		d := degrees[i]
		m.degrees[d.DegreeID] = &d
	}
	return nil
}

func (m *mockReferenceRepo) CreateSpecializations(_ context.Context, specs []model.Specialization) error {
	for i := range specs {
		specs[i].SpecializationID = uuid.NewString()
		s := specs[i]
		m.specializations[s.SpecializationID] = &s
	}
	return nil
}
