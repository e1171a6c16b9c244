package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/CoderRdm/Placement-Cell/internal/dto"
	"github.com/CoderRdm/Placement-Cell/internal/model"
)

// ── 测试辅助 ──

func setupTestPostingService() (PostingService, *mocks) {
	repo, m := newMockRepository()
	return NewPostingService(repo, zap.NewNop()), m
}

func newSubmitRequest(email, title string) *dto.SubmitPostingRequest {
	minCGPA := dto.Number(7.5)
	return &dto.SubmitPostingRequest{
		FirstName:       "Asha",
		LastName:        "Rao",
		Email:           email,
		CompanyName:     "Acme",
		CompanyIndustry: "Technology",
		PostingFields: dto.PostingFields{
			Title:           title,
			Description:     strings.Repeat("d", 60),
			Location:        "Pune",
			MinCGPA:         &minCGPA,
			AllowedBranches: dto.StringList{"Computer Science"},
			AcademicYears:   dto.IntList{3, 4},
		},
	}
}

// ── Submit 测试 ──

func TestPostingService_Submit_SameEmailReusesRecruiter(t *testing.T) {
	svc, m := setupTestPostingService()
	ctx := context.Background()

	first, err := svc.Submit(ctx, newSubmitRequest("a@x.com", "Backend Intern"))
	if err != nil {
		t.Fatalf("第一次提交失败: %v", err)
	}
	second, err := svc.Submit(ctx, newSubmitRequest("A@X.com ", "Frontend Intern"))
	if err != nil {
		t.Fatalf("第二次提交失败: %v", err)
	}

	if first.RecruiterID != second.RecruiterID {
		t.Errorf("同一 email 应复用招聘方: %s != %s", first.RecruiterID, second.RecruiterID)
	}
	if first.PostingID == second.PostingID {
		t.Error("两次提交应生成不同岗位")
	}
	if len(m.recruiters.recruiters) != 1 {
		t.Errorf("期望 1 个招聘方，实际 %d", len(m.recruiters.recruiters))
	}
	if len(m.postings.postings) != 2 {
		t.Errorf("期望 2 个岗位，实际 %d", len(m.postings.postings))
	}
}

func TestPostingService_Submit_CheckViolationNamesField(t *testing.T) {
	svc, m := setupTestPostingService()
	m.postings.createErr = &pgconn.PgError{Code: "23514", ConstraintName: "postings_min_cgpa_range"}

	_, err := svc.Submit(context.Background(), newSubmitRequest("c@x.com", "Backend Intern"))
	if !errors.Is(err, ErrConstraintViolation) {
		t.Fatalf("期望 ErrConstraintViolation，实际 %v", err)
	}
	msgs := ConstraintMessages(err)
	if len(msgs) != 1 || msgs[0] != "min_cgpa must be between 0 and 10" {
		t.Errorf("错误信息应指出 min_cgpa，实际 %v", msgs)
	}
}

func TestPostingService_Submit_Defaults(t *testing.T) {
	svc, m := setupTestPostingService()

	resp, err := svc.Submit(context.Background(), newSubmitRequest("b@x.com", "Data Intern"))
	if err != nil {
		t.Fatalf("提交失败: %v", err)
	}
	if resp.PostingType != model.PostingKindInternship {
		t.Errorf("缺省岗位类型应为 internship，实际 %s", resp.PostingType)
	}

	stored := m.postings.postings[resp.PostingID]
	if stored.Status != model.PostingStatusActive {
		t.Errorf("新岗位状态应为 active，实际 %s", stored.Status)
	}
	if stored.Requirements.AllowedDegrees == nil || stored.Requirements.AllowedSpecializations == nil {
		t.Error("未提供的数组字段应归一化为空数组")
	}
	if stored.Requirements.MinCGPA != 7.5 {
		t.Errorf("min_cgpa 期望 7.5，实际 %v", stored.Requirements.MinCGPA)
	}
}

func TestPostingService_Submit_JobKind(t *testing.T) {
	svc, m := setupTestPostingService()
	req := newSubmitRequest("c@x.com", "Graduate Engineer")
	req.PostingType = model.PostingKindJob

	resp, err := svc.Submit(context.Background(), req)
	if err != nil {
		t.Fatalf("提交失败: %v", err)
	}
	if m.postings.postings[resp.PostingID].Kind != model.PostingKindJob {
		t.Error("岗位类型应为 job")
	}
}

// ── Query 测试 ──

func TestPostingService_GetByID_NotFound(t *testing.T) {
	svc, _ := setupTestPostingService()

	_, err := svc.GetByID(context.Background(), model.PostingKindInternship, uuid.NewString())
	if !errors.Is(err, ErrPostingNotFound) {
		t.Errorf("期望 ErrPostingNotFound，实际: %v", err)
	}

	_, err = svc.GetByID(context.Background(), model.PostingKindInternship, "not-a-uuid")
	if !errors.Is(err, ErrPostingNotFound) {
		t.Errorf("非法 id 期望 ErrPostingNotFound，实际: %v", err)
	}
}

func TestPostingService_GetByID_KindMismatch(t *testing.T) {
	svc, _ := setupTestPostingService()
	resp, _ := svc.Submit(context.Background(), newSubmitRequest("d@x.com", "Backend Intern"))

	_, err := svc.GetByID(context.Background(), model.PostingKindJob, resp.PostingID)
	if !errors.Is(err, ErrPostingNotFound) {
		t.Errorf("按 job 查询 internship 岗位应返回 ErrPostingNotFound，实际: %v", err)
	}
}

func TestPostingService_ListByKind_PopulatesRecruiter(t *testing.T) {
	svc, _ := setupTestPostingService()
	ctx := context.Background()
	_, _ = svc.Submit(ctx, newSubmitRequest("e@x.com", "Older Posting"))
	_, _ = svc.Submit(ctx, newSubmitRequest("e@x.com", "Newer Posting"))

	postings, err := svc.ListByKind(ctx, model.PostingKindInternship)
	if err != nil {
		t.Fatalf("ListByKind 失败: %v", err)
	}
	if len(postings) != 2 {
		t.Fatalf("期望 2 条，实际 %d", len(postings))
	}
	if postings[0].Title != "Newer Posting" {
		t.Errorf("应按创建时间倒序，首条为 %s", postings[0].Title)
	}
	if postings[0].Recruiter == nil || postings[0].Recruiter.Email != "e@x.com" {
		t.Error("岗位应附带招聘方信息")
	}
}

func TestPostingService_ListByKind_Empty(t *testing.T) {
	svc, _ := setupTestPostingService()

	postings, err := svc.ListByKind(context.Background(), model.PostingKindJob)
	if err != nil {
		t.Fatalf("ListByKind 失败: %v", err)
	}
	if postings == nil || len(postings) != 0 {
		t.Error("无数据时应返回空切片而非 nil")
	}
}

func TestPostingService_ListByRecruiter_InvalidID(t *testing.T) {
	svc, _ := setupTestPostingService()

	postings, err := svc.ListByRecruiter(context.Background(), model.PostingKindInternship, "bogus")
	if err != nil {
		t.Fatalf("非法招聘方 id 不应报错: %v", err)
	}
	if len(postings) != 0 {
		t.Errorf("期望空列表，实际 %d", len(postings))
	}
}

// ── UpdateStatus 测试 ──

func TestPostingService_UpdateStatus_InvalidKeepsStored(t *testing.T) {
	svc, m := setupTestPostingService()
	resp, _ := svc.Submit(context.Background(), newSubmitRequest("f@x.com", "Backend Intern"))

	_, err := svc.UpdateStatus(context.Background(), model.PostingKindInternship, resp.PostingID, "archived")
	if !errors.Is(err, ErrInvalidPostingStatus) {
		t.Fatalf("期望 ErrInvalidPostingStatus，实际: %v", err)
	}
	if got := m.postings.postings[resp.PostingID].Status; got != model.PostingStatusActive {
		t.Errorf("非法状态不应写入，当前状态 %s", got)
	}
}

func TestPostingService_UpdateStatus_Success(t *testing.T) {
	svc, _ := setupTestPostingService()
	resp, _ := svc.Submit(context.Background(), newSubmitRequest("g@x.com", "Backend Intern"))

	posting, err := svc.UpdateStatus(context.Background(), model.PostingKindInternship, resp.PostingID, model.PostingStatusClosed)
	if err != nil {
		t.Fatalf("UpdateStatus 失败: %v", err)
	}
	if posting.Status != model.PostingStatusClosed {
		t.Errorf("期望 closed，实际 %s", posting.Status)
	}
}

func TestPostingService_UpdateStatus_NotFound(t *testing.T) {
	svc, _ := setupTestPostingService()

	_, err := svc.UpdateStatus(context.Background(), model.PostingKindInternship, uuid.NewString(), model.PostingStatusPaused)
	if !errors.Is(err, ErrPostingNotFound) {
		t.Errorf("期望 ErrPostingNotFound，实际: %v", err)
	}
}

// ── Update / Delete 测试 ──

func TestPostingService_Update_ReplacesContent(t *testing.T) {
	svc, _ := setupTestPostingService()
	ctx := context.Background()
	resp, _ := svc.Submit(ctx, newSubmitRequest("h@x.com", "Backend Intern"))

	fields := newSubmitRequest("h@x.com", "Platform Intern").PostingFields
	fields.AllowedBranches = dto.StringList{"Mechanical", "Civil"}
	posting, err := svc.Update(ctx, model.PostingKindInternship, resp.PostingID, &dto.UpdatePostingRequest{PostingFields: fields})
	if err != nil {
		t.Fatalf("Update 失败: %v", err)
	}
	if posting.Title != "Platform Intern" {
		t.Errorf("标题未更新: %s", posting.Title)
	}
	if len(posting.Requirements.AllowedBranches) != 2 {
		t.Errorf("allowed_branches 应整体替换，实际 %v", posting.Requirements.AllowedBranches)
	}
	if posting.Status != model.PostingStatusActive {
		t.Error("Update 不应修改状态")
	}
}

func TestPostingService_Delete(t *testing.T) {
	svc, m := setupTestPostingService()
	ctx := context.Background()
	resp, _ := svc.Submit(ctx, newSubmitRequest("i@x.com", "Backend Intern"))

	if err := svc.Delete(ctx, model.PostingKindInternship, resp.PostingID); err != nil {
		t.Fatalf("Delete 失败: %v", err)
	}
	if _, ok := m.postings.postings[resp.PostingID]; ok {
		t.Error("岗位应被删除")
	}
	if err := svc.Delete(ctx, model.PostingKindInternship, resp.PostingID); !errors.Is(err, ErrPostingNotFound) {
		t.Errorf("重复删除期望 ErrPostingNotFound，实际: %v", err)
	}
}

// ── Search 测试 ──

func TestPostingService_Search_DefaultsToActive(t *testing.T) {
	svc, m := setupTestPostingService()
	ctx := context.Background()
	a, _ := svc.Submit(ctx, newSubmitRequest("j@x.com", "Active Posting"))
	b, _ := svc.Submit(ctx, newSubmitRequest("j@x.com", "Closed Posting"))
	_, _ = svc.UpdateStatus(ctx, model.PostingKindInternship, b.PostingID, model.PostingStatusClosed)

	postings, total, err := svc.Search(ctx, model.PostingKindInternship, &dto.SearchPostingsRequest{})
	if err != nil {
		t.Fatalf("Search 失败: %v", err)
	}
	if m.postings.lastFilter.Status != model.PostingStatusActive {
		t.Errorf("未指定状态时应按 active 过滤，实际 %q", m.postings.lastFilter.Status)
	}
	if total != 1 || len(postings) != 1 || postings[0].PostingID != a.PostingID {
		t.Errorf("期望仅返回 active 岗位，实际 total=%d len=%d", total, len(postings))
	}
}

func TestPostingService_Search_StablePages(t *testing.T) {
	svc, _ := setupTestPostingService()
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, _ = svc.Submit(ctx, newSubmitRequest("k@x.com", "Posting Number"))
	}

	req := &dto.SearchPostingsRequest{PaginationRequest: dto.PaginationRequest{Page: 2, Limit: 2}}
	first, total, err := svc.Search(ctx, model.PostingKindInternship, req)
	if err != nil {
		t.Fatalf("Search 失败: %v", err)
	}
	second, _, _ := svc.Search(ctx, model.PostingKindInternship, req)

	if total != 5 {
		t.Errorf("期望 total=5，实际 %d", total)
	}
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("期望每页 2 条，实际 %d / %d", len(first), len(second))
	}
	for i := range first {
		if first[i].PostingID != second[i].PostingID {
			t.Errorf("相同分页参数应返回相同结果，第 %d 条不一致", i)
		}
	}
}

func TestPostingService_Search_PassesFilters(t *testing.T) {
	svc, m := setupTestPostingService()
	minCGPA := 8.0

	_, _, err := svc.Search(context.Background(), model.PostingKindJob, &dto.SearchPostingsRequest{
		Status:   model.PostingStatusPaused,
		Location: "Pune",
		MinCGPA:  &minCGPA,
		Branch:   " Civil ",
		Industry: "Finance",
		Search:   "golang",
	})
	if err != nil {
		t.Fatalf("Search 失败: %v", err)
	}

	f := m.postings.lastFilter
	if f.Kind != model.PostingKindJob || f.Status != model.PostingStatusPaused {
		t.Errorf("kind/status 传递错误: %+v", f)
	}
	if f.Branch != "Civil" || f.Industry != "Finance" || f.Search != "golang" {
		t.Errorf("过滤条件传递错误: %+v", f)
	}
	if f.MinCGPA == nil || *f.MinCGPA != 8.0 {
		t.Error("min_cgpa 未传递")
	}
}
