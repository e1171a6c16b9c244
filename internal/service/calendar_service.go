package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/CoderRdm/Placement-Cell/internal/model"
	"github.com/CoderRdm/Placement-Cell/internal/repository"
)

const calendarProductID = "-//Placement Cell//Postings Feed//EN"

// CalendarService 日历订阅业务接口
// 仅收录 active 且填写了 start_date 的岗位，每条岗位对应一个全天事件
type CalendarService interface {
	PostingsFeed(ctx context.Context, kind string) (string, error)
}

type calendarService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewCalendarService 创建 CalendarService 实例
func NewCalendarService(repo *repository.Repository, logger *zap.Logger) CalendarService {
	return &calendarService{repo: repo, logger: logger, now: time.Now}
}

func (s *calendarService) PostingsFeed(ctx context.Context, kind string) (string, error) {
	postings, err := s.repo.Posting.ListByKind(ctx, kind)
	if err != nil {
		s.logger.Error("查询岗位失败", zap.String("kind", kind), zap.Error(err))
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(calendarProductID)
	cal.SetXWRCalName(kindLabel(kind) + " Postings")

	stamp := s.now().UTC()
	for i := range postings {
		p := &postings[i]
		if p.Status != model.PostingStatusActive || p.StartDate == nil {
			continue
		}

		evt := cal.AddEvent(p.PostingID + "@placement-cell")
		evt.SetDtStampTime(stamp)
		evt.SetAllDayStartAt(*p.StartDate)
		evt.SetAllDayEndAt(p.StartDate.AddDate(0, 0, 1))
		evt.SetSummary(eventSummary(p))
		evt.SetLocation(p.Location)
		evt.SetDescription(eventDescription(p))
	}

	return cal.Serialize(), nil
}

func eventSummary(p *model.Posting) string {
	if p.Recruiter != nil && p.Recruiter.Company.Name != "" {
		return fmt.Sprintf("%s @ %s", p.Title, p.Recruiter.Company.Name)
	}
	return p.Title
}

func eventDescription(p *model.Posting) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Min CGPA: %.2f", p.Requirements.MinCGPA)
	if len(p.Requirements.AllowedBranches) > 0 {
		fmt.Fprintf(&b, "\nBranches: %s", strings.Join(p.Requirements.AllowedBranches, ", "))
	}
	if p.Duration != nil {
		fmt.Fprintf(&b, "\nDuration: %s", *p.Duration)
	}
	if p.Stipend != nil {
		fmt.Fprintf(&b, "\nStipend: %.2f", *p.Stipend)
	}
	return b.String()
}
