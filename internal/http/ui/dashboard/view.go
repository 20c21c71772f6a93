// Package dashboard builds the signed-in home page view model.
package dashboard

import (
	"strconv"
	"time"

	"github.com/prepdeck/prepdeck-web/internal/domain/model"
	"github.com/prepdeck/prepdeck-web/internal/http/ui/viewmodel"
	"github.com/prepdeck/prepdeck-web/internal/http/uiutil"
)

// Page is the view model of GET /dashboard. Each section fails on its own.
type Page struct {
	viewmodel.Layout

	Greeting   string
	Interviews Section[InterviewRow]
	Jobs       Section[JobRow]
	Resumes    Section[ResumeRow]
}

// LayoutData returns a pointer to the embedded layout for renderer helpers.
func (p *Page) LayoutData() *viewmodel.Layout { return &p.Layout }

// Section is a list panel with its own error state.
type Section[T any] struct {
	viewmodel.Panel

	Rows []T
}

// InterviewRow is one recent practice interview.
type InterviewRow struct {
	ID       string
	Title    string
	Type     string
	Status   string
	Progress string
	When     string
}

// JobRow is one tracked job.
type JobRow struct {
	ID      string
	Title   string
	Company string
	Status  string
	When    string
}

// ResumeRow is one uploaded resume.
type ResumeRow struct {
	ID        string
	FileName  string
	IsPrimary bool
	Parse     string
	When      string
}

// NewInterviewRows keeps at most limit interviews in backend order.
func NewInterviewRows(in []model.InterviewSession, limit int, now time.Time) []InterviewRow {
	in = head(in, limit)
	rows := make([]InterviewRow, 0, len(in))
	for _, s := range in {
		title := s.Title
		if title == "" {
			title = string(s.Type) + " interview"
		}
		row := InterviewRow{
			ID:     s.ID,
			Title:  title,
			Type:   string(s.Type),
			Status: string(s.Status),
			When:   uiutil.FriendlyRelativeTime(s.CreatedAt, now),
		}
		if s.QuestionCount > 0 {
			row.Progress = strconv.Itoa(s.CurrentQuestion) + "/" + strconv.Itoa(s.QuestionCount)
		}
		rows = append(rows, row)
	}
	return rows
}

// NewJobRows keeps at most limit jobs in backend order.
func NewJobRows(in []model.Job, limit int, now time.Time) []JobRow {
	in = head(in, limit)
	rows := make([]JobRow, 0, len(in))
	for _, j := range in {
		rows = append(rows, JobRow{
			ID:      j.ID,
			Title:   uiutil.TruncateWithEllipsis(j.Title, 60),
			Company: j.Company,
			Status:  string(j.Status),
			When:    uiutil.FriendlyRelativeTime(j.CreatedAt, now),
		})
	}
	return rows
}

// NewResumeRows keeps at most limit resumes in backend order.
func NewResumeRows(in []model.Resume, limit int, now time.Time) []ResumeRow {
	in = head(in, limit)
	rows := make([]ResumeRow, 0, len(in))
	for _, r := range in {
		rows = append(rows, ResumeRow{
			ID:        r.ID,
			FileName:  r.FileName,
			IsPrimary: r.IsPrimary,
			Parse:     string(r.ParseStatus),
			When:      uiutil.FriendlyRelativeTime(r.CreatedAt, now),
		})
	}
	return rows
}

func head[T any](in []T, limit int) []T {
	if limit > 0 && len(in) > limit {
		return in[:limit]
	}
	return in
}
