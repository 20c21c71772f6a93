package httpx

import (
	"errors"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/prepdeck/prepdeck-web/internal/domain/model"
	"github.com/prepdeck/prepdeck-web/internal/http/ui/dashboard"
	"github.com/prepdeck/prepdeck-web/internal/http/ui/viewmodel"
)

// Dashboard renders the signed-in home page. Interviews, jobs and resumes
// are fetched concurrently; a failing list shows its own error state.
func (h *UIHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := h.now()

	var (
		interviews                      []model.InterviewSession
		jobs                            []model.Job
		resumes                         []model.Resume
		interviewErr, jobErr, resumeErr error
	)
	// Sections fail independently, so goroutines never return an error.
	var g errgroup.Group
	g.Go(func() error {
		interviews, interviewErr = h.Interviews.List(ctx)
		return nil
	})
	g.Go(func() error {
		jobs, jobErr = h.Jobs.List(ctx, model.JobListOptions{Limit: DashboardRecentLimit})
		return nil
	})
	g.Go(func() error {
		resumes, resumeErr = h.Resumes.List(ctx)
		return nil
	})
	_ = g.Wait()

	if err := errors.Join(interviewErr, jobErr, resumeErr); err != nil && h.sessionExpired(w, r, err) {
		return
	}

	page := &dashboard.Page{
		Layout: buildLayout(r, PageMeta{Title: "Dashboard - PrepDeck", PageTitle: "Dashboard", CurrentPage: PageDashboard}),
	}
	if page.User != nil {
		page.Greeting = "Welcome back, " + page.User.Name
	}
	page.Interviews = dashboardSection(h, r, "recent-interviews", interviewErr,
		func() []dashboard.InterviewRow {
			return dashboard.NewInterviewRows(interviews, DashboardRecentLimit, now)
		})
	page.Jobs = dashboardSection(h, r, "recent-jobs", jobErr,
		func() []dashboard.JobRow { return dashboard.NewJobRows(jobs, DashboardRecentLimit, now) })
	page.Resumes = dashboardSection(h, r, "recent-resumes", resumeErr,
		func() []dashboard.ResumeRow { return dashboard.NewResumeRows(resumes, DashboardRecentLimit, now) })

	h.renderPage(w, r, page)
}

func dashboardSection[T any](h *UIHandlers, r *http.Request, id string, err error, rows func() []T) dashboard.Section[T] {
	sec := dashboard.Section[T]{Panel: viewmodel.Panel{ID: id, Source: "/dashboard"}}
	if err != nil {
		h.logger().WarnContext(r.Context(), "dashboard section unavailable", "section", id, "error", err)
		sec.Panel = sec.Failed(ErrorMessage(err))
		return sec
	}
	sec.Rows = rows()
	return sec
}
