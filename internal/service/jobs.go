package service

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/prepdeck/prepdeck-web/internal/backend"
	"github.com/prepdeck/prepdeck-web/internal/domain/model"
)

// JobService wraps the /jobs endpoints.
type JobService struct{ api }

// NewJobService constructs a JobService.
func NewJobService(opts APIOptions) *JobService {
	return &JobService{newAPI(opts, "job_service")}
}

// List returns the caller's target jobs.
func (s *JobService) List(ctx context.Context, opts model.JobListOptions) ([]model.Job, error) {
	q := url.Values{}
	if opts.Status != "" {
		q.Set("status", string(opts.Status))
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		q.Set("offset", strconv.Itoa(opts.Offset))
	}
	jobs, err := backend.Call[[]model.Job](ctx, s.client, http.MethodGet, withQuery(endpoint("jobs"), q), nil)
	if err != nil {
		return nil, s.fail(ctx, "list jobs", err)
	}
	return jobs, nil
}

// Get returns one job.
func (s *JobService) Get(ctx context.Context, id string) (*model.Job, error) {
	if err := requireID("job", id); err != nil {
		return nil, err
	}
	job, err := backend.Call[model.Job](ctx, s.client, http.MethodGet, endpoint("jobs", id), nil)
	if err != nil {
		return nil, s.fail(ctx, "get job", err)
	}
	return &job, nil
}

// Create adds a job.
func (s *JobService) Create(ctx context.Context, req model.CreateJobRequest) (*model.Job, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	job, err := backend.Call[model.Job](ctx, s.client, http.MethodPost, endpoint("jobs"), req)
	if err != nil {
		return nil, s.fail(ctx, "create job", err)
	}
	return &job, nil
}

// Update patches a job.
func (s *JobService) Update(ctx context.Context, id string, req model.UpdateJobRequest) (*model.Job, error) {
	if err := requireID("job", id); err != nil {
		return nil, err
	}
	if !req.HasUpdates() {
		return nil, errors.New("no fields to update")
	}
	job, err := backend.Call[model.Job](ctx, s.client, http.MethodPut, endpoint("jobs", id), req)
	if err != nil {
		return nil, s.fail(ctx, "update job", err)
	}
	return &job, nil
}

// Delete removes a job.
func (s *JobService) Delete(ctx context.Context, id string) error {
	if err := requireID("job", id); err != nil {
		return err
	}
	if _, err := backend.Call[struct{}](ctx, s.client, http.MethodDelete, endpoint("jobs", id), nil); err != nil {
		return s.fail(ctx, "delete job", err)
	}
	return nil
}
