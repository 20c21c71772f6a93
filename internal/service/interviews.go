package service

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/prepdeck/prepdeck-web/internal/backend"
	"github.com/prepdeck/prepdeck-web/internal/domain/model"
)

// InterviewService wraps the /interviews endpoints.
type InterviewService struct{ api }

// NewInterviewService constructs an InterviewService.
func NewInterviewService(opts APIOptions) *InterviewService {
	return &InterviewService{newAPI(opts, "interview_service")}
}

// List returns the caller's practice interviews.
func (s *InterviewService) List(ctx context.Context) ([]model.InterviewSession, error) {
	out, err := backend.Call[[]model.InterviewSession](ctx, s.client, http.MethodGet, endpoint("interviews"), nil)
	if err != nil {
		return nil, s.fail(ctx, "list interviews", err)
	}
	return out, nil
}

// Get returns one interview.
func (s *InterviewService) Get(ctx context.Context, id string) (*model.InterviewSession, error) {
	if err := requireID("interview", id); err != nil {
		return nil, err
	}
	out, err := backend.Call[model.InterviewSession](ctx, s.client, http.MethodGet, endpoint("interviews", id), nil)
	if err != nil {
		return nil, s.fail(ctx, "get interview", err)
	}
	return &out, nil
}

// Create schedules an interview.
func (s *InterviewService) Create(ctx context.Context, req model.CreateInterviewRequest) (*model.InterviewSession, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	out, err := backend.Call[model.InterviewSession](ctx, s.client, http.MethodPost, endpoint("interviews"), req)
	if err != nil {
		return nil, s.fail(ctx, "create interview", err)
	}
	return &out, nil
}

// Start moves an interview to in_progress.
func (s *InterviewService) Start(ctx context.Context, id string) (*model.InterviewSession, error) {
	return s.transition(ctx, "start interview", id, "start")
}

// Complete finishes an interview so it can be analysed.
func (s *InterviewService) Complete(ctx context.Context, id string) (*model.InterviewSession, error) {
	return s.transition(ctx, "complete interview", id, "complete")
}

func (s *InterviewService) transition(ctx context.Context, op, id, action string) (*model.InterviewSession, error) {
	if err := requireID("interview", id); err != nil {
		return nil, err
	}
	out, err := backend.Call[model.InterviewSession](ctx, s.client, http.MethodPost, endpoint("interviews", id, action), nil)
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}
	return &out, nil
}

// SubmitAnswer stores an answer over REST; the live socket offers the same.
func (s *InterviewService) SubmitAnswer(ctx context.Context, interviewID string, ans model.Answer) (*model.Answer, error) {
	if err := requireID("interview", interviewID); err != nil {
		return nil, err
	}
	if err := requireID("question", ans.QuestionID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(ans.Text) == "" {
		return nil, errors.New("answer text is required")
	}
	out, err := backend.Call[model.Answer](ctx, s.client, http.MethodPost, endpoint("interviews", interviewID, "answers"), ans)
	if err != nil {
		return nil, s.fail(ctx, "submit answer", err)
	}
	return &out, nil
}

// Delete removes an interview.
func (s *InterviewService) Delete(ctx context.Context, id string) error {
	if err := requireID("interview", id); err != nil {
		return err
	}
	if _, err := backend.Call[struct{}](ctx, s.client, http.MethodDelete, endpoint("interviews", id), nil); err != nil {
		return s.fail(ctx, "delete interview", err)
	}
	return nil
}
