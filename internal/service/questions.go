package service

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/prepdeck/prepdeck-web/internal/backend"
	"github.com/prepdeck/prepdeck-web/internal/domain/model"
)

// QuestionService wraps question generation and the question bank.
type QuestionService struct{ api }

// NewQuestionService constructs a QuestionService.
func NewQuestionService(opts APIOptions) *QuestionService {
	return &QuestionService{newAPI(opts, "question_service")}
}

// Generate asks the backend to produce questions for an interview, job or resume.
func (s *QuestionService) Generate(ctx context.Context, req model.GenerateQuestionsRequest) ([]model.Question, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	out, err := backend.Call[[]model.Question](ctx, s.client, http.MethodPost, endpoint("questions", "generate"), req)
	if err != nil {
		return nil, s.fail(ctx, "generate questions", err)
	}
	return out, nil
}

// ListForInterview returns an interview's questions in order.
func (s *QuestionService) ListForInterview(ctx context.Context, interviewID string) ([]model.Question, error) {
	if err := requireID("interview", interviewID); err != nil {
		return nil, err
	}
	out, err := backend.Call[[]model.Question](ctx, s.client, http.MethodGet, endpoint("interviews", interviewID, "questions"), nil)
	if err != nil {
		return nil, s.fail(ctx, "list interview questions", err)
	}
	return out, nil
}

// Get returns one question.
func (s *QuestionService) Get(ctx context.Context, id string) (*model.Question, error) {
	if err := requireID("question", id); err != nil {
		return nil, err
	}
	out, err := backend.Call[model.Question](ctx, s.client, http.MethodGet, endpoint("questions", id), nil)
	if err != nil {
		return nil, s.fail(ctx, "get question", err)
	}
	return &out, nil
}

// Bank browses the shared question bank.
func (s *QuestionService) Bank(ctx context.Context, category string, limit int) ([]model.Question, error) {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	out, err := backend.Call[[]model.Question](ctx, s.client, http.MethodGet, withQuery(endpoint("questions", "bank"), q), nil)
	if err != nil {
		return nil, s.fail(ctx, "browse question bank", err)
	}
	return out, nil
}
