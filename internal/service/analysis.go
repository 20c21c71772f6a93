package service

import (
	"context"
	"net/http"

	"github.com/prepdeck/prepdeck-web/internal/backend"
	"github.com/prepdeck/prepdeck-web/internal/domain/model"
)

// AnalysisService wraps interview analysis and resume matching.
type AnalysisService struct{ api }

// NewAnalysisService constructs an AnalysisService.
func NewAnalysisService(opts APIOptions) *AnalysisService {
	return &AnalysisService{newAPI(opts, "analysis_service")}
}

// AnalyzeInterview requests a fresh analysis of a completed interview.
func (s *AnalysisService) AnalyzeInterview(ctx context.Context, interviewID string) (*model.AnalysisResult, error) {
	if err := requireID("interview", interviewID); err != nil {
		return nil, err
	}
	out, err := backend.Call[model.AnalysisResult](ctx, s.client, http.MethodPost, endpoint("analysis", "interviews", interviewID), nil)
	if err != nil {
		return nil, s.fail(ctx, "analyze interview", err)
	}
	return &out, nil
}

// GetInterviewAnalysis returns the stored analysis.
func (s *AnalysisService) GetInterviewAnalysis(ctx context.Context, interviewID string) (*model.AnalysisResult, error) {
	if err := requireID("interview", interviewID); err != nil {
		return nil, err
	}
	out, err := backend.Call[model.AnalysisResult](ctx, s.client, http.MethodGet, endpoint("analysis", "interviews", interviewID), nil)
	if err != nil {
		return nil, s.fail(ctx, "get interview analysis", err)
	}
	return &out, nil
}

// GetAnswerFeedback returns feedback for a single answer.
func (s *AnalysisService) GetAnswerFeedback(ctx context.Context, answerID string) (*model.AnswerFeedback, error) {
	if err := requireID("answer", answerID); err != nil {
		return nil, err
	}
	out, err := backend.Call[model.AnswerFeedback](ctx, s.client, http.MethodGet, endpoint("analysis", "answers", answerID), nil)
	if err != nil {
		return nil, s.fail(ctx, "get answer feedback", err)
	}
	return &out, nil
}

// MatchResume scores a resume against a job.
func (s *AnalysisService) MatchResume(ctx context.Context, req model.ResumeMatchRequest) (*model.ResumeMatch, error) {
	if err := requireID("job", req.JobID); err != nil {
		return nil, err
	}
	if err := requireID("resume", req.ResumeID); err != nil {
		return nil, err
	}
	out, err := backend.Call[model.ResumeMatch](ctx, s.client, http.MethodPost, endpoint("analysis", "resume-match"), req)
	if err != nil {
		return nil, s.fail(ctx, "match resume", err)
	}
	return &out, nil
}
