package model

import "time"

// AnswerFeedback scores a single answer.
type AnswerFeedback struct {
	QuestionID  string   `json:"question_id"`
	AnswerID    string   `json:"answer_id,omitempty"`
	Score       float64  `json:"score"`
	Feedback    string   `json:"feedback"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// AnalysisResult is the report for a completed interview.
type AnalysisResult struct {
	ID             string             `json:"id"`
	InterviewID    string             `json:"interview_id"`
	OverallScore   float64            `json:"overall_score"`
	Scores         map[string]float64 `json:"scores,omitempty"`
	Strengths      []string           `json:"strengths,omitempty"`
	Improvements   []string           `json:"improvements,omitempty"`
	Summary        string             `json:"summary,omitempty"`
	AnswerFeedback []AnswerFeedback   `json:"answer_feedback,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
}

// ResumeMatchRequest compares a resume with a job.
type ResumeMatchRequest struct {
	JobID    string `json:"job_id"`
	ResumeID string `json:"resume_id"`
}

// ResumeMatch is the fit between a resume and a job.
type ResumeMatch struct {
	JobID         string   `json:"job_id"`
	ResumeID      string   `json:"resume_id"`
	Score         float64  `json:"score"`
	MatchedSkills []string `json:"matched_skills,omitempty"`
	MissingSkills []string `json:"missing_skills,omitempty"`
	Summary       string   `json:"summary,omitempty"`
}
