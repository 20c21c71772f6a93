package model

import (
	"errors"
	"strings"
	"time"
)

// InterviewType selects the question mix.
type InterviewType string

const (
	InterviewBehavioral InterviewType = "behavioral"
	InterviewTechnical  InterviewType = "technical"
	InterviewMixed      InterviewType = "mixed"
)

// Difficulty is shared by interviews and questions.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// InterviewStatus is the lifecycle of a practice session.
type InterviewStatus string

const (
	InterviewScheduled  InterviewStatus = "scheduled"
	InterviewInProgress InterviewStatus = "in_progress"
	InterviewCompleted  InterviewStatus = "completed"
	InterviewCanceled   InterviewStatus = "canceled"
)

// InterviewSession is one practice interview.
type InterviewSession struct {
	ID              string          `json:"id"`
	JobID           string          `json:"job_id,omitempty"`
	ResumeID        string          `json:"resume_id,omitempty"`
	Title           string          `json:"title"`
	Type            InterviewType   `json:"type"`
	Difficulty      Difficulty      `json:"difficulty"`
	Status          InterviewStatus `json:"status"`
	QuestionCount   int             `json:"question_count"`
	CurrentQuestion int             `json:"current_question"`
	StartedAt       *time.Time      `json:"started_at,omitempty"`
	CompletedAt     *time.Time      `json:"completed_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// CreateInterviewRequest schedules a practice interview.
type CreateInterviewRequest struct {
	JobID         string        `json:"job_id,omitempty"`
	ResumeID      string        `json:"resume_id,omitempty"`
	Title         string        `json:"title,omitempty"`
	Type          InterviewType `json:"type"`
	Difficulty    Difficulty    `json:"difficulty"`
	QuestionCount int           `json:"question_count"`
}

// Validate fills defaults and rejects unknown enum values.
func (r *CreateInterviewRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	if r.Type == "" {
		r.Type = InterviewMixed
	}
	switch r.Type {
	case InterviewBehavioral, InterviewTechnical, InterviewMixed:
	default:
		return errors.New("interview type is not supported")
	}
	if r.Difficulty == "" {
		r.Difficulty = DifficultyMedium
	}
	switch r.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return errors.New("difficulty is not supported")
	}
	if r.QuestionCount <= 0 {
		r.QuestionCount = 5
	}
	if r.QuestionCount > 50 {
		return errors.New("question count must be 50 or fewer")
	}
	return nil
}

// Answer is a submitted response to a question.
type Answer struct {
	ID              string    `json:"id,omitempty"`
	QuestionID      string    `json:"question_id"`
	Text            string    `json:"text"`
	DurationSeconds int       `json:"duration_seconds,omitempty"`
	SubmittedAt     time.Time `json:"submitted_at,omitempty"`
}
