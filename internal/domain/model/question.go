package model

import "errors"

// Question is one interview prompt.
type Question struct {
	ID          string     `json:"id"`
	InterviewID string     `json:"interview_id,omitempty"`
	Text        string     `json:"text"`
	Category    string     `json:"category,omitempty"`
	Difficulty  Difficulty `json:"difficulty,omitempty"`
	Order       int        `json:"order"`
	Hints       []string   `json:"hints,omitempty"`
}

// GenerateQuestionsRequest asks the backend to generate prompts.
type GenerateQuestionsRequest struct {
	InterviewID string        `json:"interview_id,omitempty"`
	JobID       string        `json:"job_id,omitempty"`
	ResumeID    string        `json:"resume_id,omitempty"`
	Type        InterviewType `json:"type,omitempty"`
	Difficulty  Difficulty    `json:"difficulty,omitempty"`
	Count       int           `json:"count"`
}

// Validate requires some context to generate from.
func (r *GenerateQuestionsRequest) Validate() error {
	if r.InterviewID == "" && r.JobID == "" && r.ResumeID == "" {
		return errors.New("an interview, job or resume is required")
	}
	if r.Count <= 0 {
		r.Count = 5
	}
	return nil
}
