package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxJobTitleLen = 200

// JobStatus tracks where the user is with a target job.
type JobStatus string

const (
	JobSaved        JobStatus = "saved"
	JobApplied      JobStatus = "applied"
	JobInterviewing JobStatus = "interviewing"
	JobOffer        JobStatus = "offer"
	JobArchived     JobStatus = "archived"
)

// Job is a posting the user is preparing for.
type Job struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	Location     string    `json:"location,omitempty"`
	Description  string    `json:"description,omitempty"`
	Requirements []string  `json:"requirements,omitempty"`
	URL          string    `json:"url,omitempty"`
	Status       JobStatus `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// JobListOptions filters the job list.
type JobListOptions struct {
	Status JobStatus
	Limit  int
	Offset int
}

// CreateJobRequest adds a job.
type CreateJobRequest struct {
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	Location     string    `json:"location,omitempty"`
	Description  string    `json:"description,omitempty"`
	Requirements []string  `json:"requirements,omitempty"`
	URL          string    `json:"url,omitempty"`
	Status       JobStatus `json:"status,omitempty"`
}

// Validate trims fields and checks required ones.
func (r *CreateJobRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	r.Company = strings.TrimSpace(r.Company)
	if r.Title == "" {
		return errors.New("title is required")
	}
	if utf8.RuneCountInString(r.Title) > maxJobTitleLen {
		return errors.New("title is too long")
	}
	if r.Company == "" {
		return errors.New("company is required")
	}
	if r.Status == "" {
		r.Status = JobSaved
	}
	return nil
}

// UpdateJobRequest patches a job; nil fields are left unchanged.
type UpdateJobRequest struct {
	Title        *string    `json:"title,omitempty"`
	Company      *string    `json:"company,omitempty"`
	Location     *string    `json:"location,omitempty"`
	Description  *string    `json:"description,omitempty"`
	Requirements []string   `json:"requirements,omitempty"`
	URL          *string    `json:"url,omitempty"`
	Status       *JobStatus `json:"status,omitempty"`
}

// HasUpdates reports whether any field is set.
func (r UpdateJobRequest) HasUpdates() bool {
	return r.Title != nil || r.Company != nil || r.Location != nil || r.Description != nil ||
		r.Requirements != nil || r.URL != nil || r.Status != nil
}
