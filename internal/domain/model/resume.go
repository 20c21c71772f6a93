package model

import "time"

// ParseStatus reports the backend's progress extracting a resume.
type ParseStatus string

const (
	ParsePending   ParseStatus = "pending"
	ParseCompleted ParseStatus = "completed"
	ParseFailed    ParseStatus = "failed"
)

// Resume is an uploaded CV.
type Resume struct {
	ID           string      `json:"id"`
	FileName     string      `json:"file_name"`
	ContentType  string      `json:"content_type"`
	SizeBytes    int64       `json:"size_bytes"`
	IsPrimary    bool        `json:"is_primary"`
	ParseStatus  ParseStatus `json:"parse_status"`
	ParsedSkills []string    `json:"parsed_skills,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// AllowedResumeTypes lists the content types the backend parses.
var AllowedResumeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"text/plain": true,
}
