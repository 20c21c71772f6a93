package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/prepdeck/prepdeck-web/internal/backend"
	"github.com/prepdeck/prepdeck-web/internal/domain/model"
)

// ResumeFile is a resume to upload.
type ResumeFile struct {
	FileName    string
	ContentType string
	Content     io.Reader
}

// ResumeService wraps the /resumes endpoints.
type ResumeService struct{ api }

// NewResumeService constructs a ResumeService.
func NewResumeService(opts APIOptions) *ResumeService {
	return &ResumeService{newAPI(opts, "resume_service")}
}

// List returns the caller's resumes.
func (s *ResumeService) List(ctx context.Context) ([]model.Resume, error) {
	resumes, err := backend.Call[[]model.Resume](ctx, s.client, http.MethodGet, endpoint("resumes"), nil)
	if err != nil {
		return nil, s.fail(ctx, "list resumes", err)
	}
	return resumes, nil
}

// Get returns one resume.
func (s *ResumeService) Get(ctx context.Context, id string) (*model.Resume, error) {
	if err := requireID("resume", id); err != nil {
		return nil, err
	}
	r, err := backend.Call[model.Resume](ctx, s.client, http.MethodGet, endpoint("resumes", id), nil)
	if err != nil {
		return nil, s.fail(ctx, "get resume", err)
	}
	return &r, nil
}

// Upload sends a resume file as multipart form data.
func (s *ResumeService) Upload(ctx context.Context, f ResumeFile) (*model.Resume, error) {
	name := strings.TrimSpace(filepath.Base(f.FileName))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return nil, errors.New("file name is required")
	}
	if f.Content == nil {
		return nil, errors.New("file content is required")
	}
	ct := f.ContentType
	if ct == "" {
		ct = contentTypeFor(name)
	}
	if !model.AllowedResumeTypes[ct] {
		return nil, errors.New("resume must be a PDF, Word or text document")
	}

	r, err := backend.CallUpload[model.Resume](ctx, s.client, endpoint("resumes", "upload"), backend.Upload{
		FieldName:   "file",
		FileName:    name,
		ContentType: ct,
		Content:     f.Content,
	})
	if err != nil {
		return nil, s.fail(ctx, "upload resume", err)
	}
	return &r, nil
}

// SetPrimary marks a resume as the default for new interviews.
func (s *ResumeService) SetPrimary(ctx context.Context, id string) (*model.Resume, error) {
	if err := requireID("resume", id); err != nil {
		return nil, err
	}
	r, err := backend.Call[model.Resume](ctx, s.client, http.MethodPut, endpoint("resumes", id, "primary"), nil)
	if err != nil {
		return nil, s.fail(ctx, "set primary resume", err)
	}
	return &r, nil
}

// Delete removes a resume.
func (s *ResumeService) Delete(ctx context.Context, id string) error {
	if err := requireID("resume", id); err != nil {
		return err
	}
	if _, err := backend.Call[struct{}](ctx, s.client, http.MethodDelete, endpoint("resumes", id), nil); err != nil {
		return s.fail(ctx, "delete resume", err)
	}
	return nil
}

func contentTypeFor(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return "application/pdf"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".txt":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
