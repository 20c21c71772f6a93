package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"

	"github.com/prepdeck/prepdeck-web/internal/backend"
)

// JMESPathEvaluator abstracts JMESPath operations for testability.
type JMESPathEvaluator interface {
	Validate(expr string) error
	Evaluate(expr string, data any) (any, error)
}

type jmespathLibEvaluator struct{}

func (jmespathLibEvaluator) Validate(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return nil
	}
	_, err := jmespath.Compile(expr)
	return err
}

func (jmespathLibEvaluator) Evaluate(expr string, data any) (any, error) {
	return jmespath.Search(expr, data)
}

// ProbeServiceOptions groups dependencies for ProbeService.
type ProbeServiceOptions struct {
	API       APIOptions
	Evaluator JMESPathEvaluator // Optional: defaults to go-jmespath
}

// ProbeService issues raw GETs against the backend with the caller's token
// for the admin permission console.
type ProbeService struct {
	api
	eval JMESPathEvaluator
}

// NewProbeService constructs a ProbeService.
func NewProbeService(opts ProbeServiceOptions) *ProbeService {
	eval := opts.Evaluator
	if eval == nil {
		eval = jmespathLibEvaluator{}
	}
	return &ProbeService{api: newAPI(opts.API, "probe_service"), eval: eval}
}

var (
	// ErrInvalidProbePath rejects paths that are not plain absolute backend paths.
	ErrInvalidProbePath = errors.New("probe path must be an absolute backend path")
	// ErrInvalidExpression wraps JMESPath compile failures.
	ErrInvalidExpression = errors.New("invalid JMESPath expression")
)

// ProbeOutput is the envelope data of a probe, plus the filtered view when
// an expression was given.
type ProbeOutput struct {
	Raw      json.RawMessage
	Filtered json.RawMessage
}

// Probe GETs path and applies expr, when non-empty, to the unwrapped data.
func (s *ProbeService) Probe(ctx context.Context, path, expr string) (*ProbeOutput, error) {
	path = strings.TrimSpace(path)
	expr = strings.TrimSpace(expr)
	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") || strings.Contains(path, "..") {
		return nil, ErrInvalidProbePath
	}
	if err := s.eval.Validate(expr); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidExpression, err)
	}

	raw, err := backend.Call[json.RawMessage](ctx, s.client, http.MethodGet, path, nil)
	if err != nil {
		return nil, s.fail(ctx, "probe "+path, err)
	}
	out := &ProbeOutput{Raw: raw}
	if expr == "" || len(raw) == 0 {
		return out, nil
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode probe response: %w", err)
	}
	filtered, err := s.eval.Evaluate(expr, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidExpression, err)
	}
	if out.Filtered, err = json.Marshal(filtered); err != nil {
		return nil, fmt.Errorf("encode filtered result: %w", err)
	}
	return out, nil
}
