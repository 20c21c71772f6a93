package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind classifies a failed backend call.
type ErrorKind string

const (
	// KindTransport means the request never produced a response.
	KindTransport ErrorKind = "transport"
	// KindUnauthorized means the backend answered 401; the session has been cleared.
	KindUnauthorized ErrorKind = "unauthorized"
	// KindStatus means any other non-2xx response.
	KindStatus ErrorKind = "status"
	// KindApplication means a 2xx envelope with success=false.
	KindApplication ErrorKind = "application"
	// KindDecode means a 2xx response whose body was not the expected JSON.
	KindDecode ErrorKind = "decode"
)

// ErrUnauthorized matches every KindUnauthorized error via errors.Is.
var ErrUnauthorized = errors.New("session expired")

// APIError is returned for every failed call made through Client.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Method     string
	Endpoint   string
	// Message is user-presentable: the backend's own message or "HTTP <status>".
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind) + " error"
}

func (e *APIError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrUnauthorized) match 401 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Kind == KindUnauthorized
}

// AsAPIError extracts an *APIError from err.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// Message returns the user-presentable message for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.Error()
	}
	return err.Error()
}

// StatusMessage is the fallback message for a bodyless failure.
func StatusMessage(code int) string {
	return fmt.Sprintf("HTTP %d", code)
}

// messageFromBody pulls a readable message out of an error body. The backend
// uses "error" and "message"; some frameworks in front of it use "detail",
// either as a string or a list of {msg} objects.
func messageFromBody(body []byte) string {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil {
		return ""
	}
	for _, key := range []string{"error", "message", "detail"} {
		raw, ok := doc[key]
		if !ok {
			continue
		}
		if msg := rawMessage(raw); msg != "" {
			return msg
		}
	}
	return ""
}

func rawMessage(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var obj struct {
		Message string `json:"message"`
		Msg     string `json:"msg"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		if obj.Message != "" {
			return strings.TrimSpace(obj.Message)
		}
		return strings.TrimSpace(obj.Msg)
	}
	var list []struct {
		Msg     string `json:"msg"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &list); err == nil {
		parts := make([]string, 0, len(list))
		for _, item := range list {
			if m := item.Msg; m != "" {
				parts = append(parts, m)
			} else if item.Message != "" {
				parts = append(parts, item.Message)
			}
		}
		return strings.Join(parts, "; ")
	}
	return ""
}

func statusError(method, endpoint string, code int, body []byte) *APIError {
	msg := messageFromBody(body)
	if msg == "" {
		msg = StatusMessage(code)
	}
	kind := KindStatus
	if code == http.StatusUnauthorized {
		kind = KindUnauthorized
	}
	return &APIError{
		Kind:       kind,
		StatusCode: code,
		Method:     method,
		Endpoint:   endpoint,
		Message:    msg,
	}
}
