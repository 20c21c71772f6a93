package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/prepdeck/prepdeck-web/internal/backend"
	"github.com/prepdeck/prepdeck-web/internal/service"
)

const (
	msgUnreachable = "We couldn't reach the server. Check your connection and try again."
	msgBadResponse = "The server sent an unexpected response. Please try again."
	msgGeneric     = "Something went wrong. Please try again."
	msgExpired     = "Your session has expired. Please sign in again."
)

// ErrorMessage maps err to the sentence shown in an error panel. Backend
// messages are passed through; transport and decode failures get fixed copy.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "Request timed out. Please try again."
	case errors.Is(err, context.Canceled):
		return "Request was canceled."
	case errors.Is(err, backend.ErrUnauthorized):
		return msgExpired
	case errors.Is(err, service.ErrMissingID),
		errors.Is(err, service.ErrInvalidProbePath),
		errors.Is(err, service.ErrInvalidExpression):
		return err.Error()
	}

	apiErr, ok := backend.AsAPIError(err)
	if !ok {
		return msgGeneric
	}
	switch apiErr.Kind {
	case backend.KindTransport:
		return msgUnreachable
	case backend.KindDecode:
		return msgBadResponse
	default:
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return msgGeneric
	}
}

// DetermineErrorStatus maps err to the status a fragment or page is served
// with. The layout's htmx-config swaps 4xx/5xx bodies, so error panels
// still replace their placeholder.
func DetermineErrorStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, backend.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrMissingID),
		errors.Is(err, service.ErrInvalidProbePath),
		errors.Is(err, service.ErrInvalidExpression):
		return http.StatusBadRequest
	}

	apiErr, ok := backend.AsAPIError(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch apiErr.Kind {
	case backend.KindApplication:
		return http.StatusUnprocessableEntity
	case backend.KindStatus:
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			return apiErr.StatusCode
		}
		return http.StatusBadGateway
	default:
		return http.StatusBadGateway
	}
}
