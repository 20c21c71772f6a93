package backend

import (
	"context"
	"net/http"
)

// Envelope is the backend's response wrapper: {success, data, error}.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// Result returns Data when Success is set, otherwise an application error
// carrying the backend's message.
func (e Envelope[T]) Result() (T, error) {
	if e.Success {
		return e.Data, nil
	}
	var zero T
	msg := e.Error
	if msg == "" {
		msg = e.Message
	}
	if msg == "" {
		msg = "request failed"
	}
	return zero, &APIError{Kind: KindApplication, Message: msg}
}

// Call performs a JSON request and unwraps the envelope. An empty 2xx body
// (204 No Content) counts as success with a zero T.
func Call[T any](ctx context.Context, c *Client, method, endpoint string, body any) (T, error) {
	env := Envelope[T]{Success: true}
	if err := c.Do(ctx, method, endpoint, body, &env); err != nil {
		var zero T
		return zero, err
	}
	return unwrap(env, method, endpoint)
}

// CallUpload performs a multipart upload and unwraps the envelope.
func CallUpload[T any](ctx context.Context, c *Client, endpoint string, up Upload) (T, error) {
	env := Envelope[T]{Success: true}
	if err := c.Upload(ctx, endpoint, up, &env); err != nil {
		var zero T
		return zero, err
	}
	return unwrap(env, http.MethodPost, endpoint)
}

func unwrap[T any](env Envelope[T], method, endpoint string) (T, error) {
	v, err := env.Result()
	if apiErr, ok := AsAPIError(err); ok {
		apiErr.Method = method
		apiErr.Endpoint = endpoint
	}
	return v, err
}
