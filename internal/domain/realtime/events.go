// Package realtime defines the frames exchanged with the interview socket.
package realtime

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType names a socket frame.
type EventType string

const (
	// Client to server.
	EventJoinSession        EventType = "join_session"
	EventLeaveSession       EventType = "leave_session"
	EventSubmitAnswer       EventType = "submit_answer"
	EventNextQuestion       EventType = "next_question"
	EventStartTranscription EventType = "transcription_start"
	EventStopTranscription  EventType = "transcription_stop"

	// Server to client.
	EventSessionJoined       EventType = "session_joined"
	EventSessionLeft         EventType = "session_left"
	EventSessionUpdate       EventType = "session_update"
	EventQuestion            EventType = "question"
	EventAnswerAck           EventType = "answer_ack"
	EventTranscriptionResult EventType = "transcription_result"
	EventError               EventType = "error"
)

// Event is the JSON envelope of every frame. Data stays raw until a
// listener decodes it into the payload type for Type.
type Event struct {
	Type EventType       `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// NewEvent marshals data into an Event.
func NewEvent(t EventType, data any) (Event, error) {
	ev := Event{Type: t}
	if data == nil {
		return ev, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return ev, fmt.Errorf("encode %s payload: %w", t, err)
	}
	ev.Data = raw
	return ev, nil
}

// Decode unmarshals the event data into T.
func Decode[T any](ev Event) (T, error) {
	var out T
	if len(ev.Data) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(ev.Data, &out); err != nil {
		return out, fmt.Errorf("decode %s payload: %w", ev.Type, err)
	}
	return out, nil
}

// SessionRef targets an interview room.
type SessionRef struct {
	SessionID string `json:"session_id"`
}

// AnswerSubmission is sent when the candidate finishes an answer.
type AnswerSubmission struct {
	SessionID       string `json:"session_id"`
	QuestionID      string `json:"question_id"`
	Answer          string `json:"answer"`
	DurationSeconds int    `json:"duration_seconds,omitempty"`
}

// TranscriptionRequest starts or stops speech transcription.
type TranscriptionRequest struct {
	SessionID string `json:"session_id"`
	Language  string `json:"language,omitempty"`
}

// SessionJoined confirms room membership.
type SessionJoined struct {
	SessionID    string `json:"session_id"`
	Participants int    `json:"participants,omitempty"`
}

// SessionUpdate reports a change in interview progress.
type SessionUpdate struct {
	SessionID       string `json:"session_id"`
	Status          string `json:"status"`
	CurrentQuestion int    `json:"current_question"`
	QuestionCount   int    `json:"question_count"`
}

// QuestionPayload delivers the next prompt.
type QuestionPayload struct {
	SessionID  string   `json:"session_id"`
	QuestionID string   `json:"question_id"`
	Text       string   `json:"text"`
	Category   string   `json:"category,omitempty"`
	Order      int      `json:"order"`
	Total      int      `json:"total"`
	TimeLimit  int      `json:"time_limit_seconds,omitempty"`
	Hints      []string `json:"hints,omitempty"`
}

// AnswerAck confirms a stored answer and may carry quick feedback.
type AnswerAck struct {
	SessionID  string  `json:"session_id"`
	QuestionID string  `json:"question_id"`
	AnswerID   string  `json:"answer_id"`
	Score      float64 `json:"score,omitempty"`
	Feedback   string  `json:"feedback,omitempty"`
}

// TranscriptionResult is a partial or final transcript chunk.
type TranscriptionResult struct {
	SessionID string    `json:"session_id"`
	Text      string    `json:"text"`
	Final     bool      `json:"final"`
	At        time.Time `json:"at,omitempty"`
}

// ErrorPayload is a server-reported failure.
type ErrorPayload struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}
