package realtime

import (
	domainrt "github.com/prepdeck/prepdeck-web/internal/domain/realtime"
)

// InterviewClient adds the interview room protocol on top of Client.
type InterviewClient struct {
	*Client
}

// NewInterviewClient builds an InterviewClient.
func NewInterviewClient(opts Options) *InterviewClient {
	return &InterviewClient{Client: NewClient(opts)}
}

// JoinSession enters the room for sessionID.
func (c *InterviewClient) JoinSession(sessionID string) bool {
	return c.Send(domainrt.EventJoinSession, domainrt.SessionRef{SessionID: sessionID})
}

// LeaveSession leaves the room for sessionID.
func (c *InterviewClient) LeaveSession(sessionID string) bool {
	return c.Send(domainrt.EventLeaveSession, domainrt.SessionRef{SessionID: sessionID})
}

// SubmitAnswer sends the candidate's answer for a question.
func (c *InterviewClient) SubmitAnswer(sub domainrt.AnswerSubmission) bool {
	return c.Send(domainrt.EventSubmitAnswer, sub)
}

// RequestNextQuestion asks the server to advance the interview.
func (c *InterviewClient) RequestNextQuestion(sessionID string) bool {
	return c.Send(domainrt.EventNextQuestion, domainrt.SessionRef{SessionID: sessionID})
}

// StartTranscription begins streaming transcripts for the session.
func (c *InterviewClient) StartTranscription(sessionID, language string) bool {
	return c.Send(domainrt.EventStartTranscription, domainrt.TranscriptionRequest{SessionID: sessionID, Language: language})
}

// StopTranscription ends transcription for the session.
func (c *InterviewClient) StopTranscription(sessionID string) bool {
	return c.Send(domainrt.EventStopTranscription, domainrt.TranscriptionRequest{SessionID: sessionID})
}

// OnSessionJoined registers a typed listener for session_joined.
func (c *InterviewClient) OnSessionJoined(fn func(domainrt.SessionJoined)) ListenerID {
	return onTyped(c.Client, domainrt.EventSessionJoined, fn)
}

// OnSessionUpdate registers a typed listener for session_update.
func (c *InterviewClient) OnSessionUpdate(fn func(domainrt.SessionUpdate)) ListenerID {
	return onTyped(c.Client, domainrt.EventSessionUpdate, fn)
}

// OnQuestion registers a typed listener for question.
func (c *InterviewClient) OnQuestion(fn func(domainrt.QuestionPayload)) ListenerID {
	return onTyped(c.Client, domainrt.EventQuestion, fn)
}

// OnAnswerAck registers a typed listener for answer_ack.
func (c *InterviewClient) OnAnswerAck(fn func(domainrt.AnswerAck)) ListenerID {
	return onTyped(c.Client, domainrt.EventAnswerAck, fn)
}

// OnTranscription registers a typed listener for transcription_result.
func (c *InterviewClient) OnTranscription(fn func(domainrt.TranscriptionResult)) ListenerID {
	return onTyped(c.Client, domainrt.EventTranscriptionResult, fn)
}

// OnError registers a typed listener for server error frames.
func (c *InterviewClient) OnError(fn func(domainrt.ErrorPayload)) ListenerID {
	return onTyped(c.Client, domainrt.EventError, fn)
}

// onTyped decodes the payload before calling fn; frames that do not decode
// are logged and skipped.
func onTyped[T any](c *Client, t domainrt.EventType, fn func(T)) ListenerID {
	return c.On(t, func(ev domainrt.Event) {
		payload, err := domainrt.Decode[T](ev)
		if err != nil {
			c.logger.Warn("dropping malformed payload", "type", t, "error", err)
			return
		}
		fn(payload)
	})
}
