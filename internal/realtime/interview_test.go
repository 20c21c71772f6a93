package realtime

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainrt "github.com/prepdeck/prepdeck-web/internal/domain/realtime"
)

func TestInterviewClient_Commands(t *testing.T) {
	conn := newFakeConn()
	c := NewInterviewClient(Options{URL: "ws://backend.test/ws", Dialer: &fakeDialer{conns: []*fakeConn{conn}}})
	t.Cleanup(func() { _ = c.Close() })
	require.NoError(t, c.Connect(context.Background(), "tok"))

	assert.True(t, c.JoinSession("s1"))
	assert.True(t, c.SubmitAnswer(domainrt.AnswerSubmission{SessionID: "s1", QuestionID: "q1", Answer: "Use a queue"}))
	assert.True(t, c.RequestNextQuestion("s1"))
	assert.True(t, c.StartTranscription("s1", "en-US"))
	assert.True(t, c.StopTranscription("s1"))
	assert.True(t, c.LeaveSession("s1"))

	sent := conn.sentEvents(t)
	types := make([]domainrt.EventType, 0, len(sent))
	for _, ev := range sent {
		types = append(types, ev.Type)
	}
	assert.Equal(t, []domainrt.EventType{
		domainrt.EventJoinSession,
		domainrt.EventSubmitAnswer,
		domainrt.EventNextQuestion,
		domainrt.EventStartTranscription,
		domainrt.EventStopTranscription,
		domainrt.EventLeaveSession,
	}, types)

	sub, err := domainrt.Decode[domainrt.AnswerSubmission](sent[1])
	require.NoError(t, err)
	assert.Equal(t, "Use a queue", sub.Answer)
	tr, err := domainrt.Decode[domainrt.TranscriptionRequest](sent[3])
	require.NoError(t, err)
	assert.Equal(t, "en-US", tr.Language)
}

func TestInterviewClient_TypedListeners(t *testing.T) {
	conn := newFakeConn()
	c := NewInterviewClient(Options{URL: "ws://backend.test/ws", Dialer: &fakeDialer{conns: []*fakeConn{conn}}})
	t.Cleanup(func() { _ = c.Close() })

	questions := make(chan domainrt.QuestionPayload, 1)
	errs := make(chan domainrt.ErrorPayload, 1)
	acks := make(chan domainrt.AnswerAck, 1)
	c.OnQuestion(func(q domainrt.QuestionPayload) { questions <- q })
	c.OnError(func(e domainrt.ErrorPayload) { errs <- e })
	c.OnAnswerAck(func(a domainrt.AnswerAck) { acks <- a })
	require.NoError(t, c.Connect(context.Background(), ""))

	conn.push(t, domainrt.Event{Type: domainrt.EventAnswerAck, Data: json.RawMessage(`"not an object"`)})
	conn.push(t, domainrt.Event{Type: domainrt.EventQuestion, Data: json.RawMessage(`{"question_id":"q2","text":"Why us?","order":2,"total":5}`)})
	conn.push(t, domainrt.Event{Type: domainrt.EventError, Data: json.RawMessage(`{"code":"limit","message":"Monthly limit reached"}`)})

	select {
	case q := <-questions:
		assert.Equal(t, "q2", q.QuestionID)
		assert.Equal(t, 5, q.Total)
	case <-time.After(waitFor):
		t.Fatal("no question delivered")
	}
	select {
	case e := <-errs:
		assert.Equal(t, "Monthly limit reached", e.Message)
	case <-time.After(waitFor):
		t.Fatal("no error delivered")
	}
	assert.Empty(t, acks, "malformed payloads are skipped")
}
