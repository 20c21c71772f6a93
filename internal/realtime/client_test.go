package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainrt "github.com/prepdeck/prepdeck-web/internal/domain/realtime"
)

type fakeConn struct {
	inbound chan []byte
	done    chan struct{}
	once    sync.Once

	mu   sync.Mutex
	sent [][]byte
}

func newFakeConn() *fakeConn {
	return &fakeConn{inbound: make(chan []byte, 16), done: make(chan struct{})}
}

func (c *fakeConn) Receive() ([]byte, error) {
	select {
	case frame := <-c.inbound:
		return frame, nil
	case <-c.done:
		return nil, io.EOF
	}
}

func (c *fakeConn) Send(frame []byte) error {
	select {
	case <-c.done:
		return errors.New("closed")
	default:
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, append([]byte(nil), frame...))
	return nil
}

func (c *fakeConn) Close() error {
	c.once.Do(func() { close(c.done) })
	return nil
}

// drop simulates the server going away.
func (c *fakeConn) drop() { _ = c.Close() }

func (c *fakeConn) push(t *testing.T, ev domainrt.Event) {
	t.Helper()
	raw, err := json.Marshal(ev)
	require.NoError(t, err)
	c.inbound <- raw
}

func (c *fakeConn) sentEvents(t *testing.T) []domainrt.Event {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domainrt.Event, 0, len(c.sent))
	for _, raw := range c.sent {
		var ev domainrt.Event
		require.NoError(t, json.Unmarshal(raw, &ev))
		out = append(out, ev)
	}
	return out
}

// fakeDialer hands out conns in order; once exhausted it fails every dial.
type fakeDialer struct {
	mu    sync.Mutex
	conns []*fakeConn
	urls  []string
	fail  error
	gate  chan struct{}
}

func (d *fakeDialer) Dial(_ context.Context, url, _ string) (Conn, error) {
	if d.gate != nil {
		<-d.gate
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.urls = append(d.urls, url)
	if d.fail != nil {
		return nil, d.fail
	}
	if len(d.conns) == 0 {
		return nil, errors.New("connection refused")
	}
	c := d.conns[0]
	d.conns = d.conns[1:]
	return c, nil
}

func (d *fakeDialer) dials() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.urls)
}

func (d *fakeDialer) add(c *fakeConn) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.conns = append(d.conns, c)
}

func fastPolicy(attempts int) ReconnectPolicy {
	return ReconnectPolicy{Delay: 5 * time.Millisecond, MaxAttempts: attempts}
}

func newTestClient(d *fakeDialer, policy ReconnectPolicy) *Client {
	return NewClient(Options{URL: "ws://backend.test/ws/interview", Dialer: d, Policy: policy})
}

const waitFor = 2 * time.Second

func TestConnect_AppendsToken(t *testing.T) {
	conn := newFakeConn()
	d := &fakeDialer{conns: []*fakeConn{conn}}
	c := newTestClient(d, fastPolicy(1))
	t.Cleanup(func() { _ = c.Close() })

	require.NoError(t, c.Connect(context.Background(), "abc 123"))
	assert.Equal(t, StateConnected, c.State())
	assert.Equal(t, []string{"ws://backend.test/ws/interview?token=abc+123"}, d.urls)

	require.NoError(t, c.Connect(context.Background(), "abc 123"), "already connected is a no-op")
	assert.Equal(t, 1, d.dials())
}

func TestConnect_NoToken(t *testing.T) {
	d := &fakeDialer{conns: []*fakeConn{newFakeConn()}}
	c := newTestClient(d, fastPolicy(1))
	t.Cleanup(func() { _ = c.Close() })

	require.NoError(t, c.Connect(context.Background(), ""))
	assert.Equal(t, []string{"ws://backend.test/ws/interview"}, d.urls)
}

func TestConnect_DialError(t *testing.T) {
	d := &fakeDialer{fail: errors.New("handshake refused")}
	c := newTestClient(d, fastPolicy(3))

	err := c.Connect(context.Background(), "tok")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "handshake refused")
	assert.Equal(t, StateDisconnected, c.State())
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 1, d.dials(), "a failed initial connect is not retried")
}

func TestConnect_WhileDialing(t *testing.T) {
	gate := make(chan struct{})
	d := &fakeDialer{conns: []*fakeConn{newFakeConn()}, gate: gate}
	c := newTestClient(d, fastPolicy(1))
	t.Cleanup(func() { _ = c.Close() })

	first := make(chan error, 1)
	go func() { first <- c.Connect(context.Background(), "tok") }()
	require.Eventually(t, func() bool { return c.State() == StateConnecting }, waitFor, time.Millisecond)

	assert.ErrorIs(t, c.Connect(context.Background(), "tok"), ErrConnecting)

	close(gate)
	require.NoError(t, <-first)
	assert.Equal(t, StateConnected, c.State())
	assert.Equal(t, 1, d.dials())
}

func TestConnect_RequiresURL(t *testing.T) {
	c := NewClient(Options{Dialer: &fakeDialer{}})
	assert.ErrorIs(t, c.Connect(context.Background(), ""), ErrNoURL)
}

func TestDispatch_ListenersAndIsolation(t *testing.T) {
	conn := newFakeConn()
	c := newTestClient(&fakeDialer{conns: []*fakeConn{conn}}, fastPolicy(0))
	t.Cleanup(func() { _ = c.Close() })

	var first, third atomic.Int32
	c.On(domainrt.EventQuestion, func(domainrt.Event) { first.Add(1) })
	c.On(domainrt.EventQuestion, func(domainrt.Event) { panic("listener bug") })
	c.On(domainrt.EventQuestion, func(domainrt.Event) { third.Add(1) })
	var other atomic.Int32
	c.On(domainrt.EventAnswerAck, func(domainrt.Event) { other.Add(1) })

	require.NoError(t, c.Connect(context.Background(), ""))
	conn.push(t, domainrt.Event{Type: domainrt.EventQuestion, Data: json.RawMessage(`{"question_id":"q1"}`)})

	assert.Eventually(t, func() bool { return first.Load() == 1 && third.Load() == 1 }, waitFor, 5*time.Millisecond)
	assert.Zero(t, other.Load())
	assert.Equal(t, StateConnected, c.State(), "a panicking listener does not break the socket")
}

func TestDispatch_DropsUndecodableFrames(t *testing.T) {
	conn := newFakeConn()
	c := newTestClient(&fakeDialer{conns: []*fakeConn{conn}}, fastPolicy(0))
	t.Cleanup(func() { _ = c.Close() })

	var got atomic.Int32
	c.On(domainrt.EventError, func(domainrt.Event) { got.Add(1) })
	require.NoError(t, c.Connect(context.Background(), ""))

	conn.inbound <- []byte("not json")
	conn.inbound <- []byte(`{"data":{}}`)
	conn.push(t, domainrt.Event{Type: domainrt.EventError})

	assert.Eventually(t, func() bool { return got.Load() == 1 }, waitFor, 5*time.Millisecond)
	assert.Equal(t, StateConnected, c.State())
}

func TestOff(t *testing.T) {
	conn := newFakeConn()
	c := newTestClient(&fakeDialer{conns: []*fakeConn{conn}}, fastPolicy(0))
	t.Cleanup(func() { _ = c.Close() })

	var a, b atomic.Int32
	idA := c.On(domainrt.EventSessionUpdate, func(domainrt.Event) { a.Add(1) })
	c.On(domainrt.EventSessionUpdate, func(domainrt.Event) { b.Add(1) })
	c.Off(domainrt.EventSessionUpdate, idA)

	require.NoError(t, c.Connect(context.Background(), ""))
	conn.push(t, domainrt.Event{Type: domainrt.EventSessionUpdate})
	assert.Eventually(t, func() bool { return b.Load() == 1 }, waitFor, 5*time.Millisecond)
	assert.Zero(t, a.Load())

	c.Off(domainrt.EventSessionUpdate)
	conn.push(t, domainrt.Event{Type: domainrt.EventSessionUpdate})
	conn.push(t, domainrt.Event{Type: domainrt.EventError})
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), b.Load(), "Off without ids clears every listener for the type")
}

func TestSend(t *testing.T) {
	conn := newFakeConn()
	c := newTestClient(&fakeDialer{conns: []*fakeConn{conn}}, fastPolicy(0))
	t.Cleanup(func() { _ = c.Close() })

	assert.False(t, c.Send(domainrt.EventJoinSession, domainrt.SessionRef{SessionID: "s1"}), "not open yet")

	require.NoError(t, c.Connect(context.Background(), ""))
	assert.True(t, c.Send(domainrt.EventJoinSession, domainrt.SessionRef{SessionID: "s1"}))

	sent := conn.sentEvents(t)
	require.Len(t, sent, 1, "the early send was not queued")
	assert.Equal(t, domainrt.EventJoinSession, sent[0].Type)
	ref, err := domainrt.Decode[domainrt.SessionRef](sent[0])
	require.NoError(t, err)
	assert.Equal(t, "s1", ref.SessionID)

	assert.False(t, c.Send(domainrt.EventSubmitAnswer, func() {}), "unencodable data is dropped")
}

func TestReconnect_ResetsAttemptsOnSuccess(t *testing.T) {
	first, second := newFakeConn(), newFakeConn()
	d := &fakeDialer{conns: []*fakeConn{first}}
	var states []State
	var mu sync.Mutex
	c := NewClient(Options{
		URL:    "ws://backend.test/ws",
		Dialer: d,
		Policy: ReconnectPolicy{Delay: 40 * time.Millisecond, MaxAttempts: 3},
		OnStateChange: func(s State) {
			mu.Lock()
			states = append(states, s)
			mu.Unlock()
		},
	})
	t.Cleanup(func() { _ = c.Close() })

	require.NoError(t, c.Connect(context.Background(), "tok"))

	// First redial fails (no conn queued), second succeeds.
	first.drop()
	assert.Eventually(t, func() bool { return d.dials() >= 2 }, waitFor, time.Millisecond)
	d.add(second)

	assert.Eventually(t, func() bool { return c.State() == StateConnected && d.dials() >= 3 }, waitFor, time.Millisecond)
	assert.Zero(t, c.Attempts())
	assert.True(t, c.Send(domainrt.EventNextQuestion, nil))
	assert.Len(t, second.sentEvents(t), 1)

	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, states, StateClosed)
	assert.Contains(t, states, StateReconnecting)
	assert.Equal(t, StateConnected, states[len(states)-1])
}

func TestReconnect_GivesUpAfterMaxAttempts(t *testing.T) {
	conn := newFakeConn()
	d := &fakeDialer{conns: []*fakeConn{conn}}
	c := newTestClient(d, fastPolicy(3))
	t.Cleanup(func() { _ = c.Close() })

	require.NoError(t, c.Connect(context.Background(), ""))
	conn.drop()

	assert.Eventually(t, func() bool { return c.State() == StateFailed }, waitFor, time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 1+3, d.dials(), "exactly MaxAttempts redials after the initial connect")
	assert.False(t, c.Send(domainrt.EventJoinSession, nil))

	// An explicit Connect starts over.
	d.add(newFakeConn())
	require.NoError(t, c.Connect(context.Background(), ""))
	assert.Equal(t, StateConnected, c.State())
}

func TestClose_StopsReconnect(t *testing.T) {
	conn := newFakeConn()
	d := &fakeDialer{conns: []*fakeConn{conn}}
	c := newTestClient(d, ReconnectPolicy{Delay: 50 * time.Millisecond, MaxAttempts: 5})

	require.NoError(t, c.Connect(context.Background(), ""))
	conn.drop()
	assert.Eventually(t, func() bool { return c.State() == StateReconnecting }, waitFor, time.Millisecond)

	require.NoError(t, c.Close())
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 1, d.dials())
	assert.Equal(t, StateDisconnected, c.State())
}

func TestClose_DoesNotReconnect(t *testing.T) {
	conn := newFakeConn()
	d := &fakeDialer{conns: []*fakeConn{conn}}
	c := newTestClient(d, fastPolicy(5))

	require.NoError(t, c.Connect(context.Background(), ""))
	require.NoError(t, c.Close())
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 1, d.dials())
	assert.Equal(t, StateDisconnected, c.State())
}
