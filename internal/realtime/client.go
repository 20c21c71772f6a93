// Package realtime is the interview WebSocket client: one socket, a listener
// table keyed by event type and bounded reconnection.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	domainrt "github.com/prepdeck/prepdeck-web/internal/domain/realtime"
	"github.com/prepdeck/prepdeck-web/internal/observability/statsd"
)

const defaultDialTimeout = 10 * time.Second

// Listener receives one decoded frame. Listeners run on the read goroutine.
type Listener func(ev domainrt.Event)

// ListenerID identifies a registration for Off.
type ListenerID uint64

type registration struct {
	id ListenerID
	fn Listener
}

// Options configures a Client.
type Options struct {
	URL    string // Required: ws:// or wss:// endpoint
	Origin string
	Dialer Dialer // defaults to WebsocketDialer
	Policy ReconnectPolicy
	// DialTimeout bounds each reconnect handshake.
	DialTimeout time.Duration
	// OnStateChange is called after every transition, outside the client lock.
	OnStateChange func(State)
	Metrics       statsd.Sink
	Logger        *slog.Logger
}

// Client keeps one socket open and fans inbound events out to listeners.
type Client struct {
	url         string
	origin      string
	dialer      Dialer
	policy      ReconnectPolicy
	dialTimeout time.Duration
	onState     func(State)
	metrics     statsd.Sink
	logger      *slog.Logger

	mu        sync.Mutex
	state     State
	conn      Conn
	gen       uint64
	token     string
	attempts  int
	closed    bool
	timer     *time.Timer
	listeners map[domainrt.EventType][]registration
	nextID    ListenerID
	pending   []State

	writeMu sync.Mutex
}

// ErrNoURL is returned by Connect when no endpoint is configured.
var ErrNoURL = errors.New("realtime: socket URL is required")

// ErrConnecting is returned by Connect while another Connect is dialing.
var ErrConnecting = errors.New("realtime: connect already in progress")

// NewClient builds a disconnected Client.
func NewClient(opts Options) *Client {
	dialer := opts.Dialer
	if dialer == nil {
		dialer = WebsocketDialer{}
	}
	origin := opts.Origin
	if origin == "" {
		origin = "http://localhost/"
	}
	timeout := opts.DialTimeout
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		url:         opts.URL,
		origin:      origin,
		dialer:      dialer,
		policy:      opts.Policy,
		dialTimeout: timeout,
		onState:     opts.OnStateChange,
		metrics:     opts.Metrics,
		logger:      logger.With("component", "realtime_client"),
		listeners:   make(map[domainrt.EventType][]registration),
	}
}

// State returns the current lifecycle state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Attempts returns how many reconnects have been tried since the last open.
func (c *Client) Attempts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attempts
}

// Connect opens the socket, passing token as a query parameter when set.
// It returns once the socket is open or the dial has failed. Calling it while
// connected is a no-op and calling it mid-dial returns ErrConnecting.
// Calling it after Failed starts a fresh budget.
func (c *Client) Connect(ctx context.Context, token string) error {
	if c.url == "" {
		return ErrNoURL
	}
	c.mu.Lock()
	switch c.state {
	case StateConnected:
		c.mu.Unlock()
		return nil
	case StateConnecting:
		c.mu.Unlock()
		return ErrConnecting
	}
	c.stopTimerLocked()
	c.closed = false
	c.token = token
	c.attempts = 0
	c.setStateLocked(StateConnecting)
	target, err := c.dialURLLocked()
	c.unlock()
	if err != nil {
		c.mu.Lock()
		c.setStateLocked(StateDisconnected)
		c.unlock()
		return err
	}

	conn, err := c.dialer.Dial(ctx, target, c.origin)
	if err != nil {
		c.mu.Lock()
		if !c.closed {
			c.setStateLocked(StateDisconnected)
		}
		c.unlock()
		c.logger.WarnContext(ctx, "socket connect failed", "error", err)
		return fmt.Errorf("connect: %w", err)
	}

	c.mu.Lock()
	if c.closed {
		c.unlock()
		_ = conn.Close()
		return errors.New("connect: client closed")
	}
	gen := c.openLocked(conn)
	c.unlock()
	c.logger.InfoContext(ctx, "socket connected")
	go c.readLoop(conn, gen)
	return nil
}

// Close ends the session and cancels any pending reconnect.
func (c *Client) Close() error {
	c.mu.Lock()
	c.closed = true
	c.stopTimerLocked()
	c.gen++
	conn := c.conn
	c.conn = nil
	c.attempts = 0
	c.setStateLocked(StateDisconnected)
	c.unlock()
	if conn != nil {
		return conn.Close()
	}
	return nil
}

// Send writes one event when the socket is open. Otherwise it logs a warning
// and returns false; nothing is queued.
func (c *Client) Send(t domainrt.EventType, data any) bool {
	c.mu.Lock()
	conn := c.conn
	state := c.state
	c.mu.Unlock()
	if state != StateConnected || conn == nil {
		c.logger.Warn("socket not open, dropping event", "type", t, "state", state.String())
		return false
	}

	ev, err := domainrt.NewEvent(t, data)
	if err != nil {
		c.logger.Error("encode event", "type", t, "error", err)
		return false
	}
	frame, err := json.Marshal(ev)
	if err != nil {
		c.logger.Error("encode event", "type", t, "error", err)
		return false
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := conn.Send(frame); err != nil {
		c.logger.Warn("socket write failed", "type", t, "error", err)
		return false
	}
	return true
}

// On registers fn for events of type t. Registrations are additive.
func (c *Client) On(t domainrt.EventType, fn Listener) ListenerID {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	id := c.nextID
	c.listeners[t] = append(c.listeners[t], registration{id: id, fn: fn})
	return id
}

// Off removes the given registrations for t; with no ids it removes them all.
func (c *Client) Off(t domainrt.EventType, ids ...ListenerID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(ids) == 0 {
		delete(c.listeners, t)
		return
	}
	drop := make(map[ListenerID]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := c.listeners[t][:0:0]
	for _, r := range c.listeners[t] {
		if !drop[r.id] {
			kept = append(kept, r)
		}
	}
	if len(kept) == 0 {
		delete(c.listeners, t)
		return
	}
	c.listeners[t] = kept
}

func (c *Client) readLoop(conn Conn, gen uint64) {
	for {
		frame, err := conn.Receive()
		if err != nil {
			c.handleClose(gen, err)
			return
		}
		var ev domainrt.Event
		if err := json.Unmarshal(frame, &ev); err != nil || ev.Type == "" {
			c.logger.Warn("dropping undecodable frame", "error", err, "bytes", len(frame))
			continue
		}
		c.dispatch(ev)
	}
}

func (c *Client) dispatch(ev domainrt.Event) {
	c.mu.Lock()
	regs := append([]registration(nil), c.listeners[ev.Type]...)
	c.mu.Unlock()
	for _, r := range regs {
		c.invoke(r, ev)
	}
}

func (c *Client) invoke(r registration, ev domainrt.Event) {
	defer func() {
		if p := recover(); p != nil {
			c.logger.Error("listener panicked", "type", ev.Type, "listener", r.id, "panic", p)
			c.count("realtime.listener_panic", map[string]string{"type": string(ev.Type)})
		}
	}()
	r.fn(ev)
}

func (c *Client) handleClose(gen uint64, cause error) {
	c.mu.Lock()
	if gen != c.gen || c.closed {
		c.mu.Unlock()
		return
	}
	conn := c.conn
	c.conn = nil
	c.setStateLocked(StateClosed)
	c.logger.Warn("socket closed", "error", cause)
	c.scheduleReconnectLocked()
	c.unlock()
	if conn != nil {
		_ = conn.Close()
	}
}

// scheduleReconnectLocked arms the next attempt or gives up.
func (c *Client) scheduleReconnectLocked() {
	if c.policy.Exhausted(c.attempts) {
		c.setStateLocked(StateFailed)
		c.logger.Warn("giving up on socket", "attempts", c.attempts)
		c.count("realtime.reconnect_exhausted", nil)
		return
	}
	c.attempts++
	delay := c.policy.NextDelay(c.attempts)
	c.setStateLocked(StateReconnecting)
	c.logger.Info("reconnecting", "attempt", c.attempts, "max_attempts", c.policy.MaxAttempts, "delay", delay)
	c.timer = time.AfterFunc(delay, c.reconnect)
}

func (c *Client) reconnect() {
	c.mu.Lock()
	if c.closed || c.state != StateReconnecting {
		c.mu.Unlock()
		return
	}
	target, err := c.dialURLLocked()
	c.mu.Unlock()

	var conn Conn
	if err == nil {
		ctx, cancel := context.WithTimeout(context.Background(), c.dialTimeout)
		conn, err = c.dialer.Dial(ctx, target, c.origin)
		cancel()
	}
	c.count("realtime.reconnect", map[string]string{"ok": fmt.Sprint(err == nil)})

	c.mu.Lock()
	if c.closed || c.state != StateReconnecting {
		c.unlock()
		if conn != nil {
			_ = conn.Close()
		}
		return
	}
	if err != nil {
		c.logger.Warn("reconnect failed", "attempt", c.attempts, "error", err)
		c.scheduleReconnectLocked()
		c.unlock()
		return
	}
	gen := c.openLocked(conn)
	c.unlock()
	c.logger.Info("socket reconnected")
	go c.readLoop(conn, gen)
}

// openLocked installs conn and resets the attempt counter.
func (c *Client) openLocked(conn Conn) uint64 {
	c.gen++
	c.conn = conn
	c.attempts = 0
	c.setStateLocked(StateConnected)
	return c.gen
}

func (c *Client) dialURLLocked() (string, error) {
	if c.token == "" {
		return c.url, nil
	}
	u, err := url.Parse(c.url)
	if err != nil {
		return "", fmt.Errorf("parse socket URL: %w", err)
	}
	q := u.Query()
	q.Set("token", c.token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *Client) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Client) setStateLocked(s State) {
	if c.state == s {
		return
	}
	c.state = s
	if c.onState != nil {
		c.pending = append(c.pending, s)
	}
}

// unlock releases mu and then reports queued transitions.
func (c *Client) unlock() {
	pending := c.pending
	c.pending = nil
	c.mu.Unlock()
	for _, s := range pending {
		c.onState(s)
	}
}

func (c *Client) count(name string, tags map[string]string) {
	if c.metrics != nil {
		c.metrics.Count(name, 1, tags)
	}
}
