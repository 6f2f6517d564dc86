// Package channel owns the persistent streaming connection of one session:
// connect/reconnect policy, heartbeats, decoding, and the data-plane sends.
package channel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"connect-chat/contract"
	"connect-chat/domain"
	"connect-chat/domain/event"
	chaterrors "connect-chat/errors"
	"connect-chat/moderation"

	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"
)

type State int32

const (
	Connecting State = iota
	Open
	Reconnecting
	Closed
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "CONNECTING"
	case Open:
		return "OPEN"
	case Reconnecting:
		return "RECONNECTING"
	case Closed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}

const (
	// readTimeout bounds silence on the socket; the server heartbeats well
	// inside this window, so hitting it means the connection is gone.
	readTimeout  = 90 * time.Second
	writeTimeout = 10 * time.Second
)

// EventChannel maintains one streaming connection per session and publishes
// everything it observes as events, in arrival order.
//
// State machine: Connecting -> Open -> Reconnecting -> Closed. A network
// drop moves Open to Reconnecting with exponential backoff and a bounded
// attempt budget; an explicit Disconnect, a fatal payload or an exhausted
// budget moves any state to Closed. Closed is terminal: the event sequence
// ends and is not restartable.
type EventChannel struct {
	contactID string
	client    contract.IParticipantClient
	redactor  *moderation.Redactor
	dialer    *websocket.Dialer
	log       *slog.Logger

	maxRetries  int
	maxInterval time.Duration

	mu          sync.Mutex
	credentials domain.ConnectionCredentials
	conn        *websocket.Conn

	state     atomic.Int32
	emu       sync.Mutex
	closed    bool
	events    chan event.Event
	done      chan struct{}
	closeOnce sync.Once
}

func New(contactID string, credentials domain.ConnectionCredentials,
	client contract.IParticipantClient, redactor *moderation.Redactor,
	bufferSize, maxRetries int, maxInterval time.Duration,
	log *slog.Logger) *EventChannel {
	c := &EventChannel{
		contactID:   contactID,
		client:      client,
		redactor:    redactor,
		dialer:      websocket.DefaultDialer,
		log:         log,
		maxRetries:  maxRetries,
		maxInterval: maxInterval,
		credentials: credentials,
		events:      make(chan event.Event, bufferSize),
		done:        make(chan struct{}),
	}
	c.state.Store(int32(Connecting))
	return c
}

func (c *EventChannel) State() State {
	return State(c.state.Load())
}

// Events returns the lazy sequence of everything the channel observes.
// The sequence is infinite until the channel reaches Closed, at which point
// it is closed exactly once and never reopens.
func (c *EventChannel) Events() <-chan event.Event {
	return c.events
}

// UpdateCredentials swaps in renegotiated credentials. The live socket is
// kept; the new endpoint and token apply from the next (re)connect on, and
// the new token applies to data-plane sends immediately.
func (c *EventChannel) UpdateCredentials(credentials domain.ConnectionCredentials) {
	c.mu.Lock()
	c.credentials = credentials
	c.mu.Unlock()
	c.publish(event.CredentialsRefreshed{Contact: c.contactID, Expiry: credentials.Expiry})
}

// Credentials returns the credentials currently in force.
func (c *EventChannel) Credentials() domain.ConnectionCredentials {
	return c.snapshot()
}

func (c *EventChannel) snapshot() domain.ConnectionCredentials {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.credentials
}

// Run is the connection listener worker. It terminates with nil once the
// channel is Closed, so the supervisor never restarts a terminal channel.
func (c *EventChannel) Run(ctx context.Context) error {
	if c.State() == Closed {
		return nil
	}

	attempt := 0
	policy := backoff.NewExponentialBackOff()
	policy.MaxInterval = c.maxInterval
	policy.MaxElapsedTime = 0

	for {
		if ctx.Err() != nil {
			c.close("context canceled")
			return ctx.Err()
		}

		conn, err := c.dial(ctx)
		if err != nil {
			attempt++
			if attempt > c.maxRetries {
				c.log.Error("Reconnect budget exhausted, closing channel", "attempts", attempt-1)
				c.close("reconnect budget exhausted")
				return nil
			}
			c.state.Store(int32(Reconnecting))
			c.publish(event.ConnectionLost{Contact: c.contactID, Attempt: attempt, Reason: err.Error()})

			wait := policy.NextBackOff()
			c.log.Warn("Stream dial failed, backing off", "attempt", attempt, "wait", wait, "error", err)
			select {
			case <-ctx.Done():
				c.close("context canceled")
				return ctx.Err()
			case <-time.After(wait):
			}
			continue
		}

		// Connected: reset the budget so a later drop gets a fresh one.
		attempt = 0
		policy.Reset()
		c.state.Store(int32(Open))
		c.publish(event.ConnectionOpened{Contact: c.contactID, At: time.Now().UTC()})

		err = c.listen(ctx, conn)
		switch {
		case errors.Is(err, chaterrors.ErrMalformedPayload):
			// No recovery possible: the server speaks a shape we don't.
			c.close(err.Error())
			return nil
		case c.State() == Closed:
			return nil
		case ctx.Err() != nil:
			c.close("context canceled")
			return ctx.Err()
		default:
			c.state.Store(int32(Reconnecting))
			c.publish(event.ConnectionLost{Contact: c.contactID, Attempt: attempt + 1, Reason: err.Error()})
			c.log.Warn("Stream dropped, reconnecting", "error", err)
		}
	}
}

func (c *EventChannel) dial(ctx context.Context) (*websocket.Conn, error) {
	endpoint := c.snapshot().StreamEndpoint
	conn, _, err := c.dialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: dialing stream: %v", chaterrors.ErrNetwork, err)
	}

	sub, err := subscribeFrame()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := conn.WriteMessage(websocket.TextMessage, sub); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: subscribing: %v", chaterrors.ErrNetwork, err)
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
	return conn, nil
}

// listen decodes frames until the socket errors out or the context ends.
func (c *EventChannel) listen(ctx context.Context, conn *websocket.Conn) error {
	// A blocked read only notices cancellation when the socket dies, so the
	// watcher tears it down as soon as the context ends.
	stop := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-c.done:
		case <-stop:
		}
	}()

	defer func() {
		close(stop)
		c.mu.Lock()
		if c.conn == conn {
			c.conn = nil
		}
		c.mu.Unlock()
		_ = conn.Close()
	}()

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
		_, data, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("%w: reading stream: %v", chaterrors.ErrNetwork, err)
		}

		f, err := decodeFrame(data)
		if err != nil {
			return err
		}

		switch f.Topic {
		case topicHeartbeat, topicPing:
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, heartbeatFrame()); err != nil {
				return fmt.Errorf("%w: answering heartbeat: %v", chaterrors.ErrNetwork, err)
			}
		case topicChat:
			item, err := decodeItem(f.Content)
			if err != nil {
				return err
			}
			if item.ContactID == "" {
				item.ContactID = c.contactID
			}
			c.publish(event.ItemReceived{Contact: c.contactID, Item: item})
		default:
			c.log.Debug("Ignoring stream frame", "topic", f.Topic)
		}
	}
}

// Send posts a text message through the data plane and returns the
// server-assigned id and timestamp. Outbound content goes through the
// redactor first, so deny-listed phrases never leave the client.
func (c *EventChannel) Send(ctx context.Context, content string) (domain.SendResult, error) {
	if c.State() == Closed {
		return domain.SendResult{}, chaterrors.ErrChannelClosed
	}
	if c.redactor != nil {
		content = c.redactor.Redact(content)
	}
	return c.client.SendMessage(ctx, c.snapshot().ConnectionToken, content)
}

// SendEvent posts a typed event (typing indicator, receipt, ...).
func (c *EventChannel) SendEvent(ctx context.Context, contentType, content string) (domain.SendResult, error) {
	if c.State() == Closed {
		return domain.SendResult{}, chaterrors.ErrChannelClosed
	}
	return c.client.SendEvent(ctx, c.snapshot().ConnectionToken, contentType, content)
}

// Disconnect tells the control plane the participant left, then closes the
// channel. Any state moves to Closed; the call is idempotent locally.
func (c *EventChannel) Disconnect(ctx context.Context) error {
	if c.State() == Closed {
		return nil
	}
	err := c.client.Disconnect(ctx, c.snapshot().ConnectionToken)
	c.close("participant disconnect")
	return err
}

// close moves the channel to its terminal state: the socket is torn down,
// a final ChannelClosed event is published and the sequence is closed.
// Closing done before taking the publish lock unblocks any publisher
// waiting on a full buffer, so the sequence can always be closed.
func (c *EventChannel) close(reason string) {
	c.closeOnce.Do(func() {
		c.state.Store(int32(Closed))
		close(c.done)

		c.mu.Lock()
		if c.conn != nil {
			_ = c.conn.Close()
			c.conn = nil
		}
		c.mu.Unlock()

		c.log.Info("Event channel closed", "reason", reason)

		c.emu.Lock()
		c.closed = true
		select {
		case c.events <- event.Event{
			Type:      event.DomainType,
			CreatedAt: time.Now().UTC(),
			Payload:   event.ChannelClosed{Contact: c.contactID, Reason: reason},
		}:
		default:
			c.log.Debug("Close event dropped, sequence buffer full")
		}
		close(c.events)
		c.emu.Unlock()
	})
}

// publish delivers one event to the sequence in arrival order. Delivery
// blocks while the buffer is full and gives up once the channel is
// terminal; the lock guarantees nothing is sent after the sequence closed.
func (c *EventChannel) publish(payload event.ChannelEvent) {
	e := event.Event{Type: event.DomainType, CreatedAt: time.Now().UTC(), Payload: payload}
	c.emu.Lock()
	defer c.emu.Unlock()
	if c.closed {
		return
	}
	select {
	case <-c.done:
	case c.events <- e:
	}
}
