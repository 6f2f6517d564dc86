package event

import (
	"time"

	"connect-chat/domain"
)

type Type string

const (
	DomainType    Type = "DOMAIN"
	TechnicalType Type = "TECHNICAL"
)

// Event is the envelope flowing through worker channels.
type Event struct {
	Type      Type
	CreatedAt time.Time
	Payload   any
}

// ChannelEvent is implemented by everything the channel layer publishes.
type ChannelEvent interface {
	ContactID() string
}

// ItemReceived is published for every transcript item delivered by the
// live stream, in arrival order.
type ItemReceived struct {
	Contact string
	Item    domain.TranscriptItem
}

func (e ItemReceived) ContactID() string { return e.Contact }

type ConnectionOpened struct {
	Contact string
	At      time.Time
}

func (e ConnectionOpened) ContactID() string { return e.Contact }

// ConnectionLost is published when the websocket drops and a reconnect
// attempt is about to be scheduled.
type ConnectionLost struct {
	Contact string
	Attempt int
	Reason  string
}

func (e ConnectionLost) ContactID() string { return e.Contact }

// ChannelClosed is terminal: no further events follow for this contact.
type ChannelClosed struct {
	Contact string
	Reason  string
}

func (e ChannelClosed) ContactID() string { return e.Contact }

type CredentialsRefreshed struct {
	Contact string
	Expiry  time.Time
}

func (e CredentialsRefreshed) ContactID() string { return e.Contact }
