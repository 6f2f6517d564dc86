// Package domain contains core concepts of the participant chat client.
// This file defines the chat session and its lifecycle.
// No runtime, network, or UI logic should be added here.
package domain

import "time"

type SessionState int

const (
	Negotiating SessionState = iota
	Connected
	Disconnected
)

func (s SessionState) String() string {
	switch s {
	case Negotiating:
		return "NEGOTIATING"
	case Connected:
		return "CONNECTED"
	case Disconnected:
		return "DISCONNECTED"
	default:
		return "UNKNOWN"
	}
}

// ChatSession identifies one participant's attachment to a contact.
// The participant token is issued by the contact-initiation backend and is
// only ever exchanged, never sent to the data plane directly.
type ChatSession struct {
	ContactID        string
	ParticipantID    string
	ParticipantToken string
	Credentials      ConnectionCredentials
	State            SessionState
}

// ConnectionCredentials is the result of the token exchange: a short-lived
// connection token plus the streaming endpoint it is valid for.
type ConnectionCredentials struct {
	ConnectionToken string
	StreamEndpoint  string
	Expiry          time.Time
}

// Expired reports whether the connection token is past its expiry.
// A zero expiry means the control plane never communicated one; callers
// must then rely on the configured default lifetime.
func (c ConnectionCredentials) Expired(now time.Time) bool {
	return !c.Expiry.IsZero() && now.After(c.Expiry)
}
