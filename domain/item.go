// Package domain contains core concepts of the participant chat client.
// This file defines transcript items and their total ordering.
// Items are immutable once received.
package domain

import (
	"strings"
	"time"
)

type ItemKind string

const (
	KindMessage           ItemKind = "MESSAGE"
	KindEvent             ItemKind = "EVENT"
	KindAttachment        ItemKind = "ATTACHMENT"
	KindParticipantJoined ItemKind = "PARTICIPANT_JOINED"
	KindParticipantLeft   ItemKind = "PARTICIPANT_LEFT"
	KindReceipt           ItemKind = "RECEIPT"
)

type ParticipantRole string

const (
	RoleAgent    ParticipantRole = "AGENT"
	RoleCustomer ParticipantRole = "CUSTOMER"
	RoleSystem   ParticipantRole = "SYSTEM"
)

// Attachment describes a file shared inside the conversation.
type Attachment struct {
	ID          string
	Name        string
	ContentType string
	SizeBytes   int64
}

// TranscriptItem represents one immutable entry of a contact's transcript,
// whether it arrived through the live stream or a historical fetch.
type TranscriptItem struct {
	ID           string
	ContactID    string
	AbsoluteTime time.Time
	Kind         ItemKind
	ContentType  string
	Content      string
	Role         ParticipantRole
	DisplayName  string
	Attachments  []Attachment
}

// Before reports whether i precedes other in transcript order.
// Ordering is by absolute time, tie-broken by id, so it is total and
// stable regardless of which path delivered the item.
func (i TranscriptItem) Before(other TranscriptItem) bool {
	if i.AbsoluteTime.Equal(other.AbsoluteTime) {
		return i.ID < other.ID
	}
	return i.AbsoluteTime.Before(other.AbsoluteTime)
}

// KindOf maps the wire item type and content type onto a local kind.
// The wire protocol only distinguishes MESSAGE/EVENT/ATTACHMENT; joins,
// leaves and receipts are events told apart by their content type.
func KindOf(itemType, contentType string) ItemKind {
	switch itemType {
	case "MESSAGE":
		return KindMessage
	case "ATTACHMENT":
		return KindAttachment
	case "EVENT":
		switch {
		case strings.HasSuffix(contentType, "participant.joined"):
			return KindParticipantJoined
		case strings.HasSuffix(contentType, "participant.left"):
			return KindParticipantLeft
		case strings.HasSuffix(contentType, "message.delivered"),
			strings.HasSuffix(contentType, "message.read"):
			return KindReceipt
		default:
			return KindEvent
		}
	default:
		return KindEvent
	}
}
