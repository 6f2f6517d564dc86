// Package domain contains core concepts of the participant chat client.
// This file defines the shapes consumed from and produced for the
// externally owned participant endpoints.
package domain

import "time"

// SendResult is the server acknowledgement of a message or event send.
type SendResult struct {
	ID           string
	AbsoluteTime time.Time
}

// TranscriptPage is one page of a historical transcript fetch.
// An empty NextToken means history is exhausted.
type TranscriptPage struct {
	Items     []TranscriptItem
	NextToken string
}

// AttachmentUpload describes a file the participant wants to share.
type AttachmentUpload struct {
	Name        string
	ContentType string
	SizeBytes   int64
}

// AttachmentTicket is the pre-signed upload slot returned by the control
// plane. The upload itself goes straight to UploadURL with Headers set.
type AttachmentTicket struct {
	AttachmentID string
	UploadURL    string
	Headers      map[string]string
	URLExpiry    time.Time
}

// SearchHit points at a stored transcript item matched by a query.
type SearchHit struct {
	ItemID    string
	ContactID string
	Lang      string
}
