package participant

import (
	"fmt"
	"time"

	"connect-chat/domain"
	chaterrors "connect-chat/errors"
)

// Wire shapes of the participant endpoints. Field names follow the vendor
// JSON casing exactly; everything local converts through domain types.

type createConnectionRequest struct {
	Type []string `json:"Type" validate:"required,min=1"`
}

type createConnectionResponse struct {
	Websocket struct {
		URL              string `json:"Url"`
		ConnectionExpiry string `json:"ConnectionExpiry"`
	} `json:"Websocket"`
	ConnectionCredentials struct {
		ConnectionToken string `json:"ConnectionToken"`
		Expiry          string `json:"Expiry"`
	} `json:"ConnectionCredentials"`
}

type sendRequest struct {
	ContentType string `json:"ContentType" validate:"required"`
	Content     string `json:"Content" validate:"required,max=16384"`
	ClientToken string `json:"ClientToken,omitempty"`
}

type sendResponse struct {
	ID           string `json:"Id"`
	AbsoluteTime string `json:"AbsoluteTime"`
}

type getTranscriptRequest struct {
	MaxResults    int    `json:"MaxResults,omitempty" validate:"gte=0,lte=100"`
	NextToken     string `json:"NextToken,omitempty"`
	ScanDirection string `json:"ScanDirection,omitempty"`
	SortOrder     string `json:"SortOrder,omitempty"`
}

type getTranscriptResponse struct {
	InitialContactID string     `json:"InitialContactId"`
	NextToken        string     `json:"NextToken"`
	Transcript       []WireItem `json:"Transcript"`
}

type startAttachmentUploadRequest struct {
	AttachmentName        string `json:"AttachmentName" validate:"required"`
	ContentType           string `json:"ContentType" validate:"required"`
	AttachmentSizeInBytes int64  `json:"AttachmentSizeInBytes" validate:"gt=0"`
	ClientToken           string `json:"ClientToken"`
}

type startAttachmentUploadResponse struct {
	AttachmentID   string `json:"AttachmentId"`
	UploadMetadata struct {
		URL              string            `json:"Url"`
		URLExpiry        string            `json:"UrlExpiry"`
		HeadersToInclude map[string]string `json:"HeadersToInclude"`
	} `json:"UploadMetadata"`
}

type completeAttachmentUploadRequest struct {
	AttachmentIDs []string `json:"AttachmentIds" validate:"required,min=1"`
	ClientToken   string   `json:"ClientToken"`
}

type disconnectRequest struct {
	ClientToken string `json:"ClientToken"`
}

// WireItem is a transcript entry as both the historical fetch and the
// streaming channel encode it.
type WireItem struct {
	ID               string           `json:"Id"`
	AbsoluteTime     string           `json:"AbsoluteTime"`
	ContactID        string           `json:"ContactId"`
	InitialContactID string           `json:"InitialContactId"`
	Type             string           `json:"Type"`
	ContentType      string           `json:"ContentType"`
	Content          string           `json:"Content"`
	ParticipantID    string           `json:"ParticipantId"`
	ParticipantRole  string           `json:"ParticipantRole"`
	DisplayName      string           `json:"DisplayName"`
	Attachments      []wireAttachment `json:"Attachments,omitempty"`
}

type wireAttachment struct {
	AttachmentID   string `json:"AttachmentId"`
	AttachmentName string `json:"AttachmentName"`
	ContentType    string `json:"ContentType"`
	SizeInBytes    int64  `json:"AttachmentSizeInBytes"`
}

// ToItem converts a wire entry into the local transcript item.
// A missing id or an unparseable timestamp is unrecoverable: callers treat
// it as a fatal payload error.
func (w WireItem) ToItem() (domain.TranscriptItem, error) {
	if w.ID == "" {
		return domain.TranscriptItem{}, fmt.Errorf("%w: item without id", chaterrors.ErrMalformedPayload)
	}
	at, err := ParseAbsoluteTime(w.AbsoluteTime)
	if err != nil {
		return domain.TranscriptItem{}, err
	}

	contact := w.ContactID
	if contact == "" {
		contact = w.InitialContactID
	}

	attachments := make([]domain.Attachment, 0, len(w.Attachments))
	for _, a := range w.Attachments {
		attachments = append(attachments, domain.Attachment{
			ID:          a.AttachmentID,
			Name:        a.AttachmentName,
			ContentType: a.ContentType,
			SizeBytes:   a.SizeInBytes,
		})
	}

	return domain.TranscriptItem{
		ID:           w.ID,
		ContactID:    contact,
		AbsoluteTime: at,
		Kind:         domain.KindOf(w.Type, w.ContentType),
		ContentType:  w.ContentType,
		Content:      w.Content,
		Role:         domain.ParticipantRole(w.ParticipantRole),
		DisplayName:  w.DisplayName,
		Attachments:  attachments,
	}, nil
}

// ParseAbsoluteTime parses the vendor's ISO-8601 timestamps.
func ParseAbsoluteTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: missing timestamp", chaterrors.ErrMalformedPayload)
	}
	at, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad timestamp %q", chaterrors.ErrMalformedPayload, raw)
	}
	return at.UTC(), nil
}
