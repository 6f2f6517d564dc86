// Package participant implements the HTTP client for the externally owned
// participant endpoints: connection creation, message and event sends,
// paginated transcript fetches, attachment uploads and disconnect.
// It holds no session state; callers supply the right credential per call.
package participant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"connect-chat/domain"
	chaterrors "connect-chat/errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
)

// bearerHeader carries the participant token on connection creation and
// the connection token on every other call.
const bearerHeader = "X-Amz-Bearer"

const (
	pathConnection       = "/participant/connection"
	pathMessage          = "/participant/message"
	pathEvent            = "/participant/event"
	pathTranscript       = "/participant/transcript"
	pathStartAttachment  = "/participant/start-attachment-upload"
	pathFinishAttachment = "/participant/complete-attachment-upload"
	pathDisconnect       = "/participant/disconnect"
)

// ContentTypeText is the only message content type this client sends.
const ContentTypeText = "text/plain"

type Client struct {
	endpoint string
	http     *retryablehttp.Client
	validate *validator.Validate
	log      *slog.Logger
}

// NewClient builds a participant client against the given endpoint.
// Transient transport failures and 5xx responses are retried with backoff
// by the underlying retryable client; auth failures are never retried.
func NewClient(endpoint string, timeout time.Duration, log *slog.Logger) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.RetryWaitMin = 250 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.HTTPClient.Timeout = timeout
	rc.Logger = nil

	return &Client{
		endpoint: endpoint,
		http:     rc,
		validate: validator.New(),
		log:      log,
	}
}

// CreateConnection exchanges the participant token for a connection token
// and the streaming endpoint descriptor.
func (c *Client) CreateConnection(ctx context.Context, participantToken string) (domain.ConnectionCredentials, error) {
	request := createConnectionRequest{Type: []string{"WEBSOCKET", "CONNECTION_CREDENTIALS"}}

	var response createConnectionResponse
	if err := c.post(ctx, participantToken, pathConnection, request, &response); err != nil {
		return domain.ConnectionCredentials{}, err
	}
	if response.ConnectionCredentials.ConnectionToken == "" || response.Websocket.URL == "" {
		return domain.ConnectionCredentials{}, fmt.Errorf("%w: connection response missing credentials", chaterrors.ErrMalformedPayload)
	}

	// The two expiries are issued together; the credentials one wins when
	// both are present.
	raw := response.ConnectionCredentials.Expiry
	if raw == "" {
		raw = response.Websocket.ConnectionExpiry
	}
	var expiry time.Time
	if raw != "" {
		parsed, err := ParseAbsoluteTime(raw)
		if err != nil {
			return domain.ConnectionCredentials{}, err
		}
		expiry = parsed
	}

	return domain.ConnectionCredentials{
		ConnectionToken: response.ConnectionCredentials.ConnectionToken,
		StreamEndpoint:  response.Websocket.URL,
		Expiry:          expiry,
	}, nil
}

// SendMessage posts a text message on the data plane and returns the
// server-assigned id and timestamp. The client token makes retries idempotent.
func (c *Client) SendMessage(ctx context.Context, connectionToken, content string) (domain.SendResult, error) {
	return c.send(ctx, connectionToken, pathMessage, sendRequest{
		ContentType: ContentTypeText,
		Content:     content,
		ClientToken: uuid.NewString(),
	})
}

// SendEvent posts a typed event (typing indicator, read receipt, ...).
func (c *Client) SendEvent(ctx context.Context, connectionToken, contentType, content string) (domain.SendResult, error) {
	return c.send(ctx, connectionToken, pathEvent, sendRequest{
		ContentType: contentType,
		Content:     content,
		ClientToken: uuid.NewString(),
	})
}

func (c *Client) send(ctx context.Context, connectionToken, path string, request sendRequest) (domain.SendResult, error) {
	if err := c.validate.Struct(request); err != nil {
		return domain.SendResult{}, fmt.Errorf("invalid send request: %w", err)
	}

	var response sendResponse
	if err := c.post(ctx, connectionToken, path, request, &response); err != nil {
		return domain.SendResult{}, err
	}
	at, err := ParseAbsoluteTime(response.AbsoluteTime)
	if err != nil {
		return domain.SendResult{}, err
	}
	return domain.SendResult{ID: response.ID, AbsoluteTime: at}, nil
}

// GetTranscript fetches one page of historical transcript, oldest first.
// An empty returned NextToken means history is exhausted.
func (c *Client) GetTranscript(ctx context.Context, connectionToken, nextToken string, maxResults int) (domain.TranscriptPage, error) {
	request := getTranscriptRequest{
		MaxResults:    maxResults,
		NextToken:     nextToken,
		ScanDirection: "FORWARD",
		SortOrder:     "ASCENDING",
	}
	if err := c.validate.Struct(request); err != nil {
		return domain.TranscriptPage{}, fmt.Errorf("invalid transcript request: %w", err)
	}

	var response getTranscriptResponse
	if err := c.post(ctx, connectionToken, pathTranscript, request, &response); err != nil {
		return domain.TranscriptPage{}, err
	}

	items := make([]domain.TranscriptItem, 0, len(response.Transcript))
	for _, wire := range response.Transcript {
		item, err := wire.ToItem()
		if err != nil {
			return domain.TranscriptPage{}, err
		}
		if item.ContactID == "" {
			item.ContactID = response.InitialContactID
		}
		items = append(items, item)
	}

	return domain.TranscriptPage{Items: items, NextToken: response.NextToken}, nil
}

// StartAttachmentUpload reserves an attachment slot and returns the
// pre-signed upload ticket.
func (c *Client) StartAttachmentUpload(ctx context.Context, connectionToken string, upload domain.AttachmentUpload) (domain.AttachmentTicket, error) {
	request := startAttachmentUploadRequest{
		AttachmentName:        upload.Name,
		ContentType:           upload.ContentType,
		AttachmentSizeInBytes: upload.SizeBytes,
		ClientToken:           uuid.NewString(),
	}
	if err := c.validate.Struct(request); err != nil {
		return domain.AttachmentTicket{}, fmt.Errorf("invalid attachment request: %w", err)
	}

	var response startAttachmentUploadResponse
	if err := c.post(ctx, connectionToken, pathStartAttachment, request, &response); err != nil {
		return domain.AttachmentTicket{}, err
	}

	ticket := domain.AttachmentTicket{
		AttachmentID: response.AttachmentID,
		UploadURL:    response.UploadMetadata.URL,
		Headers:      response.UploadMetadata.HeadersToInclude,
	}
	if raw := response.UploadMetadata.URLExpiry; raw != "" {
		expiry, err := ParseAbsoluteTime(raw)
		if err != nil {
			return domain.AttachmentTicket{}, err
		}
		ticket.URLExpiry = expiry
	}
	return ticket, nil
}

// CompleteAttachmentUpload confirms uploaded attachments so they become
// visible as transcript items.
func (c *Client) CompleteAttachmentUpload(ctx context.Context, connectionToken string, attachmentIDs []string) error {
	request := completeAttachmentUploadRequest{
		AttachmentIDs: attachmentIDs,
		ClientToken:   uuid.NewString(),
	}
	if err := c.validate.Struct(request); err != nil {
		return fmt.Errorf("invalid complete request: %w", err)
	}
	return c.post(ctx, connectionToken, pathFinishAttachment, request, nil)
}

// Disconnect ends the participant's attachment to the contact. Terminal.
func (c *Client) Disconnect(ctx context.Context, connectionToken string) error {
	return c.post(ctx, connectionToken, pathDisconnect, disconnectRequest{ClientToken: uuid.NewString()}, nil)
}

// post runs one JSON round trip. Error mapping is uniform across the
// endpoints: 401/403 mean the presented token is stale, other non-2xx are
// network-class failures, undecodable bodies are fatal payload errors.
func (c *Client) post(ctx context.Context, bearer, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding %s request: %w", path, err)
	}

	request, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building %s request: %w", path, err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set(bearerHeader, bearer)

	response, err := c.http.Do(request)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", chaterrors.ErrNetwork, path, err)
	}
	defer func() { _ = response.Body.Close() }()

	switch {
	case response.StatusCode == http.StatusForbidden || response.StatusCode == http.StatusUnauthorized:
		c.log.Warn("Token rejected by control plane", "path", path, "status", response.StatusCode)
		return fmt.Errorf("%w: %s returned %d", chaterrors.ErrAuthExpired, path, response.StatusCode)
	case response.StatusCode >= 300:
		return fmt.Errorf("%w: %s returned %d", chaterrors.ErrNetwork, path, response.StatusCode)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, response.Body)
		return nil
	}
	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding %s response: %v", chaterrors.ErrMalformedPayload, path, err)
	}
	return nil
}
