package participant

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connect-chat/domain"
	chaterrors "connect-chat/errors"

	"github.com/stretchr/testify/require"
)

const testTimeout = 2 * time.Second

func newTestClient(server *httptest.Server) *Client {
	return NewClient(server.URL, testTimeout, slog.Default())
}

func TestClient_CreateConnection_Success(t *testing.T) {
	req := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req.Equal("/participant/connection", r.URL.Path)
		req.Equal("participant-token", r.Header.Get("X-Amz-Bearer"))

		var body createConnectionRequest
		req.NoError(json.NewDecoder(r.Body).Decode(&body))
		req.Contains(body.Type, "WEBSOCKET")
		req.Contains(body.Type, "CONNECTION_CREDENTIALS")

		_, _ = w.Write([]byte(`{
			"Websocket": {"Url": "wss://stream.example/ws", "ConnectionExpiry": "2026-03-14T10:30:00Z"},
			"ConnectionCredentials": {"ConnectionToken": "conn-token", "Expiry": "2026-03-14T10:15:00Z"}
		}`))
	}))
	defer server.Close()

	credentials, err := newTestClient(server).CreateConnection(context.Background(), "participant-token")
	req.NoError(err)
	req.Equal("conn-token", credentials.ConnectionToken)
	req.Equal("wss://stream.example/ws", credentials.StreamEndpoint)
	// The credentials expiry wins over the websocket one
	req.Equal(time.Date(2026, 3, 14, 10, 15, 0, 0, time.UTC), credentials.Expiry)
}

func TestClient_CreateConnection_Missing_Credentials(t *testing.T) {
	req := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"Websocket": {"Url": ""}, "ConnectionCredentials": {}}`))
	}))
	defer server.Close()

	_, err := newTestClient(server).CreateConnection(context.Background(), "participant-token")
	req.ErrorIs(err, chaterrors.ErrMalformedPayload)
}

func TestClient_Rejected_Token_Maps_To_AuthExpired(t *testing.T) {
	req := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := newTestClient(server)

	_, err := client.CreateConnection(context.Background(), "stale")
	req.ErrorIs(err, chaterrors.ErrAuthExpired)

	_, err = client.SendMessage(context.Background(), "stale", "hello")
	req.ErrorIs(err, chaterrors.ErrAuthExpired)
}

func TestClient_Other_Statuses_Map_To_Network(t *testing.T) {
	req := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	err := newTestClient(server).Disconnect(context.Background(), "conn-token")
	req.ErrorIs(err, chaterrors.ErrNetwork)
}

func TestClient_SendMessage_Success(t *testing.T) {
	req := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req.Equal("/participant/message", r.URL.Path)
		req.Equal("conn-token", r.Header.Get("X-Amz-Bearer"))

		var body sendRequest
		req.NoError(json.NewDecoder(r.Body).Decode(&body))
		req.Equal("text/plain", body.ContentType)
		req.Equal("hello there", body.Content)
		// The client token makes retries idempotent; it must always be set
		req.NotEmpty(body.ClientToken)

		_, _ = w.Write([]byte(`{"Id": "msg-1", "AbsoluteTime": "2026-03-14T10:00:01.5Z"}`))
	}))
	defer server.Close()

	result, err := newTestClient(server).SendMessage(context.Background(), "conn-token", "hello there")
	req.NoError(err)
	req.Equal("msg-1", result.ID)
	req.Equal(time.Date(2026, 3, 14, 10, 0, 1, 500000000, time.UTC), result.AbsoluteTime)
}

func TestClient_SendMessage_Rejects_Empty_Content(t *testing.T) {
	req := require.New(t)

	// No server: validation fails before any network round trip
	client := NewClient("http://localhost:1", testTimeout, slog.Default())
	_, err := client.SendMessage(context.Background(), "conn-token", "")
	req.Error(err)
	req.NotErrorIs(err, chaterrors.ErrNetwork)
}

func TestClient_GetTranscript_Maps_Items(t *testing.T) {
	req := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req.Equal("/participant/transcript", r.URL.Path)

		var body getTranscriptRequest
		req.NoError(json.NewDecoder(r.Body).Decode(&body))
		req.Equal(2, body.MaxResults)
		req.Equal("FORWARD", body.ScanDirection)
		req.Equal("ASCENDING", body.SortOrder)

		_, _ = w.Write([]byte(`{
			"InitialContactId": "contact-1",
			"NextToken": "page-2",
			"Transcript": [
				{"Id": "a", "AbsoluteTime": "2026-03-14T10:00:00Z", "Type": "MESSAGE",
				 "ContentType": "text/plain", "Content": "hi", "ParticipantRole": "AGENT",
				 "DisplayName": "Ana"},
				{"Id": "b", "AbsoluteTime": "2026-03-14T10:00:05Z", "Type": "EVENT",
				 "ContentType": "application/vnd.amazonaws.connect.event.participant.joined",
				 "ParticipantRole": "CUSTOMER"}
			]
		}`))
	}))
	defer server.Close()

	page, err := newTestClient(server).GetTranscript(context.Background(), "conn-token", "", 2)
	req.NoError(err)
	req.Equal("page-2", page.NextToken)
	req.Len(page.Items, 2)

	req.Equal(domain.KindMessage, page.Items[0].Kind)
	req.Equal(domain.RoleAgent, page.Items[0].Role)
	// Items without their own contact id inherit the page's
	req.Equal("contact-1", page.Items[0].ContactID)
	req.Equal(domain.KindParticipantJoined, page.Items[1].Kind)
}

func TestClient_GetTranscript_Fails_On_Malformed_Item(t *testing.T) {
	req := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"Transcript": [{"Id": "a", "AbsoluteTime": "not-a-time"}]}`))
	}))
	defer server.Close()

	_, err := newTestClient(server).GetTranscript(context.Background(), "conn-token", "", 10)
	req.ErrorIs(err, chaterrors.ErrMalformedPayload)
}

func TestClient_Attachment_Upload_Round(t *testing.T) {
	req := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/participant/start-attachment-upload":
			var body startAttachmentUploadRequest
			req.NoError(json.NewDecoder(r.Body).Decode(&body))
			req.Equal("report.pdf", body.AttachmentName)
			req.Equal(int64(1024), body.AttachmentSizeInBytes)

			_, _ = w.Write([]byte(`{
				"AttachmentId": "att-1",
				"UploadMetadata": {
					"Url": "https://upload.example/att-1",
					"UrlExpiry": "2026-03-14T10:05:00Z",
					"HeadersToInclude": {"Content-Length": "1024"}
				}
			}`))
		case "/participant/complete-attachment-upload":
			var body completeAttachmentUploadRequest
			req.NoError(json.NewDecoder(r.Body).Decode(&body))
			req.Equal([]string{"att-1"}, body.AttachmentIDs)
			_, _ = w.Write([]byte(`{}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := newTestClient(server)
	ticket, err := client.StartAttachmentUpload(context.Background(), "conn-token", domain.AttachmentUpload{
		Name:        "report.pdf",
		ContentType: "application/pdf",
		SizeBytes:   1024,
	})
	req.NoError(err)
	req.Equal("att-1", ticket.AttachmentID)
	req.Equal("https://upload.example/att-1", ticket.UploadURL)
	req.Equal("1024", ticket.Headers["Content-Length"])
	req.False(ticket.URLExpiry.IsZero())

	req.NoError(client.CompleteAttachmentUpload(context.Background(), "conn-token", []string{"att-1"}))
}

func TestWireItem_ToItem_Requires_ID_And_Timestamp(t *testing.T) {
	req := require.New(t)

	_, err := WireItem{AbsoluteTime: "2026-03-14T10:00:00Z"}.ToItem()
	req.ErrorIs(err, chaterrors.ErrMalformedPayload)

	_, err = WireItem{ID: "a"}.ToItem()
	req.ErrorIs(err, chaterrors.ErrMalformedPayload)

	item, err := WireItem{ID: "a", AbsoluteTime: "2026-03-14T10:00:00+01:00", Type: "MESSAGE"}.ToItem()
	req.NoError(err)
	// Timestamps normalize to UTC so ordering never depends on the zone
	req.Equal(time.UTC, item.AbsoluteTime.Location())
}
