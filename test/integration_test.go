package test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"connect-chat/channel"
	"connect-chat/domain/event"
	"connect-chat/moderation"
	"connect-chat/participant"
	"connect-chat/repositories"
	"connect-chat/runtime/workers"
	"connect-chat/session"
	"connect-chat/sink"
	"connect-chat/transcript"

	"github.com/gorilla/websocket"
	"github.com/mama165/sdk-go/database"
	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

// fakeControlPlane stands in for the vendor: token exchange, history pages,
// message sends and the streaming endpoint, all on one server.
type fakeControlPlane struct {
	t        *testing.T
	wsURL    string
	upgrader websocket.Upgrader

	sent chan string // redacted message bodies accepted by /message
	live chan string // ids to push on the stream
}

func wireItem(id string, at time.Time, content string) map[string]any {
	return map[string]any{
		"Id":              id,
		"AbsoluteTime":    at.Format(time.RFC3339Nano),
		"Type":            "MESSAGE",
		"ContentType":     "text/plain",
		"Content":         content,
		"ParticipantRole": "AGENT",
		"DisplayName":     "Ana",
	}
}

func (f *fakeControlPlane) handler() http.Handler {
	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	mux := http.NewServeMux()

	mux.HandleFunc("/participant/connection", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(f.t, "participant-token", r.Header.Get("X-Amz-Bearer"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"Websocket": map[string]any{
				"Url":              f.wsURL,
				"ConnectionExpiry": time.Now().Add(time.Hour).Format(time.RFC3339Nano),
			},
			"ConnectionCredentials": map[string]any{"ConnectionToken": "conn-token"},
		})
	})

	mux.HandleFunc("/participant/transcript", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(f.t, "conn-token", r.Header.Get("X-Amz-Bearer"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"InitialContactId": "contact-1",
			"Transcript": []map[string]any{
				wireItem("hist-1", base, "hello"),
				wireItem("hist-2", base.Add(5*time.Second), "how can I help"),
			},
		})
	})

	mux.HandleFunc("/participant/message", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Content     string `json:"Content"`
			ClientToken string `json:"ClientToken"`
		}
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(&body))
		require.NotEmpty(f.t, body.ClientToken)
		f.sent <- body.Content
		_ = json.NewEncoder(w).Encode(map[string]any{
			"Id":           "sent-1",
			"AbsoluteTime": time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	mux.HandleFunc("/participant/disconnect", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := f.upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		// Subscribe frame first
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}

		for id := range f.live {
			content, _ := json.Marshal(wireItem(id, base.Add(10*time.Second), "live message"))
			data, _ := json.Marshal(map[string]string{
				"topic":   "aws/chat",
				"content": string(content),
			})
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		}
		_, _, _ = conn.ReadMessage()
	})

	return mux
}

// Test_Session_Scenario drives the full client path: negotiate, stream,
// backfill, merge, persist, send and disconnect, against a fake control plane.
func Test_Session_Scenario(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	_, _, badgerDB, blugeWriter, err := database.SetupBenchmark(t.TempDir())
	req.NoError(err)
	defer database.CleanupDB(badgerDB, blugeWriter)

	plane := &fakeControlPlane{t: t, sent: make(chan string, 1), live: make(chan string)}
	server := httptest.NewServer(plane.handler())
	defer server.Close()
	plane.wsURL = "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"

	// 1. Negotiate a session
	client := participant.NewClient(server.URL, 2*time.Second, log)
	negotiator := session.NewNegotiator(client, time.Hour, log)
	credentials, err := negotiator.Negotiate(context.Background(), "participant-token")
	req.NoError(err)
	req.Equal("conn-token", credentials.ConnectionToken)

	// 2. Wire channel, projections and workers
	redactor, err := moderation.NewRedactor([]string{"badger"}, '*')
	req.NoError(err)

	ch := channel.New("contact-1", credentials, client, redactor, 32, 3, 100*time.Millisecond, log)
	reconciler := transcript.NewReconciler("contact-1", log)
	pager := transcript.NewPager(client, func() string { return ch.Credentials().ConnectionToken }, 10)
	store := repositories.NewTranscriptRepository(badgerDB, log, lo.ToPtr(10))

	storeSink := sink.NewStoreSink(store)
	telemetryChan := make(chan event.Event, 32)
	fanout := workers.NewItemFanout(log, ch.Events(), telemetryChan).Add(
		sink.NewTranscriptSink(reconciler),
		storeSink,
	)

	sup := workers.NewSupervisor(log, telemetryChan, 100*time.Millisecond)
	sup.Add(ch, fanout, transcript.NewBackfill(pager, reconciler, log, storeSink))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	supDone := make(chan struct{})
	go func() {
		sup.Run(ctx)
		close(supDone)
	}()

	// 3. One live item on the stream
	plane.live <- "live-1"
	close(plane.live)

	// 4. History and live feed converge into one ordered view
	req.Eventually(func() bool {
		return reconciler.Backfilled() && reconciler.Len() == 3
	}, 5*time.Second, 20*time.Millisecond)

	view := reconciler.Snapshot()
	req.Equal([]string{"hist-1", "hist-2", "live-1"},
		[]string{view[0].ID, view[1].ID, view[2].ID})

	// 5. Outbound message is redacted before it leaves
	_, err = ch.Send(ctx, "look at this badger")
	req.NoError(err)
	select {
	case accepted := <-plane.sent:
		req.Equal("look at this ******", accepted)
	case <-time.After(2 * time.Second):
		req.Fail("control plane never received the message")
	}

	// 6. The store holds the same merged transcript
	req.Eventually(func() bool {
		count, err := store.CountItems("contact-1")
		return err == nil && count == 3
	}, 5*time.Second, 20*time.Millisecond)

	items, _, err := store.GetItems("contact-1", nil)
	req.NoError(err)
	req.Len(items, 3)
	for i := 1; i < len(items); i++ {
		req.True(items[i-1].Before(items[i]), fmt.Sprintf("items %d and %d out of order", i-1, i))
	}

	// 7. Disconnect is terminal and the workers drain cleanly
	req.NoError(ch.Disconnect(context.Background()))
	req.Equal(channel.Closed, ch.State())

	cancel()
	select {
	case <-supDone:
	case <-time.After(5 * time.Second):
		req.Fail("supervisor did not stop")
	}
}
