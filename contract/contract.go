//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"connect-chat/domain"
	"connect-chat/domain/event"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

type EventSink interface {
	Consume(ctx context.Context, e event.ChannelEvent) error
}

// IParticipantClient covers the externally owned participant operations.
// Implementations hold no session state: the caller supplies the right
// credential for every call.
type IParticipantClient interface {
	CreateConnection(ctx context.Context, participantToken string) (domain.ConnectionCredentials, error)
	SendMessage(ctx context.Context, connectionToken, content string) (domain.SendResult, error)
	SendEvent(ctx context.Context, connectionToken, contentType, content string) (domain.SendResult, error)
	GetTranscript(ctx context.Context, connectionToken, nextToken string, maxResults int) (domain.TranscriptPage, error)
	StartAttachmentUpload(ctx context.Context, connectionToken string, upload domain.AttachmentUpload) (domain.AttachmentTicket, error)
	CompleteAttachmentUpload(ctx context.Context, connectionToken string, attachmentIDs []string) error
	Disconnect(ctx context.Context, connectionToken string) error
}

// INegotiator exchanges a participant token for connection credentials.
type INegotiator interface {
	Negotiate(ctx context.Context, participantToken string) (domain.ConnectionCredentials, error)
}

type ITranscriptStore interface {
	StoreItem(item domain.TranscriptItem) error
	GetItems(contactID string, cursor []byte) ([]domain.TranscriptItem, []byte, error)
}

type ISearchIndex interface {
	Index(item domain.TranscriptItem) error
	Flush() error
	Search(ctx context.Context, query, contactID string, page int) ([]domain.SearchHit, uint64, error)
}
