package sink

import (
	"context"

	"connect-chat/contract"
	"connect-chat/domain/event"
)

// StoreSink persists every live item so transcripts survive the session.
// Duplicate delivery is harmless: the store keeps the first-seen copy.
type StoreSink struct {
	store contract.ITranscriptStore
}

func NewStoreSink(store contract.ITranscriptStore) *StoreSink {
	return &StoreSink{store: store}
}

func (s *StoreSink) Consume(_ context.Context, e event.ChannelEvent) error {
	switch evt := e.(type) {
	case event.ItemReceived:
		return s.store.StoreItem(evt.Item)
	}
	return nil
}
