package sink

import (
	"context"

	"connect-chat/contract"
	"connect-chat/domain/event"
)

// SearchSink indexes live message text. Batches are flushed every
// flushEvery items and when the channel closes, so a `/search` during the
// session sees everything except at most the current batch.
type SearchSink struct {
	index      contract.ISearchIndex
	flushEvery int
	pending    int
}

func NewSearchSink(index contract.ISearchIndex, flushEvery int) *SearchSink {
	if flushEvery <= 0 {
		flushEvery = 1
	}
	return &SearchSink{index: index, flushEvery: flushEvery}
}

func (s *SearchSink) Consume(_ context.Context, e event.ChannelEvent) error {
	switch evt := e.(type) {
	case event.ItemReceived:
		if err := s.index.Index(evt.Item); err != nil {
			return err
		}
		s.pending++
		if s.pending >= s.flushEvery {
			s.pending = 0
			return s.index.Flush()
		}
	case event.ChannelClosed:
		s.pending = 0
		return s.index.Flush()
	}
	return nil
}
