// Package sink contains the EventSink implementations fed by the fanout:
// projections and side effects of the live event sequence.
package sink

import (
	"context"

	"connect-chat/domain/event"
	"connect-chat/transcript"
)

// TranscriptSink feeds live items into the reconciler's ordered merge.
type TranscriptSink struct {
	reconciler *transcript.Reconciler
}

func NewTranscriptSink(reconciler *transcript.Reconciler) *TranscriptSink {
	return &TranscriptSink{reconciler: reconciler}
}

func (s *TranscriptSink) Consume(_ context.Context, e event.ChannelEvent) error {
	switch evt := e.(type) {
	case event.ItemReceived:
		s.reconciler.Observe(evt.Item)
	}
	return nil
}
