package workers

import (
	"context"
	"log/slog"

	"connect-chat/contract"
	"connect-chat/domain/event"
)

// ItemFanout broadcasts channel events to multiple in-process consumers.
//
// It provides best-effort fan-out with no guarantees regarding delivery,
// ordering across sinks, durability, or retries. ItemFanout is not a
// message broker.
//
// It is intended for projections and side effects (reconciler, storage,
// search, logs), not for core session logic.
type ItemFanout struct {
	log       *slog.Logger
	source    <-chan event.Event
	telemetry chan event.Event
	sinks     []contract.EventSink
}

func NewItemFanout(log *slog.Logger, source <-chan event.Event, telemetry chan event.Event) *ItemFanout {
	return &ItemFanout{log: log, source: source, telemetry: telemetry}
}

func (w *ItemFanout) Add(sinks ...contract.EventSink) *ItemFanout {
	w.sinks = append(w.sinks, sinks...)
	return w
}

// Run drains the channel's event sequence until it closes, which is the
// terminal state of the session. A closed source means finished, not failed.
func (w *ItemFanout) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping fanout")
			return ctx.Err()
		case e, ok := <-w.source:
			if !ok {
				w.log.Info("Event sequence ended, stopping fanout")
				return nil
			}
			w.fanout(ctx, e)

			if w.telemetry != nil {
				select {
				case w.telemetry <- e:
				default:
					w.log.Debug("Telemetry event lost")
				}
			}
		}
	}
}

// fanout One sink for each event
func (w *ItemFanout) fanout(ctx context.Context, e event.Event) {
	payload, ok := e.Payload.(event.ChannelEvent)
	if !ok {
		return
	}
	for _, sink := range w.sinks {
		if err := sink.Consume(ctx, payload); err != nil {
			w.log.Warn("Sink rejected event", "error", err)
		}
	}
}
