package sink

import (
	"context"
	"log/slog"

	"connect-chat/domain/event"
)

// LogSink turns lifecycle events into structured log lines.
type LogSink struct {
	log *slog.Logger
}

func NewLogSink(log *slog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Consume(_ context.Context, e event.ChannelEvent) error {
	switch evt := e.(type) {
	case event.ConnectionOpened:
		s.log.Info("Stream connected", "contact", evt.Contact)
	case event.ConnectionLost:
		s.log.Warn("Stream lost", "contact", evt.Contact, "attempt", evt.Attempt, "reason", evt.Reason)
	case event.CredentialsRefreshed:
		s.log.Info("Credentials refreshed", "contact", evt.Contact, "expiry", evt.Expiry)
	case event.ChannelClosed:
		s.log.Info("Session ended", "contact", evt.Contact, "reason", evt.Reason)
	}
	return nil
}
