package workers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connect-chat/channel"
	"connect-chat/contract"
	chaterrors "connect-chat/errors"
)

// TokenRefresher renegotiates the connection token before it expires and
// swaps the fresh credentials into the running channel. Without it, every
// channel operation fails once the token lapses.
type TokenRefresher struct {
	negotiator       contract.INegotiator
	channel          *channel.EventChannel
	participantToken string
	refreshAt        func(expiry time.Time) time.Time
	log              *slog.Logger
}

func NewTokenRefresher(negotiator contract.INegotiator, ch *channel.EventChannel,
	participantToken string, refreshAt func(expiry time.Time) time.Time,
	log *slog.Logger) *TokenRefresher {
	return &TokenRefresher{
		negotiator:       negotiator,
		channel:          ch,
		participantToken: participantToken,
		refreshAt:        refreshAt,
		log:              log,
	}
}

func (w *TokenRefresher) Run(ctx context.Context) error {
	for {
		if w.channel.State() == channel.Closed {
			return nil
		}

		expiry := w.channel.Credentials().Expiry
		wait := time.Until(w.refreshAt(expiry))
		if wait < 0 {
			wait = 0
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		if w.channel.State() == channel.Closed {
			return nil
		}

		credentials, err := w.negotiator.Negotiate(ctx, w.participantToken)
		if err != nil {
			if errors.Is(err, chaterrors.ErrAuthExpired) {
				// The participant token itself is stale. Only the backend
				// that issued it can mint a new one; nothing to retry here.
				w.log.Error("Participant token expired, refresh impossible", "error", err)
				return nil
			}
			w.log.Warn("Credential refresh failed, retrying", "error", err)
			return err
		}

		w.channel.UpdateCredentials(credentials)
		w.log.Info("Connection credentials refreshed", "expiry", credentials.Expiry)
	}
}
