// Package session exchanges a participant token for connection credentials
// and decides when those credentials must be refreshed.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"connect-chat/contract"
	"connect-chat/domain"

	"github.com/golang-jwt/jwt/v5"
)

// refreshFraction places the refresh instant inside the token lifetime.
// Refreshing at 80% leaves room for one full retry cycle before expiry.
const refreshFraction = 0.8

type Negotiator struct {
	client     contract.IParticipantClient
	defaultTTL time.Duration
	log        *slog.Logger
	now        func() time.Time
}

func NewNegotiator(client contract.IParticipantClient, defaultTTL time.Duration, log *slog.Logger) *Negotiator {
	return &Negotiator{
		client:     client,
		defaultTTL: defaultTTL,
		log:        log,
		now:        time.Now,
	}
}

// Negotiate runs the token exchange once. It has no side effect beyond the
// network call: wiring the credentials into a channel is the caller's job.
//
// Expiry resolution order: the response expiry, then the connection token's
// own unverified exp claim, then the configured default lifetime.
func (n *Negotiator) Negotiate(ctx context.Context, participantToken string) (domain.ConnectionCredentials, error) {
	if participantToken == "" {
		return domain.ConnectionCredentials{}, fmt.Errorf("participant token is required")
	}

	credentials, err := n.client.CreateConnection(ctx, participantToken)
	if err != nil {
		return domain.ConnectionCredentials{}, err
	}

	if credentials.Expiry.IsZero() {
		if exp, ok := expiryFromToken(credentials.ConnectionToken); ok {
			credentials.Expiry = exp
		} else {
			credentials.Expiry = n.now().Add(n.defaultTTL)
			n.log.Warn("Control plane returned no expiry, assuming default lifetime",
				"ttl", n.defaultTTL)
		}
	}

	n.log.Info("Session negotiated",
		"endpoint", credentials.StreamEndpoint,
		"expiry", credentials.Expiry)
	return credentials, nil
}

// RefreshAt returns the instant at which credentials expiring at the given
// time should be renegotiated.
// Invariant: the returned instant always precedes the expiry.
func (n *Negotiator) RefreshAt(expiry time.Time) time.Time {
	now := n.now()
	remaining := expiry.Sub(now)
	if remaining <= 0 {
		return now
	}
	return now.Add(time.Duration(float64(remaining) * refreshFraction))
}

// expiryFromToken pulls the exp claim out of a JWT-shaped connection token
// without verifying the signature. Verification belongs to the issuer; the
// client only needs the deadline.
func expiryFromToken(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
