package session

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"connect-chat/domain"
	"connect-chat/mocks"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var frozen = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func frozenNegotiator(client *mocks.MockIParticipantClient, ttl time.Duration) *Negotiator {
	n := NewNegotiator(client, ttl, slog.Default())
	n.now = func() time.Time { return frozen }
	return n
}

func TestNegotiator_Requires_A_Participant_Token(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	n := frozenNegotiator(mocks.NewMockIParticipantClient(ctrl), time.Hour)
	_, err := n.Negotiate(context.Background(), "")
	req.Error(err)
}

func TestNegotiator_Keeps_Expiry_From_Response(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	expiry := frozen.Add(30 * time.Minute)
	client := mocks.NewMockIParticipantClient(ctrl)
	client.EXPECT().
		CreateConnection(gomock.Any(), "participant-token").
		Return(domain.ConnectionCredentials{
			ConnectionToken: "conn-token",
			StreamEndpoint:  "wss://stream.example",
			Expiry:          expiry,
		}, nil)

	credentials, err := frozenNegotiator(client, time.Hour).Negotiate(context.Background(), "participant-token")
	req.NoError(err)
	req.Equal(expiry, credentials.Expiry)
	req.Equal("conn-token", credentials.ConnectionToken)
}

func TestNegotiator_Falls_Back_To_Token_Exp_Claim(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Given a response with no expiry but a JWT-shaped connection token
	exp := frozen.Add(15 * time.Minute)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256,
		jwt.MapClaims{"exp": exp.Unix()}).SignedString([]byte("irrelevant"))
	req.NoError(err)

	client := mocks.NewMockIParticipantClient(ctrl)
	client.EXPECT().
		CreateConnection(gomock.Any(), gomock.Any()).
		Return(domain.ConnectionCredentials{ConnectionToken: token}, nil)

	credentials, err := frozenNegotiator(client, time.Hour).Negotiate(context.Background(), "participant-token")
	req.NoError(err)
	req.Equal(exp.Unix(), credentials.Expiry.Unix())
}

func TestNegotiator_Falls_Back_To_Default_TTL(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Given an opaque token and no expiry at all
	client := mocks.NewMockIParticipantClient(ctrl)
	client.EXPECT().
		CreateConnection(gomock.Any(), gomock.Any()).
		Return(domain.ConnectionCredentials{ConnectionToken: "opaque"}, nil)

	credentials, err := frozenNegotiator(client, time.Hour).Negotiate(context.Background(), "participant-token")
	req.NoError(err)
	req.Equal(frozen.Add(time.Hour), credentials.Expiry)
}

func TestNegotiator_RefreshAt_Precedes_Expiry(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	n := frozenNegotiator(mocks.NewMockIParticipantClient(ctrl), time.Hour)

	refreshAt := n.RefreshAt(frozen.Add(100 * time.Second))
	req.Equal(frozen.Add(80*time.Second), refreshAt)
	req.True(refreshAt.Before(frozen.Add(100 * time.Second)))

	// Already expired credentials refresh immediately
	req.Equal(frozen, n.RefreshAt(frozen.Add(-time.Minute)))
}
