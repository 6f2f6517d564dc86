package transcript

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"connect-chat/domain"
	"connect-chat/domain/event"
	chaterrors "connect-chat/errors"
	"connect-chat/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestPager_Walks_All_Pages_Then_Exhausts(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockIParticipantClient(ctrl)

	// Given two history pages chained by a continuation token
	client.EXPECT().
		GetTranscript(gomock.Any(), "conn-token", "", 2).
		Return(domain.TranscriptPage{
			Items:     []domain.TranscriptItem{itemAt("a", time.Second), itemAt("b", 2*time.Second)},
			NextToken: "page-2",
		}, nil)
	client.EXPECT().
		GetTranscript(gomock.Any(), "conn-token", "page-2", 2).
		Return(domain.TranscriptPage{
			Items: []domain.TranscriptItem{itemAt("c", 3*time.Second)},
		}, nil)

	pager := NewPager(client, func() string { return "conn-token" }, 2)

	page, err := pager.Next(context.Background())
	req.NoError(err)
	req.Len(page.Items, 2)

	page, err = pager.Next(context.Background())
	req.NoError(err)
	req.Len(page.Items, 1)

	// Then every further call reports exhaustion
	_, err = pager.Next(context.Background())
	req.ErrorIs(err, chaterrors.ErrPaginationExhausted)
	_, err = pager.Next(context.Background())
	req.ErrorIs(err, chaterrors.ErrPaginationExhausted)
}

func TestBackfill_Merges_History_And_Finishes_Cleanly(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockIParticipantClient(ctrl)
	client.EXPECT().
		GetTranscript(gomock.Any(), gomock.Any(), "", 10).
		Return(domain.TranscriptPage{
			Items:     []domain.TranscriptItem{itemAt("a", time.Second)},
			NextToken: "next",
		}, nil)
	client.EXPECT().
		GetTranscript(gomock.Any(), gomock.Any(), "next", 10).
		Return(domain.TranscriptPage{
			Items: []domain.TranscriptItem{itemAt("b", 2*time.Second)},
		}, nil)

	reconciler := NewReconciler("contact-1", slog.Default())
	// Given an item already delivered by the live feed
	reconciler.Observe(itemAt("b", 2*time.Second))

	backfill := NewBackfill(NewPager(client, func() string { return "tok" }, 10), reconciler, slog.Default())

	// Then exhaustion is completion, not failure
	req.NoError(backfill.Run(context.Background()))
	req.True(reconciler.Backfilled())
	req.Equal(2, reconciler.Len())
}

func TestBackfill_Feeds_History_To_Sinks(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockIParticipantClient(ctrl)
	client.EXPECT().
		GetTranscript(gomock.Any(), gomock.Any(), "", 10).
		Return(domain.TranscriptPage{
			Items: []domain.TranscriptItem{itemAt("a", time.Second), itemAt("b", 2*time.Second)},
		}, nil)

	// Given a sink that accepts the first history item and rejects the second
	store := mocks.NewMockEventSink(ctrl)
	store.EXPECT().
		Consume(gomock.Any(), event.ItemReceived{Contact: "contact-1", Item: itemAt("a", time.Second)}).
		Return(nil)
	store.EXPECT().
		Consume(gomock.Any(), event.ItemReceived{Contact: "contact-1", Item: itemAt("b", 2*time.Second)}).
		Return(chaterrors.ErrNetwork)

	reconciler := NewReconciler("contact-1", slog.Default())
	backfill := NewBackfill(NewPager(client, func() string { return "tok" }, 10), reconciler, slog.Default(), store)

	// Then every history item reaches the sink and a rejection never aborts
	req.NoError(backfill.Run(context.Background()))
	req.True(reconciler.Backfilled())
	req.Equal(2, reconciler.Len())
}

func TestBackfill_Propagates_Fetch_Errors(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockIParticipantClient(ctrl)
	client.EXPECT().
		GetTranscript(gomock.Any(), gomock.Any(), "", 10).
		Return(domain.TranscriptPage{}, chaterrors.ErrNetwork)

	reconciler := NewReconciler("contact-1", slog.Default())
	backfill := NewBackfill(NewPager(client, func() string { return "tok" }, 10), reconciler, slog.Default())

	req.ErrorIs(backfill.Run(context.Background()), chaterrors.ErrNetwork)
	req.False(reconciler.Backfilled())
}
