package transcript

import (
	"context"
	"errors"
	"log/slog"

	"connect-chat/contract"
	"connect-chat/domain"
	"connect-chat/domain/event"
	chaterrors "connect-chat/errors"
)

// Pager walks the historical transcript oldest-first. Once the control
// plane stops handing out continuation tokens, every further call returns
// ErrPaginationExhausted.
type Pager struct {
	client   contract.IParticipantClient
	token    func() string // connection token provider, survives refreshes
	pageSize int

	next      string
	exhausted bool
}

func NewPager(client contract.IParticipantClient, token func() string, pageSize int) *Pager {
	return &Pager{client: client, token: token, pageSize: pageSize}
}

// Next fetches the following history page.
func (p *Pager) Next(ctx context.Context) (domain.TranscriptPage, error) {
	if p.exhausted {
		return domain.TranscriptPage{}, chaterrors.ErrPaginationExhausted
	}

	page, err := p.client.GetTranscript(ctx, p.token(), p.next, p.pageSize)
	if err != nil {
		return domain.TranscriptPage{}, err
	}

	p.next = page.NextToken
	if page.NextToken == "" {
		p.exhausted = true
	}
	return page, nil
}

// Backfill is the worker draining the pager into the reconciler and into
// the same sinks the live stream feeds, so storage and search hold the
// merged transcript rather than live items only. It finishes cleanly when
// history is exhausted, which is completion, not failure.
type Backfill struct {
	pager      *Pager
	reconciler *Reconciler
	log        *slog.Logger
	sinks      []contract.EventSink
}

func NewBackfill(pager *Pager, reconciler *Reconciler, log *slog.Logger, sinks ...contract.EventSink) *Backfill {
	return &Backfill{pager: pager, reconciler: reconciler, log: log, sinks: sinks}
}

func (b *Backfill) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		page, err := b.pager.Next(ctx)
		if err != nil {
			if errors.Is(err, chaterrors.ErrPaginationExhausted) {
				b.reconciler.markBackfilled()
				b.log.Info("Transcript backfill complete", "items", b.reconciler.Len())
				return nil
			}
			return err
		}

		added := b.reconciler.ObserveAll(page.Items)
		b.dispatch(ctx, page.Items)
		b.log.Debug("History page merged", "fetched", len(page.Items), "new", added)

		if b.pager.exhausted {
			b.reconciler.markBackfilled()
			b.log.Info("Transcript backfill complete", "items", b.reconciler.Len())
			return nil
		}
	}
}

// dispatch hands a history page to the live sinks. Sinks dedup by item id,
// so an item seen on the stream first is kept as delivered. A rejecting
// sink never aborts the backfill.
func (b *Backfill) dispatch(ctx context.Context, items []domain.TranscriptItem) {
	for _, item := range items {
		received := event.ItemReceived{Contact: item.ContactID, Item: item}
		for _, s := range b.sinks {
			if err := s.Consume(ctx, received); err != nil {
				b.log.Warn("Sink rejected history item", "id", item.ID, "error", err)
			}
		}
	}
}
