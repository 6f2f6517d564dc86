// Package transcript merges paginated historical fetches with live streamed
// items into one ordered, deduplicated view per contact.
package transcript

import (
	"log/slog"
	"sort"
	"sync"

	"connect-chat/domain"
)

// Reconciler keeps the merged transcript of a single contact.
//
// Invariants: output order is monotonic (absolute time, id tie-break)
// regardless of arrival interleaving, and an item id is kept exactly once,
// first-seen copy winning when history and live stream both deliver it.
type Reconciler struct {
	contactID string
	log       *slog.Logger

	mu         sync.RWMutex
	items      []domain.TranscriptItem
	seen       map[string]struct{}
	backfilled bool
}

func NewReconciler(contactID string, log *slog.Logger) *Reconciler {
	return &Reconciler{
		contactID: contactID,
		log:       log,
		seen:      map[string]struct{}{},
	}
}

// Observe merges one item into the view and reports whether it was new.
// Safe for concurrent use by the backfill and the live feed.
func (r *Reconciler) Observe(item domain.TranscriptItem) bool {
	if item.ID == "" {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, duplicate := r.seen[item.ID]; duplicate {
		r.log.Debug("Duplicate transcript item dropped", "id", item.ID)
		return false
	}
	r.seen[item.ID] = struct{}{}

	at := sort.Search(len(r.items), func(i int) bool {
		return item.Before(r.items[i])
	})
	r.items = append(r.items, domain.TranscriptItem{})
	copy(r.items[at+1:], r.items[at:])
	r.items[at] = item
	return true
}

// ObserveAll merges a batch, typically one history page.
func (r *Reconciler) ObserveAll(items []domain.TranscriptItem) int {
	added := 0
	for _, item := range items {
		if r.Observe(item) {
			added++
		}
	}
	return added
}

// Snapshot returns the ordered merged view. The copy is safe to keep.
func (r *Reconciler) Snapshot() []domain.TranscriptItem {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.TranscriptItem, len(r.items))
	copy(out, r.items)
	return out
}

func (r *Reconciler) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// Backfilled reports whether the historical fetch ran to exhaustion.
func (r *Reconciler) Backfilled() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.backfilled
}

func (r *Reconciler) markBackfilled() {
	r.mu.Lock()
	r.backfilled = true
	r.mu.Unlock()
}
