package transcript

import (
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"connect-chat/domain"

	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func itemAt(id string, offset time.Duration) domain.TranscriptItem {
	return domain.TranscriptItem{
		ID:           id,
		ContactID:    "contact-1",
		AbsoluteTime: base.Add(offset),
		Kind:         domain.KindMessage,
		Content:      "content of " + id,
	}
}

func TestReconciler_Ordering_Under_Interleaving(t *testing.T) {
	req := require.New(t)
	reconciler := NewReconciler("contact-1", slog.Default())

	// Given items arriving in scrambled order, as when history pages and
	// the live feed race each other
	reconciler.Observe(itemAt("c", 3*time.Second))
	reconciler.Observe(itemAt("a", 1*time.Second))
	reconciler.Observe(itemAt("d", 4*time.Second))
	reconciler.Observe(itemAt("b", 2*time.Second))

	// Then the snapshot is monotonic in absolute time
	snapshot := reconciler.Snapshot()
	req.Len(snapshot, 4)
	for i, id := range []string{"a", "b", "c", "d"} {
		req.Equal(id, snapshot[i].ID)
	}
}

func TestReconciler_Duplicate_Keeps_First_Seen(t *testing.T) {
	req := require.New(t)
	reconciler := NewReconciler("contact-1", slog.Default())

	first := itemAt("msg-1", time.Second)
	first.Content = "live copy"
	req.True(reconciler.Observe(first))

	// When the history backfill delivers the same id with another payload
	late := itemAt("msg-1", time.Second)
	late.Content = "history copy"
	req.False(reconciler.Observe(late))

	snapshot := reconciler.Snapshot()
	req.Len(snapshot, 1)
	req.Equal("live copy", snapshot[0].Content)
}

func TestReconciler_Same_Timestamp_Tie_Break_On_ID(t *testing.T) {
	req := require.New(t)
	reconciler := NewReconciler("contact-1", slog.Default())

	reconciler.Observe(itemAt("bbb", time.Second))
	reconciler.Observe(itemAt("aaa", time.Second))

	snapshot := reconciler.Snapshot()
	req.Equal("aaa", snapshot[0].ID)
	req.Equal("bbb", snapshot[1].ID)
}

func TestReconciler_Ignores_Items_Without_ID(t *testing.T) {
	req := require.New(t)
	reconciler := NewReconciler("contact-1", slog.Default())

	req.False(reconciler.Observe(domain.TranscriptItem{AbsoluteTime: base}))
	req.Zero(reconciler.Len())
}

func TestReconciler_Snapshot_Is_A_Copy(t *testing.T) {
	req := require.New(t)
	reconciler := NewReconciler("contact-1", slog.Default())
	reconciler.Observe(itemAt("a", time.Second))

	snapshot := reconciler.Snapshot()
	snapshot[0].Content = "mutated"

	req.Equal("content of a", reconciler.Snapshot()[0].Content)
}

func TestReconciler_Concurrent_Observers(t *testing.T) {
	req := require.New(t)
	reconciler := NewReconciler("contact-1", slog.Default())

	// Given the live feed and the backfill pushing concurrently, with
	// overlapping ids
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				reconciler.Observe(itemAt(fmt.Sprintf("msg-%03d", i), time.Duration(i)*time.Millisecond))
			}
		}()
	}
	wg.Wait()

	// Then each id is present exactly once, in order
	snapshot := reconciler.Snapshot()
	req.Len(snapshot, 100)
	for i := 1; i < len(snapshot); i++ {
		req.True(snapshot[i-1].Before(snapshot[i]))
	}
}
