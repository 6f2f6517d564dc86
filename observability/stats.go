// Package observability aggregates channel and process telemetry.
package observability

import (
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// ChannelSnapshot is one aggregated telemetry frame.
type ChannelSnapshot struct {
	ItemsReceived  uint64  `json:"items_received"`
	ItemsPerSecond float64 `json:"items_per_second"`
	Reconnects     uint64  `json:"reconnects"`
	Sends          uint64  `json:"sends"`
	SendFailures   uint64  `json:"send_failures"`
	AvgSendMs      float64 `json:"avg_send_ms"`
	AllocMemMb     uint64  `json:"alloc_mem_mb"`
	NumGC          uint32  `json:"num_gc"`
}

// ChannelStats collects counters from the hot paths with atomics and folds
// them into snapshots on demand. Safe for concurrent use.
type ChannelStats struct {
	log *slog.Logger

	itemsReceived uint64
	reconnects    uint64
	sends         uint64
	sendFailures  uint64
	sendNanos     uint64

	mu        sync.Mutex
	lastCheck time.Time
	lastItems uint64
	latest    ChannelSnapshot
}

func NewChannelStats(log *slog.Logger) *ChannelStats {
	return &ChannelStats{log: log, lastCheck: time.Now()}
}

func (s *ChannelStats) IncrItems() {
	atomic.AddUint64(&s.itemsReceived, 1)
}

func (s *ChannelStats) IncrReconnects() {
	atomic.AddUint64(&s.reconnects, 1)
}

func (s *ChannelStats) RecordSend(latency time.Duration, failed bool) {
	atomic.AddUint64(&s.sends, 1)
	atomic.AddUint64(&s.sendNanos, uint64(latency.Nanoseconds()))
	if failed {
		atomic.AddUint64(&s.sendFailures, 1)
	}
}

// Refresh folds the counters into a new snapshot and returns it.
func (s *ChannelStats) Refresh() ChannelSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(s.lastCheck).Seconds()

	items := atomic.LoadUint64(&s.itemsReceived)
	sends := atomic.LoadUint64(&s.sends)
	nanos := atomic.LoadUint64(&s.sendNanos)

	snapshot := ChannelSnapshot{
		ItemsReceived: items,
		Reconnects:    atomic.LoadUint64(&s.reconnects),
		Sends:         sends,
		SendFailures:  atomic.LoadUint64(&s.sendFailures),
	}
	if elapsed > 0 {
		snapshot.ItemsPerSecond = float64(items-s.lastItems) / elapsed
	}
	if sends > 0 {
		snapshot.AvgSendMs = float64(nanos) / float64(sends) / 1e6
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	snapshot.AllocMemMb = m.Alloc / 1024 / 1024
	snapshot.NumGC = m.NumGC

	s.lastCheck = now
	s.lastItems = items
	s.latest = snapshot
	return snapshot
}

func (s *ChannelStats) Latest() ChannelSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}
