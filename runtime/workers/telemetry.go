package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"connect-chat/domain/event"
	"connect-chat/observability"

	"github.com/shirou/gopsutil/process"
)

// TelemetryWorker periodically folds channel counters into a snapshot and
// logs it together with the process's own resource usage. It also drains
// the technical event channel so supervisor restarts become visible.
type TelemetryWorker struct {
	log       *slog.Logger
	stats     *observability.ChannelStats
	telemetry chan event.Event
	interval  time.Duration
}

func NewTelemetryWorker(log *slog.Logger, stats *observability.ChannelStats,
	telemetry chan event.Event, interval time.Duration) *TelemetryWorker {
	return &TelemetryWorker{log: log, stats: stats, telemetry: telemetry, interval: interval}
}

func (w *TelemetryWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e := <-w.telemetry:
			w.report(e)
		case <-ticker.C:
			snapshot := w.stats.Refresh()

			rss, cpu, err := selfStats(p)
			if err != nil {
				w.log.Error("Failed to collect self stats", "err", err)
				continue
			}

			w.log.Info("Channel telemetry",
				"items", snapshot.ItemsReceived,
				"items_per_s", snapshot.ItemsPerSecond,
				"reconnects", snapshot.Reconnects,
				"sends", snapshot.Sends,
				"send_failures", snapshot.SendFailures,
				"avg_send_ms", snapshot.AvgSendMs,
				"alloc_mb", snapshot.AllocMemMb,
				"cpu_percent", cpu,
				"rss_bytes", rss)
		}
	}
}

func (w *TelemetryWorker) report(e event.Event) {
	switch payload := e.Payload.(type) {
	case event.WorkerRestartedAfterPanic:
		w.log.Warn("Worker restarted after panic", "name", payload.WorkerName)
	case event.ChannelCapacity:
		w.log.Warn("Channel close to capacity",
			"name", payload.ChannelName,
			"len", payload.Length,
			"cap", payload.Capacity)
	case event.ConnectionLost:
		w.stats.IncrReconnects()
	case event.ItemReceived:
		w.stats.IncrItems()
	}
}

// selfStats retrieves technical metrics (Memory and CPU) for the process.
func selfStats(p *process.Process) (uint64, float64, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return 0, 0, err
	}
	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return 0, 0, err
	}
	return memInfo.RSS, cpuPercent, nil
}
