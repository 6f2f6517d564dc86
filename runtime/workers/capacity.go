package workers

import (
	"context"
	"log/slog"
	"time"

	"connect-chat/domain/event"
)

// SampledQueue exposes depth readings for one named in-process queue.
type SampledQueue struct {
	Name     string
	capacity func() int
	length   func() int
}

// Sampled captures a channel for depth sampling. len and cap never block,
// so reading them here cannot disturb the producer or the consumer.
func Sampled[T any](name string, ch <-chan T) SampledQueue {
	return SampledQueue{
		Name:     name,
		capacity: func() int { return cap(ch) },
		length:   func() int { return len(ch) },
	}
}

// QueueDepthWorker periodically reports how full the session's event queues
// are. A sample may be lost when telemetry is saturated; the next tick
// replaces it.
type QueueDepthWorker struct {
	log            *slog.Logger
	queues         []SampledQueue
	telemetryChan  chan event.Event
	metricInterval time.Duration
}

func NewQueueDepthWorker(log *slog.Logger, queues []SampledQueue,
	telemetryChan chan event.Event, metricInterval time.Duration) *QueueDepthWorker {
	return &QueueDepthWorker{
		log:            log,
		queues:         queues,
		telemetryChan:  telemetryChan,
		metricInterval: metricInterval,
	}
}

func (w *QueueDepthWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping queue depth sampling")
			return nil
		case <-ticker.C:
			for _, q := range w.queues {
				select {
				case <-ctx.Done():
					return nil
				case w.telemetryChan <- depthSample(q):
				default:
					w.log.Debug("Queue depth sample lost")
				}
			}
		}
	}
}

func depthSample(q SampledQueue) event.Event {
	return event.Event{
		Type:      event.ChannelCapacityType,
		CreatedAt: time.Now().UTC(),
		Payload: event.ChannelCapacity{
			ChannelName: q.Name,
			Capacity:    q.capacity(),
			Length:      q.length(),
		},
	}
}
