package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/zerowaste/connect-share/internal/api/metrics"
	"github.com/zerowaste/connect-share/internal/core/domain"
	"github.com/zerowaste/connect-share/internal/infrastructure/notify"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes donation events to a fixed set of workers using
// consistent hashing on the donation id, so the events of one donation reach
// the sinks in the order they happened. It implements ports.Notifier.
type Dispatcher struct {
	workers []chan domain.DonationEvent
	sinks   []notify.Sink
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, log zerolog.Logger, sinks ...notify.Sink) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.DonationEvent, numWorkers),
		sinks:   sinks,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.DonationEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled or
// after Stop drains their channels.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Stop refuses new events and waits for queued ones to be delivered.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()
	d.wg.Wait()
}

// Notify enqueues event without blocking. A full worker queue drops the event.
func (d *Dispatcher) Notify(_ context.Context, event domain.DonationEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}

	idx := d.shardIndex(event.DonationID)
	select {
	case d.workers[idx] <- event:
		metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.NotificationsDroppedTotal.Inc()
		d.log.Warn().
			Str("donation_id", event.DonationID).
			Str("event", string(event.Type)).
			Int("worker_id", idx).
			Msg("notification queue full, event dropped")
	}
}

// shardIndex maps a donation id deterministically to a worker index.
func (d *Dispatcher) shardIndex(donationID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(donationID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.DonationEvent) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.NotificationQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			d.deliver(ctx, id, event)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, workerID int, event domain.DonationEvent) {
	for _, sink := range d.sinks {
		if err := sink.Send(ctx, event); err != nil {
			metrics.NotificationsTotal.WithLabelValues(sink.Name(), "error").Inc()
			d.log.Error().Err(err).
				Str("donation_id", event.DonationID).
				Str("sink", sink.Name()).
				Int("worker_id", workerID).
				Msg("notification delivery failed")
			continue
		}
		metrics.NotificationsTotal.WithLabelValues(sink.Name(), "ok").Inc()
	}
}
