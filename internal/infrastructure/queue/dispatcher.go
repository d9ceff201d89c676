// Package queue fans security audit events out to a fixed set of workers.
package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/medicore/hospital-portal/internal/core/domain"
	"github.com/medicore/hospital-portal/internal/core/ports"
	"github.com/medicore/hospital-portal/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes security events to workers by consistent hashing on the
// remote IP, so the events of one client are persisted in order.
type Dispatcher struct {
	workers []chan *domain.SecurityEvent
	repo    ports.SecurityEventRepository
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.SecurityEventRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan *domain.SecurityEvent, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan *domain.SecurityEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker started by Start has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands event to the worker owning its remote IP. It never blocks:
// when that worker's buffer is full the event is dropped and false returned.
func (d *Dispatcher) Enqueue(event *domain.SecurityEvent) bool {
	idx := d.shardIndex(event.RemoteIP)
	select {
	case d.workers[idx] <- event:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
		return true
	default:
		metrics.AuditErrorsTotal.Inc()
		d.log.Warn().
			Str("event_id", event.ID).
			Int("worker_id", idx).
			Msg("audit queue full, event dropped")
		return false
	}
}

// shardIndex maps a remote IP deterministically to a worker index.
func (d *Dispatcher) shardIndex(remoteIP string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(remoteIP))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan *domain.SecurityEvent) {
	defer d.wg.Done()
	depth := metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-ch:
			depth.Dec()
			if err := d.repo.Insert(ctx, event); err != nil {
				metrics.AuditErrorsTotal.Inc()
				d.log.Error().Err(err).
					Str("event_id", event.ID).
					Int("worker_id", id).
					Msg("security event persistence failed")
			}
		}
	}
}
