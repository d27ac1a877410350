package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/lamsaclean/site-api/internal/core/domain"
	"github.com/lamsaclean/site-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Dispatcher routes contact submissions to a fixed set of workers using
// consistent hashing on the sender's email, so repeated submissions from
// one sender are processed in arrival order.
type Dispatcher struct {
	workers []chan domain.ContactMessage
	service ports.ContactService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.ContactService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.ContactMessage, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.ContactMessage, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a submission to the worker responsible for its sender.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(msg domain.ContactMessage) {
	d.workers[d.shardIndex(msg.Email)] <- msg
}

// shardIndex maps a sender deterministically to a worker index.
func (d *Dispatcher) shardIndex(email string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(domain.NormalizeUsername(email)))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.ContactMessage) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := d.service.Process(ctx, msg); err != nil {
				d.log.Error().Err(err).
					Str("email", msg.Email).
					Int("worker_id", id).
					Msg("contact message processing failed")
			}
		}
	}
}
