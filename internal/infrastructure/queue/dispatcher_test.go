package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/lamsaclean/site-api/internal/core/domain"
)

type recordingService struct {
	mu       sync.Mutex
	received []domain.ContactMessage
	done     chan struct{}
}

func (s *recordingService) Process(_ context.Context, msg domain.ContactMessage) error {
	s.mu.Lock()
	s.received = append(s.received, msg)
	s.mu.Unlock()
	s.done <- struct{}{}
	return nil
}

func TestDispatcher_ProcessesEnqueuedMessage(t *testing.T) {
	svc := &recordingService{done: make(chan struct{}, 1)}
	d := NewDispatcher(2, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(domain.ContactMessage{Email: "sara@example.com", Message: "hello"})

	select {
	case <-svc.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("message was not processed")
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	if len(svc.received) != 1 || svc.received[0].Email != "sara@example.com" {
		t.Fatalf("unexpected received messages: %+v", svc.received)
	}
}

func TestDispatcher_ShardIsDeterministicPerSender(t *testing.T) {
	d := NewDispatcher(4, nil, zerolog.Nop())

	first := d.shardIndex("sara@example.com")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("sara@example.com"); got != first {
			t.Fatalf("shard changed between calls: %d vs %d", first, got)
		}
	}
	if first != d.shardIndex("SARA@example.com") {
		t.Fatalf("expected case-insensitive sender sharding")
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, nil, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
