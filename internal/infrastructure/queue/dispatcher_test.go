package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/medicore/hospital-portal/internal/core/domain"
)

type recordingRepo struct {
	mu     sync.Mutex
	events []*domain.SecurityEvent
	fail   bool
	done   chan struct{}
}

func (r *recordingRepo) Insert(_ context.Context, e *domain.SecurityEvent) error {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
	if r.done != nil {
		r.done <- struct{}{}
	}
	if r.fail {
		return errors.New("mongo down")
	}
	return nil
}

func (r *recordingRepo) ListRecent(context.Context, int) ([]*domain.SecurityEvent, error) {
	return nil, nil
}

func (r *recordingRepo) ids() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.ID
	}
	return out
}

func TestDispatcher_PersistsInOrderPerIP(t *testing.T) {
	repo := &recordingRepo{done: make(chan struct{}, 16)}
	d := NewDispatcher(3, repo, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	for _, id := range []string{"e1", "e2", "e3", "e4"} {
		if !d.Enqueue(&domain.SecurityEvent{ID: id, RemoteIP: "10.1.1.1"}) {
			t.Fatalf("enqueue %s refused", id)
		}
	}
	for i := 0; i < 4; i++ {
		select {
		case <-repo.done:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for event %d", i)
		}
	}
	cancel()
	d.Wait()

	got := repo.ids()
	want := []string{"e1", "e2", "e3", "e4"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order mismatch: got %v want %v", got, want)
		}
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(5, &recordingRepo{}, zerolog.Nop())
	first := d.shardIndex("192.168.0.7")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("192.168.0.7"); got != first {
			t.Fatalf("shard changed: %d != %d", got, first)
		}
	}
	if first < 0 || first >= 5 {
		t.Fatalf("shard %d out of range", first)
	}
}

func TestDispatcher_DefaultWorkers(t *testing.T) {
	d := NewDispatcher(0, &recordingRepo{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}

func TestDispatcher_EnqueueNeverBlocks(t *testing.T) {
	d := NewDispatcher(1, &recordingRepo{}, zerolog.Nop())
	for i := 0; i < channelBuffer; i++ {
		if !d.Enqueue(&domain.SecurityEvent{RemoteIP: "x"}) {
			t.Fatalf("enqueue %d refused before buffer was full", i)
		}
	}
	if d.Enqueue(&domain.SecurityEvent{RemoteIP: "x"}) {
		t.Fatalf("expected full buffer to drop the event")
	}
}

func TestDispatcher_InsertFailureKeepsWorkerAlive(t *testing.T) {
	repo := &recordingRepo{fail: true, done: make(chan struct{}, 4)}
	d := NewDispatcher(1, repo, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		d.Wait()
	}()
	d.Start(ctx)

	d.Enqueue(&domain.SecurityEvent{ID: "a"})
	d.Enqueue(&domain.SecurityEvent{ID: "b"})
	for i := 0; i < 2; i++ {
		select {
		case <-repo.done:
		case <-time.After(2 * time.Second):
			t.Fatalf("worker stopped after a failed insert")
		}
	}
}
