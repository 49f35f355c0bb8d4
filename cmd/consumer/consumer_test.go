package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/fare-engine/internal/feed"
	"github.com/example/fare-engine/internal/models"
)

// fakeUpdater implements RedisUpdater for tests
type fakeUpdater struct {
	failH    int // number of times to fail HSet before succeeding
	failS    int // number of times to fail SAdd before succeeding
	hCalls   int
	sCalls   int
	lastMeta map[string]interface{}
}

func (f *fakeUpdater) HSet(ctx context.Context, key string, values map[string]interface{}) error {
	f.hCalls++
	if f.hCalls <= f.failH {
		return errors.New("hset fail")
	}
	f.lastMeta = values
	return nil
}

func (f *fakeUpdater) SAdd(ctx context.Context, key string, member string) error {
	f.sCalls++
	if f.sCalls <= f.failS {
		return errors.New("sadd fail")
	}
	return nil
}

func completedEvent() feed.Event {
	return feed.Event{
		RideID:   "5678",
		DriverID: "12345",
		From:     models.StatusStarted,
		To:       models.StatusCompleted,
		At:       time.Now(),
	}
}

func TestUpdateRedisWithRetry_SucceedsAfterRetries(t *testing.T) {
	f := &fakeUpdater{failH: 1, failS: 1}
	ctx := context.Background()
	start := time.Now()
	if err := updateRedisWithRetry(ctx, f, completedEvent(), 3, 10*time.Millisecond); err != nil {
		t.Fatalf("expected success, got err=%v", err)
	}
	if f.hCalls < 2 || f.sCalls < 2 {
		t.Fatalf("expected retries, got h=%d s=%d", f.hCalls, f.sCalls)
	}
	if time.Since(start) < 10*time.Millisecond {
		t.Fatalf("expected at least one backoff")
	}
	if f.lastMeta["status"] != "completed" {
		t.Fatalf("expected completed status mirrored, got %v", f.lastMeta["status"])
	}
}

func TestUpdateRedisWithRetry_FailsWhenExhausted(t *testing.T) {
	f := &fakeUpdater{failH: 5}
	ctx := context.Background()
	if err := updateRedisWithRetry(ctx, f, completedEvent(), 3, 5*time.Millisecond); err == nil {
		t.Fatalf("expected error after retries")
	}
}

func TestUpdateRedisWithRetry_SkipsCompletedSetForOtherStatuses(t *testing.T) {
	f := &fakeUpdater{}
	ev := completedEvent()
	ev.From = models.StatusPending
	ev.To = models.StatusAccepted
	if err := updateRedisWithRetry(context.Background(), f, ev, 3, time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.sCalls != 0 {
		t.Fatalf("accepted event should not touch the completed set, got %d calls", f.sCalls)
	}
}
