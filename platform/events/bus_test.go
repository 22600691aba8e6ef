package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type testEvent struct {
	BaseEvent
	payload string
}

func (e testEvent) EventName() string { return "test.event" }

func TestInMemoryBus_PublishReachesAllHandlers(t *testing.T) {
	bus := NewInMemoryBus(nil)

	var wg sync.WaitGroup
	wg.Add(2)
	var mu sync.Mutex
	var got []string

	handler := HandlerFunc(func(_ context.Context, event Event) error {
		defer wg.Done()
		mu.Lock()
		got = append(got, event.(testEvent).payload)
		mu.Unlock()
		return nil
	})
	bus.Subscribe("test.event", handler)
	bus.Subscribe("test.event", handler)

	bus.Publish(context.Background(), testEvent{BaseEvent: NewBaseEvent(), payload: "hello"})

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handlers did not run")
	}

	if len(got) != 2 || got[0] != "hello" || got[1] != "hello" {
		t.Fatalf("unexpected deliveries: %v", got)
	}
}

func TestInMemoryBus_PublishSyncJoinsErrors(t *testing.T) {
	bus := NewInMemoryBus(nil)

	errFirst := errors.New("first")
	bus.Subscribe("test.event", HandlerFunc(func(context.Context, Event) error { return errFirst }))
	bus.Subscribe("test.event", HandlerFunc(func(context.Context, Event) error { return nil }))

	err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent()})
	if !errors.Is(err, errFirst) {
		t.Fatalf("expected the handler error to surface, got %v", err)
	}
}

func TestInMemoryBus_NoHandlersIsFine(t *testing.T) {
	bus := NewInMemoryBus(nil)

	bus.Publish(context.Background(), testEvent{BaseEvent: NewBaseEvent()})
	if err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent()}); err != nil {
		t.Fatalf("expected nil error without handlers, got %v", err)
	}
}

func TestInMemoryBus_EventNameIsolation(t *testing.T) {
	bus := NewInMemoryBus(nil)

	called := false
	bus.Subscribe("other.event", HandlerFunc(func(context.Context, Event) error {
		called = true
		return nil
	}))

	if err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if called {
		t.Fatal("handler for a different event name must not run")
	}
}
