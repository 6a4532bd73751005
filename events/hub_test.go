package events

import (
	"fmt"
	"sync"
	"testing"
)

func TestHubDeliversInOrder(t *testing.T) {
	hub := NewHub()
	ch := hub.Register()

	const n = 10
	for i := 0; i < n; i++ {
		hub.Publish(Event{Type: TypeMovieAdded, MovieID: fmt.Sprintf("tt%07d", i)})
	}

	for i := 0; i < n; i++ {
		ev, ok := <-ch
		if !ok {
			t.Fatalf("channel closed after %d events, want %d", i, n)
		}
		want := fmt.Sprintf("tt%07d", i)
		if ev.MovieID != want {
			t.Errorf("event %d: got movie_id %q, want %q", i, ev.MovieID, want)
		}
	}

	if hub.ObserverCount() != 1 {
		t.Errorf("observer count = %d, want 1", hub.ObserverCount())
	}
}

func TestHubDropsCongestedObserver(t *testing.T) {
	hub := NewHub()
	slow := hub.Register()

	// Fill the slow observer's queue without draining it
	for i := 0; i < observerCapacity; i++ {
		hub.Publish(Event{Type: TypeMovieAdded})
	}

	fast := hub.Register()
	if hub.ObserverCount() != 2 {
		t.Fatalf("observer count = %d before overflow, want 2", hub.ObserverCount())
	}

	// One more publish overflows the slow observer; the publisher must
	// not block or fail
	hub.Publish(Event{Type: TypeMovieDeleted, MovieID: "tt0000001"})

	if hub.ObserverCount() != 1 {
		t.Errorf("observer count = %d after overflow, want 1", hub.ObserverCount())
	}

	// The slow observer still gets its queued events, then closure
	for i := 0; i < observerCapacity; i++ {
		if _, ok := <-slow; !ok {
			t.Fatalf("slow channel closed after %d events, want %d", i, observerCapacity)
		}
	}
	if _, ok := <-slow; ok {
		t.Error("slow channel still open after being dropped")
	}

	// The healthy observer is untouched and got the overflow event
	ev, ok := <-fast
	if !ok {
		t.Fatal("fast channel closed unexpectedly")
	}
	if ev.Type != TypeMovieDeleted || ev.MovieID != "tt0000001" {
		t.Errorf("fast observer got %+v, want movie_deleted tt0000001", ev)
	}
}

func TestHubShutdownClosesObservers(t *testing.T) {
	hub := NewHub()
	ch := hub.Register()

	hub.Shutdown()

	if _, ok := <-ch; ok {
		t.Error("channel still open after shutdown")
	}
	if hub.ObserverCount() != 0 {
		t.Errorf("observer count = %d after shutdown, want 0", hub.ObserverCount())
	}

	// Publishing after shutdown must be a no-op
	hub.Publish(Event{Type: TypeMovieAdded})

	// Registering after shutdown yields an already-closed channel
	late := hub.Register()
	if _, ok := <-late; ok {
		t.Error("post-shutdown registration returned an open channel")
	}
}

func TestHubConcurrentPublish(t *testing.T) {
	hub := NewHub()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				ch := hub.Register()
				hub.Publish(Event{Type: TypeMovieAdded})
				hub.Unregister(ch)
			}
		}()
	}
	wg.Wait()

	if hub.ObserverCount() != 0 {
		t.Errorf("observer count = %d after churn, want 0", hub.ObserverCount())
	}
}
