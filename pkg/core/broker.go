package core

import (
	"context"
	"sync"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
)

type subscriber struct {
	pattern string
	ch      chan Event
}

// broker fans mutation events out to subscribers. Delivery is
// non-blocking: a subscriber that falls behind its buffer loses events
// rather than stalling mutations.
type broker struct {
	mu     sync.Mutex
	subs   map[*subscriber]struct{}
	buffer int
}

func newBroker(buffer int) *broker {
	if buffer <= 0 {
		buffer = 100
	}
	return &broker{
		subs:   make(map[*subscriber]struct{}),
		buffer: buffer,
	}
}

// subscribe registers a channel receiving events whose note id or any
// tag matches the doublestar pattern. "" and "*" match everything. The
// channel is closed when ctx is cancelled.
func (b *broker) subscribe(ctx context.Context, pattern string) <-chan Event {
	sub := &subscriber{pattern: pattern, ch: make(chan Event, b.buffer)}

	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()

	lifecycle.Go(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, sub)
		close(sub.ch)
		b.mu.Unlock()
		return nil
	})

	return sub.ch
}

func (b *broker) publish(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for sub := range b.subs {
		if !matchesEvent(sub.pattern, e) {
			continue
		}
		select {
		case sub.ch <- e:
		default:
		}
	}
}

func matchesEvent(pattern string, e Event) bool {
	if pattern == "" || pattern == "*" {
		return true
	}
	if ok, err := doublestar.Match(pattern, e.ID); err == nil && ok {
		return true
	}
	for _, t := range e.Tags {
		if ok, err := doublestar.Match(pattern, t); err == nil && ok {
			return true
		}
	}
	return false
}
