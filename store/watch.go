package store

import (
	"context"
	"sync"
)

// Snapshot is one delivery on a subscription: the full result set of the
// subscribed query at some point in time, or the error that prevented
// evaluating it.
type Snapshot struct {
	Documents []Document
	Err       error
}

type change struct {
	collection string
	ownerID    string
}

type watcher struct {
	collection string
	ownerID    string // empty watches every owner
	notify     chan struct{}
}

// broker fans write notifications out to live subscriptions.
type broker struct {
	mu       sync.Mutex
	next     int
	watchers map[int]*watcher
}

func newBroker() *broker {
	return &broker{watchers: make(map[int]*watcher)}
}

func (b *broker) add(w *watcher) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	b.watchers[b.next] = w
	return b.next
}

func (b *broker) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.watchers, id)
}

func (b *broker) publish(c change) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, w := range b.watchers {
		if w.collection != c.collection {
			continue
		}
		if w.ownerID != "" && w.ownerID != c.ownerID {
			continue
		}
		// Pending notifications coalesce; the re-query sees every write.
		select {
		case w.notify <- struct{}{}:
		default:
		}
	}
}

// Subscription streams snapshots until it is closed or its context ends.
// Only the newest undelivered snapshot is kept, so a slow reader skips
// intermediate states but always ends up on the latest one.
type Subscription struct {
	C <-chan Snapshot

	out    chan Snapshot
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Close stops the subscription and waits for its goroutine to exit. It is
// safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.cancel()
		<-s.done
	})
}

func (s *Subscription) deliver(snap Snapshot) {
	for {
		select {
		case s.out <- snap:
			return
		default:
		}
		select {
		case <-s.out:
		default:
		}
	}
}

type queryFunc func(ctx context.Context) ([]Document, error)

func (b *base) subscribe(ctx context.Context, collection, scope string, query queryFunc) *Subscription {
	ctx, cancel := context.WithCancel(ctx)
	out := make(chan Snapshot, 1)
	sub := &Subscription{
		C:      out,
		out:    out,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	w := &watcher{collection: collection, ownerID: scope, notify: make(chan struct{}, 1)}
	id := b.broker.add(w)

	go func() {
		defer close(sub.done)
		defer close(out)
		defer b.broker.remove(id)

		for {
			docs, err := query(ctx)
			if ctx.Err() != nil {
				return
			}
			sub.deliver(Snapshot{Documents: docs, Err: err})
			select {
			case <-ctx.Done():
				return
			case <-w.notify:
			}
		}
	}()
	return sub
}
