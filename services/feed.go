package services

import (
	"github.com/Govind-619/ShopSphere/store"
)

// Update is one push delivery of a typed feed.
type Update[T any] struct {
	Items []T
	Err   error
}

// Feed is a typed view over a store subscription. Like the underlying
// subscription it keeps only the newest undelivered update.
type Feed[T any] struct {
	C <-chan Update[T]

	sub  *store.Subscription
	done chan struct{}
}

func newFeed[T any](sub *store.Subscription, what string, arrange func([]T) []T) *Feed[T] {
	out := make(chan Update[T], 1)
	f := &Feed[T]{C: out, sub: sub, done: make(chan struct{})}

	go func() {
		defer close(f.done)
		defer close(out)
		for snap := range sub.C {
			var update Update[T]
			if snap.Err != nil {
				update.Err = remoteError("failed to refresh "+what, snap.Err, nil)
			} else if items, err := store.DecodeAll[T](snap.Documents); err != nil {
				update.Err = decodeError(what, err)
			} else {
				if arrange != nil {
					items = arrange(items)
				}
				update.Items = items
			}
			deliverLatest(out, update)
		}
	}()
	return f
}

// Close tears the feed down and waits until its channel is closed.
func (f *Feed[T]) Close() {
	f.sub.Close()
	<-f.done
}

func deliverLatest[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
