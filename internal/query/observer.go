package query

import (
	"context"
	"errors"
	"time"
)

// Options describes a single-result query
type Options[T any] struct {
	Key   Key
	Fetch func(ctx context.Context) (T, error)

	// StaleTime overrides the client's stale time when positive
	StaleTime time.Duration
}

// subscription is the part of an observer shared by plain and infinite queries
type subscription struct {
	client *Client
	entry  *entry
	id     uint64
	fetch  fetchFunc
	merge  mergeFunc
	closed bool
}

// Refetch re-runs the query, superseding any request in flight.
// Data already shown stays visible until the new result arrives.
func (s *subscription) Refetch() {
	c := s.client
	c.mu.Lock()
	defer c.unlock()
	if s.closed {
		return
	}
	c.startLocked(s.entry, s.fetch, s.merge, false)
}

// Close unsubscribes the observer. Requests in flight keep running and
// still update the cache, but the observer is no longer notified.
func (s *subscription) Close() {
	c := s.client
	c.mu.Lock()
	defer c.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	c.unsubscribeLocked(s.entry, s.id)
}

func (c *Client) observe(key Key, staleTime time.Duration, notify func(), fetch fetchFunc, merge mergeFunc) *subscription {
	c.mu.Lock()
	defer c.unlock()

	e := c.entryLocked(key)
	id := c.subscribeLocked(e, notify, fetch, merge)
	if c.needsFetchLocked(e, staleTime) {
		if e.hasData {
			c.logger.Debug("serving stale query, revalidating", "key", key)
		}
		c.startLocked(e, fetch, merge, false)
	}
	return &subscription{client: c, entry: e, id: id, fetch: fetch, merge: merge}
}

// Observer follows one query. notify is called, off the caller's goroutine
// and without any lock held, whenever State may have changed.
type Observer[T any] struct {
	*subscription
}

// Observe subscribes to a query. Fresh cached data is served without a
// request; stale data is served and revalidated in the background.
func Observe[T any](c *Client, opts Options[T], notify func()) *Observer[T] {
	fetch := func(ctx context.Context) (any, error) {
		return opts.Fetch(ctx)
	}
	return &Observer[T]{subscription: c.observe(opts.Key, opts.StaleTime, notify, fetch, replaceData)}
}

// State returns the current state of the query
func (o *Observer[T]) State() State[T] {
	c := o.client
	c.mu.Lock()
	defer c.mu.Unlock()

	e := o.entry
	switch {
	case e.hasData:
		data, _ := e.data.(T)
		return Ready[T]{Data: data, Refetching: e.fetching, Err: e.err}
	case e.err != nil:
		return Failed[T]{Err: e.err, Retrying: e.fetching}
	default:
		return Loading[T]{}
	}
}

// Fetch returns the query result, blocking until it is available.
// Fresh cached data is returned directly; otherwise the call joins the
// request in flight for the key or starts one.
func Fetch[T any](ctx context.Context, c *Client, opts Options[T]) (T, error) {
	var zero T
	fetch := func(ctx context.Context) (any, error) {
		return opts.Fetch(ctx)
	}

	for {
		c.mu.Lock()
		e := c.entryLocked(opts.Key)
		if e.hasData && !e.fetching && !c.isStaleLocked(e, opts.StaleTime) {
			data, _ := e.data.(T)
			e.lastUsed = c.now()
			c.mu.Unlock()
			return data, nil
		}
		if !e.fetching {
			c.startLocked(e, fetch, replaceData, false)
		}
		gen := e.gen
		c.unlock()

		val, err := c.join(ctx, e, gen)
		if errors.Is(err, errSuperseded) {
			continue
		}
		if err != nil {
			return zero, err
		}
		data, _ := val.(T)
		return data, nil
	}
}
