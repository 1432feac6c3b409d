package query

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/mmcdole/hema/internal/api"
	"github.com/mmcdole/hema/internal/domain"
)

const (
	DefaultStaleTime = 5 * time.Minute
	DefaultGCTime    = 5 * time.Minute
	DefaultRetry     = 2
	maxRetryDelay    = 30 * time.Second
)

// errSuperseded is returned to callers joined to a request that a newer
// request for the same key replaced
var errSuperseded = errors.New("query superseded by a newer request")

type fetchFunc func(ctx context.Context) (any, error)

// mergeFunc combines the cached data with a fetched result.
// ok=false drops the result.
type mergeFunc func(prev any, hasPrev bool, result any) (data any, ok bool)

func replaceData(_ any, _ bool, result any) (any, bool) {
	return result, true
}

// entry is the cache slot for one key. All fields are guarded by Client.mu.
type entry struct {
	key       Key
	data      any
	hasData   bool
	err       *domain.APIError
	updatedAt time.Time
	lastUsed  time.Time

	invalidated bool
	// invalidGen is the generation current at the last Invalidate; only a
	// request started after it clears invalidated
	invalidGen   uint64
	fetching     bool
	fetchingNext bool

	// gen is bumped by every request; only the latest generation may commit
	gen     uint64
	settled uint64
	cancel  context.CancelFunc

	observers map[uint64]func()

	// refetch of the most recent observer, used by Invalidate
	fetch fetchFunc
	merge mergeFunc
}

// Client caches query results by key. It is safe for concurrent use; fetches
// run on their own goroutines and observers are notified through callbacks.
type Client struct {
	mu      sync.Mutex
	entries map[Key]*entry
	pending []func()
	nextID  uint64

	flight singleflight.Group

	staleTime  time.Duration
	gcTime     time.Duration
	retry      int
	retryDelay func(attempt int) time.Duration
	now        func() time.Time
	logger     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithStaleTime sets how long a successful result is served without revalidation
func WithStaleTime(d time.Duration) Option {
	return func(c *Client) { c.staleTime = d }
}

// WithGCTime sets how long an unobserved entry is kept
func WithGCTime(d time.Duration) Option {
	return func(c *Client) { c.gcTime = d }
}

// WithRetry sets the number of retries after the first failed attempt
func WithRetry(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.retry = n
		}
	}
}

// WithRetryDelay overrides the backoff between attempts
func WithRetryDelay(fn func(attempt int) time.Duration) Option {
	return func(c *Client) { c.retryDelay = fn }
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates an empty query client
func NewClient(opts ...Option) *Client {
	c := &Client{
		entries:    make(map[Key]*entry),
		staleTime:  DefaultStaleTime,
		gcTime:     DefaultGCTime,
		retry:      DefaultRetry,
		retryDelay: BackoffDelay,
		now:        time.Now,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BackoffDelay is the default retry backoff: 1s, 2s, 4s... capped at 30s
func BackoffDelay(attempt int) time.Duration {
	if attempt > 4 {
		return maxRetryDelay
	}
	return min(time.Second<<attempt, maxRetryDelay)
}

// Invalidate marks every entry whose key starts with prefix as stale.
// Observed entries are refetched right away; the rest on their next use.
func (c *Client) Invalidate(prefix string) {
	c.mu.Lock()
	defer c.unlock()

	count := 0
	for key, e := range c.entries {
		if !key.HasPrefix(prefix) {
			continue
		}
		e.invalidated = true
		e.invalidGen = e.gen
		count++
		// observed entries restart from scratch, superseding any request in
		// flight (including a next page)
		if len(e.observers) > 0 && e.fetch != nil {
			c.startLocked(e, e.fetch, e.merge, false)
		}
	}
	c.logger.Debug("invalidated queries", "prefix", prefix, "count", count)
}

// contains reports whether key has a cache entry
func (c *Client) contains(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

// unlock releases mu and then runs queued observer notifications, so
// callbacks never run with the lock held
func (c *Client) unlock() {
	pending := c.pending
	c.pending = nil
	c.mu.Unlock()
	for _, fn := range pending {
		fn()
	}
}

func (c *Client) notifyLocked(e *entry) {
	for _, fn := range e.observers {
		c.pending = append(c.pending, fn)
	}
}

// entryLocked returns the entry for key, creating it if needed.
// Unobserved idle entries past the gc time are dropped first.
func (c *Client) entryLocked(key Key) *entry {
	now := c.now()
	for k, e := range c.entries {
		if len(e.observers) == 0 && !e.fetching && now.Sub(e.lastUsed) >= c.gcTime {
			delete(c.entries, k)
			c.logger.Debug("evicted query", "key", k)
		}
	}

	e, ok := c.entries[key]
	if !ok {
		e = &entry{key: key, lastUsed: now, observers: make(map[uint64]func())}
		c.entries[key] = e
	}
	return e
}

func (c *Client) isStaleLocked(e *entry, staleTime time.Duration) bool {
	if staleTime <= 0 {
		staleTime = c.staleTime
	}
	return e.invalidated || c.now().Sub(e.updatedAt) >= staleTime
}

// needsFetchLocked reports whether observing e should start a request
func (c *Client) needsFetchLocked(e *entry, staleTime time.Duration) bool {
	if e.fetching {
		return false
	}
	if !e.hasData {
		return true
	}
	return c.isStaleLocked(e, staleTime)
}

func (c *Client) subscribeLocked(e *entry, notify func(), fetch fetchFunc, merge mergeFunc) uint64 {
	c.nextID++
	id := c.nextID
	if notify == nil {
		notify = func() {}
	}
	e.observers[id] = notify
	e.fetch = fetch
	e.merge = merge
	return id
}

func (c *Client) unsubscribeLocked(e *entry, id uint64) {
	delete(e.observers, id)
	if len(e.observers) == 0 {
		e.lastUsed = c.now()
	}
}

func flightKey(key Key, gen uint64) string {
	return fmt.Sprintf("%s#%d", key, gen)
}

// startLocked issues a new request for e. Any request already in flight for
// the key is cancelled and its result will be discarded.
func (c *Client) startLocked(e *entry, fetch fetchFunc, merge mergeFunc, next bool) {
	if e.cancel != nil {
		e.cancel()
		c.logger.Debug("superseding in-flight query", "key", e.key, "generation", e.gen)
	}

	e.gen++
	gen := e.gen
	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.fetching = true
	e.fetchingNext = next
	c.notifyLocked(e)

	c.flight.DoChan(flightKey(e.key, gen), func() (any, error) {
		defer cancel()
		return c.run(ctx, e, gen, fetch, merge, next)
	})
}

// join waits for the request of generation gen. Callers arriving after the
// request settled get its committed result without a new network call.
func (c *Client) join(ctx context.Context, e *entry, gen uint64) (any, error) {
	ch := c.flight.DoChan(flightKey(e.key, gen), func() (any, error) {
		return c.run(ctx, e, gen, nil, nil, false)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.Val, res.Err
	}
}

func (c *Client) run(ctx context.Context, e *entry, gen uint64, fetch fetchFunc, merge mergeFunc, next bool) (any, error) {
	c.mu.Lock()
	if e.gen != gen {
		c.mu.Unlock()
		return nil, errSuperseded
	}
	if e.settled >= gen || fetch == nil {
		data, err := e.data, e.err
		c.mu.Unlock()
		if err != nil {
			return nil, err
		}
		return data, nil
	}
	c.mu.Unlock()

	result, err := c.fetchWithRetry(ctx, e, gen, fetch)

	c.mu.Lock()
	defer c.unlock()

	if e.gen != gen {
		c.logger.Debug("discarding superseded response", "key", e.key, "generation", gen)
		return nil, errSuperseded
	}

	e.settled = gen
	e.fetching = false
	e.fetchingNext = false
	e.cancel = nil
	e.lastUsed = c.now()
	c.notifyLocked(e)

	if err != nil {
		e.err = api.NormalizeError(err)
		c.logger.Error("query failed", "key", e.key, "error", err, "status", e.err.Status)
		return nil, e.err
	}

	data, ok := merge(e.data, e.hasData, result)
	if !ok {
		c.logger.Debug("dropping out-of-sequence page", "key", e.key)
		return e.data, nil
	}
	e.data = data
	e.hasData = true
	e.err = nil
	if !next {
		e.updatedAt = c.now()
		if gen > e.invalidGen {
			e.invalidated = false
		}
	}
	return data, nil
}

// fetchWithRetry runs fetch once plus up to c.retry retries with backoff.
// Client errors other than 408/429 are not retried.
func (c *Client) fetchWithRetry(ctx context.Context, e *entry, gen uint64, fetch fetchFunc) (any, error) {
	for attempt := 0; ; attempt++ {
		result, err := fetch(ctx)
		if err == nil {
			return result, nil
		}
		if attempt >= c.retry || !api.IsRetryable(err) || ctx.Err() != nil {
			return nil, err
		}

		delay := c.retryDelay(attempt)
		c.logger.Warn("query attempt failed, retrying",
			"key", e.key,
			"generation", gen,
			"attempt", attempt+1,
			"delay", delay,
			"error", err,
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}
