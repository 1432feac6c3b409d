package query

import (
	"context"
	"time"

	"github.com/mmcdole/hema/internal/domain"
)

// FirstPage is the cursor of the first page of an infinite query
const FirstPage = 1

// InfiniteOptions describes a cursor-paginated query
type InfiniteOptions[T any] struct {
	Key       Key
	FetchPage func(ctx context.Context, page int) (domain.Page[T], error)

	// StaleTime overrides the client's stale time when positive
	StaleTime time.Duration
}

// InfiniteObserver follows an infinite query. Pages are kept in fetch order
// and flattened for display.
type InfiniteObserver[T any] struct {
	*subscription
	fetchPage func(ctx context.Context, page int) (domain.Page[T], error)
}

// ObserveInfinite subscribes to an infinite query, fetching the first page
// when nothing fresh is cached. Refetch and revalidation restart from the
// first page and replace the accumulated pages once it arrives.
func ObserveInfinite[T any](c *Client, opts InfiniteOptions[T], notify func()) *InfiniteObserver[T] {
	fetch := func(ctx context.Context) (any, error) {
		return opts.FetchPage(ctx, FirstPage)
	}
	merge := func(_ any, _ bool, result any) (any, bool) {
		return []domain.Page[T]{result.(domain.Page[T])}, true
	}
	return &InfiniteObserver[T]{
		subscription: c.observe(opts.Key, opts.StaleTime, notify, fetch, merge),
		fetchPage:    opts.FetchPage,
	}
}

// State returns the current state with all loaded pages flattened
func (o *InfiniteObserver[T]) State() State[Pages[T]] {
	c := o.client
	c.mu.Lock()
	defer c.mu.Unlock()

	e := o.entry
	switch {
	case e.hasData:
		pages, _ := e.data.([]domain.Page[T])
		return Ready[Pages[T]]{
			Data:       flatten(pages, e.fetchingNext),
			Refetching: e.fetching && !e.fetchingNext,
			Err:        e.err,
		}
	case e.err != nil:
		return Failed[Pages[T]]{Err: e.err, Retrying: e.fetching}
	default:
		return Loading[Pages[T]]{}
	}
}

// FetchNextPage requests the page after the last loaded one. It does nothing
// and returns false while any request for the key is in flight, before the
// first page has loaded, or when the last page has been reached.
func (o *InfiniteObserver[T]) FetchNextPage() bool {
	c := o.client
	c.mu.Lock()
	defer c.unlock()

	e := o.entry
	if o.closed || e.fetching || !e.hasData {
		return false
	}
	pages, _ := e.data.([]domain.Page[T])
	cursor, ok := nextCursor(pages)
	if !ok {
		return false
	}

	fetch := func(ctx context.Context) (any, error) {
		return o.fetchPage(ctx, cursor)
	}
	merge := func(prev any, hasPrev bool, result any) (any, bool) {
		pages, _ := prev.([]domain.Page[T])
		expected, ok := nextCursor(pages)
		if !hasPrev || !ok || expected != cursor {
			return prev, false
		}
		// copy so readers of the previous slice never see the append
		merged := make([]domain.Page[T], 0, len(pages)+1)
		merged = append(merged, pages...)
		return append(merged, result.(domain.Page[T])), true
	}

	c.logger.Debug("fetching next page", "key", e.key, "page", cursor)
	c.startLocked(e, fetch, merge, true)
	return true
}

// nextCursor is page+1 of the last loaded page, or false at the end
func nextCursor[T any](pages []domain.Page[T]) (int, bool) {
	if len(pages) == 0 {
		return FirstPage, true
	}
	return pages[len(pages)-1].NextPage()
}

func flatten[T any](pages []domain.Page[T], fetchingNext bool) Pages[T] {
	var n int
	for _, p := range pages {
		n += len(p.Data)
	}
	items := make([]T, 0, n)
	for _, p := range pages {
		items = append(items, p.Data...)
	}
	hasNext := false
	if len(pages) > 0 {
		hasNext = pages[len(pages)-1].HasNext()
	}
	return Pages[T]{Items: items, HasNext: hasNext, FetchingNext: fetchingNext}
}
