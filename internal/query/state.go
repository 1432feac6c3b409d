package query

import "github.com/mmcdole/hema/internal/domain"

// State is what an observer sees for its query. It is always exactly one of
// Loading, Failed or Ready. The marker takes T so callers can infer it.
type State[T any] interface {
	isState(T)
}

// Loading means no data and no error yet; a fetch is in flight.
type Loading[T any] struct{}

// Failed means every attempt failed and there is no data to show.
// Retrying is set while a manual retry is in flight.
type Failed[T any] struct {
	Err      *domain.APIError
	Retrying bool
}

// Ready holds the last successful result.
// Refetching is set while a background or manual refresh is in flight.
// Err is the failure of the most recent refresh, if it failed; Data is kept.
type Ready[T any] struct {
	Data       T
	Refetching bool
	Err        *domain.APIError
}

func (Loading[T]) isState(T) {}
func (Failed[T]) isState(T)  {}
func (Ready[T]) isState(T)   {}

// Pages is the flattened view of an infinite query
type Pages[T any] struct {
	Items        []T
	HasNext      bool
	FetchingNext bool
}
