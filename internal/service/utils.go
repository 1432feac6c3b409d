package service

import (
	"context"

	"github.com/mmcdole/hema/internal/domain"
)

// fetchAllPages walks a paginated endpoint from the first page to the last.
// Only used by ContentService - not exported.
func fetchAllPages[T any](
	ctx context.Context,
	fetch func(ctx context.Context, page int) (domain.Page[T], error),
	onProgress func(loaded, total int),
) ([]T, error) {
	var all []T
	page := 1

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		result, err := fetch(ctx, page)
		if err != nil {
			return nil, err
		}

		all = append(all, result.Data...)

		if onProgress != nil {
			onProgress(len(all), result.TotalCount)
		}

		next, ok := result.NextPage()
		if !ok || len(result.Data) == 0 {
			break
		}
		page = next
	}

	return all, nil
}
