package provider

import (
	"context"

	"media-catalog-service/internal/domain"
)

// PageFunc fetches one page of a listing. cursor is the continuation token
// returned by the previous page (empty on the first call); page is the
// 1-based index of the fetch attempt, for providers that paginate by page
// number instead of cursor.
type PageFunc[T any] func(ctx context.Context, cursor string, page int) (domain.Page[T], error)

// Walk drives repeated page fetches and flattens the results.
//
// Termination rules:
//   - a page with zero items stops the walk,
//   - the walk continues only while the page reports more data (an explicit
//     HasMore flag or a non-empty continuation cursor) and maxPages has not
//     been reached,
//   - a RateLimited classification on any page halts the walk and returns
//     the items collected from prior pages, never an error,
//   - any other failure surfaces as an error only when nothing has been
//     collected yet; after the first successful page it degrades to a
//     partial result.
func Walk[T any](ctx context.Context, fetch PageFunc[T], maxPages int) ([]T, error) {
	var collected []T
	cursor := ""

	for page := 1; page <= maxPages; page++ {
		result, err := fetch(ctx, cursor, page)
		if err != nil {
			if domain.IsRateLimited(err) {
				return collected, nil
			}
			if len(collected) == 0 {
				return nil, err
			}

			return collected, nil
		}

		if len(result.Items) == 0 {
			return collected, nil
		}
		collected = append(collected, result.Items...)

		if !result.HasMore && result.NextCursor == "" {
			return collected, nil
		}
		cursor = result.NextCursor
	}

	return collected, nil
}
