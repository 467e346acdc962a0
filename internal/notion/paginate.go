package notion

import "context"

// Page is one page of a cursor-paginated listing.
type Page[T any] struct {
	Results    []T
	NextCursor string
	HasMore    bool
}

// PageFunc fetches one page. cursor is empty for the first call.
type PageFunc[T any] func(ctx context.Context, cursor string) (Page[T], error)

// CollectAll drains a cursor-paginated endpoint and returns every item in
// server order. The loop ends when HasMore is false, even if the server still
// included a next cursor — a stray cursor after the final page must not
// trigger an extra call. Any page error aborts the whole collection; there is
// no retry and no partial result.
func CollectAll[T any](ctx context.Context, fetch PageFunc[T]) ([]T, error) {
	var items []T
	err := EachPage(ctx, fetch, func(page Page[T]) error {
		items = append(items, page.Results...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// EachPage is the streaming form of CollectAll: visit is called once per page,
// in order, and a visit error stops the walk.
func EachPage[T any](ctx context.Context, fetch PageFunc[T], visit func(Page[T]) error) error {
	cursor := ""
	for {
		page, err := fetch(ctx, cursor)
		if err != nil {
			return err
		}
		if err := visit(page); err != nil {
			return err
		}
		if !page.HasMore {
			return nil
		}
		cursor = page.NextCursor
	}
}
