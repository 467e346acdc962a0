package notion

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func pagesFetcher(pages []Page[string], calls *int) PageFunc[string] {
	return func(ctx context.Context, cursor string) (Page[string], error) {
		if *calls >= len(pages) {
			return Page[string]{}, fmt.Errorf("unexpected call %d with cursor %q", *calls+1, cursor)
		}
		page := pages[*calls]
		*calls++
		return page, nil
	}
}

func TestCollectAllConcatenatesInOrder(t *testing.T) {
	t.Parallel()

	pages := []Page[string]{
		{Results: []string{"a", "b"}, NextCursor: "c1", HasMore: true},
		{Results: []string{"c"}, NextCursor: "c2", HasMore: true},
		{Results: []string{"d", "e"}, HasMore: false},
	}

	calls := 0
	items, err := CollectAll(context.Background(), pagesFetcher(pages, &calls))
	if err != nil {
		t.Fatal(err)
	}

	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
	want := []string{"a", "b", "c", "d", "e"}
	if len(items) != len(want) {
		t.Fatalf("expected %d items, got %v", len(want), items)
	}
	for i := range want {
		if items[i] != want[i] {
			t.Fatalf("items[%d] = %q, want %q", i, items[i], want[i])
		}
	}
}

func TestCollectAllStopsWhenHasMoreFalseDespiteCursor(t *testing.T) {
	t.Parallel()

	// A cursor on the final page must not trigger an extra call.
	pages := []Page[string]{
		{Results: []string{"a"}, NextCursor: "c1", HasMore: true},
		{Results: []string{"b"}, NextCursor: "stray-cursor", HasMore: false},
	}

	calls := 0
	items, err := CollectAll(context.Background(), pagesFetcher(pages, &calls))
	if err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Fatalf("expected exactly 2 calls, got %d", calls)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %v", items)
	}
}

func TestCollectAllPropagatesPageError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	calls := 0
	fetch := func(ctx context.Context, cursor string) (Page[string], error) {
		calls++
		if calls == 2 {
			return Page[string]{}, boom
		}
		return Page[string]{Results: []string{"a"}, NextCursor: "c1", HasMore: true}, nil
	}

	items, err := CollectAll(context.Background(), fetch)
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if items != nil {
		t.Fatalf("expected no partial result, got %v", items)
	}
}

func TestEachPagePassesCursors(t *testing.T) {
	t.Parallel()

	var cursors []string
	fetch := func(ctx context.Context, cursor string) (Page[string], error) {
		cursors = append(cursors, cursor)
		if len(cursors) == 1 {
			return Page[string]{NextCursor: "c1", HasMore: true}, nil
		}
		return Page[string]{HasMore: false}, nil
	}

	if err := EachPage(context.Background(), fetch, func(Page[string]) error { return nil }); err != nil {
		t.Fatal(err)
	}
	if len(cursors) != 2 || cursors[0] != "" || cursors[1] != "c1" {
		t.Fatalf("unexpected cursors: %v", cursors)
	}
}
