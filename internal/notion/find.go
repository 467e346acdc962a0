package notion

import (
	"context"
	"fmt"
)

// NotFoundError reports a lookup that produced no exact match.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no Notion data source found with exact name %q. "+
		"Confirm the data source is shared with your integration and NOTION_TOKEN is correct", e.Name)
}

// FindDataSourceByName resolves a data source whose title matches name
// exactly (trimmed, case-sensitive). The search is sorted by last-edited-time
// descending, so when several data sources carry the same title the most
// recently edited one wins. Returns *NotFoundError when nothing matches.
func (c *Client) FindDataSourceByName(ctx context.Context, name string) (Object, error) {
	var match Object

	err := EachPage(ctx, func(ctx context.Context, cursor string) (Page[Object], error) {
		return c.Search(ctx, SearchRequest{
			Query:      name,
			ObjectType: "data_source",
			SortLatest: true,
			Cursor:     cursor,
		})
	}, func(page Page[Object]) error {
		for _, obj := range page.Results {
			if obj.Type() != "data_source" {
				continue
			}
			if match == nil && TitleEquals(obj, name) {
				match = obj
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if match == nil {
		return nil, &NotFoundError{Name: name}
	}
	return match, nil
}

// RowTitles collects the title of every row in a data source, in server
// order. onPage, if non-nil, is called with each page's item count as it
// arrives (progress reporting).
func (c *Client) RowTitles(ctx context.Context, dataSourceID string, onPage func(n int)) ([]string, error) {
	// Non-nil even for an empty data source, so JSON output renders [].
	titles := []string{}

	err := EachPage(ctx, func(ctx context.Context, cursor string) (Page[Object], error) {
		return c.QueryRows(ctx, dataSourceID, cursor)
	}, func(page Page[Object]) error {
		for _, row := range page.Results {
			titles = append(titles, titleProperty(row))
		}
		if onPage != nil {
			onPage(len(page.Results))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return titles, nil
}

// ResolveTitle fetches an object by ID and derives its display title. An
// empty result means the object exists but carries no title.
func (c *Client) ResolveTitle(ctx context.Context, objectType, id string) (string, error) {
	var obj Object
	var err error

	switch objectType {
	case "page":
		obj, err = c.RetrievePage(ctx, id)
	case "data_source":
		obj, err = c.RetrieveDataSource(ctx, id)
	default:
		return "", fmt.Errorf("unsupported object type %q (expected page or data_source)", objectType)
	}
	if err != nil {
		return "", err
	}
	return Title(obj), nil
}
