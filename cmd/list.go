package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/lox/notecheck/internal/cli"
	"github.com/lox/notecheck/internal/notion"
	"github.com/lox/notecheck/internal/output"
)

type ListCmd struct {
	Type string `arg:"" optional:"" enum:"pages,data-sources,all" default:"all" help:"Object type to list (pages, data-sources, or all)"`
	JSON bool   `help:"Output as JSON" short:"j"`
}

func (c *ListCmd) Run(ctx *Context) error {
	ctx.JSON = c.JSON

	client, err := cli.RequireNotionClient()
	if err != nil {
		return err
	}

	bgCtx := context.Background()

	var types []string
	switch c.Type {
	case "pages":
		types = []string{"page"}
	case "data-sources":
		types = []string{"data_source"}
	default:
		types = []string{"data_source", "page"}
	}

	var allRows []output.Row
	for i, objectType := range types {
		rows, err := listVisible(bgCtx, client, objectType)
		if err != nil {
			return err
		}

		if ctx.JSON {
			allRows = append(allRows, rows...)
			continue
		}

		if i > 0 {
			fmt.Println()
		}
		for _, row := range rows {
			title := row.Title
			if title == "" {
				title = "(no title returned)"
			}
			fmt.Printf("%s | %s | %s\n", row.ID, strings.ToUpper(row.Type), title)
		}
		fmt.Printf("\nTotal %ss visible to integration: %d\n", objectType, len(rows))
	}

	if ctx.JSON {
		return writeJSON(map[string]any{
			"total":   len(allRows),
			"objects": allRows,
		})
	}
	return nil
}

// listVisible drains the search endpoint for one object type. When a search
// result comes back without a usable title, the object is retrieved directly
// as a fallback; a fallback failure degrades to no title rather than aborting
// the listing.
func listVisible(ctx context.Context, client *notion.Client, objectType string) ([]output.Row, error) {
	objects, err := client.SearchAll(ctx, notion.SearchRequest{ObjectType: objectType})
	if err != nil {
		return nil, err
	}

	rows := make([]output.Row, 0, len(objects))
	for _, obj := range objects {
		title := notion.Title(obj)
		if title == "" && obj.ID() != "" && objectType == "data_source" {
			if full, err := client.RetrieveDataSource(ctx, obj.ID()); err == nil {
				title = notion.Title(full)
			}
		}
		rows = append(rows, output.Row{
			ID:    obj.ID(),
			Type:  objectType,
			Title: title,
		})
	}
	return rows, nil
}
