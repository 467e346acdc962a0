package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/lox/notecheck/internal/cli"
	"github.com/lox/notecheck/internal/notion"
	"github.com/lox/notecheck/internal/output"
)

type SharedCmd struct {
	Print bool `help:"Print the name of every shared object."`
	JSON  bool `help:"Output as JSON" short:"j"`
}

func (c *SharedCmd) Run(ctx *Context) error {
	ctx.JSON = c.JSON

	client, err := cli.RequireNotionClient()
	if err != nil {
		return err
	}

	var counts output.SharedCounts

	// No query and no filter: everything shared with the integration.
	err = notion.EachPage(context.Background(), func(ctx context.Context, cursor string) (notion.Page[notion.Object], error) {
		return client.Search(ctx, notion.SearchRequest{Cursor: cursor})
	}, func(page notion.Page[notion.Object]) error {
		for _, obj := range page.Results {
			objectType := obj.Type()
			switch objectType {
			case "page":
				counts.Pages++
			case "data_source":
				counts.DataSources++
			default:
				counts.Other++
			}

			if c.Print && !ctx.JSON {
				fmt.Printf("%-11s | %s\n", strings.ToUpper(objectType), notion.DisplayTitle(obj))
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if ctx.JSON {
		return writeJSON(counts)
	}

	fmt.Printf("\nTotal shared pages: %d\n", counts.Pages)
	fmt.Printf("Total shared data_sources: %d\n", counts.DataSources)
	if counts.Other > 0 {
		fmt.Printf("Total other objects: %d\n", counts.Other)
	}
	return nil
}
