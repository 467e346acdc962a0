package cmd

import (
	"context"
	"fmt"

	"github.com/lox/notecheck/internal/cli"
	"github.com/lox/notecheck/internal/notion"
	"github.com/lox/notecheck/internal/output"
)

type ResolveCmd struct {
	ID     string  `arg:"" help:"Notion object ID, hyphenated or bare hex"`
	Type   string  `help:"Object type" enum:"page,data_source" default:"page"`
	Expect *string `help:"Expected title (exact match); mismatch exits 2."`
	JSON   bool    `help:"Output as JSON" short:"j"`
}

func (c *ResolveCmd) Run(ctx *Context) error {
	ctx.JSON = c.JSON

	id, err := notion.NormalizeID(c.ID)
	if err != nil {
		return output.Exit(2, err)
	}
	url, err := notion.URLFromID(id)
	if err != nil {
		return output.Exit(2, err)
	}

	client, err := cli.RequireNotionClient()
	if err != nil {
		return err
	}

	title, err := client.ResolveTitle(context.Background(), c.Type, id)
	if err != nil {
		return err
	}

	res := output.Resolution{
		Type:  c.Type,
		ID:    id,
		URL:   url,
		Title: title,
	}
	if c.Expect != nil {
		match := title == *c.Expect
		res.Expected = *c.Expect
		res.Match = &match
	}

	if ctx.JSON {
		if err := writeJSON(res); err != nil {
			return err
		}
	} else {
		display := title
		if display == "" {
			display = "(no title returned)"
		}
		fmt.Printf("Type: %s\n", res.Type)
		fmt.Printf("ID:   %s\n", res.ID)
		fmt.Printf("URL:  %s\n", res.URL)
		fmt.Printf("Name: %s\n", display)
		if res.Match != nil {
			fmt.Printf("Expected: %s\n", res.Expected)
			fmt.Printf("Match:    %t\n", *res.Match)
		}
	}

	if res.Match != nil && !*res.Match {
		return output.Exitf(2, "title %q does not match expected %q", title, res.Expected)
	}
	return nil
}
