package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/lox/notecheck/internal/cli"
	"github.com/lox/notecheck/internal/output"
	"golang.org/x/term"
)

type RecordsCmd struct {
	DB               string `help:"Notion data source name (exact match). Prompts when omitted." short:"d"`
	Print            bool   `help:"Print record titles to stdout."`
	FailOnEmptyTitle bool   `help:"Exit non-zero if any record has an empty title." name:"fail-on-empty-title"`
	Progress         bool   `help:"Show progress while collecting rows." short:"p"`
	JSON             bool   `help:"Output as JSON" short:"j"`
}

func (c *RecordsCmd) Run(ctx *Context) error {
	ctx.JSON = c.JSON
	return runRecords(ctx, c)
}

func runRecords(ctx *Context, c *RecordsCmd) error {
	client, err := cli.RequireNotionClient()
	if err != nil {
		return err
	}

	name, err := dataSourceNameOrPrompt(c.DB)
	if err != nil {
		return err
	}

	bgCtx := context.Background()

	ds, err := client.FindDataSourceByName(bgCtx, name)
	if err != nil {
		return err
	}

	var progress *output.Progress
	if c.Progress && !ctx.JSON {
		progress = output.NewProgress("rows")
	}

	titles, err := client.RowTitles(bgCtx, ds.ID(), progress.Add)
	progress.Done()
	if err != nil {
		return err
	}

	empty := 0
	for _, t := range titles {
		if t == "" {
			empty++
		}
	}

	if ctx.JSON {
		payload := map[string]any{
			"data_source":  name,
			"id":           ds.ID(),
			"total":        len(titles),
			"empty_titles": empty,
		}
		if c.Print {
			payload["titles"] = titles
		}
		if err := writeJSON(payload); err != nil {
			return err
		}
	} else {
		fmt.Printf("Database: %s\n", name)
		fmt.Printf("Total records: %d\n", len(titles))
		fmt.Printf("Empty titles: %d\n", empty)
		if c.Print {
			for _, t := range titles {
				fmt.Println(t)
			}
		}
	}

	if c.FailOnEmptyTitle && empty > 0 {
		return output.Exitf(1, "found %d records with empty titles", empty)
	}
	return nil
}

// dataSourceNameOrPrompt asks for the data source name on a TTY when the flag
// was omitted.
func dataSourceNameOrPrompt(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name != "" {
		return name, nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", &output.UserError{Message: "data source name is required (pass --db)"}
	}

	fmt.Print("Enter Notion data source name: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}

	entered := strings.TrimSpace(line)
	if entered == "" {
		return "", output.Exit(2, &output.UserError{Message: "data source name cannot be empty"})
	}
	return entered, nil
}
