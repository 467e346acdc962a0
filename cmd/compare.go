package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lox/notecheck/internal/cli"
	"github.com/lox/notecheck/internal/enex"
	"github.com/lox/notecheck/internal/output"
)

type CompareCmd struct {
	Enex     string `help:"Path to the .enex export" required:""`
	DB       string `help:"Notion data source name (exact match)" short:"d" required:""`
	Plain    bool   `help:"Print plain text instead of rendered markdown."`
	Progress bool   `help:"Show progress while collecting rows." short:"p"`
	JSON     bool   `help:"Output as JSON" short:"j"`
}

func (c *CompareCmd) Run(ctx *Context) error {
	ctx.JSON = c.JSON
	return runCompare(ctx, c)
}

func runCompare(ctx *Context, c *CompareCmd) error {
	path, err := filepath.Abs(c.Enex)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		return output.Exitf(2, "file not found: %s", path)
	}

	summary, err := enex.ReadFile(path)
	if err != nil {
		return err
	}

	client, err := cli.RequireNotionClient()
	if err != nil {
		return err
	}

	bgCtx := context.Background()

	ds, err := client.FindDataSourceByName(bgCtx, c.DB)
	if err != nil {
		return err
	}

	var progress *output.Progress
	if c.Progress && !ctx.JSON {
		progress = output.NewProgress("rows")
	}

	rowTitles, err := client.RowTitles(bgCtx, ds.ID(), progress.Add)
	progress.Done()
	if err != nil {
		return err
	}

	report := buildCompareReport(summary.Titles, rowTitles)
	report.EnexFile = path
	report.DataSource = c.DB

	if ctx.JSON {
		return writeJSON(report)
	}
	if c.Plain {
		fmt.Print(output.ComparePlain(report))
		return nil
	}
	return output.RenderMarkdown(output.CompareMarkdown(report))
}

// buildCompareReport cross-references the two title lists by exact match
// (titles arrive pre-trimmed). Empty titles are counted but never matched,
// and missing lists are deduplicated in first-encountered order.
func buildCompareReport(enexTitles, notionTitles []string) output.CompareReport {
	report := output.CompareReport{
		EnexTotal:           len(enexTitles),
		NotionTotal:         len(notionTitles),
		MissingFromNotion:   []string{},
		MissingFromEvernote: []string{},
	}

	notionSet := make(map[string]bool, len(notionTitles))
	for _, t := range notionTitles {
		if t == "" {
			report.EmptyNotionTitles++
			continue
		}
		notionSet[t] = true
	}

	enexSet := make(map[string]bool, len(enexTitles))
	for _, t := range enexTitles {
		if t == "" {
			report.EmptyEnexTitles++
			continue
		}
		if enexSet[t] {
			continue
		}
		enexSet[t] = true

		if notionSet[t] {
			report.Matched++
		} else {
			report.MissingFromNotion = append(report.MissingFromNotion, t)
		}
	}

	seen := make(map[string]bool, len(notionTitles))
	for _, t := range notionTitles {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		if !enexSet[t] {
			report.MissingFromEvernote = append(report.MissingFromEvernote, t)
		}
	}

	return report
}
