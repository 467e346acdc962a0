package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lox/notecheck/internal/enex"
	"github.com/lox/notecheck/internal/output"
)

type EnexCmd struct {
	File             string `arg:"" help:"Path to the .enex export"`
	Print            bool   `help:"Print note titles to stdout."`
	FailOnEmptyTitle bool   `help:"Exit non-zero if any note has an empty title." name:"fail-on-empty-title"`
	JSON             bool   `help:"Output as JSON" short:"j"`
}

func (c *EnexCmd) Run(ctx *Context) error {
	ctx.JSON = c.JSON

	path, err := filepath.Abs(c.File)
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

	if ctx.JSON {
		payload := map[string]any{
			"enex_file":    path,
			"total":        summary.Total,
			"empty_titles": summary.Empty,
		}
		if c.Print {
			payload["titles"] = summary.Titles
		}
		if err := writeJSON(payload); err != nil {
			return err
		}
	} else {
		fmt.Printf("ENEX file: %s\n", path)
		fmt.Printf("Total exported notes: %d\n", summary.Total)
		fmt.Printf("Empty titles: %d\n", summary.Empty)
		if c.Print {
			for _, t := range summary.Titles {
				fmt.Println(t)
			}
		}
	}

	if c.FailOnEmptyTitle && summary.Empty > 0 {
		return output.Exitf(1, "found %d notes with empty titles", summary.Empty)
	}
	return nil
}
