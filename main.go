package main

import (
	"errors"
	"os"

	"github.com/alecthomas/kong"
	"github.com/lox/notecheck/cmd"
	"github.com/lox/notecheck/internal/output"
)

var version = "dev"

func main() {
	cli := &cmd.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("notecheck"),
		kong.Description("Cross-reference Evernote exports with Notion databases"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	if err := ctx.Run(&cmd.Context{}); err != nil {
		output.PrintError(err)

		var exitErr *output.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
