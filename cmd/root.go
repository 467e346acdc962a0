package cmd

import (
	"encoding/json"
	"os"

	"github.com/alecthomas/kong"
)

type CLI struct {
	Records RecordsCmd `cmd:"" help:"List record titles of a Notion data source"`
	List    ListCmd    `cmd:"" help:"List objects visible to the integration"`
	Shared  SharedCmd  `cmd:"" help:"Count everything shared with the integration"`
	Resolve ResolveCmd `cmd:"" help:"Resolve a Notion ID to its title"`
	Enex    EnexCmd    `cmd:"" help:"Summarize an Evernote .enex export"`
	Compare CompareCmd `cmd:"" help:"Cross-reference an .enex export against a Notion data source"`
	Verify  VerifyCmd  `cmd:"" help:"Check a manifest of ID/title expectations"`
	Auth    AuthCmd    `cmd:"" help:"Notion API token setup and status"`

	EvernoteAuth EvernoteAuthCmd `cmd:"" name:"evernote-auth" help:"Run the local Evernote OAuth relay"`

	Version kong.VersionFlag `help:"Show version"`
}

// Context is shared run state passed to every command.
type Context struct {
	JSON bool
}

func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
