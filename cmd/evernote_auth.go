package cmd

import (
	"fmt"
	"net/http"

	"github.com/lox/notecheck/internal/cli"
	"github.com/lox/notecheck/internal/evernote"
	"github.com/lox/notecheck/internal/output"
)

type EvernoteAuthCmd struct {
	Listen string `help:"Address for the local relay server (defaults to config evernote.listen_addr)"`
}

func (c *EvernoteAuthCmd) Run(ctx *Context) error {
	client, tokens, listenAddr, err := cli.RequireEvernoteClient()
	if err != nil {
		return err
	}

	addr := c.Listen
	if addr == "" {
		addr = listenAddr
	}

	relay := evernote.NewRelay(client, tokens)

	output.PrintInfo(fmt.Sprintf("Evernote OAuth relay listening on http://%s/", addr))
	output.PrintInfo(fmt.Sprintf("Token will be saved to %s", tokens.Path()))
	output.PrintInfo("Open the URL above in a browser to start the flow. Ctrl-C to stop.")

	return http.ListenAndServe(addr, relay.Handler())
}
