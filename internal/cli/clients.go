package cli

import (
	"fmt"

	"github.com/lox/notecheck/internal/config"
	"github.com/lox/notecheck/internal/evernote"
	"github.com/lox/notecheck/internal/notion"
)

// RequireNotionClient builds a Notion API client from config and environment,
// failing with guidance when no token is configured.
func RequireNotionClient() (*notion.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	client, err := notion.NewClient(cfg.Notion)
	if err != nil {
		return nil, fmt.Errorf("create Notion client: %w (set notion.token in ~/.config/notecheck/config.json or NOTION_TOKEN)", err)
	}

	return client, nil
}

// RequireEvernoteClient builds the Evernote OAuth client plus its token file,
// and reports the configured relay listen address so callers need not load
// config a second time.
func RequireEvernoteClient() (*evernote.Client, *evernote.TokenFile, string, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, "", fmt.Errorf("load config: %w", err)
	}

	client, err := evernote.NewClient(cfg.Evernote)
	if err != nil {
		return nil, nil, "", err
	}

	tokenPath, err := config.TokenPath()
	if err != nil {
		return nil, nil, "", err
	}

	return client, evernote.NewTokenFile(tokenPath), cfg.Evernote.ListenAddr, nil
}
