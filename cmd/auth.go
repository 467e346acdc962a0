package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/lox/notecheck/internal/config"
	"github.com/lox/notecheck/internal/notion"
	"github.com/lox/notecheck/internal/output"
	"golang.org/x/term"
)

const integrationsURL = "https://www.notion.so/profile/integrations/internal"

type AuthCmd struct {
	Setup  AuthSetupCmd  `cmd:"" help:"Set up the Notion integration token"`
	Status AuthStatusCmd `cmd:"" default:"withargs" help:"Show Notion token status"`
	Unset  AuthUnsetCmd  `cmd:"" help:"Remove the saved Notion token"`
}

type AuthSetupCmd struct {
	Token    string `help:"Notion integration token (optional; skips the input prompt)"`
	NoVerify bool   `help:"Save the token without verifying it against the API" name:"no-verify"`
	OpenDocs bool   `help:"Open the integration docs in a browser before setup" name:"open-docs"`
}

func (c *AuthSetupCmd) Run(ctx *Context) error {
	if c.OpenDocs {
		if err := openBrowserURL(integrationsURL); err != nil {
			output.PrintWarning(fmt.Sprintf("Could not open browser automatically: %v", err))
		}
	}

	cfgEffective, err := config.Load()
	if err != nil {
		return err
	}
	cfgFile, err := config.LoadFile()
	if err != nil {
		return err
	}

	token := strings.TrimSpace(c.Token)
	if token == "" {
		if !isInteractiveTerminal() {
			return &output.UserError{Message: "Token input requires a terminal. Pass --token or set NOTION_TOKEN."}
		}
		token, err = runAuthSetupWizard()
		if err != nil {
			if errors.Is(err, errAuthSetupCancelled) {
				output.PrintInfo("Token setup cancelled")
				return nil
			}
			return err
		}
	}

	if !c.NoVerify {
		verifyCfg := cfgEffective.Notion
		verifyCfg.Token = token
		client, err := notion.NewClient(verifyCfg)
		if err != nil {
			return err
		}
		if err := client.VerifyToken(context.Background()); err != nil {
			return err
		}
	}

	cfgFile.Notion.BaseURL = cfgEffective.Notion.BaseURL
	cfgFile.Notion.Version = cfgEffective.Notion.Version
	cfgFile.Notion.Token = token
	if err := config.Save(cfgFile); err != nil {
		return err
	}

	output.PrintSuccess("Notion token saved")
	if !c.NoVerify {
		output.PrintSuccess("Notion token verified")
	}
	return nil
}

type AuthStatusCmd struct {
	JSON bool `help:"Output as JSON" short:"j"`
}

func (c *AuthStatusCmd) Run(ctx *Context) error {
	fileCfg, err := config.LoadFile()
	if err != nil {
		return err
	}
	effectiveCfg, err := config.Load()
	if err != nil {
		return err
	}
	path, err := config.Path()
	if err != nil {
		return err
	}

	tokenSource := "none"
	if strings.TrimSpace(os.Getenv("NOTION_TOKEN")) != "" {
		tokenSource = "env"
	} else if strings.TrimSpace(fileCfg.Notion.Token) != "" {
		tokenSource = "config"
	}

	if c.JSON {
		return writeJSON(map[string]any{
			"configured":   strings.TrimSpace(effectiveCfg.Notion.Token) != "",
			"token_source": tokenSource,
			"config_path":  path,
			"base_url":     effectiveCfg.Notion.BaseURL,
			"version":      effectiveCfg.Notion.Version,
		})
	}

	if strings.TrimSpace(effectiveCfg.Notion.Token) == "" {
		output.PrintWarning("Notion token is not configured")
	} else {
		output.PrintSuccess("Notion token is configured")
	}

	fmt.Printf("Source:       %s\n", tokenSource)
	fmt.Printf("Config path:  %s\n", path)
	fmt.Printf("API base URL: %s\n", effectiveCfg.Notion.BaseURL)
	fmt.Printf("API version:  %s\n", effectiveCfg.Notion.Version)
	if tokenSource == "env" {
		output.PrintInfo("Token comes from NOTION_TOKEN and is not persisted in config.")
	}

	return nil
}

type AuthUnsetCmd struct {
	JSON bool `help:"Output as JSON" short:"j"`
}

func (c *AuthUnsetCmd) Run(ctx *Context) error {
	fileCfg, err := config.LoadFile()
	if err != nil {
		return err
	}
	path, err := config.Path()
	if err != nil {
		return err
	}

	hadToken := strings.TrimSpace(fileCfg.Notion.Token) != ""
	fileCfg.Notion.Token = ""
	if err := config.Save(fileCfg); err != nil {
		return err
	}

	if c.JSON {
		return writeJSON(map[string]any{
			"had_token":   hadToken,
			"config_path": path,
		})
	}

	if hadToken {
		output.PrintSuccess("Removed saved Notion token")
	} else {
		output.PrintInfo("No saved Notion token was set")
	}
	if strings.TrimSpace(os.Getenv("NOTION_TOKEN")) != "" {
		output.PrintWarning("NOTION_TOKEN is still set in your environment and will override config.")
	}
	return nil
}

func isInteractiveTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
