package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/lox/notecheck/internal/cli"
	"github.com/lox/notecheck/internal/notion"
	"github.com/lox/notecheck/internal/output"
	"gopkg.in/yaml.v3"
)

type VerifyCmd struct {
	Manifest string `help:"YAML manifest of ID/title expectations" required:""`
	JSON     bool   `help:"Output as JSON" short:"j"`
}

// manifest is the verify input file:
//
//	checks:
//	  - id: 25a81b6a9a4c80f2b3c1e1a2b3c4d5e6
//	    type: data_source
//	    expect: Projects
type manifest struct {
	Checks []manifestCheck `yaml:"checks"`
}

type manifestCheck struct {
	ID     string `yaml:"id"`
	Type   string `yaml:"type"`
	Expect string `yaml:"expect"`
}

type checkResult struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
	Match    bool   `json:"match"`
}

func (c *VerifyCmd) Run(ctx *Context) error {
	ctx.JSON = c.JSON

	checks, err := loadManifest(c.Manifest)
	if err != nil {
		return err
	}

	client, err := cli.RequireNotionClient()
	if err != nil {
		return err
	}

	bgCtx := context.Background()

	results := make([]checkResult, 0, len(checks))
	mismatches := 0
	for _, check := range checks {
		id, err := notion.NormalizeID(check.ID)
		if err != nil {
			return output.Exit(2, err)
		}

		actual, err := client.ResolveTitle(bgCtx, check.Type, id)
		if err != nil {
			return err
		}

		match := actual == strings.TrimSpace(check.Expect)
		if !match {
			mismatches++
		}
		results = append(results, checkResult{
			ID:       id,
			Type:     check.Type,
			Expected: check.Expect,
			Actual:   actual,
			Match:    match,
		})
	}

	if ctx.JSON {
		if err := writeJSON(map[string]any{
			"checks":     results,
			"mismatches": mismatches,
		}); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.Match {
				fmt.Printf("ok       %s %s\n", r.ID, r.Expected)
			} else {
				fmt.Printf("MISMATCH %s expected %q, got %q\n", r.ID, r.Expected, r.Actual)
			}
		}
		fmt.Printf("\nChecks: %d, mismatches: %d\n", len(results), mismatches)
	}

	if mismatches > 0 {
		return output.Exitf(2, "%d of %d checks mismatched", mismatches, len(results))
	}
	return nil
}

func loadManifest(path string) ([]manifestCheck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, output.Exitf(2, "manifest not found: %s", path)
		}
		return nil, err
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if len(m.Checks) == 0 {
		return nil, output.Exitf(2, "manifest %s has no checks", path)
	}

	for i := range m.Checks {
		check := &m.Checks[i]
		check.Type = strings.TrimSpace(check.Type)
		if check.Type == "" {
			check.Type = "page"
		}
		if check.Type != "page" && check.Type != "data_source" {
			return nil, output.Exitf(2, "manifest check %d: unsupported type %q", i+1, check.Type)
		}
		if strings.TrimSpace(check.ID) == "" {
			return nil, output.Exitf(2, "manifest check %d: id is required", i+1)
		}
	}
	return m.Checks, nil
}
