package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lox/notecheck/internal/output"
)

const exportWithEmptyTitle = `<?xml version="1.0" encoding="UTF-8"?>
<en-export>
  <note><title>Grocery List</title></note>
  <note><title></title></note>
</en-export>
`

func writeEnex(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.enex")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEnexFailOnEmptyTitleExitCode(t *testing.T) {
	t.Parallel()

	path := writeEnex(t, exportWithEmptyTitle)

	err := (&EnexCmd{File: path, FailOnEmptyTitle: true, JSON: true}).Run(&Context{})
	var exitErr *output.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Fatalf("expected exit-1 error for empty titles, got %v", err)
	}

	// Without the flag the same export succeeds.
	if err := (&EnexCmd{File: path, JSON: true}).Run(&Context{}); err != nil {
		t.Fatalf("expected success without the flag, got %v", err)
	}
}

func TestEnexMissingFileExitCode(t *testing.T) {
	t.Parallel()

	err := (&EnexCmd{File: filepath.Join(t.TempDir(), "nope.enex")}).Run(&Context{})
	var exitErr *output.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 2 {
		t.Fatalf("expected exit-2 error for missing file, got %v", err)
	}
}
