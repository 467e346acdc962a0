package enex

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleExport = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE en-export SYSTEM "http://xml.evernote.com/pub/evernote-export3.dtd">
<en-export export-date="20240101T000000Z" application="Evernote" version="10.0">
  <note>
    <title>  Grocery List </title>
    <content><![CDATA[<en-note>milk</en-note>]]></content>
  </note>
  <note>
    <title></title>
    <content><![CDATA[<en-note>untitled</en-note>]]></content>
  </note>
  <note>
    <content><![CDATA[<en-note>no title element</en-note>]]></content>
  </note>
  <note>
    <title>Trip Notes</title>
  </note>
</en-export>
`

func TestReadTitles(t *testing.T) {
	t.Parallel()

	titles, err := ReadTitles(strings.NewReader(sampleExport))
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"Grocery List", "", "", "Trip Notes"}
	if len(titles) != len(want) {
		t.Fatalf("expected %d titles, got %v", len(want), titles)
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Fatalf("titles[%d] = %q, want %q", i, titles[i], want[i])
		}
	}
}

func TestReadTitlesEmptyExport(t *testing.T) {
	t.Parallel()

	titles, err := ReadTitles(strings.NewReader(`<?xml version="1.0"?><en-export></en-export>`))
	if err != nil {
		t.Fatal(err)
	}
	// Empty, not nil: callers marshal this straight into JSON output.
	if titles == nil || len(titles) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", titles)
	}
}

func TestReadTitlesRejectsMalformedXML(t *testing.T) {
	t.Parallel()

	_, err := ReadTitles(strings.NewReader("<en-export><note><title>oops"))
	if err == nil {
		t.Fatal("expected parse error")
	}
}

func TestReadFileSummarizes(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "export.enex")
	if err := os.WriteFile(path, []byte(sampleExport), 0o600); err != nil {
		t.Fatal(err)
	}

	summary, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Total != 4 {
		t.Fatalf("total: %d", summary.Total)
	}
	if summary.Empty != 2 {
		t.Fatalf("empty: %d", summary.Empty)
	}
}

func TestReadFileMissing(t *testing.T) {
	t.Parallel()

	if _, err := ReadFile(filepath.Join(t.TempDir(), "nope.enex")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
