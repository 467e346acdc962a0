package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

type MarkdownRenderer struct {
	renderer *glamour.TermRenderer
}

func NewMarkdownRenderer() (*MarkdownRenderer, error) {
	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
		if width > 120 {
			width = 120
		}
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("creating markdown renderer: %w", err)
	}

	return &MarkdownRenderer{renderer: r}, nil
}

func (m *MarkdownRenderer) RenderAndPrint(content string) error {
	out, err := m.renderer.Render(content)
	if err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}
	fmt.Println(strings.TrimSpace(out))
	return nil
}

// RenderMarkdown renders content to the terminal with styling.
func RenderMarkdown(content string) error {
	r, err := NewMarkdownRenderer()
	if err != nil {
		return err
	}
	return r.RenderAndPrint(content)
}

// CompareMarkdown lays a compare report out as a markdown document, ready for
// terminal rendering or piping.
func CompareMarkdown(report CompareReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Evernote ↔ Notion comparison\n\n")
	fmt.Fprintf(&b, "- **Export:** %s (%d notes, %d empty titles)\n",
		report.EnexFile, report.EnexTotal, report.EmptyEnexTitles)
	fmt.Fprintf(&b, "- **Data source:** %s (%d rows, %d empty titles)\n",
		report.DataSource, report.NotionTotal, report.EmptyNotionTitles)
	fmt.Fprintf(&b, "- **Matched titles:** %d\n", report.Matched)

	writeSection := func(heading string, titles []string) {
		fmt.Fprintf(&b, "\n## %s (%d)\n\n", heading, len(titles))
		if len(titles) == 0 {
			b.WriteString("_none_\n")
			return
		}
		for _, t := range titles {
			fmt.Fprintf(&b, "- %s\n", t)
		}
	}

	writeSection("Missing from Notion", report.MissingFromNotion)
	writeSection("Missing from Evernote", report.MissingFromEvernote)

	return b.String()
}

// ComparePlain is the text form of a compare report, for --plain and
// non-terminal output.
func ComparePlain(report CompareReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "ENEX file: %s\n", report.EnexFile)
	fmt.Fprintf(&b, "Data source: %s\n", report.DataSource)
	fmt.Fprintf(&b, "Exported notes: %d (empty titles: %d)\n", report.EnexTotal, report.EmptyEnexTitles)
	fmt.Fprintf(&b, "Notion rows: %d (empty titles: %d)\n", report.NotionTotal, report.EmptyNotionTitles)
	fmt.Fprintf(&b, "Matched titles: %d\n", report.Matched)

	writeSection := func(heading string, titles []string) {
		fmt.Fprintf(&b, "\n%s (%d):\n", heading, len(titles))
		for _, t := range titles {
			fmt.Fprintf(&b, "  %s\n", t)
		}
	}

	writeSection("Missing from Notion", report.MissingFromNotion)
	writeSection("Missing from Evernote", report.MissingFromEvernote)

	return b.String()
}
