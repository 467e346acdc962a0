package notion

import (
	"fmt"
	"strings"
)

// NormalizeID canonicalizes a Notion object identifier. It accepts hyphenated
// or bare forms in either case, strips every non-hex character, requires
// exactly 32 hex digits to remain, and re-inserts hyphens at the 8-4-4-4-12
// offsets. The result is lowercase and idempotent under re-normalization.
func NormalizeID(raw string) (string, error) {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(raw)) {
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') {
			b.WriteRune(r)
		}
	}
	s := b.String()
	if len(s) != 32 {
		return "", fmt.Errorf("not a valid Notion ID (need 32 hex chars): %q", raw)
	}
	return s[0:8] + "-" + s[8:12] + "-" + s[12:16] + "-" + s[16:20] + "-" + s[20:32], nil
}

// URLFromID returns the canonical notion.so URL for an identifier in any
// accepted form.
func URLFromID(raw string) (string, error) {
	id, err := NormalizeID(raw)
	if err != nil {
		return "", err
	}
	return "https://www.notion.so/" + strings.ReplaceAll(id, "-", ""), nil
}
