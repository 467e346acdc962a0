package notion

import "testing"

func TestNormalizeID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "bare hex",
			input: "25a81b6a9a4c80f2b3c1e1a2b3c4d5e6",
			want:  "25a81b6a-9a4c-80f2-b3c1-e1a2b3c4d5e6",
		},
		{
			name:  "already hyphenated",
			input: "25a81b6a-9a4c-80f2-b3c1-e1a2b3c4d5e6",
			want:  "25a81b6a-9a4c-80f2-b3c1-e1a2b3c4d5e6",
		},
		{
			name:  "uppercase and surrounding whitespace",
			input: "  25A81B6A9A4C80F2B3C1E1A2B3C4D5E6 ",
			want:  "25a81b6a-9a4c-80f2-b3c1-e1a2b3c4d5e6",
		},
		{
			name:  "stray separators stripped",
			input: "25a81b6a_9a4c.80f2/b3c1:e1a2b3c4d5e6",
			want:  "25a81b6a-9a4c-80f2-b3c1-e1a2b3c4d5e6",
		},
		{
			name:    "too short",
			input:   "25a81b6a",
			wantErr: true,
		},
		{
			name:    "too long",
			input:   "25a81b6a9a4c80f2b3c1e1a2b3c4d5e6ff",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "non-hex letters do not count",
			input:   "zzzz25a81b6a9a4c80f2b3c1e1a2b3c4", // 28 hex chars remain
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NormalizeID(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Fatalf("NormalizeID(%q) = %q, want %q", tt.input, got, tt.want)
			}

			again, err := NormalizeID(got)
			if err != nil {
				t.Fatalf("re-normalize: %v", err)
			}
			if again != got {
				t.Fatalf("normalization not idempotent: %q != %q", again, got)
			}
		})
	}
}

func TestURLFromID(t *testing.T) {
	t.Parallel()

	url, err := URLFromID("25a81b6a-9a4c-80f2-b3c1-e1a2b3c4d5e6")
	if err != nil {
		t.Fatal(err)
	}
	if url != "https://www.notion.so/25a81b6a9a4c80f2b3c1e1a2b3c4d5e6" {
		t.Fatalf("unexpected URL: %s", url)
	}

	if _, err := URLFromID("nope"); err == nil {
		t.Fatal("expected validation error")
	}
}
