package perception

import "testing"

func TestExtractFilename(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"simple", "read notes.txt", "notes.txt", true},
		{"after keyword", "create file notes.txt", "notes.txt", true},
		{"case preserved", "create file README.MD", "README.MD", true},
		{"first dotted token wins", "open a.txt b.txt", "a.txt", true},
		{"verb is skipped", "x.y z", "", false},
		{"path", "read docs/guide.md", "docs/guide.md", true},
		{"trailing punctuation counts", "delete it.", "it.", true},
		{"no dotted token", "delete notes", "", false},
		{"only verb", "read", "", false},
		{"empty", "", "", false},
		{"extra whitespace", "  open \t  cfg.yaml  ", "cfg.yaml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractFilename(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ExtractFilename(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestExtractSearchQuery(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"find Python files", "Python"},
		{"find FILES", ""},
		{"search for Files about go", "for about go"},
		{"find notes", "notes"},
		{"find", ""},
		{"", ""},
		{"search   report   2024  ", "report 2024"},
		{"find filesystem", "filesystem"},
	}

	for _, tt := range tests {
		if got := ExtractSearchQuery(tt.input); got != tt.want {
			t.Errorf("ExtractSearchQuery(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
