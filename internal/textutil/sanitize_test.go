package textutil

import (
	"strings"
	"testing"
)

func TestSanitizeTerminalTextLeavesSafeInput(t *testing.T) {
	input := "safe-file.txt"
	if got := SanitizeTerminalText(input); got != input {
		t.Fatalf("expected %q to remain untouched, got %q", input, got)
	}
}

func TestSanitizeTerminalTextReplacesControlSequences(t *testing.T) {
	input := "bad\x1b[31m\npath\tx"
	got := SanitizeTerminalText(input)
	if got != "bad?[31m path x" {
		t.Fatalf("expected sanitized string \"bad?[31m path x\", got %q", got)
	}
	if containsControl(got) {
		t.Fatalf("sanitized text should not contain control characters: %q", got)
	}
}

func TestVisibleKeepsTabs(t *testing.T) {
	got := Visible("a\tb\x07c")
	if got != "a\tb?c" {
		t.Fatalf("Visible = %q, want %q", got, "a\tb?c")
	}
}

func TestVisibleLabelsFormattingRunes(t *testing.T) {
	input := "a" + string(rune(0x202E)) + "b" + string(rune(0x200B)) + "c" + string(rune(0x00AD))
	got := Visible(input)
	if strings.ContainsRune(got, 0x202E) || strings.ContainsRune(got, 0x200B) {
		t.Fatalf("formatting runes left in output: %q", got)
	}
	for _, label := range []string{"⟪RLO⟫", "⟪ZWSP⟫", "⟪SHY⟫"} {
		if !strings.Contains(got, label) {
			t.Fatalf("expected %s label in %q", label, got)
		}
	}
}

func TestHasFormattingRunes(t *testing.T) {
	if HasFormattingRunes("plain") {
		t.Fatalf("expected plain text to have no formatting runes")
	}
	if !HasFormattingRunes("hi" + string(rune(0x2067))) {
		t.Fatalf("expected formatting runes to be detected")
	}
}

func TestExpandTabsFrom(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		col     int
		width   int
		want    string
		wantCol int
	}{
		{"no tabs", "abc", 0, 4, "abc", 3},
		{"leading tab", "\tx", 0, 4, "    x", 5},
		{"mid column", "\tx", 2, 4, "  x", 5},
		{"wide rune", "日\t", 0, 4, "日  ", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, col := ExpandTabsFrom(tt.text, tt.col, tt.width)
			if got != tt.want || col != tt.wantCol {
				t.Fatalf("ExpandTabsFrom(%q, %d, %d) = (%q, %d), want (%q, %d)",
					tt.text, tt.col, tt.width, got, col, tt.want, tt.wantCol)
			}
		})
	}
}

func TestDisplayWidth(t *testing.T) {
	tests := map[string]int{
		"":    0,
		"abc": 3,
		"日本":  4,
		"a日b": 4,
	}
	for in, want := range tests {
		if got := DisplayWidth(in); got != want {
			t.Fatalf("DisplayWidth(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestCellWidth(t *testing.T) {
	if CellWidth('a') != 1 || CellWidth('日') != 2 || CellWidth(0x200B) != 1 {
		t.Fatalf("unexpected cell widths")
	}
}

func containsControl(s string) bool {
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			return true
		}
	}
	return false
}
