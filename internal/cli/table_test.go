package cli

import (
	"strings"
	"testing"

	"github.com/haneulpalette/haneul/internal/colour"
)

func TestTableAddRowNormalises(t *testing.T) {
	table := NewTable([]string{"FILE", "UNDERTONE"})
	table.AddRow([]string{"a.png"})
	table.AddRow([]string{"b.png", "Warm", "extra"})

	for i, row := range table.rows {
		if len(row) != 2 {
			t.Errorf("rows[%d] has %d cells, want 2", i, len(row))
		}
	}
	if table.rows[0][1] != "" {
		t.Errorf("padded cell = %q, want empty", table.rows[0][1])
	}
}

func TestTableRender(t *testing.T) {
	table := NewTable([]string{"FILE", "UNDERTONE", "DEPTH"})
	table.AddRow([]string{"portrait-long-name.png", "Warm", "Medium"})
	table.AddRow([]string{"b.png", "Cool", "Deep"})

	lines := strings.Split(strings.TrimSuffix(table.Render(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("Render() produced %d lines, want 4:\n%s", len(lines), strings.Join(lines, "\n"))
	}
	if !strings.HasPrefix(lines[1], strings.Repeat("-", len("portrait-long-name.png"))+"  ") {
		t.Errorf("rule line = %q, first column should match the widest cell", lines[1])
	}
	col := strings.Index(lines[0], "UNDERTONE")
	for _, l := range lines[2:] {
		if got := strings.IndexAny(l[col:col+1], "WC"); got != 0 {
			t.Errorf("row %q is not aligned with the header at column %d", l, col)
		}
	}
}

func TestTableRenderEmpty(t *testing.T) {
	if got := NewTable(nil).Render(); got != "" {
		t.Errorf("Render() with no headers = %q, want empty", got)
	}

	out := NewTable([]string{"A", "B"}).Render()
	if out != "A  B\n-  -\n" {
		t.Errorf("Render() with no rows = %q", out)
	}
}

func TestTableWrapsColumn(t *testing.T) {
	table := NewTable([]string{"FILE", "NOTE"})
	table.SetColumnMaxWidth(1, 10)
	table.AddRow([]string{"a.png", "error: no supported image"})

	lines := strings.Split(strings.TrimSuffix(table.Render(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("Render() produced %d lines, want 5", len(lines))
	}
	if !strings.HasPrefix(lines[3], "     ") {
		t.Errorf("continuation line %q should leave the first column blank", lines[3])
	}
}

func TestTableIgnoresANSIWidth(t *testing.T) {
	sw := colour.Swatches([]string{"#FFDAB3"}, true)
	table := NewTable([]string{"PALETTE", "X"})
	table.AddRow([]string{sw, "1"})

	lines := strings.Split(table.Render(), "\n")
	if got, want := visibleLen(lines[2]), visibleLen(lines[0]); got != want {
		t.Errorf("row visible width = %d, header = %d", got, want)
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input string
		width int
		want  string
	}{
		{"test", 10, "test      "},
		{"hello", 5, "hello"},
		{"world", 3, "world"},
		{"", 5, "     "},
		{"★", 3, "★  "},
	}
	for _, tt := range tests {
		if got := padRight(tt.input, tt.width); got != tt.want {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
		}
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"fits", "Warm Medium", 20, []string{"Warm Medium"}},
		{"no limit", "Warm Medium", 0, []string{"Warm Medium"}},
		{"words", "soft layers add length", 11, []string{"soft layers", "add length"}},
		{"long word", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapText(tt.text, tt.width)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("wrapText(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}
