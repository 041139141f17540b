package debug

import (
	"strings"
	"testing"
)

func TestTreeWriter_Line(t *testing.T) {
	tests := []struct {
		name   string
		depth  int
		format string
		args   []any
		want   string
	}{
		{"no depth", 0, "test", nil, "test\n"},
		{"depth 1", 1, "indented", nil, "  indented\n"},
		{"depth 2", 2, "double indent", nil, "    double indent\n"},
		{"with formatting", 1, "value: %d", []any{42}, "  value: 42\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.Line(tt.depth, tt.format, tt.args...)
			if got := tw.String(); got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}

type status int

func (status) String() string { return "loaded" }

func TestTreeWriter_Node(t *testing.T) {
	tests := []struct {
		name  string
		depth int
		kind  string
		node  string
		attrs []any
		want  string
	}{
		{"bare", 0, "page", "", nil, "page\n"},
		{"named", 1, "slice", "p1.png", nil, "  slice p1.png\n"},
		{"attributes", 0, "page", "0", []any{"segments", 2, "status", status(3)}, "page 0 segments=2 status=loaded\n"},
		{"float", 0, "camera", "", []any{"progress", 0.25}, "camera progress=0.25\n"},
		{"quoted", 2, "slice", "", []any{"path", "my page.png", "alt", ""}, "    slice path=\"my page.png\" alt=\"\"\n"},
		{"dangling", 0, "layer", "", []any{"odd"}, "layer odd\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.Node(tt.depth, tt.kind, tt.node, tt.attrs...)
			if got := tw.String(); got != tt.want {
				t.Errorf("Node() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_Tree(t *testing.T) {
	tw := NewTreeWriter()
	tw.Node(0, "story", "demo")
	tw.Node(1, "page", "0")
	tw.Node(2, "slice", "a.png")
	tw.Node(1, "page", "1")

	lines := strings.Split(strings.TrimSuffix(tw.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("tree has %d lines, want 4", len(lines))
	}
	if lines[2] != "    slice a.png" {
		t.Errorf("line 2 = %q, want %q", lines[2], "    slice a.png")
	}
}
