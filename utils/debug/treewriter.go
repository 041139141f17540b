// Package debug renders indented text dumps of composition trees.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

type TreeWriter struct {
	w      *strings.Builder
	indent string
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w:      &strings.Builder{},
		indent: "  ",
	}
}

func (tw *TreeWriter) String() string {
	return tw.w.String()
}

func (tw *TreeWriter) pad(depth int) {
	for range depth {
		tw.w.WriteString(tw.indent)
	}
}

func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.pad(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// Node writes node kind and name followed by key=value attributes. Attributes
// are given as alternating keys and values, string values are quoted when
// they contain spaces.
func (tw *TreeWriter) Node(depth int, kind, name string, attrs ...any) {
	tw.pad(depth)
	tw.w.WriteString(kind)
	if name != "" {
		tw.w.WriteByte(' ')
		tw.w.WriteString(name)
	}
	for i := 0; i+1 < len(attrs); i += 2 {
		fmt.Fprintf(tw.w, " %v=%s", attrs[i], encodeValue(attrs[i+1]))
	}
	if len(attrs)%2 != 0 {
		fmt.Fprintf(tw.w, " %s", encodeValue(attrs[len(attrs)-1]))
	}
	tw.w.WriteByte('\n')
}

func encodeValue(v any) string {
	switch val := v.(type) {
	case string:
		if val == "" || strings.ContainsAny(val, " \t\n\"") {
			return strconv.Quote(val)
		}
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
