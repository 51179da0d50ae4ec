// Package debug has helpers producing human readable dumps of engine state.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

// TreeWriter accumulates indented lines, two spaces per level.
type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) indent(depth int) {
	for range depth {
		tw.w.WriteString("  ")
	}
}

func (tw TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// Section writes heading followed by number of items in it.
func (tw TreeWriter) Section(depth int, title string, count int) {
	tw.indent(depth)
	fmt.Fprintf(tw.w, "%s (%d)\n", title, count)
}

// Field writes "label: value" with value quoted, empty values are written
// as is.
func (tw TreeWriter) Field(depth int, label, value string) {
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

// Token writes a single token line: name, kind in brackets and quoted
// literal.
func (tw TreeWriter) Token(depth int, name, kind, literal string) {
	tw.indent(depth)
	fmt.Fprintf(tw.w, "%s [%s] %s\n", name, kind, encodeText(literal))
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
