package tokens

import (
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"go.uber.org/zap"
)

// Extractor collects custom property declarations from style sheet text.
// Selectors and ordinary declarations are ignored, only block bodies are
// scanned for "--name: value;" statements.
type Extractor struct {
	log *zap.Logger
}

// ExtractStats describes a single extraction run.
type ExtractStats struct {
	Blocks       int
	Declarations int
	Malformed    int
}

func (st *ExtractStats) add(o ExtractStats) {
	st.Blocks += o.Blocks
	st.Declarations += o.Declarations
	st.Malformed += o.Malformed
}

// NewExtractor creates a new extractor.
func NewExtractor(log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{log: log.Named("extract")}
}

// Extract returns custom properties declared in text. Later declarations of
// the same name overwrite earlier ones. Malformed input never causes an
// error, offending declarations are skipped and logged.
func (e *Extractor) Extract(text string) *StringMap {
	out, _ := e.Scan(text)
	return out
}

// Scan is Extract which also reports what has been seen.
func (e *Extractor) Scan(text string) (*StringMap, ExtractStats) {
	out := NewStringMap()
	var st ExtractStats
	if len(text) == 0 {
		return out, st
	}

	src := e.stripComments(text)

	for pos := 0; pos < len(src); {
		open := strings.IndexByte(src[pos:], '{')
		if open < 0 {
			break
		}
		open += pos
		end := matchBrace(src, open)
		st.Blocks++
		e.scanBody(src, open+1, end, out, &st)
		pos = end + 1
	}

	e.log.Debug("Custom properties extracted",
		zap.Int("blocks", st.Blocks),
		zap.Int("declarations", st.Declarations),
		zap.Int("malformed", st.Malformed),
		zap.Int("unique", out.Len()))
	return out, st
}

// stripComments removes /* ... */ comments. Unterminated comment swallows the
// rest of the input.
func (e *Extractor) stripComments(text string) string {
	if !strings.Contains(text, "/*") {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); {
		if text[i] == '/' && i+1 < len(text) && text[i+1] == '*' {
			end := strings.Index(text[i+2:], "*/")
			if end < 0 {
				line, col, _ := parse.Position(strings.NewReader(text), i)
				e.log.Warn("Unterminated comment, ignoring rest of the input",
					zap.Int("line", line), zap.Int("column", col), zap.Int("dropped", len(text)-i))
				break
			}
			i += end + 4
			continue
		}
		b.WriteByte(text[i])
		i++
	}
	return b.String()
}

// matchBrace returns index of '}' matching '{' at open, or len(s) if block is
// never closed. Quoted strings are skipped.
func matchBrace(s string, open int) int {
	depth := 0
	var quote byte
	for i := open; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(s)
}

// scanBody walks statements of block body src[start:end]. Nested blocks are
// entered, so their custom properties are picked up in textual order.
func (e *Extractor) scanBody(src string, start, end int, out *StringMap, st *ExtractStats) {
	for i := start; i < end; {
		c := src[i]
		switch {
		case isSpace(c) || c == ';' || c == '{' || c == '}':
			i++
		case c == '-' && i+1 < end && src[i+1] == '-':
			i = e.declaration(src, i, end, out, st)
		default:
			// ordinary declaration or nested selector
			i = skipStatement(src, i, end)
		}
	}
}

// skipStatement returns position right after the next top level ';', or of
// the next top level '{' or '}', whichever comes first.
func skipStatement(src string, i, end int) int {
	depth := 0
	var quote byte
	for ; i < end; i++ {
		c := src[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(':
			depth++
		case c == ')':
			if depth > 0 {
				depth--
			}
		case depth > 0:
		case c == ';':
			return i + 1
		case c == '{' || c == '}':
			return i
		}
	}
	return end
}

// declaration parses custom property starting at i and returns position to
// continue scanning from.
func (e *Extractor) declaration(src string, i, end int, out *StringMap, st *ExtractStats) int {
	colon := -1
	stop := end
	for j := i; j < end; j++ {
		c := src[j]
		if c == ':' {
			colon = j
			break
		}
		if c == ';' || c == '}' || c == '{' {
			stop = j
			break
		}
	}
	if colon < 0 {
		st.Malformed++
		e.warn(src, i, "Malformed custom property, missing colon", strings.TrimSpace(src[i:stop]))
		if stop < end && src[stop] == ';' {
			return stop + 1
		}
		return stop
	}

	name := strings.TrimSpace(src[i:colon])
	if len(name) <= 2 || strings.ContainsFunc(name, func(r rune) bool { return r < 0x80 && isSpace(byte(r)) }) {
		st.Malformed++
		e.warn(src, i, "Malformed custom property name", name)
		return skipStatement(src, colon+1, end)
	}

	semi := valueEnd(src, colon+1, end)
	if semi < 0 {
		st.Malformed++
		e.warn(src, i, "Custom property value is not terminated", name)
		return skipStatement(src, colon+1, end)
	}

	value := normalizeSpace(src[colon+1 : semi])
	if len(value) == 0 {
		st.Malformed++
		e.warn(src, i, "Custom property has empty value", name)
		return semi + 1
	}

	st.Declarations++
	out.Set(name, value)
	return semi + 1
}

// valueEnd returns position of ';' terminating value which starts at i.
// Semicolons inside quotes, parentheses and braces do not count. Returns -1
// when enclosing block ends before value is terminated.
func valueEnd(src string, i, end int) int {
	parens, braces := 0, 0
	var quote byte
	for ; i < end; i++ {
		c := src[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(':
			parens++
		case c == ')':
			if parens > 0 {
				parens--
			}
		case c == '{':
			braces++
		case c == '}':
			if braces == 0 {
				return -1
			}
			braces--
		case c == ';' && parens == 0 && braces == 0:
			return i
		}
	}
	return -1
}

func (e *Extractor) warn(src string, offset int, msg, decl string) {
	line, col, _ := parse.Position(strings.NewReader(src), offset)
	e.log.Warn(msg, zap.String("declaration", decl), zap.Int("line", line), zap.Int("column", col))
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// normalizeSpace collapses whitespace runs into a single space and trims.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
