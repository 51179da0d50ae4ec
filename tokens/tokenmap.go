package tokens

import (
	"iter"

	"csstokens/css"
	"csstokens/utils/debug"
)

// TokenMap is the final product of the pipeline. It is never modified after
// construction and is safe for concurrent use by any number of readers.
type TokenMap struct {
	typed    *TypedMap
	literals *StringMap
}

// NewTokenMap wraps typed values and literal strings they were produced
// from. Both maps are owned by TokenMap afterwards and must not be modified.
func NewTokenMap(typed *TypedMap, literals *StringMap) *TokenMap {
	if typed == nil {
		typed = NewTypedMap()
	}
	if literals == nil {
		literals = NewStringMap()
	}
	return &TokenMap{typed: typed, literals: literals}
}

// Get returns typed value of the token.
func (tm *TokenMap) Get(name string) (css.Value, bool) {
	return tm.typed.Get(name)
}

// Color returns token value if it is a color.
func (tm *TokenMap) Color(name string) (css.Color, bool) {
	v, _ := tm.typed.Get(name)
	c, ok := v.(css.Color)
	return c, ok
}

// ColorOr returns token color or def.
func (tm *TokenMap) ColorOr(name string, def css.Color) css.Color {
	if c, ok := tm.Color(name); ok {
		return c
	}
	return def
}

// Dimension returns token value if it is a number with unit.
func (tm *TokenMap) Dimension(name string) (css.Dimension, bool) {
	v, _ := tm.typed.Get(name)
	d, ok := v.(css.Dimension)
	return d, ok
}

// DimensionOr returns token dimension or def.
func (tm *TokenMap) DimensionOr(name string, def css.Dimension) css.Dimension {
	if d, ok := tm.Dimension(name); ok {
		return d
	}
	return def
}

// Int returns token value if it is a unitless integer.
func (tm *TokenMap) Int(name string) (int32, bool) {
	v, _ := tm.typed.Get(name)
	i, ok := v.(css.Integer)
	return i.Value, ok
}

// IntOr returns token integer or def.
func (tm *TokenMap) IntOr(name string, def int32) int32 {
	if i, ok := tm.Int(name); ok {
		return i
	}
	return def
}

// Float returns token value if it is a unitless fractional number. Integer
// tokens are a different variant and are not converted.
func (tm *TokenMap) Float(name string) (float32, bool) {
	v, _ := tm.typed.Get(name)
	f, ok := v.(css.Float)
	return f.Value, ok
}

// FloatOr returns token float or def.
func (tm *TokenMap) FloatOr(name string, def float32) float32 {
	if f, ok := tm.Float(name); ok {
		return f
	}
	return def
}

// String returns token value if it is a keyword or a list.
func (tm *TokenMap) String(name string) (string, bool) {
	v, _ := tm.typed.Get(name)
	s, ok := v.(css.String)
	return s.Value, ok
}

// StringOr returns token string or def.
func (tm *TokenMap) StringOr(name string, def string) string {
	if s, ok := tm.String(name); ok {
		return s
	}
	return def
}

// Raw returns literal text of the token after references and expressions
// were processed, regardless of its type.
func (tm *TokenMap) Raw(name string) (string, bool) {
	return tm.literals.Get(name)
}

// Has reports whether token exists.
func (tm *TokenMap) Has(name string) bool {
	_, ok := tm.typed.Get(name)
	return ok
}

// Len returns number of tokens.
func (tm *TokenMap) Len() int {
	return tm.typed.Len()
}

// Names returns token names in declaration order.
func (tm *TokenMap) Names() []string {
	names := make([]string, 0, tm.typed.Len())
	for name := range tm.typed.All() {
		names = append(names, name)
	}
	return names
}

// All iterates over tokens in declaration order.
func (tm *TokenMap) All() iter.Seq2[string, css.Value] {
	return tm.typed.All()
}

// Dump returns human readable listing of all tokens.
func (tm *TokenMap) Dump() string {
	tw := debug.NewTreeWriter()
	tw.Section(0, "tokens", tm.Len())
	for name, v := range tm.typed.All() {
		literal, _ := tm.literals.Get(name)
		switch v := v.(type) {
		case css.Color:
			tw.Token(1, name, v.Kind().String(), literal)
			tw.Line(2, "rgba(%d, %d, %d, %d) %s", v.R, v.G, v.B, v.A, v.Hex())
		case css.Dimension, css.Integer, css.Float, css.String, css.Raw:
			tw.Token(1, name, v.Kind().String(), literal)
		default:
			panic("unexpected css.Value variant")
		}
	}
	return tw.String()
}
