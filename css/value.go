package css

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value carries.
type Kind int

const (
	KindColor Kind = iota
	KindDimension
	KindInteger
	KindFloat
	KindString
	KindRaw
)

// String returns lowercase name of the kind as used in exported dumps.
func (k Kind) String() string {
	switch k {
	case KindColor:
		return "color"
	case KindDimension:
		return "dimension"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindRaw:
		return "raw"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a typed custom property value. The set of implementations is
// closed: Color, Dimension, Integer, Float, String and Raw. Consumers switch
// on the concrete type and should treat anything else as a programming error.
type Value interface {
	Kind() Kind
	// Literal returns canonical CSS text for the value.
	Literal() string
	value()
}

// Color is an 8-bit per channel, non-premultiplied RGBA color.
type Color struct {
	R, G, B, A uint8
}

// Dimension is a number with a non-empty unit, e.g. 16px or 50%.
type Dimension struct {
	Value float32
	Unit  string
}

// Integer is a unitless whole number, e.g. a font weight.
type Integer struct {
	Value int32
}

// Float is a unitless fractional number, e.g. opacity or line-height.
type Float struct {
	Value float32
}

// String is a keyword or a comma separated list (font stacks, shadows).
type String struct {
	Value string
}

// Raw is a literal which could not be classified.
type Raw struct {
	Value string
}

func (Color) Kind() Kind     { return KindColor }
func (Dimension) Kind() Kind { return KindDimension }
func (Integer) Kind() Kind   { return KindInteger }
func (Float) Kind() Kind     { return KindFloat }
func (String) Kind() Kind    { return KindString }
func (Raw) Kind() Kind       { return KindRaw }

func (Color) value()     {}
func (Dimension) value() {}
func (Integer) value()   {}
func (Float) value()     {}
func (String) value()    {}
func (Raw) value()       {}

// Literal returns #rrggbb for opaque colors and #rrggbbaa otherwise.
func (c Color) Literal() string {
	return c.Hex()
}

func (d Dimension) Literal() string {
	return formatFloat32(d.Value) + d.Unit
}

func (i Integer) Literal() string {
	return strconv.FormatInt(int64(i.Value), 10)
}

func (f Float) Literal() string {
	return formatFloat32(f.Value)
}

func (s String) Literal() string {
	return s.Value
}

func (r Raw) Literal() string {
	return r.Value
}

// Hex returns color as lowercase hex notation, alpha is omitted when opaque.
func (c Color) Hex() string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// RGBA implements image/color.Color so tokens could be handed directly to
// drawing code.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// FormatNumber renders a number the way computed token values are written:
// integral values without fractional part, others with at most six decimals
// and no trailing zeros.
func FormatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		s = "0"
	}
	return s
}

func formatFloat32(v float32) string {
	s := strconv.FormatFloat(float64(v), 'f', -1, 32)
	if s == "-0" {
		s = "0"
	}
	return s
}
