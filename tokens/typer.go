package tokens

import (
	"strings"

	"go.uber.org/zap"

	"csstokens/css"
)

// rawMarkers are functions which cannot be computed at this stage, values
// containing any of them are kept as Raw.
var rawMarkers = []string{"calc(", "env(", "min(", "max(", "clamp("}

// Typer classifies literal values into css.Value variants.
type Typer struct {
	log *zap.Logger
}

// NewTyper creates a new typer.
func NewTyper(log *zap.Logger) *Typer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Typer{log: log.Named("typer")}
}

// Type returns typed map with one classification per value.
func (t *Typer) Type(evaluated *StringMap) *TypedMap {
	out := NewTypedMap()
	counts := make(map[css.Kind]int)
	for name, value := range evaluated.All() {
		v := TypeValue(value)
		counts[v.Kind()]++
		out.Set(name, v)
	}
	if ce := t.log.Check(zap.DebugLevel, "Values typed"); ce != nil {
		fields := make([]zap.Field, 0, len(counts))
		for k := css.KindColor; k <= css.KindRaw; k++ {
			if counts[k] > 0 {
				fields = append(fields, zap.Int(k.String(), counts[k]))
			}
		}
		ce.Write(fields...)
	}
	return out
}

// TypeValue classifies a single literal value. It never fails, anything
// unrecognized becomes css.Raw carrying the original text.
func TypeValue(value string) css.Value {
	lower := css.ToLowerASCII(strings.TrimSpace(value))

	for _, m := range rawMarkers {
		if strings.Contains(lower, m) {
			return css.Raw{Value: value}
		}
	}
	if css.HasTopLevelComma(value) {
		return css.String{Value: value}
	}
	if css.IsKeyword(lower) {
		return css.String{Value: value}
	}
	if c, ok := css.ParseColor(value); ok {
		return c
	}
	if d, ok := css.ParseDimension(value); ok {
		return d
	}
	return css.Raw{Value: value}
}
