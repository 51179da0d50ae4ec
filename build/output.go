package build

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/template"
	"time"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/maruel/natural"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	yaml "gopkg.in/yaml.v3"

	"csstokens/config"
	"csstokens/css"
	"csstokens/theme"
	"csstokens/tokens"
)

// Entry is a single token as exposed to export templates.
type Entry struct {
	Name    string
	Kind    string
	Literal string
	Value   css.Value
}

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	ID        string
	Files     []string
	Generated time.Time
	Tokens    []Entry
	Summary   tokens.Summary
}

type (
	colorOut struct {
		Hex string `json:"hex" yaml:"hex"`
		R   uint8  `json:"r" yaml:"r"`
		G   uint8  `json:"g" yaml:"g"`
		B   uint8  `json:"b" yaml:"b"`
		A   uint8  `json:"a" yaml:"a"`
	}

	dimensionOut struct {
		Value float32 `json:"value" yaml:"value"`
		Unit  string  `json:"unit" yaml:"unit"`
	}

	tokenOut struct {
		Kind    string `json:"kind" yaml:"kind"`
		Value   any    `json:"value" yaml:"value"`
		Literal string `json:"literal" yaml:"literal"`
	}
)

// entries lists tokens in requested order.
func entries(tm *tokens.TokenMap, order config.SortOrder) []Entry {
	names := tm.Names()
	if order == config.SortOrderNatural {
		slices.SortStableFunc(names, func(a, b string) int {
			switch {
			case natural.Less(a, b):
				return -1
			case natural.Less(b, a):
				return 1
			default:
				return 0
			}
		})
	}

	out := make([]Entry, 0, len(names))
	for _, name := range names {
		v, _ := tm.Get(name)
		literal, _ := tm.Raw(name)
		out = append(out, Entry{Name: name, Kind: v.Kind().String(), Literal: literal, Value: v})
	}
	return out
}

func exportValue(v css.Value) any {
	switch v := v.(type) {
	case css.Color:
		return colorOut{Hex: v.Hex(), R: v.R, G: v.G, B: v.B, A: v.A}
	case css.Dimension:
		return dimensionOut{Value: v.Value, Unit: v.Unit}
	case css.Integer:
		return v.Value
	case css.Float:
		return v.Value
	case css.String:
		return v.Value
	case css.Raw:
		return v.Value
	default:
		panic(fmt.Sprintf("unexpected css.Value variant %T", v))
	}
}

func exportMap(list []Entry) *orderedmap.OrderedMap[string, tokenOut] {
	om := orderedmap.New[string, tokenOut](len(list))
	for _, e := range list {
		om.Set(e.Name, tokenOut{Kind: e.Kind, Value: exportValue(e.Value), Literal: e.Literal})
	}
	return om
}

// exporter writes token map in one of supported formats.
type exporter struct {
	format   config.OutputFormat
	order    config.SortOrder
	indent   int
	template *template.Template
}

func newExporter(format config.OutputFormat, order config.SortOrder, indent int, text string) (*exporter, error) {
	e := &exporter{format: format, order: order, indent: indent}
	if format != config.OutputFormatTemplate {
		return e, nil
	}
	tmpl, err := template.New(string(config.OutputTemplateFieldName)).Funcs(sprig.FuncMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("unable to parse output template: %w", err)
	}
	e.template = tmpl
	return e, nil
}

func (e *exporter) export(w io.Writer, res *theme.Result) error {
	list := entries(res.Tokens, e.order)
	switch e.format {
	case config.OutputFormatText:
		return writeText(w, list)
	case config.OutputFormatJson:
		data, err := json.MarshalIndent(exportMap(list), "", strings.Repeat(" ", e.indent))
		if err != nil {
			return fmt.Errorf("unable to encode tokens: %w", err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return err
		}
		return nil
	case config.OutputFormatYaml:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(e.indent)
		if err := enc.Encode(exportMap(list)); err != nil {
			return fmt.Errorf("unable to encode tokens: %w", err)
		}
		return enc.Close()
	case config.OutputFormatTemplate:
		values := Values{
			ID:        res.ID.String(),
			Files:     res.Files,
			Generated: time.Now(),
			Tokens:    list,
			Summary:   res.Summary,
		}
		if err := e.template.Execute(w, values); err != nil {
			return fmt.Errorf("unable to expand output template: %w", err)
		}
		return nil
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}

// writeText produces flattened style sheet with every token resolved.
func writeText(w io.Writer, list []Entry) error {
	var b strings.Builder
	b.WriteString(":root {\n")
	for _, e := range list {
		fmt.Fprintf(&b, "  %s: %s;\n", e.Name, e.Literal)
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}
