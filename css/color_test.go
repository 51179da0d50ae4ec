package css_test

import (
	"testing"

	"csstokens/css"
)

func TestParseColor_Hex(t *testing.T) {
	tests := []struct {
		in   string
		want css.Color
	}{
		{"#f00", css.Color{R: 255, G: 0, B: 0, A: 255}},
		{"#F00", css.Color{R: 255, G: 0, B: 0, A: 255}},
		{"#f008", css.Color{R: 255, G: 0, B: 0, A: 0x88}},
		{"#0080ff", css.Color{R: 0, G: 128, B: 255, A: 255}},
		{"#0080ff80", css.Color{R: 0, G: 128, B: 255, A: 128}},
		{"  #abcdef  ", css.Color{R: 0xab, G: 0xcd, B: 0xef, A: 255}},
	}
	for _, tt := range tests {
		got, ok := css.ParseColor(tt.in)
		if !ok {
			t.Errorf("ParseColor(%q) failed", tt.in)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseColor_HexInvalid(t *testing.T) {
	for _, in := range []string{"#", "#ff", "#fffff", "#fffffff", "#ggg", "#12345g", "#fff fff"} {
		if c, ok := css.ParseColor(in); ok {
			t.Errorf("ParseColor(%q) = %+v, expected failure", in, c)
		}
	}
}

func TestParseColor_RGB(t *testing.T) {
	tests := []struct {
		in   string
		want css.Color
	}{
		{"rgb(255, 0, 0)", css.Color{R: 255, A: 255}},
		{"rgb(255 0 0)", css.Color{R: 255, A: 255}},
		{"rgba(255, 0, 0, 0.5)", css.Color{R: 255, A: 128}},
		{"rgb(255 0 0 / 0.5)", css.Color{R: 255, A: 128}},
		{"rgb(255 0 0 / 50%)", css.Color{R: 255, A: 128}},
		{"rgba(0, 0, 0, 0)", css.Color{}},
		{"RGB( 10 , 20 , 30 )", css.Color{R: 10, G: 20, B: 30, A: 255}},
		{"rgb(300, -20, 128)", css.Color{R: 255, G: 0, B: 128, A: 255}},
		{"rgb(100%, 50%, 0%)", css.Color{R: 255, G: 128, B: 0, A: 255}},
		{"rgba(0, 0, 0, 2)", css.Color{A: 255}},
	}
	for _, tt := range tests {
		got, ok := css.ParseColor(tt.in)
		if !ok {
			t.Errorf("ParseColor(%q) failed", tt.in)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseColor_HSL(t *testing.T) {
	tests := []struct {
		in   string
		want css.Color
	}{
		{"hsl(211, 100%, 50%)", css.Color{R: 0, G: 123, B: 255, A: 255}},
		{"hsl(211 100% 50%)", css.Color{R: 0, G: 123, B: 255, A: 255}},
		{"hsl(211 100% 50% / 0.5)", css.Color{R: 0, G: 123, B: 255, A: 128}},
		{"hsla(211, 100%, 50%, 0.5)", css.Color{R: 0, G: 123, B: 255, A: 128}},
		{"HSL(0, 100%, 50%)", css.Color{R: 255, A: 255}},
		{"hsl(120deg 100% 25%)", css.Color{G: 128, A: 255}},
		{"hsl(0, 0%, 100%)", css.Color{R: 255, G: 255, B: 255, A: 255}},
		{"hsl(0, 0%, 0%)", css.Color{A: 255}},
		{"hsl(300, 100%, 50%)", css.Color{R: 255, B: 255, A: 255}},
	}
	for _, tt := range tests {
		got, ok := css.ParseColor(tt.in)
		if !ok {
			t.Errorf("ParseColor(%q) failed", tt.in)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseColor_HueWraps(t *testing.T) {
	pairs := [][2]string{
		{"hsl(-60, 100%, 50%)", "hsl(300, 100%, 50%)"},
		{"hsl(420, 100%, 50%)", "hsl(60, 100%, 50%)"},
		{"hsl(360, 50%, 50%)", "hsl(0, 50%, 50%)"},
	}
	for _, p := range pairs {
		a, okA := css.ParseColor(p[0])
		b, okB := css.ParseColor(p[1])
		if !okA || !okB {
			t.Fatalf("failed to parse %q or %q", p[0], p[1])
		}
		if a != b {
			t.Errorf("%q = %+v, %q = %+v, expected equal", p[0], a, p[1], b)
		}
	}
}

func TestParseColor_Named(t *testing.T) {
	tests := []struct {
		in   string
		want css.Color
	}{
		{"red", css.Color{R: 255, A: 255}},
		{"RebeccaPurple", css.Color{R: 102, G: 51, B: 153, A: 255}},
		{"gray", css.Color{R: 128, G: 128, B: 128, A: 255}},
		{"grey", css.Color{R: 128, G: 128, B: 128, A: 255}},
		{"transparent", css.Color{}},
		{" TRANSPARENT ", css.Color{}},
	}
	for _, tt := range tests {
		got, ok := css.ParseColor(tt.in)
		if !ok {
			t.Errorf("ParseColor(%q) failed", tt.in)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}

	if n := css.NamedColorCount(); n != 149 {
		t.Errorf("NamedColorCount() = %d, want 149", n)
	}
}

func TestParseColor_Rejects(t *testing.T) {
	for _, in := range []string{
		"", "16px", "400", "solid", "notacolor", "calc(1px + 2px)",
		"rgb(1, 2)", "rgb(1, 2, 3, 4, 5)", "rgb(a, b, c)", "rgb(1 2 3 4)",
		"hsl(10, 20%)", "rgb(1, , 3)", "rgb(1 2 3 /)", "rgb(1, 2, 3",
		"var(--x)", "lab(50% 40 59)",
	} {
		if c, ok := css.ParseColor(in); ok {
			t.Errorf("ParseColor(%q) = %+v, expected failure", in, c)
		}
	}
}

func TestColor_Hex(t *testing.T) {
	if got := (css.Color{R: 0, G: 128, B: 255, A: 255}).Hex(); got != "#0080ff" {
		t.Errorf("Hex() = %q, want #0080ff", got)
	}
	if got := (css.Color{R: 255, A: 0x80}).Hex(); got != "#ff000080" {
		t.Errorf("Hex() = %q, want #ff000080", got)
	}
}

func TestColor_RGBA(t *testing.T) {
	r, g, b, a := css.Color{R: 255, G: 0, B: 0, A: 255}.RGBA()
	if r != 0xffff || g != 0 || b != 0 || a != 0xffff {
		t.Errorf("RGBA() = %x %x %x %x", r, g, b, a)
	}
	_, _, _, a = css.Color{}.RGBA()
	if a != 0 {
		t.Errorf("transparent alpha = %x, want 0", a)
	}
}
