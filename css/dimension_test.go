package css_test

import (
	"testing"

	"csstokens/css"
)

func TestParseDimension(t *testing.T) {
	tests := []struct {
		in   string
		want css.Value
	}{
		{"16px", css.Dimension{Value: 16, Unit: "px"}},
		{"-0.5rem", css.Dimension{Value: -0.5, Unit: "rem"}},
		{"+2em", css.Dimension{Value: 2, Unit: "em"}},
		{".5s", css.Dimension{Value: 0.5, Unit: "s"}},
		{"50%", css.Dimension{Value: 50, Unit: "%"}},
		{"100vh", css.Dimension{Value: 100, Unit: "vh"}},
		{"12Q", css.Dimension{Value: 12, Unit: "Q"}},
		{"400", css.Integer{Value: 400}},
		{"-3", css.Integer{Value: -3}},
		{"0", css.Integer{Value: 0}},
		{"1.25", css.Float{Value: 1.25}},
		{"0.0", css.Float{Value: 0}},
		{"  1.5  ", css.Float{Value: 1.5}},
	}
	for _, tt := range tests {
		got, ok := css.ParseDimension(tt.in)
		if !ok {
			t.Errorf("ParseDimension(%q) failed", tt.in)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDimension(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestParseDimension_Rejects(t *testing.T) {
	for _, in := range []string{
		"", " ", ".", "-", "+", "px", "solid", "#fff", "calc(1px + 2px)",
		"1.", "10px solid", "1e3", "10px5", "99999999999", "1-2",
	} {
		if v, ok := css.ParseDimension(in); ok {
			t.Errorf("ParseDimension(%q) = %#v, expected failure", in, v)
		}
	}
}

func TestNumberPrefix(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"12px", 2},
		{"-1.5em", 4},
		{".5", 2},
		{"1.", 1},
		{"-.", 0},
		{"abc", 0},
		{"+", 0},
	}
	for _, tt := range tests {
		if got := css.NumberPrefix(tt.in); got != tt.want {
			t.Errorf("NumberPrefix(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
