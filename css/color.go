package css

import (
	"math"
	"strings"
)

// ParseColor parses color notation: #RGB, #RGBA, #RRGGBB, #RRGGBBAA,
// rgb()/rgba(), hsl()/hsla() (legacy comma and modern space separated
// syntax, alpha as fourth argument or after '/') and named colors. Returns
// false for anything else.
func ParseColor(s string) (Color, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return Color{}, false
	}
	if s[0] == '#' {
		return parseHex(s[1:])
	}

	lower := ToLowerASCII(s)
	if name, args, ok := splitFunction(lower); ok {
		switch name {
		case "rgb", "rgba":
			return parseRGB(args)
		case "hsl", "hsla":
			return parseHSL(args)
		}
		return Color{}, false
	}
	return LookupColor(lower)
}

// splitFunction splits "name(args)" into its parts.
func splitFunction(s string) (name, args string, ok bool) {
	open := strings.IndexByte(s, '(')
	if open <= 0 || s[len(s)-1] != ')' {
		return "", "", false
	}
	name = strings.TrimSpace(s[:open])
	for i := 0; i < len(name); i++ {
		if !IsLetter(name[i]) {
			return "", "", false
		}
	}
	return name, s[open+1 : len(s)-1], true
}

func parseHex(h string) (Color, bool) {
	for i := 0; i < len(h); i++ {
		if hexValue(h[i]) < 0 {
			return Color{}, false
		}
	}
	nibble := func(i int) uint8 { return uint8(hexValue(h[i])) * 0x11 }
	octet := func(i int) uint8 { return uint8(hexValue(h[i])<<4 | hexValue(h[i+1])) }

	switch len(h) {
	case 3:
		return Color{R: nibble(0), G: nibble(1), B: nibble(2), A: 0xff}, true
	case 4:
		return Color{R: nibble(0), G: nibble(1), B: nibble(2), A: nibble(3)}, true
	case 6:
		return Color{R: octet(0), G: octet(2), B: octet(4), A: 0xff}, true
	case 8:
		return Color{R: octet(0), G: octet(2), B: octet(4), A: octet(6)}, true
	}
	return Color{}, false
}

func hexValue(c byte) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'f':
		return int(c-'a') + 10
	case 'A' <= c && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}

// splitColorArgs separates function arguments into three components and
// optional alpha. Accepted forms: "a, b, c", "a, b, c, alpha", "a b c" and
// "a b c / alpha".
func splitColorArgs(args string) (comps []string, alpha string, ok bool) {
	if slash := strings.IndexByte(args, '/'); slash >= 0 {
		alpha = strings.TrimSpace(args[slash+1:])
		if len(alpha) == 0 || strings.ContainsAny(alpha, ",/") {
			return nil, "", false
		}
		args = args[:slash]
		if strings.IndexByte(args, ',') >= 0 {
			comps = trimAll(strings.Split(args, ","))
		} else {
			comps = strings.Fields(args)
		}
		if len(comps) != 3 {
			return nil, "", false
		}
		return comps, alpha, allPresent(comps)
	}

	if strings.IndexByte(args, ',') >= 0 {
		comps = trimAll(strings.Split(args, ","))
		switch len(comps) {
		case 3:
		case 4:
			alpha, comps = comps[3], comps[:3]
			if len(alpha) == 0 {
				return nil, "", false
			}
		default:
			return nil, "", false
		}
		return comps, alpha, allPresent(comps)
	}

	comps = strings.Fields(args)
	if len(comps) != 3 {
		return nil, "", false
	}
	return comps, "", true
}

func trimAll(parts []string) []string {
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func allPresent(parts []string) bool {
	for _, p := range parts {
		if len(p) == 0 {
			return false
		}
	}
	return true
}

func parseRGB(args string) (Color, bool) {
	comps, alpha, ok := splitColorArgs(args)
	if !ok {
		return Color{}, false
	}
	var ch [3]uint8
	for i, c := range comps {
		if ch[i], ok = parseChannel(c); !ok {
			return Color{}, false
		}
	}
	a, ok := parseAlpha(alpha)
	if !ok {
		return Color{}, false
	}
	return Color{R: ch[0], G: ch[1], B: ch[2], A: a}, true
}

// parseChannel parses rgb() component: number in 0..255 or percentage,
// out of range values are clamped.
func parseChannel(s string) (uint8, bool) {
	if p, ok := strings.CutSuffix(s, "%"); ok {
		v, ok := parseNumber(p)
		if !ok {
			return 0, false
		}
		return clampByte(v * 255 / 100), true
	}
	v, ok := parseNumber(s)
	if !ok {
		return 0, false
	}
	return clampByte(v), true
}

// parseAlpha parses alpha as number in 0..1 or percentage. Empty string
// means opaque.
func parseAlpha(s string) (uint8, bool) {
	if len(s) == 0 {
		return 0xff, true
	}
	if p, ok := strings.CutSuffix(s, "%"); ok {
		v, ok := parseNumber(p)
		if !ok {
			return 0, false
		}
		return clampByte(clamp(v, 0, 100) * 255 / 100), true
	}
	v, ok := parseNumber(s)
	if !ok {
		return 0, false
	}
	return clampByte(clamp(v, 0, 1) * 255), true
}

func parseHSL(args string) (Color, bool) {
	comps, alpha, ok := splitColorArgs(args)
	if !ok {
		return Color{}, false
	}
	h, ok := parseNumber(strings.TrimSuffix(comps[0], "deg"))
	if !ok {
		return Color{}, false
	}
	s, ok := parsePercentage(comps[1])
	if !ok {
		return Color{}, false
	}
	l, ok := parsePercentage(comps[2])
	if !ok {
		return Color{}, false
	}
	a, ok := parseAlpha(alpha)
	if !ok {
		return Color{}, false
	}
	r, g, b := hslToRGB(h, s, l)
	return Color{R: r, G: g, B: b, A: a}, true
}

// parsePercentage accepts "50%" as well as bare "50".
func parsePercentage(s string) (float64, bool) {
	v, ok := parseNumber(strings.TrimSuffix(s, "%"))
	if !ok {
		return 0, false
	}
	return clamp(v, 0, 100), true
}

// hslToRGB converts hue in degrees (any range), saturation and lightness in
// percents to 8-bit RGB.
func hslToRGB(h, s, l float64) (r, g, b uint8) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	h /= 360
	s /= 100
	l /= 100

	if s == 0 {
		v := clampByte(l * 255)
		return v, v, v
	}

	var t2 float64
	if l <= 0.5 {
		t2 = l * (s + 1)
	} else {
		t2 = l + s - l*s
	}
	t1 := l*2 - t2
	return hueToRGB(t1, t2, h+1.0/3), hueToRGB(t1, t2, h), hueToRGB(t1, t2, h-1.0/3)
}

func hueToRGB(t1, t2, h float64) uint8 {
	if h < 0 {
		h += 1
	}
	if h > 1 {
		h -= 1
	}
	var v float64
	switch {
	case h*6 < 1:
		v = t1 + (t2-t1)*6*h
	case h*2 < 1:
		v = t2
	case h*3 < 2:
		v = t1 + (t2-t1)*(2.0/3-h)*6
	default:
		v = t1
	}
	return clampByte(v * 255)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func clampByte(v float64) uint8 {
	return uint8(clamp(math.Round(v), 0, 255))
}
