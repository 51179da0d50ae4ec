package css

import (
	"strconv"
	"strings"
)

// ParseDimension parses a number with an optional unit. Result is Dimension
// when unit is present, Float when unitless number has fractional part and
// Integer otherwise. Unit must be '%' or a run of letters, it is not checked
// against known CSS units.
func ParseDimension(s string) (Value, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return nil, false
	}
	if c := s[0]; !IsDigit(c) && c != '.' && c != '+' && c != '-' {
		return nil, false
	}

	n := NumberPrefix(s)
	if n == 0 {
		return nil, false
	}
	num, unit := s[:n], s[n:]

	if len(unit) > 0 {
		if !IsUnit(unit) {
			return nil, false
		}
		v, err := strconv.ParseFloat(num, 32)
		if err != nil {
			return nil, false
		}
		return Dimension{Value: float32(v), Unit: unit}, true
	}

	if strings.IndexByte(num, '.') >= 0 {
		v, err := strconv.ParseFloat(num, 32)
		if err != nil {
			return nil, false
		}
		return Float{Value: float32(v)}, true
	}

	v, err := strconv.ParseInt(num, 10, 32)
	if err != nil {
		return nil, false
	}
	return Integer{Value: int32(v)}, true
}

// NumberPrefix returns length of the numeric prefix of s: optional sign,
// digits, optional '.' followed by digits. At least one digit is required,
// zero is returned otherwise.
func NumberPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	start := i
	for i < len(s) && IsDigit(s[i]) {
		i++
	}
	digits := i - start
	if i+1 < len(s) && s[i] == '.' && IsDigit(s[i+1]) {
		i++
		for i < len(s) && IsDigit(s[i]) {
			i++
		}
		digits++
	}
	if digits == 0 {
		return 0
	}
	return i
}

// IsUnit reports whether s is acceptable as unit: "%" or ASCII letters.
func IsUnit(s string) bool {
	if s == "%" {
		return true
	}
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !IsLetter(s[i]) {
			return false
		}
	}
	return true
}

// parseNumber parses a complete number (no unit allowed).
func parseNumber(s string) (float64, bool) {
	if n := NumberPrefix(s); n == 0 || n != len(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
