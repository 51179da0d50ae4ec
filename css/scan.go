package css

// Helpers shared by value parsers and token pipeline stages. All of them work
// on bytes, function names and units are ASCII so byte positions are stable.

// ToLowerASCII lowercases ASCII letters only, so byte offsets in the result
// match offsets in the input.
func ToLowerASCII(s string) string {
	for i := 0; i < len(s); i++ {
		if c := s[i]; 'A' <= c && c <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if 'A' <= b[j] && b[j] <= 'Z' {
					b[j] += 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return s
}

// IsLetter reports whether c is an ASCII letter.
func IsLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

// IsDigit reports whether c is an ASCII digit.
func IsDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// IsSpace reports whether c is CSS whitespace.
func IsSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isIdentByte(c byte) bool {
	return IsLetter(c) || IsDigit(c) || c == '-' || c == '_' || c >= 0x80
}

// IndexFunction returns index of the first occurrence of function name
// followed by '(' in s starting at from, matching case-insensitively. Name
// must be lowercase. Occurrences which are a tail of a longer identifier
// (like "-webkit-calc(") are skipped. Returns -1 if there is none.
func IndexFunction(s, name string, from int) int {
	n := len(name)
	for i := from; i+n < len(s); i++ {
		if s[i+n] != '(' {
			continue
		}
		if i > 0 && isIdentByte(s[i-1]) {
			continue
		}
		match := true
		for j := range n {
			c := s[i+j]
			if 'A' <= c && c <= 'Z' {
				c += 'a' - 'A'
			}
			if c != name[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// MatchParen returns index of the ')' closing the '(' at position open.
// Quoted strings are skipped. Returns -1 when parenthesis is not closed.
func MatchParen(s string, open int) int {
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
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// HasTopLevelComma reports whether s contains a comma outside of any
// parentheses.
func HasTopLevelComma(s string) bool {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				return true
			}
		}
	}
	return false
}

// SplitTopLevel splits s on sep ignoring separators nested in parentheses.
func SplitTopLevel(s string, sep byte) []string {
	var (
		parts []string
		depth int
		start int
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}
