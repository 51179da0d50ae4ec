package config

import (
	"os"
	"path/filepath"
	"strings"
)

// OutputFileName derives name of the export file from the source style sheet
// path: source extension is replaced by the one of the export format.
func OutputFileName(source string, format OutputFormat) string {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	ext := format.Ext()
	if len(ext) == 0 {
		ext = ".out"
	}
	return CleanFileName(base) + ext
}

// CleanFileName removes characters not allowed in file names. Leading dots
// are dropped as well, so derived names are never hidden.
func CleanFileName(in string) string {
	out := strings.TrimLeft(strings.Map(func(sym rune) rune {
		if sym == 0 || strings.ContainsRune(reservedNameChars, sym) {
			return -1
		}
		return sym
	}, in), ".")
	if len(out) == 0 {
		out = "tokens"
	}
	return out
}

// colorAllowed honors NO_COLOR (https://no-color.org) and dumb terminals.
func colorAllowed() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}
