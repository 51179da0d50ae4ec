package theme

import (
	"bytes"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// header describes at-rules which may precede style rules: @charset and
// @import. Everything after the first rule or block is not looked at.
type header struct {
	charset string
	imports []string
}

func scanHeader(src []byte, log *zap.Logger) header {
	var h header

	parser := css.NewParser(parse.NewInput(bytes.NewReader(src)), false)
	for {
		gt, tt, data := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && err.Error() != "EOF" {
				log.Debug("Style sheet header parse error", zap.Error(err))
			}
			return h
		case css.CommentGrammar:
			continue
		case css.TokenGrammar:
			if tt == css.WhitespaceToken {
				continue
			}
			return h
		case css.AtRuleGrammar:
			switch strings.ToLower(string(data)) {
			case "@charset":
				if h.charset == "" && len(h.imports) == 0 {
					h.charset = firstString(parser.Values())
				}
			case "@import":
				if url := importURL(parser.Values()); url != "" {
					h.imports = append(h.imports, url)
				}
			default:
				log.Debug("Skipping @-rule", zap.String("rule", string(data)))
			}
		default:
			return h
		}
	}
}

func firstString(tokens []css.Token) string {
	for _, t := range tokens {
		if t.TokenType == css.StringToken {
			return unquote(string(t.Data))
		}
	}
	return ""
}

// importURL extracts location from @import "file.css" or @import url(...).
// Media and layer conditions following the location are ignored.
func importURL(tokens []css.Token) string {
	for _, t := range tokens {
		switch t.TokenType {
		case css.StringToken:
			return unquote(string(t.Data))
		case css.URLToken:
			s := string(t.Data)
			s = strings.TrimPrefix(s, "url(")
			s = strings.TrimSuffix(s, ")")
			return unquote(strings.TrimSpace(s))
		case css.WhitespaceToken:
		default:
			return ""
		}
	}
	return ""
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
