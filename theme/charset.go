package theme

import (
	"bytes"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xef, 0xbb, 0xbf}
	bomUTF16BE = []byte{0xfe, 0xff}
	bomUTF16LE = []byte{0xff, 0xfe}
)

func hasBOM(data []byte) bool {
	return bytes.HasPrefix(data, bomUTF8) || bytes.HasPrefix(data, bomUTF16BE) || bytes.HasPrefix(data, bomUTF16LE)
}

// Decode converts style sheet bytes to UTF-8 text. Byte order mark takes
// precedence, then @charset rule, UTF-8 is assumed otherwise. Unknown
// charsets are reported and treated as UTF-8. Returns IANA name of the
// encoding actually used.
func Decode(data []byte, log *zap.Logger) (string, string, error) {
	if log == nil {
		log = zap.NewNop()
	}

	name := "UTF-8"
	fallback := encoding.Encoding(unicode.UTF8)

	switch {
	case bytes.HasPrefix(data, bomUTF16BE):
		name = "UTF-16BE"
	case bytes.HasPrefix(data, bomUTF16LE):
		name = "UTF-16LE"
	case hasBOM(data):
	default:
		if cs := scanHeader(data, log).charset; cs != "" && !strings.EqualFold(cs, "utf-8") {
			enc, err := ianaindex.IANA.Encoding(cs)
			switch {
			case err != nil:
				log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cs), zap.Error(err))
			case enc == nil:
				log.Warn("Unsupported character set. Ignoring...", zap.String("charset", cs))
			default:
				fallback = enc
				name = cs
				if n, err := ianaindex.MIME.Name(enc); err == nil && n != "" {
					name = n
				}
			}
		}
	}

	out, _, err := transform.Bytes(unicode.BOMOverride(fallback.NewDecoder()), data)
	if err != nil {
		return "", name, fmt.Errorf("unable to decode %s text: %w", name, err)
	}
	log.Debug("Style sheet decoded", zap.String("charset", name), zap.Int("bytes", len(data)))
	return string(out), name, nil
}
