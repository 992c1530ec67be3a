package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Option configures the slug generation behavior.
type Option func(*config)

type config struct {
	maxLength int
	separator string
	lowercase bool
}

func defaultConfig() *config {
	return &config{
		maxLength: 0, // no limit
		separator: "-",
		lowercase: true,
	}
}

// MaxLength sets the maximum length of the generated slug in runes.
func MaxLength(n int) Option {
	return func(c *config) {
		c.maxLength = n
	}
}

// Separator sets the separator. Default is "-".
func Separator(s string) Option {
	return func(c *config) {
		c.separator = s
	}
}

// Lowercase controls lowercase conversion. Default is true.
func Lowercase(enabled bool) Option {
	return func(c *config) {
		c.lowercase = enabled
	}
}

// Make creates a file-name and URL safe slug from s. Accents are removed via
// NFKD decomposition; every other run of non-alphanumeric characters becomes
// a single separator.
func Make(s string, opts ...Option) string {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	s = fold(s)

	var b strings.Builder
	b.Grow(len(s))

	lastWasSep := true // no leading separator
	runeCount := 0
	sepLen := len([]rune(cfg.separator))

	for _, r := range s {
		if cfg.maxLength > 0 && runeCount >= cfg.maxLength {
			break
		}

		if cfg.lowercase {
			r = unicode.ToLower(r)
		}

		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastWasSep = false
			runeCount++
			continue
		}

		if !lastWasSep {
			if cfg.maxLength > 0 && runeCount+sepLen > cfg.maxLength {
				break
			}
			b.WriteString(cfg.separator)
			lastWasSep = true
			runeCount += sepLen
		}
	}

	return strings.TrimSuffix(b.String(), cfg.separator)
}

// Letters that do not decompose under NFKD.
var foldMap = map[rune]string{
	'æ': "ae", 'Æ': "AE",
	'œ': "oe", 'Œ': "OE",
	'ø': "o", 'Ø': "O",
	'ł': "l", 'Ł': "L",
	'đ': "d", 'Đ': "D",
	'ß': "ss",
}

// fold strips combining marks after compatibility decomposition, so "é"
// becomes "e" and "ﬁ" becomes "fi".
func fold(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}

	if strings.IndexFunc(out, func(r rune) bool { _, ok := foldMap[r]; return ok }) < 0 {
		return out
	}
	var b strings.Builder
	for _, r := range out {
		if rep, ok := foldMap[r]; ok {
			b.WriteString(rep)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
