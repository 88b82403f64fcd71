package scrape

import (
	"net/url"
	"strings"

	"github.com/fwojciec/lodestone"
)

// FormatURL replaces {name} placeholders in template with the matching
// values from vars. Values are path-escaped. Returns EINVALID if a
// placeholder has no value or a brace is left unclosed.
func FormatURL(template string, vars map[string]string) (string, error) {
	var b strings.Builder
	rest := template
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			return "", lodestone.Errorf(lodestone.EINVALID, "unclosed placeholder in %q", template)
		}
		key := rest[open+1 : open+end]
		val, ok := vars[key]
		if !ok {
			return "", lodestone.Errorf(lodestone.EINVALID, "no value for {%s} in %q", key, template)
		}
		b.WriteString(rest[:open])
		b.WriteString(url.PathEscape(val))
		rest = rest[open+end+1:]
	}
}
