package goquery

import (
	"strings"

	"github.com/fwojciec/lodestone"
)

// CheckSelectors compiles every element selector of def and returns
// EINVALID naming the first element whose selector does not compile.
//
// Selectors are not validated when a definition is parsed, and at
// extraction time an invalid selector simply matches nothing, so this is
// the only place a typo surfaces as an error.
func CheckSelectors(def *lodestone.Definition) error {
	return def.Root().Walk(func(path []string, e *lodestone.Element) error {
		if _, err := compile(e.Selector()); err != nil {
			return lodestone.Errorf(lodestone.EINVALID, "%s.%s: invalid selector %q: %v",
				def.Name(), strings.Join(path, "."), e.Selector(), err)
		}
		return nil
	})
}
