package goquery

// CompiledSelectors reports how many selectors have been compiled.
func CompiledSelectors(selectors ...string) int {
	n := 0
	for _, s := range selectors {
		if _, ok := compiled.Load(s); ok {
			n++
		}
	}
	return n
}
