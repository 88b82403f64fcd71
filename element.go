package lodestone

import (
	"regexp"
	"strings"
)

// ElementSpec is the JSON form of an element: a CSS selector with optional
// refinements. The presence of a "selector" key is what marks a definition
// entry as an element rather than a container.
type ElementSpec struct {
	Selector  string `json:"selector"`
	Attribute string `json:"attribute,omitempty"`
	Regex     string `json:"regex,omitempty"`
}

// Element is a leaf extraction rule.
//
// Extraction always reads the raw text first: the value of Attribute if set,
// the element's text content otherwise. If a regex is set it is applied to
// that raw text and capture group 1 of the first match is returned.
type Element struct {
	name      string
	selector  string
	attribute string
	regex     *regexp.Regexp
}

// NewElement compiles an element from its spec. The name is lower-cased.
// Returns EINVALID if the selector is empty or the regex does not compile
// or has no capture group.
func NewElement(name string, spec ElementSpec) (*Element, error) {
	name = strings.ToLower(name)
	if strings.TrimSpace(spec.Selector) == "" {
		return nil, Errorf(EINVALID, "element %q: selector required", name)
	}

	e := &Element{
		name:      name,
		selector:  spec.Selector,
		attribute: spec.Attribute,
	}

	if spec.Regex != "" {
		re, err := regexp.Compile(spec.Regex)
		if err != nil {
			return nil, Errorf(EINVALID, "element %q: invalid regex: %v", name, err)
		}
		if re.NumSubexp() < 1 {
			return nil, Errorf(EINVALID, "element %q: regex %q has no capture group", name, spec.Regex)
		}
		e.regex = re
	}

	return e, nil
}

// Name returns the lower-cased element name.
func (e *Element) Name() string { return e.name }

// Selector returns the CSS selector.
func (e *Element) Selector() string { return e.selector }

// Attribute returns the attribute read from the selected element, or "" if
// the element's text content is used.
func (e *Element) Attribute() string { return e.attribute }

// Regex returns the refinement pattern, or "" if none is set.
func (e *Element) Regex() string {
	if e.regex == nil {
		return ""
	}
	return e.regex.String()
}

// Spec returns the element in its JSON form.
func (e *Element) Spec() ElementSpec {
	return ElementSpec{Selector: e.selector, Attribute: e.attribute, Regex: e.Regex()}
}

// Evaluate extracts the element's value from doc.
// A nil document, a selector matching nothing, a missing attribute and a
// regex that does not match all yield the empty string.
func (e *Element) Evaluate(doc Document) string {
	text := e.raw(doc)
	if e.regex == nil || text == "" {
		return text
	}
	m := e.regex.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

func (e *Element) raw(doc Document) string {
	if doc == nil {
		return ""
	}
	sel, ok := doc.SelectFirst(e.selector)
	if !ok {
		return ""
	}
	if e.attribute != "" {
		val, _ := sel.Attr(e.attribute)
		return val
	}
	return sel.Text()
}

func (e *Element) node() {}
