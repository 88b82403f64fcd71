// Package yaml renders lodestone records as YAML with gopkg.in/yaml.v3,
// keeping the key order of the definition that produced them.
package yaml

import (
	"io"

	"github.com/fwojciec/lodestone"
	"gopkg.in/yaml.v3"
)

// Indent is the number of spaces used per nesting level.
const Indent = 2

// Encode writes rec to w as a single YAML document.
func Encode(w io.Writer, rec *lodestone.Record) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(Indent)
	if err := enc.Encode(Node(rec)); err != nil {
		return lodestone.Errorf(lodestone.EINTERNAL, "encode yaml: %v", err)
	}
	return enc.Close()
}

// Node converts rec into a mapping node. Every scalar is tagged as a string
// so values such as "90" or "true" survive a round trip unchanged.
func Node(rec *lodestone.Record) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range rec.Keys() {
		v, _ := rec.Get(k)
		n.Content = append(n.Content, scalar(k))
		switch v := v.(type) {
		case *lodestone.Record:
			n.Content = append(n.Content, Node(v))
		case string:
			n.Content = append(n.Content, scalar(v))
		}
	}
	return n
}

func scalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}
