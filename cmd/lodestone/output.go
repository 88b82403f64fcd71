package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/lodestone"
	"github.com/fwojciec/lodestone/yaml"
	"github.com/goccy/go-json"
)

func writeRecord(w io.Writer, format string, rec *lodestone.Record) error {
	if format == "yaml" {
		return yaml.Encode(w, rec)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
