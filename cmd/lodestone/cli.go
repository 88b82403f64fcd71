package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/lodestone"
	"github.com/fwojciec/lodestone/prometheus"
	"github.com/fwojciec/lodestone/scrape"
	"github.com/fwojciec/lodestone/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx         context.Context
	Stdout      io.Writer
	Stderr      io.Writer
	Logger      *slog.Logger
	Parser      lodestone.Parser
	Scraper     *scrape.Scraper
	Cache       *sqlite.PageCache
	Definitions lodestone.DefinitionSource
	Characters  lodestone.CharacterService
	Metrics     *prometheus.Metrics
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB          string        `name:"db" env:"LODESTONE_DB" help:"Page cache database path"`
	JSONBase    string        `name:"json-base" env:"LODESTONE_JSON_BASE" default:"lodestone-css-selectors" help:"Directory with meta.json and profile definitions"`
	Browser     bool          `help:"Render pages with headless Chrome"`
	Timeout     time.Duration `default:"10s" help:"Per-page fetch timeout"`
	TTL         time.Duration `name:"ttl" default:"1h" help:"How long cached pages stay fresh (0 keeps them forever)"`
	NoCache     bool          `help:"Always fetch, bypassing the page cache"`
	Rate        float64       `default:"1" help:"Requests per second per host (0 for unlimited)"`
	Concurrency int           `short:"c" default:"4" help:"Pages fetched at once"`
	Snapshots   string        `type:"path" help:"Write fetched markup to this directory"`
	Verbose     bool          `short:"v" help:"Log fetches and cache lookups to stderr"`

	Character CharacterCmd `cmd:"" help:"Extract a character from every profile definition"`
	Extract   ExtractCmd   `cmd:"" help:"Extract one definition from a URL or HTML file"`
	Check     CheckCmd     `cmd:"" help:"Validate definition files"`
	Serve     ServeCmd     `cmd:"" help:"Serve characters over HTTP"`
	Purge     PurgeCmd     `cmd:"" help:"Remove stale pages from the cache"`
}

// CharacterCmd is the "character" subcommand.
type CharacterCmd struct {
	ID     string `arg:"" help:"Character ID"`
	Format string `short:"f" enum:"json,yaml" default:"json" help:"Output format (json, yaml)"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Definition string `arg:"" type:"path" help:"Definition file (.json)"`
	Source     string `arg:"" help:"URL or HTML file to extract from"`
	Format     string `short:"f" enum:"json,yaml" default:"json" help:"Output format (json, yaml)"`
}

// CheckCmd is the "check" subcommand.
type CheckCmd struct {
	Definitions []string `arg:"" type:"path" help:"Definition files to validate"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `env:"LODESTONE_ADDR" default:":8080" help:"Listen address"`
}

// PurgeCmd is the "purge" subcommand.
type PurgeCmd struct {
	OlderThan time.Duration `default:"24h" help:"Remove pages fetched longer ago than this"`
}
