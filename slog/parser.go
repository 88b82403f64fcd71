package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/lodestone"
)

var _ lodestone.Parser = (*LoggingParser)(nil)

// LoggingParser wraps a Parser with debug logging.
type LoggingParser struct {
	next   lodestone.Parser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next lodestone.Parser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

// Parse delegates to the wrapped parser and logs the operation.
func (p *LoggingParser) Parse(markup string) (doc lodestone.Document, err error) {
	defer func(begin time.Time) {
		p.logger.Debug("parse",
			"bytes", len(markup),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Parse(markup)
}
