// Package handlers defines the contract shared by all format extraction
// handlers. A handler owns a document format family (Word, spreadsheet, PDF,
// etc.) and exposes an ordered list of extraction strategies; the dispatcher
// tries them in order and stops at the first success.
package handlers

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Extraction is the result of pulling content out of a single source file.
// Body is Markdown. Metadata fields are best-effort: a zero value means the
// source did not expose that field and it must be omitted from output.
type Extraction struct {
	Body    string
	Title   string
	Author  string
	Created *time.Time

	// Format-family counters, zero when not applicable.
	Pages   int
	Sheets  int
	Rows    int
	Columns int
}

// Strategy is one way of extracting content from a file. Handlers with
// multiple backends order them from most to least capable.
type Strategy interface {
	// Name identifies the strategy in logs (e.g. "structured", "plaintext").
	Name() string

	// Extract reads the file at path and returns its content. The path has
	// already been validated to exist by the dispatcher.
	Extract(ctx context.Context, logger *logrus.Logger, path string) (*Extraction, error)
}

// Handler extracts body text and metadata from one document format family.
type Handler interface {
	// Name is the format family name recorded as file_type in output
	// metadata (e.g. "document", "spreadsheet", "pdf").
	Name() string

	// Extensions returns the normalised (lowercase, no dot) file extensions
	// this handler accepts.
	Extensions() []string

	// Strategies returns the ordered extraction strategies for this format.
	// Never empty.
	Strategies() []Strategy
}

// StrategyFunc adapts a function to the Strategy interface.
type StrategyFunc struct {
	StrategyName string
	Fn           func(ctx context.Context, logger *logrus.Logger, path string) (*Extraction, error)
}

// Name implements Strategy.
func (s StrategyFunc) Name() string { return s.StrategyName }

// Extract implements Strategy.
func (s StrategyFunc) Extract(ctx context.Context, logger *logrus.Logger, path string) (*Extraction, error) {
	return s.Fn(ctx, logger, path)
}
