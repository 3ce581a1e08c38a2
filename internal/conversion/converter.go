// Package conversion dispatches source files to format handlers and writes
// the converted Markdown with its metadata block. All state lives in an
// explicitly constructed Converter; nothing is global.
package conversion

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oscproj/dockit/internal/handlers"
	"github.com/oscproj/dockit/internal/registry"
	"github.com/sirupsen/logrus"
)

// DefaultOutputDir receives converted files when no output directory is given.
const DefaultOutputDir = "converted_docs"

// DefaultMaxFileSize caps source files at 100MB unless configured otherwise.
const DefaultMaxFileSize = int64(100 * 1024 * 1024)

// Options configures a Converter.
type Options struct {
	// OutputDir is the default output directory (DefaultOutputDir when empty).
	OutputDir string

	// MaxFileSize is the largest source file accepted, in bytes.
	MaxFileSize int64

	// Now supplies conversion timestamps; defaults to time.Now. Injectable
	// for deterministic tests.
	Now func() time.Time
}

// Converter turns source documents into Markdown files.
type Converter struct {
	registry *registry.Registry
	logger   *logrus.Logger
	opts     Options
}

// New creates a Converter over the given handler registry.
func New(reg *registry.Registry, logger *logrus.Logger, opts Options) *Converter {
	if opts.OutputDir == "" {
		opts.OutputDir = DefaultOutputDir
	}
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = DefaultMaxFileSize
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Converter{registry: reg, logger: logger, opts: opts}
}

// Registry exposes the converter's handler registry.
func (c *Converter) Registry() *registry.Registry { return c.registry }

// ConvertFile converts a single source file. NotFoundError and
// UnsupportedFormatError are returned before any extraction work begins;
// ExtractionError only after every strategy for the format has failed.
func (c *Converter) ConvertFile(ctx context.Context, req ConversionRequest) (*Result, error) {
	info, err := os.Stat(req.SourcePath)
	if os.IsNotExist(err) {
		return nil, &NotFoundError{Path: req.SourcePath}
	}
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", req.SourcePath, err)
	}

	ext := registry.Normalize(filepath.Ext(req.SourcePath))
	handler, ok := c.registry.Lookup(ext)
	if !ok {
		return nil, &UnsupportedFormatError{Path: req.SourcePath, Extension: ext}
	}

	if info.Size() > c.opts.MaxFileSize {
		return nil, &ExtractionError{
			Path:     req.SourcePath,
			Handler:  handler.Name(),
			Attempts: []error{fmt.Errorf("file too large: %d bytes (max %d)", info.Size(), c.opts.MaxFileSize)},
		}
	}

	outputPath := c.outputPath(req)

	c.logger.WithFields(logrus.Fields{
		"source":  req.SourcePath,
		"output":  outputPath,
		"handler": handler.Name(),
	}).Info("Converting file")

	extraction, strategyName, err := c.extract(ctx, handler, req.SourcePath)
	if err != nil {
		return nil, err
	}

	doc := &ConvertedDocument{
		Metadata: composeMetadata(handler.Name(), req.SourcePath, extraction, c.opts.Now()),
		Body:     extraction.Body,
	}
	rendered, err := doc.Render()
	if err != nil {
		return nil, &WriteError{Path: outputPath, Cause: err}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o750); err != nil {
		return nil, &WriteError{Path: outputPath, Cause: err}
	}
	// Overwriting an existing output is allowed; last write wins.
	if err := os.WriteFile(outputPath, []byte(rendered), 0o640); err != nil {
		return nil, &WriteError{Path: outputPath, Cause: err}
	}

	return &Result{
		SourcePath: req.SourcePath,
		OutputPath: outputPath,
		Handler:    handler.Name(),
		Strategy:   strategyName,
	}, nil
}

// extract tries the handler's strategies in order and returns the first
// success. Individual strategy failures are logged and only surface when the
// whole list is exhausted.
func (c *Converter) extract(ctx context.Context, handler handlers.Handler, path string) (*handlers.Extraction, string, error) {
	var attempts []error
	for _, strategy := range handler.Strategies() {
		extraction, err := strategy.Extract(ctx, c.logger, path)
		if err == nil {
			return extraction, strategy.Name(), nil
		}
		c.logger.WithError(err).WithFields(logrus.Fields{
			"path":     path,
			"handler":  handler.Name(),
			"strategy": strategy.Name(),
		}).Debug("Extraction strategy failed")
		attempts = append(attempts, fmt.Errorf("%s: %w", strategy.Name(), err))
	}
	return nil, "", &ExtractionError{Path: path, Handler: handler.Name(), Attempts: attempts}
}

// outputPath derives the destination: explicit directory and base name when
// given, otherwise <stem>.md in the default output directory.
func (c *Converter) outputPath(req ConversionRequest) string {
	dir := req.OutputDir
	if dir == "" {
		dir = c.opts.OutputDir
	}
	name := req.OutputName
	if name == "" {
		base := filepath.Base(req.SourcePath)
		name = base[:len(base)-len(filepath.Ext(base))]
	}
	return filepath.Join(dir, name+".md")
}
