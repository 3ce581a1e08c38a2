// Package tabular converts CSV files to a single Markdown pipe table. The
// first record becomes the table header and row/column counts are recorded as
// metadata.
package tabular

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/oscproj/dockit/internal/handlers"
	"github.com/oscproj/dockit/internal/markdown"
	"github.com/sirupsen/logrus"
)

// Handler converts CSV files.
type Handler struct{}

// New returns the CSV handler.
func New() *Handler { return &Handler{} }

// Name implements handlers.Handler.
func (h *Handler) Name() string { return "csv" }

// Extensions implements handlers.Handler.
func (h *Handler) Extensions() []string { return []string{"csv"} }

// Strategies implements handlers.Handler.
func (h *Handler) Strategies() []handlers.Strategy {
	return []handlers.Strategy{
		handlers.StrategyFunc{StrategyName: "csv", Fn: extractCSV},
	}
}

func extractCSV(ctx context.Context, logger *logrus.Logger, path string) (*handlers.Extraction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text, err := handlers.DecodeText(data)
	if err != nil {
		return nil, fmt.Errorf("decode csv: %w", err)
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1 // ragged rows are padded by the table renderer

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv file is empty")
	}

	header := records[0]
	rows := records[1:]

	logger.WithFields(logrus.Fields{
		"path":    path,
		"rows":    len(rows),
		"columns": len(header),
	}).Debug("Parsed CSV")

	return &handlers.Extraction{
		Body:    markdown.Table(header, rows),
		Rows:    len(rows),
		Columns: len(header),
	}, nil
}
