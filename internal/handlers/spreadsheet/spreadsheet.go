// Package spreadsheet converts Excel workbooks to Markdown. Each non-empty
// sheet becomes a section headed by the sheet name with its data rendered as
// a pipe table (first row as header).
package spreadsheet

import (
	"context"
	"fmt"
	"strings"

	"github.com/oscproj/dockit/internal/handlers"
	"github.com/oscproj/dockit/internal/markdown"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// Handler converts the spreadsheet family (.xlsx, .xls).
type Handler struct{}

// New returns the spreadsheet family handler.
func New() *Handler { return &Handler{} }

// Name implements handlers.Handler.
func (h *Handler) Name() string { return "spreadsheet" }

// Extensions implements handlers.Handler.
func (h *Handler) Extensions() []string { return []string{"xlsx", "xls"} }

// Strategies implements handlers.Handler.
func (h *Handler) Strategies() []handlers.Strategy {
	return []handlers.Strategy{
		handlers.StrategyFunc{StrategyName: "excelize", Fn: extractWorkbook},
	}
}

func extractWorkbook(ctx context.Context, logger *logrus.Logger, path string) (*handlers.Extraction, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close workbook")
		}
	}()

	var sections []string
	sheets := 0
	totalRows := 0
	maxColumns := 0

	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheetName, err)
		}
		if len(rows) == 0 {
			logger.WithField("sheet", sheetName).Debug("Skipping empty sheet")
			continue
		}

		sheets++
		totalRows += len(rows) - 1
		for _, row := range rows {
			if len(row) > maxColumns {
				maxColumns = len(row)
			}
		}

		sections = append(sections,
			"## "+sheetName,
			"",
			markdown.Table(rows[0], rows[1:]),
			"")
	}

	if sheets == 0 {
		return nil, fmt.Errorf("workbook contains no non-empty sheets")
	}

	extraction := &handlers.Extraction{
		Body:    strings.TrimRight(strings.Join(sections, "\n"), "\n"),
		Sheets:  sheets,
		Rows:    totalRows,
		Columns: maxColumns,
	}

	if props, err := f.GetDocProps(); err == nil && props != nil {
		extraction.Title = strings.TrimSpace(props.Title)
		extraction.Author = strings.TrimSpace(props.Creator)
	}

	return extraction, nil
}
