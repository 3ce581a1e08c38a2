// Package pdf extracts text from PDF files using pdfcpu. The layout strategy
// reads the document once and walks each page's content stream, honouring
// positioning operators so line breaks survive. The plain strategy shells the
// work out to pdfcpu's content extraction API and keeps only string literals,
// which tolerates documents the layout path cannot parse.
package pdf

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/oscproj/dockit/internal/handlers"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/sirupsen/logrus"
)

// emptyPageNote marks pages (e.g. scanned images) that yielded no text.
const emptyPageNote = "*No text could be extracted from this page*"

// Handler converts PDF documents.
type Handler struct{}

// New returns the PDF handler.
func New() *Handler { return &Handler{} }

// Name implements handlers.Handler.
func (h *Handler) Name() string { return "pdf" }

// Extensions implements handlers.Handler.
func (h *Handler) Extensions() []string { return []string{"pdf"} }

// Strategies implements handlers.Handler.
func (h *Handler) Strategies() []handlers.Strategy {
	return []handlers.Strategy{
		handlers.StrategyFunc{StrategyName: "layout", Fn: extractLayout},
		handlers.StrategyFunc{StrategyName: "plain", Fn: extractPlain},
	}
}

// extractLayout parses each page's content stream directly.
func extractLayout(ctx context.Context, logger *logrus.Logger, path string) (*handlers.Extraction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	conf := model.NewDefaultConfiguration()
	pdfCtx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}

	var title string
	extracted := 0
	var sections []string

	for pageNr := 1; pageNr <= pdfCtx.PageCount; pageNr++ {
		pageText := pageContent(pdfCtx, pageNr)
		sections = append(sections, fmt.Sprintf("## Page %d", pageNr), "")
		if pageText == "" {
			logger.WithFields(logrus.Fields{"path": path, "page": pageNr}).Debug("Page yielded no text")
			sections = append(sections, emptyPageNote, "")
			continue
		}
		extracted++
		if title == "" {
			title = firstLine(pageText)
		}
		sections = append(sections, pageText, "")
	}

	if extracted == 0 {
		return nil, fmt.Errorf("no text content found in PDF")
	}

	return &handlers.Extraction{
		Body:  strings.TrimRight(strings.Join(sections, "\n"), "\n"),
		Title: title,
		Pages: pdfCtx.PageCount,
	}, nil
}

// pageContent returns the cleaned text of one page, empty when the page has
// no extractable text.
func pageContent(pdfCtx *model.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(pdfCtx, pageNr)
	if err != nil || r == nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return ""
	}
	return parseContentStream(data)
}

// extractPlain uses pdfcpu's content extraction API and scrapes only string
// literals from the per-page dumps. Less faithful to layout, more tolerant.
func extractPlain(ctx context.Context, logger *logrus.Logger, path string) (*handlers.Extraction, error) {
	pageCount, err := api.PageCountFile(path)
	if err != nil {
		return nil, fmt.Errorf("page count: %w", err)
	}

	tempDir, err := os.MkdirTemp("", "dockit_pdf_*")
	if err != nil {
		return nil, fmt.Errorf("create temp directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(tempDir); err != nil {
			logger.WithError(err).Warn("Failed to clean up temp directory")
		}
	}()

	conf := model.NewDefaultConfiguration()
	if err := api.ExtractContentFile(path, tempDir, nil, conf); err != nil {
		return nil, fmt.Errorf("extract content: %w", err)
	}

	baseName := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	var title string
	extracted := 0
	var sections []string

	for pageNr := 1; pageNr <= pageCount; pageNr++ {
		contentFile := filepath.Join(tempDir, fmt.Sprintf("%s_Content_page_%d.txt", baseName, pageNr))
		sections = append(sections, fmt.Sprintf("## Page %d", pageNr), "")

		data, err := os.ReadFile(contentFile)
		if err != nil {
			logger.WithFields(logrus.Fields{"path": path, "page": pageNr}).Debug("No content dump for page")
			sections = append(sections, emptyPageNote, "")
			continue
		}

		pageText := literalText(data)
		if pageText == "" {
			sections = append(sections, emptyPageNote, "")
			continue
		}
		extracted++
		if title == "" {
			title = firstLine(pageText)
		}
		sections = append(sections, pageText, "")
	}

	if extracted == 0 {
		return nil, fmt.Errorf("no text content found in PDF (%d pages)", pageCount)
	}

	return &handlers.Extraction{
		Body:  strings.TrimRight(strings.Join(sections, "\n"), "\n"),
		Title: title,
		Pages: pageCount,
	}, nil
}

// firstLine returns the first non-empty line, capped for use as a title.
func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if runes := []rune(line); len(runes) > 200 {
			line = string(runes[:200])
		}
		return line
	}
	return ""
}
