// Package htmldoc converts HTML files to Markdown. Conversion is constrained
// to document structure (headings, emphasis, lists, links, tables); scripts,
// styles and page chrome are stripped and never executed.
package htmldoc

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/PuerkitoBio/goquery"
	"github.com/oscproj/dockit/internal/handlers"
	"github.com/sirupsen/logrus"
)

// Handler converts HTML files.
type Handler struct {
	converter *converter.Converter
}

// New returns the HTML handler with its tag mapping configured once.
func New() *Handler {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)

	// script, style, noscript and iframe are already removed by the base
	// plugin; these are page chrome with no document content.
	tagsToRemove := []string{
		"embed", "object", "nav", "header", "footer", "aside",
		"form", "button", "select", "canvas", "svg", "video", "audio",
	}
	for _, tag := range tagsToRemove {
		conv.Register.TagType(tag, converter.TagTypeRemove, converter.PriorityStandard)
	}

	return &Handler{converter: conv}
}

// Name implements handlers.Handler.
func (h *Handler) Name() string { return "html" }

// Extensions implements handlers.Handler.
func (h *Handler) Extensions() []string { return []string{"html", "htm"} }

// Strategies implements handlers.Handler.
func (h *Handler) Strategies() []handlers.Strategy {
	return []handlers.Strategy{
		handlers.StrategyFunc{StrategyName: "commonmark", Fn: h.extract},
	}
}

func (h *Handler) extract(ctx context.Context, logger *logrus.Logger, path string) (*handlers.Extraction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	htmlContent, err := handlers.DecodeText(data)
	if err != nil {
		return nil, fmt.Errorf("decode html: %w", err)
	}

	body, err := h.converter.ConvertString(htmlContent)
	if err != nil {
		return nil, fmt.Errorf("convert html to markdown: %w", err)
	}

	extraction := &handlers.Extraction{Body: strings.TrimSpace(body)}

	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent)); err == nil {
		extraction.Title = strings.TrimSpace(doc.Find("title").First().Text())
	} else {
		logger.WithError(err).WithField("path", path).Debug("Could not parse HTML for title")
	}

	return extraction, nil
}
