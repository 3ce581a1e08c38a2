// Package plaintext holds the handlers that need no real parsing: plain text
// is wrapped with metadata only, Markdown input is copied verbatim without
// re-parsing, and RTF gets a basic control-word strip.
package plaintext

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/oscproj/dockit/internal/handlers"
	"github.com/sirupsen/logrus"
)

// TextHandler converts plain text files.
type TextHandler struct{}

// NewText returns the plain text handler.
func NewText() *TextHandler { return &TextHandler{} }

// Name implements handlers.Handler.
func (h *TextHandler) Name() string { return "text" }

// Extensions implements handlers.Handler.
func (h *TextHandler) Extensions() []string { return []string{"txt"} }

// Strategies implements handlers.Handler.
func (h *TextHandler) Strategies() []handlers.Strategy {
	return []handlers.Strategy{
		handlers.StrategyFunc{StrategyName: "passthrough", Fn: extractText},
	}
}

func extractText(ctx context.Context, logger *logrus.Logger, path string) (*handlers.Extraction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text, err := handlers.DecodeText(data)
	if err != nil {
		return nil, fmt.Errorf("decode text: %w", err)
	}
	return &handlers.Extraction{Body: strings.TrimRight(text, "\n")}, nil
}

// MarkdownHandler copies Markdown sources verbatim; only the metadata block
// is added by the composer. The body is never re-parsed or reflowed.
type MarkdownHandler struct{}

// NewMarkdown returns the Markdown passthrough handler.
func NewMarkdown() *MarkdownHandler { return &MarkdownHandler{} }

// Name implements handlers.Handler.
func (h *MarkdownHandler) Name() string { return "markdown" }

// Extensions implements handlers.Handler.
func (h *MarkdownHandler) Extensions() []string { return []string{"md"} }

// Strategies implements handlers.Handler.
func (h *MarkdownHandler) Strategies() []handlers.Strategy {
	return []handlers.Strategy{
		handlers.StrategyFunc{StrategyName: "verbatim", Fn: extractMarkdown},
	}
}

func extractMarkdown(ctx context.Context, logger *logrus.Logger, path string) (*handlers.Extraction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &handlers.Extraction{Body: string(data)}, nil
}

// RTFHandler strips RTF groups and control words, keeping the readable text.
// Formatting is lost; RTF is rare enough in practice that a real parser has
// never been worth carrying.
type RTFHandler struct{}

// NewRTF returns the RTF handler.
func NewRTF() *RTFHandler { return &RTFHandler{} }

// Name implements handlers.Handler.
func (h *RTFHandler) Name() string { return "rtf" }

// Extensions implements handlers.Handler.
func (h *RTFHandler) Extensions() []string { return []string{"rtf"} }

// Strategies implements handlers.Handler.
func (h *RTFHandler) Strategies() []handlers.Strategy {
	return []handlers.Strategy{
		handlers.StrategyFunc{StrategyName: "strip", Fn: extractRTF},
	}
}

var (
	// Destination groups whose content is markup, not prose. Allows one
	// level of nested braces, which covers real-world font/colour tables.
	rtfDestRe    = regexp.MustCompile(`\{\\(?:\*\\)?(?:fonttbl|colortbl|stylesheet|info|pict|themedata|generator)[^{}]*(?:\{[^{}]*\}[^{}]*)*\}`)
	rtfHexRe     = regexp.MustCompile(`\\'[0-9a-fA-F]{2}`)
	rtfControlRe = regexp.MustCompile(`\\[a-zA-Z]+-?\d* ?`)
	rtfSpaceRe   = regexp.MustCompile(`\s+`)
)

// decodeRTFHex turns a \'hh escape into its character. RTF's default code
// pages are close enough to Latin-1 for the accented range that matters.
func decodeRTFHex(escape string) string {
	value, err := strconv.ParseUint(escape[2:], 16, 8)
	if err != nil {
		return ""
	}
	return string(rune(value))
}

func extractRTF(ctx context.Context, logger *logrus.Logger, path string) (*handlers.Extraction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	content := string(data)
	if !strings.HasPrefix(content, `{\rtf`) {
		return nil, fmt.Errorf("not an RTF file")
	}

	// Destination groups (fonts, colours, stylesheets) first, then hex
	// escapes, then loose control words, then the enclosing braces.
	content = rtfDestRe.ReplaceAllString(content, "")
	content = rtfHexRe.ReplaceAllStringFunc(content, decodeRTFHex)
	content = rtfControlRe.ReplaceAllString(content, "")
	content = strings.NewReplacer("{", "", "}", "", "\\", "").Replace(content)
	content = strings.TrimSpace(rtfSpaceRe.ReplaceAllString(content, " "))

	if content == "" {
		return nil, fmt.Errorf("no readable text in RTF file")
	}
	return &handlers.Extraction{Body: content}, nil
}
