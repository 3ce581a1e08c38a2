// Package word extracts Markdown from Word documents. The structured
// strategy reads word/document.xml out of the .docx ZIP archive, mapping
// heading styles to Markdown headings and w:tbl elements to pipe tables, and
// recovers title/author/created from docProps/core.xml. The plaintext
// strategy scrapes printable text runs from the raw bytes, which is the only
// viable path for legacy binary .doc files.
package word

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/oscproj/dockit/internal/handlers"
	"github.com/oscproj/dockit/internal/markdown"
	"github.com/sirupsen/logrus"
)

// Handler converts the Word family (.docx, .doc).
type Handler struct{}

// New returns the Word family handler.
func New() *Handler { return &Handler{} }

// Name implements handlers.Handler.
func (h *Handler) Name() string { return "document" }

// Extensions implements handlers.Handler.
func (h *Handler) Extensions() []string { return []string{"docx", "doc"} }

// Strategies implements handlers.Handler. The structured path is preferred;
// the plaintext scrape only runs when the archive cannot be parsed.
func (h *Handler) Strategies() []handlers.Strategy {
	return []handlers.Strategy{
		handlers.StrategyFunc{StrategyName: "structured", Fn: extractStructured},
		handlers.StrategyFunc{StrategyName: "plaintext", Fn: extractPlaintext},
	}
}

// extractStructured parses the OOXML document body and core properties.
func extractStructured(ctx context.Context, logger *logrus.Logger, path string) (*handlers.Extraction, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer func() { _ = r.Close() }()

	var docFile, propsFile *zip.File
	for _, f := range r.File {
		switch f.Name {
		case "word/document.xml":
			docFile = f
		case "docProps/core.xml":
			propsFile = f
		}
	}
	if docFile == nil {
		return nil, fmt.Errorf("word/document.xml not found in archive")
	}

	body, err := parseDocumentXML(docFile)
	if err != nil {
		return nil, err
	}

	extraction := &handlers.Extraction{Body: body}
	if propsFile != nil {
		if props, err := parseCoreProperties(propsFile); err != nil {
			logger.WithError(err).WithField("path", path).Debug("Could not read document properties")
		} else {
			extraction.Title = props.Title
			extraction.Author = props.Creator
			extraction.Created = props.createdTime()
		}
	}
	return extraction, nil
}

// parseDocumentXML streams through word/document.xml and renders paragraphs,
// headings and tables as Markdown.
func parseDocumentXML(docFile *zip.File) (string, error) {
	rc, err := docFile.Open()
	if err != nil {
		return "", fmt.Errorf("open document.xml: %w", err)
	}
	defer func() { _ = rc.Close() }()

	decoder := xml.NewDecoder(rc)

	var lines []string
	var paragraph strings.Builder
	var paragraphStyle string
	inParagraph := false

	// Table state. Nested tables are flattened into the enclosing cell.
	tableDepth := 0
	var cell strings.Builder
	var row []string
	var tableRows [][]string

	flushParagraph := func() {
		text := strings.TrimSpace(paragraph.String())
		paragraph.Reset()
		if text == "" {
			return
		}
		if level := headingLevel(paragraphStyle); level > 0 {
			lines = append(lines, strings.Repeat("#", level)+" "+text, "")
		} else {
			lines = append(lines, text, "")
		}
	}

	flushTable := func() {
		if len(tableRows) == 0 {
			return
		}
		lines = append(lines, markdown.Table(tableRows[0], tableRows[1:]), "")
		tableRows = nil
	}

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		// A truncated or corrupt archive surfaces here mid-stream. Returning
		// a partial body as success would mask the damage, so fail and let
		// the dispatcher fall through to the next strategy.
		if err != nil {
			return "", fmt.Errorf("parse document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth++
			case "tr":
				if tableDepth == 1 {
					row = nil
				}
			case "tc":
				if tableDepth == 1 {
					cell.Reset()
				}
			case "p":
				if tableDepth == 0 {
					inParagraph = true
					paragraph.Reset()
					paragraphStyle = ""
				}
			case "pStyle":
				if inParagraph {
					for _, attr := range t.Attr {
						if attr.Name.Local == "val" {
							paragraphStyle = attr.Value
						}
					}
				}
			}

		case xml.CharData:
			if tableDepth > 0 {
				cell.Write(t)
			} else if inParagraph {
				paragraph.Write(t)
			}

		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				if tableDepth == 0 && inParagraph {
					inParagraph = false
					flushParagraph()
				} else if tableDepth > 0 {
					// Paragraph break inside a cell.
					cell.WriteByte(' ')
				}
			case "tc":
				if tableDepth == 1 {
					row = append(row, strings.TrimSpace(cell.String()))
					cell.Reset()
				}
			case "tr":
				if tableDepth == 1 && len(row) > 0 {
					tableRows = append(tableRows, row)
					row = nil
				}
			case "tbl":
				tableDepth--
				if tableDepth == 0 {
					flushTable()
				}
			}
		}
	}

	return strings.TrimRight(strings.Join(lines, "\n"), "\n"), nil
}

// headingLevel maps a paragraph style name to a Markdown heading level,
// 0 for body text. Accepts "Heading1".."Heading6", "Title" and "Subtitle".
func headingLevel(style string) int {
	lower := strings.ToLower(style)
	switch lower {
	case "title":
		return 1
	case "subtitle":
		return 2
	}
	if rest, ok := strings.CutPrefix(lower, "heading"); ok {
		if len(rest) == 1 && rest[0] >= '1' && rest[0] <= '9' {
			level := int(rest[0] - '0')
			if level > 6 {
				level = 6
			}
			return level
		}
	}
	return 0
}

// coreProperties mirrors the Dublin Core fields in docProps/core.xml.
type coreProperties struct {
	Title   string `xml:"title"`
	Creator string `xml:"creator"`
	Created string `xml:"created"`
}

func (p *coreProperties) createdTime() *time.Time {
	if p.Created == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if ts, err := time.Parse(layout, p.Created); err == nil {
			return &ts
		}
	}
	return nil
}

func parseCoreProperties(propsFile *zip.File) (*coreProperties, error) {
	rc, err := propsFile.Open()
	if err != nil {
		return nil, fmt.Errorf("open core.xml: %w", err)
	}
	defer func() { _ = rc.Close() }()

	var props coreProperties
	if err := xml.NewDecoder(rc).Decode(&props); err != nil {
		return nil, fmt.Errorf("decode core.xml: %w", err)
	}
	props.Title = strings.TrimSpace(props.Title)
	props.Creator = strings.TrimSpace(props.Creator)
	return &props, nil
}

// extractPlaintext scrapes printable text runs from the raw file bytes. This
// loses all structure but recovers readable content from legacy .doc files
// and from .docx archives too damaged for the structured path.
func extractPlaintext(ctx context.Context, logger *logrus.Logger, path string) (*handlers.Extraction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var runs []string
	var current strings.Builder
	letters := 0

	flush := func() {
		text := strings.TrimSpace(current.String())
		current.Reset()
		// Short or letter-poor runs are binary noise, not prose.
		if len(text) >= 4 && letters*2 >= len(text) {
			runs = append(runs, text)
		}
		letters = 0
	}

	for _, b := range data {
		if b == '\t' || (b >= 0x20 && b < 0x7f) {
			if (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') {
				letters++
			}
			current.WriteByte(b)
		} else {
			flush()
		}
	}
	flush()

	if len(runs) == 0 {
		return nil, fmt.Errorf("no readable text in %s", path)
	}
	return &handlers.Extraction{Body: strings.Join(runs, "\n")}, nil
}
