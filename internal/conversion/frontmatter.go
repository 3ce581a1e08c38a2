package conversion

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/oscproj/dockit/internal/handlers"
	"gopkg.in/yaml.v3"
)

// DocumentMetadata is the fixed-schema frontmatter block prepended to every
// converted file. Field order here is the output order; yaml.v3 marshals
// struct fields in declaration order, which keeps generated files diffable.
// Optional fields are omitted rather than written empty; values are never
// fabricated.
type DocumentMetadata struct {
	FileType    string `yaml:"file_type"`
	Title       string `yaml:"title,omitempty"`
	Author      string `yaml:"author,omitempty"`
	Created     string `yaml:"created,omitempty"`
	Pages       int    `yaml:"pages,omitempty"`
	Sheets      int    `yaml:"sheets,omitempty"`
	Rows        int    `yaml:"rows,omitempty"`
	Columns     int    `yaml:"columns,omitempty"`
	Converted   string `yaml:"converted"`
	Status      string `yaml:"status"`
	NeedsReview bool   `yaml:"needs_review"`
}

// composeMetadata builds the metadata block for one extraction. fileType is
// the handler's format family name; now is the conversion timestamp.
func composeMetadata(fileType, sourcePath string, extraction *handlers.Extraction, now time.Time) DocumentMetadata {
	title := strings.TrimSpace(extraction.Title)
	if title == "" {
		base := filepath.Base(sourcePath)
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	meta := DocumentMetadata{
		FileType:    fileType,
		Title:       title,
		Author:      strings.TrimSpace(extraction.Author),
		Pages:       extraction.Pages,
		Sheets:      extraction.Sheets,
		Rows:        extraction.Rows,
		Columns:     extraction.Columns,
		Converted:   now.Format(time.RFC3339),
		Status:      "converted",
		NeedsReview: true,
	}
	if extraction.Created != nil {
		meta.Created = extraction.Created.Format(time.RFC3339)
	}
	return meta
}

// Render serialises the document: delimited YAML metadata block, a blank
// line, then the body exactly as the handler produced it. The body is never
// reflowed or re-terminated here; Markdown passthrough must stay verbatim.
func (d *ConvertedDocument) Render() (string, error) {
	block, err := yaml.Marshal(d.Metadata)
	if err != nil {
		return "", fmt.Errorf("marshal metadata: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("---\n")
	sb.Write(block)
	sb.WriteString("---\n\n")
	sb.WriteString(d.Body)
	return sb.String(), nil
}
