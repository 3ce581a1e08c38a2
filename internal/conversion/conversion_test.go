package conversion

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oscproj/dockit/internal/registry"
)

var fixedNow = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

func newTestConverter(t *testing.T, outputDir string) *Converter {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return New(registry.Default(), logger, Options{
		OutputDir: outputDir,
		Now:       func() time.Time { return fixedNow },
	})
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConvertFileMarkdownPassthrough(t *testing.T) {
	// The body after the metadata block must equal the source byte for byte,
	// whatever the source does about trailing newlines.
	cases := map[string]string{
		"no trailing newline":     "# Notes\n\nAlready markdown.",
		"single trailing newline": "# Notes\n\nAlready markdown.\n",
		"double trailing newline": "# Notes\n\nAlready markdown.\n\n",
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			out := filepath.Join(dir, "out")
			src := writeSource(t, dir, "notes.md", body)

			c := newTestConverter(t, out)
			result, err := c.ConvertFile(context.Background(), ConversionRequest{SourcePath: src})
			require.NoError(t, err)

			assert.Equal(t, "markdown", result.Handler)
			assert.Equal(t, filepath.Join(out, "notes.md"), result.OutputPath)

			rendered, err := os.ReadFile(result.OutputPath)
			require.NoError(t, err)

			idx := strings.Index(string(rendered), "---\n\n")
			require.Greater(t, idx, 0, "metadata block not terminated")
			assert.Equal(t, body, string(rendered)[idx+len("---\n\n"):])
		})
	}
}

func TestConvertFileFrontmatter(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	src := writeSource(t, dir, "minutes.txt", "Meeting minutes.\n")

	c := newTestConverter(t, out)
	result, err := c.ConvertFile(context.Background(), ConversionRequest{SourcePath: src})
	require.NoError(t, err)

	rendered, err := os.ReadFile(result.OutputPath)
	require.NoError(t, err)
	content := string(rendered)

	require.True(t, strings.HasPrefix(content, "---\n"))
	end := strings.Index(content[4:], "---\n")
	require.Greater(t, end, 0, "frontmatter not terminated")
	block := content[4 : 4+end]

	assert.Contains(t, block, "file_type: text\n")
	assert.Contains(t, block, "title: minutes\n")
	assert.Contains(t, block, "converted: \"2024-03-15T09:30:00Z\"\n")
	assert.Contains(t, block, "status: converted\n")
	assert.Contains(t, block, "needs_review: true\n")

	// Absent values are omitted, never written empty.
	assert.NotContains(t, block, "author:")
	assert.NotContains(t, block, "pages:")
	assert.NotContains(t, block, "created:")

	// Required keys keep declaration order.
	assert.Less(t, strings.Index(block, "file_type:"), strings.Index(block, "title:"))
	assert.Less(t, strings.Index(block, "converted:"), strings.Index(block, "status:"))
	assert.Less(t, strings.Index(block, "status:"), strings.Index(block, "needs_review:"))
}

func TestConvertFileCSVCounts(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "risks.csv", "name,severity\nvendor,high\nscope,medium\n")

	c := newTestConverter(t, filepath.Join(dir, "out"))
	result, err := c.ConvertFile(context.Background(), ConversionRequest{SourcePath: src})
	require.NoError(t, err)

	rendered, err := os.ReadFile(result.OutputPath)
	require.NoError(t, err)

	assert.Contains(t, string(rendered), "rows: 2\n")
	assert.Contains(t, string(rendered), "columns: 2\n")
	assert.Contains(t, string(rendered), "| vendor | high |")
}

func TestConvertFileNotFound(t *testing.T) {
	c := newTestConverter(t, t.TempDir())

	_, err := c.ConvertFile(context.Background(), ConversionRequest{SourcePath: "/no/such/report.docx"})
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "/no/such/report.docx", notFound.Path)
}

func TestConvertFileUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "tool.exe", "MZ")

	c := newTestConverter(t, filepath.Join(dir, "out"))
	_, err := c.ConvertFile(context.Background(), ConversionRequest{SourcePath: src})
	var unsupported *UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "exe", unsupported.Extension)
}

func TestConvertFileExtractionErrorAfterAllStrategies(t *testing.T) {
	dir := t.TempDir()
	// Not a zip archive and no printable runs, so both document strategies fail.
	src := filepath.Join(dir, "broken.docx")
	require.NoError(t, os.WriteFile(src, []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05}, 0o644))

	c := newTestConverter(t, filepath.Join(dir, "out"))
	_, err := c.ConvertFile(context.Background(), ConversionRequest{SourcePath: src})
	var extraction *ExtractionError
	require.ErrorAs(t, err, &extraction)
	assert.Equal(t, "document", extraction.Handler)
	assert.Len(t, extraction.Attempts, 2)
}

func TestConvertFileSizeLimit(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "big.txt", strings.Repeat("x", 64))

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	c := New(registry.Default(), logger, Options{
		OutputDir:   filepath.Join(dir, "out"),
		MaxFileSize: 10,
		Now:         func() time.Time { return fixedNow },
	})

	_, err := c.ConvertFile(context.Background(), ConversionRequest{SourcePath: src})
	var extraction *ExtractionError
	require.ErrorAs(t, err, &extraction)
	assert.Contains(t, err.Error(), "too large")
}

func TestConvertFileExplicitNameAndOverwrite(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	src := writeSource(t, dir, "draft.txt", "first\n")

	c := newTestConverter(t, out)
	req := ConversionRequest{SourcePath: src, OutputDir: out, OutputName: "renamed"}

	result, err := c.ConvertFile(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "renamed.md"), result.OutputPath)

	// Second conversion overwrites; last write wins.
	require.NoError(t, os.WriteFile(src, []byte("second\n"), 0o644))
	_, err = c.ConvertFile(context.Background(), req)
	require.NoError(t, err)

	rendered, err := os.ReadFile(result.OutputPath)
	require.NoError(t, err)
	assert.Contains(t, string(rendered), "second")
	assert.NotContains(t, string(rendered), "first")
}

func TestConvertDirectoryIsolatesFailures(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")

	writeSource(t, dir, "good.csv", "a,b\n1,2\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.docx"), []byte{0x00, 0x01, 0x02}, 0o644))
	writeSource(t, dir, "ignore.exe", "MZ")

	c := newTestConverter(t, out)
	summary, err := c.ConvertDirectory(context.Background(), dir, false, out)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Discovered)
	assert.Equal(t, 1, summary.Converted)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.Skipped)
	assert.NotEmpty(t, summary.RunID)

	// The good file's output exists despite the neighbouring failure.
	_, statErr := os.Stat(filepath.Join(out, "good.md"))
	assert.NoError(t, statErr)

	var sawFailure bool
	for _, outcome := range summary.Outcomes {
		if outcome.Err != nil {
			sawFailure = true
			var extraction *ExtractionError
			assert.True(t, errors.As(outcome.Err, &extraction))
		}
	}
	assert.True(t, sawFailure)
}

func TestConvertDirectoryRecursive(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.MkdirAll(sub, 0o750))
	writeSource(t, dir, "top.txt", "top\n")
	writeSource(t, sub, "deep.txt", "deep\n")

	out := filepath.Join(dir, "out")
	c := newTestConverter(t, out)

	flat, err := c.ConvertDirectory(context.Background(), dir, false, out)
	require.NoError(t, err)
	assert.Equal(t, 1, flat.Converted)

	deep, err := c.ConvertDirectory(context.Background(), dir, true, out)
	require.NoError(t, err)
	assert.Equal(t, 3, deep.Discovered) // top.txt, nested/deep.txt, out/top.md
	assert.GreaterOrEqual(t, deep.Converted, 2)
}

func TestConvertDirectoryMissing(t *testing.T) {
	c := newTestConverter(t, t.TempDir())

	_, err := c.ConvertDirectory(context.Background(), "/no/such/dir", false, "")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}
