package plaintext

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestExtractMarkdownVerbatim(t *testing.T) {
	content := "# Title\n\nSome *emphasis* and a | pipe | table |\n\n- item\n"
	path := writeFile(t, "notes.md", []byte(content))

	extraction, err := extractMarkdown(context.Background(), quietLogger(), path)
	require.NoError(t, err)
	assert.Equal(t, content, extraction.Body, "Markdown input must not be re-parsed or reflowed")
}

func TestExtractText(t *testing.T) {
	t.Run("plain content kept", func(t *testing.T) {
		path := writeFile(t, "readme.txt", []byte("line one\nline two\n"))

		extraction, err := extractText(context.Background(), quietLogger(), path)
		require.NoError(t, err)
		assert.Equal(t, "line one\nline two", extraction.Body)
	})

	t.Run("utf-16 with BOM decoded", func(t *testing.T) {
		// "hi" as UTF-16LE with BOM, the typical Windows notepad output.
		data := []byte{0xff, 0xfe, 'h', 0x00, 'i', 0x00}
		path := writeFile(t, "win.txt", data)

		extraction, err := extractText(context.Background(), quietLogger(), path)
		require.NoError(t, err)
		assert.Equal(t, "hi", extraction.Body)
	})
}

func TestExtractRTF(t *testing.T) {
	t.Run("control words stripped", func(t *testing.T) {
		rtf := `{\rtf1\ansi{\fonttbl{\f0 Helvetica;}}\f0\fs24 Hello from the RAID log.\par}`
		path := writeFile(t, "log.rtf", []byte(rtf))

		extraction, err := extractRTF(context.Background(), quietLogger(), path)
		require.NoError(t, err)
		assert.Contains(t, extraction.Body, "Hello from the RAID log.")
		assert.NotContains(t, extraction.Body, `\fs24`)
		assert.NotContains(t, extraction.Body, "{")
	})

	t.Run("hex escapes decoded", func(t *testing.T) {
		rtf := `{\rtf1\ansi caf\'e9 menu, r\'e9sum\'e9 attached}`
		path := writeFile(t, "menu.rtf", []byte(rtf))

		extraction, err := extractRTF(context.Background(), quietLogger(), path)
		require.NoError(t, err)
		assert.Contains(t, extraction.Body, "café menu")
		assert.Contains(t, extraction.Body, "résumé attached")
		assert.NotContains(t, extraction.Body, "'e9")
	})

	t.Run("rejects non-rtf content", func(t *testing.T) {
		path := writeFile(t, "fake.rtf", []byte("just text"))

		_, err := extractRTF(context.Background(), quietLogger(), path)
		assert.Error(t, err)
	})
}
