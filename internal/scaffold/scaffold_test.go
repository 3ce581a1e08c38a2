package scaffold

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScaffolder(t *testing.T) *Scaffolder {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	s, err := New(logger)
	require.NoError(t, err)
	return s
}

func TestCreateBuildsFullTree(t *testing.T) {
	root := filepath.Join(t.TempDir(), "docs")
	s := newTestScaffolder(t)

	result, err := s.Create(root)
	require.NoError(t, err)

	assert.Len(t, result.CreatedDirs, len(Categories))
	// README plus one index per category.
	assert.Len(t, result.WrittenFiles, len(Categories)+1)

	for _, cat := range Categories {
		dir := filepath.Join(root, cat.Dir)
		info, err := os.Stat(dir)
		require.NoError(t, err, "category %s", cat.Dir)
		assert.True(t, info.IsDir())

		index, err := os.ReadFile(filepath.Join(dir, IndexFileName))
		require.NoError(t, err)
		assert.Contains(t, string(index), cat.Title)
	}

	readme, err := os.ReadFile(filepath.Join(root, "README.md"))
	require.NoError(t, err)
	assert.Contains(t, string(readme), "01-project-charter")
	assert.Contains(t, string(readme), "converted_docs")
}

func TestCreateIsIdempotent(t *testing.T) {
	root := filepath.Join(t.TempDir(), "docs")
	s := newTestScaffolder(t)

	_, err := s.Create(root)
	require.NoError(t, err)

	// Edits to generated files must survive a second run.
	indexPath := filepath.Join(root, "02-team", IndexFileName)
	require.NoError(t, os.WriteFile(indexPath, []byte("# My team notes\n"), 0o640))
	readmePath := filepath.Join(root, "README.md")
	require.NoError(t, os.WriteFile(readmePath, []byte("# Custom readme\n"), 0o640))

	result, err := s.Create(root)
	require.NoError(t, err)
	assert.Empty(t, result.CreatedDirs)
	assert.Empty(t, result.WrittenFiles)

	index, err := os.ReadFile(indexPath)
	require.NoError(t, err)
	assert.Equal(t, "# My team notes\n", string(index))

	readme, err := os.ReadFile(readmePath)
	require.NoError(t, err)
	assert.Equal(t, "# Custom readme\n", string(readme))
}

func TestStatusCountsDocuments(t *testing.T) {
	root := filepath.Join(t.TempDir(), "docs")
	s := newTestScaffolder(t)
	_, err := s.Create(root)
	require.NoError(t, err)

	meetingDir := filepath.Join(root, "03-meeting-notes")
	require.NoError(t, os.WriteFile(filepath.Join(meetingDir, "2024-03-01.md"), []byte("# Kickoff\n"), 0o640))
	require.NoError(t, os.WriteFile(filepath.Join(meetingDir, "2024-03-08.md"), []byte("# Weekly\n"), 0o640))
	// Non-markdown files are not documents.
	require.NoError(t, os.WriteFile(filepath.Join(meetingDir, "raw.txt"), []byte("scratch"), 0o640))

	report, err := Status(root)
	require.NoError(t, err)
	assert.Equal(t, 2, report.TotalDocuments())

	for _, cat := range report.Categories {
		if cat.Category.Dir == "03-meeting-notes" {
			assert.Equal(t, 2, cat.Documents)
			assert.Greater(t, cat.TotalSize, int64(0))
			assert.False(t, cat.Newest.IsZero())
		} else {
			// Index files never count as documents.
			assert.Equal(t, 0, cat.Documents)
			assert.False(t, cat.Missing)
		}
	}
}

func TestStatusReportsMissingCategories(t *testing.T) {
	root := filepath.Join(t.TempDir(), "docs")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "01-project-charter"), 0o750))

	report, err := Status(root)
	require.NoError(t, err)

	missing := 0
	for _, cat := range report.Categories {
		if cat.Missing {
			missing++
		}
	}
	assert.Equal(t, len(Categories)-1, missing)
}

func TestStatusMissingRoot(t *testing.T) {
	_, err := Status(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}
