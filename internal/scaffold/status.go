package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// CategoryStatus is the maintenance report for one category directory.
type CategoryStatus struct {
	Category  Category
	Missing   bool
	Documents int
	TotalSize int64
	Newest    time.Time
}

// StatusReport covers a whole scaffolded tree.
type StatusReport struct {
	Root       string
	Categories []CategoryStatus
}

// TotalDocuments sums Markdown documents across all categories.
func (r *StatusReport) TotalDocuments() int {
	total := 0
	for _, c := range r.Categories {
		total += c.Documents
	}
	return total
}

// Status inspects a scaffolded tree and reports per-category Markdown file
// counts, sizes and the newest modification time. Index files are not
// counted as documents.
func Status(root string) (*StatusReport, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("scaffold root %s: %w", root, err)
	}

	report := &StatusReport{Root: root}
	for _, cat := range Categories {
		status := CategoryStatus{Category: cat}
		dir := filepath.Join(root, cat.Dir)

		entries, err := os.ReadDir(dir)
		if os.IsNotExist(err) {
			status.Missing = true
			report.Categories = append(report.Categories, status)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", dir, err)
		}

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") || entry.Name() == IndexFileName {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}
			status.Documents++
			status.TotalSize += info.Size()
			if info.ModTime().After(status.Newest) {
				status.Newest = info.ModTime()
			}
		}
		report.Categories = append(report.Categories, status)
	}

	return report, nil
}
