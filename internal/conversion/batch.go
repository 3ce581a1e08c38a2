package conversion

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/oscproj/dockit/internal/registry"
	"github.com/sirupsen/logrus"
)

// ConvertDirectory converts every file with a recognised extension under dir.
// Files are visited in the order the OS returns them. Per-file failures are
// recorded in the summary and never abort the batch; an error return means
// the directory itself could not be read.
func (c *Converter) ConvertDirectory(ctx context.Context, dir string, recursive bool, outputDir string) (*BatchSummary, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, &NotFoundError{Path: dir}
	}
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	summary := &BatchSummary{RunID: uuid.NewString()}
	log := c.logger.WithFields(logrus.Fields{"run_id": summary.RunID, "dir": dir})
	log.Info("Starting batch conversion")

	var paths []string
	if recursive {
		err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", dir, err)
		}
	} else {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("read directory %s: %w", dir, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				paths = append(paths, filepath.Join(dir, entry.Name()))
			}
		}
	}

	for _, path := range paths {
		summary.Discovered++

		if !c.registry.Supports(registry.Normalize(filepath.Ext(path))) {
			summary.Skipped++
			log.WithField("path", path).Debug("Skipping unsupported extension")
			continue
		}

		result, err := c.ConvertFile(ctx, ConversionRequest{SourcePath: path, OutputDir: outputDir})
		if err != nil {
			summary.Failed++
			summary.Outcomes = append(summary.Outcomes, FileOutcome{SourcePath: path, Err: err})
			log.WithError(err).WithField("path", path).Error("Conversion failed")
			continue
		}

		summary.Converted++
		summary.Outcomes = append(summary.Outcomes, FileOutcome{SourcePath: path, OutputPath: result.OutputPath})
	}

	log.WithFields(logrus.Fields{
		"discovered": summary.Discovered,
		"converted":  summary.Converted,
		"failed":     summary.Failed,
		"skipped":    summary.Skipped,
	}).Info("Batch conversion finished")

	return summary, nil
}
