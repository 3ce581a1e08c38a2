// Package scaffold creates and inspects the fixed project-documentation
// directory tree. Scaffolding is idempotent: directories are created when
// absent and existing index files are never overwritten. The scaffolder and
// the converter share no state; the only contract between them is the stable
// set of destination directories this package produces.
package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/sirupsen/logrus"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// IndexFileName is the templated index written into every category directory.
const IndexFileName = "00-index.md"

// Category is one documentation directory in the scaffolded tree.
type Category struct {
	Dir         string
	Title       string
	Description string
}

// Categories is the fixed documentation tree, in creation order.
var Categories = []Category{
	{Dir: "01-project-charter", Title: "Project Charter", Description: "Scope, objectives, stakeholders and success criteria."},
	{Dir: "02-team", Title: "Team", Description: "Roles, contacts, working agreements and onboarding notes."},
	{Dir: "03-meeting-notes", Title: "Meeting Notes", Description: "Agendas, minutes and action items, one file per meeting."},
	{Dir: "04-architecture", Title: "Architecture", Description: "System design documents, diagrams and technical references."},
	{Dir: "05-decisions", Title: "Decisions", Description: "Decision records with context, options considered and outcome."},
	{Dir: "06-raid-log", Title: "RAID Log", Description: "Risks, assumptions, issues and dependencies."},
	{Dir: "07-status-reports", Title: "Status Reports", Description: "Periodic progress, burndown and highlight reports."},
	{Dir: "08-reference", Title: "Reference", Description: "External material, standards and background reading."},
	{Dir: "converted_docs", Title: "Converted Documents", Description: "Markdown output from dockit convert, pending review."},
}

// Scaffolder creates the documentation tree.
type Scaffolder struct {
	logger    *logrus.Logger
	templates *template.Template
}

// New returns a Scaffolder with the embedded templates parsed.
func New(logger *logrus.Logger) (*Scaffolder, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Scaffolder{logger: logger, templates: tmpl}, nil
}

// Result reports what a scaffold run touched.
type Result struct {
	Root         string
	CreatedDirs  []string
	WrittenFiles []string
}

// Create builds the category tree under root. Existing directories and index
// files are left untouched, so re-running is safe.
func (s *Scaffolder) Create(root string) (*Result, error) {
	result := &Result{Root: root}

	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create root %s: %w", root, err)
	}

	readmePath := filepath.Join(root, "README.md")
	if _, err := os.Stat(readmePath); os.IsNotExist(err) {
		if err := s.render(readmePath, "readme.md.tmpl", map[string]any{"Categories": Categories}); err != nil {
			return nil, err
		}
		result.WrittenFiles = append(result.WrittenFiles, readmePath)
	}

	for _, cat := range Categories {
		dir := filepath.Join(root, cat.Dir)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("create %s: %w", dir, err)
			}
			result.CreatedDirs = append(result.CreatedDirs, dir)
			s.logger.WithField("dir", dir).Debug("Created category directory")
		}

		indexPath := filepath.Join(dir, IndexFileName)
		if _, err := os.Stat(indexPath); err == nil {
			continue
		}
		if err := s.render(indexPath, "index.md.tmpl", cat); err != nil {
			return nil, err
		}
		result.WrittenFiles = append(result.WrittenFiles, indexPath)
	}

	return result, nil
}

func (s *Scaffolder) render(path, templateName string, data any) error {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		return fmt.Errorf("render %s: %w", templateName, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o640); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
