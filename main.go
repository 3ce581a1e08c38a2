// dockit is a project-documentation toolkit: it converts office documents
// (Word, Excel, PDF, CSV, HTML, RTF and friends) into Markdown files with a
// metadata header, and scaffolds the fixed documentation directory tree the
// converted files are filed into.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/oscproj/dockit/internal/config"
	"github.com/oscproj/dockit/internal/conversion"
	"github.com/oscproj/dockit/internal/registry"
	"github.com/oscproj/dockit/internal/scaffold"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

// Version information (set during build)
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// parseLogLevel parses the LOG_LEVEL environment variable and returns the
// appropriate logrus level. Defaults to WarnLevel if not set or invalid.
func parseLogLevel() logrus.Level {
	logLevelStr := strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL")))
	switch logLevelStr {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.WarnLevel
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Optional .env file; absence is not an error.
	_ = godotenv.Load()

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(parseLogLevel())
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	app := &cli.Command{
		Name:    "dockit",
		Usage:   "Convert office documents to Markdown and scaffold documentation trees",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate),
		Commands: []*cli.Command{
			{
				Name:      "convert",
				Usage:     "Convert a file or directory of files to Markdown",
				ArgsUsage: "<file|directory>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory for converted Markdown",
						Sources: cli.EnvVars(config.OutputDirEnvVar),
					},
					&cli.StringFlag{
						Name:    "name",
						Aliases: []string{"n"},
						Usage:   "Output base name, without extension (single file only)",
					},
					&cli.BoolFlag{
						Name:    "recursive",
						Aliases: []string{"r"},
						Usage:   "Recurse into subdirectories when converting a directory",
					},
					&cli.BoolFlag{
						Name:    "verbose",
						Aliases: []string{"v"},
						Usage:   "Enable debug logging",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runConvert(ctx, cmd, logger)
				},
			},
			{
				Name:  "formats",
				Usage: "List supported formats and their handlers",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runFormats()
				},
			},
			{
				Name:  "scaffold",
				Usage: "Create the project documentation directory tree",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "root",
						Value: "docs",
						Usage: "Root directory for the documentation tree",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runScaffold(cmd, logger)
				},
			},
			{
				Name:  "status",
				Usage: "Report per-category document counts for a scaffolded tree",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "root",
						Value: "docs",
						Usage: "Root directory of the documentation tree",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runStatus(cmd)
				},
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

// runConvert handles both single-file and batch conversion.
func runConvert(ctx context.Context, cmd *cli.Command, logger *logrus.Logger) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("convert expects exactly one file or directory argument")
	}
	input := cmd.Args().First()

	if cmd.Bool("verbose") {
		logger.SetLevel(logrus.DebugLevel)
	}

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	outputDir := cmd.String("output")
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}

	converter := conversion.New(registry.Default(), logger, conversion.Options{
		OutputDir:   outputDir,
		MaxFileSize: cfg.MaxFileSize,
	})

	info, err := os.Stat(input)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("input path does not exist: %s", input)
		}
		return err
	}

	if !info.IsDir() {
		result, err := converter.ConvertFile(ctx, conversion.ConversionRequest{
			SourcePath: input,
			OutputName: cmd.String("name"),
		})
		if err != nil {
			return err
		}
		color.Green("Converted: %s -> %s", result.SourcePath, result.OutputPath)
		return nil
	}

	if cmd.String("name") != "" {
		return fmt.Errorf("--name only applies to single-file conversion")
	}

	summary, err := converter.ConvertDirectory(ctx, input, cmd.Bool("recursive"), "")
	if err != nil {
		return err
	}
	printSummary(summary)
	return nil
}

// printSummary renders the batch report. Individual failures are non-fatal;
// the batch itself already completed.
func printSummary(summary *conversion.BatchSummary) {
	color.Green("Successfully converted: %d files", summary.Converted)
	if summary.Failed > 0 {
		color.Red("Failed to convert: %d files", summary.Failed)
	}
	if summary.Skipped > 0 {
		color.Yellow("Skipped (unsupported): %d files", summary.Skipped)
	}
	fmt.Printf("Discovered: %d files\n", summary.Discovered)

	if summary.Failed > 0 {
		fmt.Println("\nFailed files:")
		for _, outcome := range summary.Outcomes {
			if outcome.Err != nil {
				fmt.Printf("  - %s: %v\n", outcome.SourcePath, outcome.Err)
			}
		}
	}
}

func runFormats() error {
	reg := registry.Default()
	for _, h := range reg.Handlers() {
		fmt.Printf("%-12s .%s\n", h.Name(), strings.Join(h.Extensions(), " ."))
	}
	return nil
}

func runScaffold(cmd *cli.Command, logger *logrus.Logger) error {
	scaffolder, err := scaffold.New(logger)
	if err != nil {
		return err
	}
	result, err := scaffolder.Create(cmd.String("root"))
	if err != nil {
		return err
	}
	color.Green("Scaffolded %s: %d directories created, %d index files written",
		result.Root, len(result.CreatedDirs), len(result.WrittenFiles))
	return nil
}

func runStatus(cmd *cli.Command) error {
	report, err := scaffold.Status(cmd.String("root"))
	if err != nil {
		return err
	}

	for _, cat := range report.Categories {
		if cat.Missing {
			color.Yellow("%-22s missing", cat.Category.Dir)
			continue
		}
		line := fmt.Sprintf("%-22s %3d documents  %8d bytes", cat.Category.Dir, cat.Documents, cat.TotalSize)
		if !cat.Newest.IsZero() {
			line += "  newest " + cat.Newest.Format("2006-01-02")
		}
		fmt.Println(line)
	}
	fmt.Printf("\nTotal documents: %d\n", report.TotalDocuments())
	return nil
}
