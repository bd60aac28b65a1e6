package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-scraper/internal/analyzer"
	"github.com/insightdelivered/statement-scraper/internal/config"
	"github.com/insightdelivered/statement-scraper/internal/extractor"
	"github.com/insightdelivered/statement-scraper/internal/logging"
	"github.com/insightdelivered/statement-scraper/internal/models"
	"github.com/insightdelivered/statement-scraper/internal/parser"
	"github.com/insightdelivered/statement-scraper/internal/writer"
)

// Version is reported by --version and the health endpoint.
const Version = "2.0.0"

type rootOptions struct {
	configPath string
	output     string
	format     string
	logLevel   string
	year       int
	analyze    bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "statement-scraper [flags] <input.pdf>",
		Short: "Extract transactions from statement PDFs into CSV",
		Long: `Extracts transaction rows from the text of a statement PDF and writes them to CSV.

Supported formats:
  generic  - lines starting with MM/DD/YY, optional trailing $ amount
  bilt     - Bilt Mastercard statements (Trans Date / Post Date listing)`,
		Example: `  statement-scraper statement.pdf
  statement-scraper --format=bilt --analyze -o july.csv bilt-july.pdf`,
		Version: Version,
		Args:    cobra.ExactArgs(1),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, opts, args[0])
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default "+config.DefaultPath+" if present)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.Flags().StringVarP(&opts.output, "output", "o", "", "output CSV file (defaults to the input path with a .csv extension)")
	rootCmd.Flags().StringVarP(&opts.format, "format", "f", "", "statement format: auto, generic, bilt")
	rootCmd.Flags().BoolVar(&opts.analyze, "analyze", false, "print a summary of the extracted transactions")
	rootCmd.Flags().IntVar(&opts.year, "year", 0, "year appended to Bilt MM/DD dates (default: current year)")

	rootCmd.AddCommand(newServeCommand(opts))
	rootCmd.AddCommand(newInitCommand(opts))

	return rootCmd
}

// loadSettings merges config file, environment and flags, in that order.
func loadSettings(opts *rootOptions) (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, nil, err
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.format != "" {
		cfg.Format = opts.format
	}
	if opts.year != 0 {
		cfg.Bilt.Year = opts.year
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func parserOptions(cfg *config.Config, log logrus.FieldLogger) parser.Options {
	return parser.Options{
		Terminator:        cfg.Generic.Terminator,
		HeaderMarkers:     cfg.Bilt.HeaderMarkers,
		SectionEndMarkers: cfg.Bilt.SectionEndMarkers,
		ContinuedMarker:   cfg.Bilt.ContinuedMarker,
		Year:              cfg.Bilt.Year,
		Log:               log,
	}
}

func runConvert(cmd *cobra.Command, opts *rootOptions, inputPath string) error {
	cfg, logger, err := loadSettings(opts)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if err := extractor.Exists(inputPath); err != nil {
		return err
	}

	logger.WithField("input", inputPath).Info("extracting text")
	pages, err := extractor.ExtractText(inputPath)
	if err != nil {
		return fmt.Errorf("PDF extraction failed: %w", err)
	}
	logger.Debugf("extracted text from %d page(s)", len(pages))

	info, err := parsePages(pages, cfg, logger)
	if err != nil {
		return err
	}

	return emit(out, info, outputPath(inputPath, opts.output), opts.analyze)
}

// parsePages runs the configured parser, detecting the format when set to auto.
func parsePages(pages []string, cfg *config.Config, logger logrus.FieldLogger) (*models.Statement, error) {
	format, err := parser.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	return parser.Parse(pages, format, parserOptions(cfg, logger))
}

// emit writes the CSV and prints the user-facing outcome.
func emit(out io.Writer, info *models.Statement, csvPath string, analyze bool) error {
	err := writer.WriteStatementToFile(csvPath, info)
	switch {
	case errors.Is(err, writer.ErrNoTransactions):
		fmt.Fprintln(out, color.RedString("No transactions found."))
		return nil
	case err != nil:
		return fmt.Errorf("CSV write failed: %w", err)
	}

	fmt.Fprintln(out, color.GreenString("Extracted %d transactions to %s", info.Count(), csvPath))

	if analyze {
		if info.Format == models.FormatBilt {
			analyzer.Report(out, info.CardTransactions)
		} else {
			fmt.Fprintln(out, color.YellowString("--analyze applies to bilt statements only"))
		}
	}
	return nil
}

// outputPath returns explicit if set, otherwise the input path with its
// extension replaced by .csv.
func outputPath(inputPath, explicit string) string {
	if explicit != "" {
		return explicit
	}
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".csv"
}
