package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-scraper/internal/config"
	"github.com/insightdelivered/statement-scraper/internal/parser"
)

func newInitCommand(root *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default " + config.DefaultPath,
		Long: `Writes a config file with the built-in defaults, including the Bilt
section markers, so they can be edited. The file goes to --config when set,
otherwise to statement-scraper.yaml in the given directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			path := root.configPath
			if path == "" {
				absDir, err := filepath.Abs(dir)
				if err != nil {
					return fmt.Errorf("resolving path: %w", err)
				}
				path = filepath.Join(absDir, config.DefaultPath)
			}

			return runInit(cmd.OutOrStdout(), path, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	return cmd
}

func runInit(out io.Writer, path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("checking config: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	cfg := config.Default()
	cfg.Bilt.HeaderMarkers = parser.DefaultBiltHeaderMarkers
	cfg.Bilt.SectionEndMarkers = parser.DefaultBiltSectionEndMarkers
	cfg.Bilt.ContinuedMarker = parser.DefaultBiltContinuedMarker

	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintln(out, color.GreenString("Wrote %s", path))
	return nil
}
