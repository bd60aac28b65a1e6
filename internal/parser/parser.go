package parser

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/insightdelivered/statement-scraper/internal/models"
)

// Parser defines the interface for statement parsers.
type Parser interface {
	// Parse takes the text of each PDF page and returns the extracted records.
	Parse(pages []string) (*models.Statement, error)
	// FormatName returns the human-readable format name.
	FormatName() string
}

// Options tunes the parsers built by New. Zero values select defaults.
type Options struct {
	Terminator        string
	HeaderMarkers     []string
	SectionEndMarkers []string
	ContinuedMarker   string
	Year              int
	Log               logrus.FieldLogger
}

// New returns the parser for the given format.
func New(format models.Format, opts Options) (Parser, error) {
	switch format {
	case models.FormatGeneric:
		return &GenericParser{Terminator: opts.Terminator}, nil
	case models.FormatBilt:
		p := NewBiltParser()
		if len(opts.HeaderMarkers) > 0 {
			p.HeaderMarkers = opts.HeaderMarkers
		}
		if len(opts.SectionEndMarkers) > 0 {
			p.SectionEndMarkers = opts.SectionEndMarkers
		}
		if opts.ContinuedMarker != "" {
			p.ContinuedMarker = opts.ContinuedMarker
		}
		p.Year = opts.Year
		p.Log = opts.Log
		return p, nil
	default:
		return nil, fmt.Errorf("unsupported statement format: %q", format)
	}
}

// ParseFormat maps a user-supplied name to a Format. "auto" and "" map to "".
func ParseFormat(name string) (models.Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return "", nil
	case "generic":
		return models.FormatGeneric, nil
	case "bilt":
		return models.FormatBilt, nil
	default:
		return "", fmt.Errorf("unknown format %q (supported: auto, generic, bilt)", name)
	}
}

// Parse runs the parser for format over pages. An empty format is
// auto-detected.
func Parse(pages []string, format models.Format, opts Options) (*models.Statement, error) {
	if format == "" {
		format = AutoDetect(pages, opts.HeaderMarkers)
		if opts.Log != nil {
			opts.Log.WithField("format", format).Info("auto-detected statement format")
		}
	}

	p, err := New(format, opts)
	if err != nil {
		return nil, err
	}
	if opts.Log != nil {
		opts.Log.Debugf("using %s parser", p.FormatName())
	}

	info, err := p.Parse(pages)
	if err != nil {
		return nil, fmt.Errorf("parsing failed: %w", err)
	}
	return info, nil
}

// AutoDetect picks a format from the statement text. Anything that does not
// carry the Bilt column header is treated as generic. headerMarkers
// replaces the default header when non-empty.
func AutoDetect(pages []string, headerMarkers []string) models.Format {
	if len(headerMarkers) == 0 {
		headerMarkers = DefaultBiltHeaderMarkers
	}
	for _, page := range pages {
		for _, line := range pageLines(page) {
			if containsAll(line, headerMarkers) {
				return models.FormatBilt
			}
		}
	}
	return models.FormatGeneric
}
